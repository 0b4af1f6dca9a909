package builder

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-composer/sections"
)

// SaveContentCommand carries a silent partial save: only the section list is
// persisted, nothing else on the page changes.
type SaveContentCommand struct {
	PageID   uuid.UUID
	Sections []*sections.Section
	Revision uint64
}

// Type implements command.Message.
func (SaveContentCommand) Type() string {
	return "composer.page.content.save"
}

// Validate ensures the target page is known before handlers execute.
func (c SaveContentCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.PageID, validation.By(uuidNotNil("composer.page.content.save.page_required"))),
	)
}

// SavePageCommand carries an explicit full save of the page document.
type SavePageCommand struct {
	Page     *sections.Document
	Revision uint64
}

// Type implements command.Message.
func (SavePageCommand) Type() string {
	return "composer.page.save"
}

// Validate ensures a complete document is attached before handlers execute.
func (c SavePageCommand) Validate() error {
	if c.Page == nil {
		return validation.NewError("composer.page.save.document_required", "page document is required")
	}
	return validation.Validate(c.Page.ID, validation.By(uuidNotNil("composer.page.save.page_required")))
}

func uuidNotNil(code string) validation.RuleFunc {
	return func(value any) error {
		id, ok := value.(uuid.UUID)
		if !ok || id == uuid.Nil {
			return validation.NewError(code, "page id is required")
		}
		return nil
	}
}
