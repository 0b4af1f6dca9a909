package templates

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-composer/sections"
)

// Template is a named preset of default properties used to seed a new
// section. ID is a stable key within its section type's catalog; Defaults is
// the opaque property bag copied into a freshly created section.
type Template struct {
	ID          string               `json:"id" yaml:"id"`
	SectionType sections.Type        `json:"section_type" yaml:"type"`
	Name        string               `json:"name" yaml:"name"`
	Description string               `json:"description,omitempty" yaml:"description"`
	Defaults    sections.PropertyBag `json:"defaults,omitempty" yaml:"defaults"`
}

// Validate checks the template invariants before catalog registration.
func (t Template) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.ID, validation.Required),
		validation.Field(&t.Name, validation.Required),
		validation.Field(&t.SectionType, validation.Required, validation.In(
			sections.TypeHero,
			sections.TypeHeading,
			sections.TypeParagraph,
			sections.TypeGallery,
		)),
	)
}
