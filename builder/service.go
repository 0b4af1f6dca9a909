// Package builder holds the composition controller: the per-page session that
// owns the ordered section list, the single active edit, and the two save
// modes (silent partial saves after structural changes, explicit full saves on
// operator confirmation).
package builder

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-composer/internal/commands"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/pkg/interfaces"
	"github.com/goliatone/go-composer/sections"
	"github.com/goliatone/go-composer/store"
	"github.com/goliatone/go-composer/templates"
)

// Direction selects which neighbour a section swaps with.
type Direction string

const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)

// Operator identifies who is driving the session. It is passed in explicitly
// so role and identity never come from ambient state; surrounding surfaces
// read it back through Session.Operator.
type Operator struct {
	ID   uuid.UUID
	Role string
}

// Option configures a Session instance.
type Option func(*Session)

// Session drives composition for a single page. It is not safe for concurrent
// use; one session serves one operator surface.
//
// The session keeps two copies of edited state: the committed section list and
// an optional working bag for the section currently open in the property
// editor. Property changes land on the working bag only and reach the
// committed list exclusively through CommitEdit.
type Session struct {
	store   store.Store
	catalog *templates.Catalog
	logger  interfaces.Logger
	id      sections.IDGenerator
	now     func() time.Time

	pageID   uuid.UUID
	operator Operator
	doc      *sections.Document
	edit     *activeEdit
	revision uint64
	notice   string

	saveTimeout    time.Duration
	hasSaveTimeout bool

	saveContent *commands.Handler[SaveContentCommand]
	savePage    *commands.Handler[SavePageCommand]
}

type activeEdit struct {
	sectionID uuid.UUID
	working   sections.PropertyBag
}

// NewSession wires a composition session for the given page.
func NewSession(st store.Store, catalog *templates.Catalog, pageID uuid.UUID, opts ...Option) (*Session, error) {
	if st == nil {
		return nil, ErrStoreRequired
	}
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if pageID == uuid.Nil {
		return nil, ErrPageRequired
	}

	s := &Session{
		store:   st,
		catalog: catalog,
		logger:  logging.NoOp(),
		id:      uuid.New,
		now:     time.Now,
		pageID:  pageID,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.operator.ID != uuid.Nil {
		s.logger = logging.WithFields(s.logger, map[string]any{
			"operator_id": s.operator.ID,
		})
	}

	contentOpts := []commands.HandlerOption[SaveContentCommand]{
		commands.WithLogger[SaveContentCommand](s.logger),
		commands.WithOperation[SaveContentCommand]("composer.builder.save_content"),
	}
	pageOpts := []commands.HandlerOption[SavePageCommand]{
		commands.WithLogger[SavePageCommand](s.logger),
		commands.WithOperation[SavePageCommand]("composer.builder.save_page"),
	}
	if s.hasSaveTimeout {
		contentOpts = append(contentOpts, commands.WithTimeout[SaveContentCommand](s.saveTimeout))
		pageOpts = append(pageOpts, commands.WithTimeout[SavePageCommand](s.saveTimeout))
	}

	s.saveContent = commands.NewHandler(
		func(ctx context.Context, msg SaveContentCommand) error {
			return s.store.SaveContent(ctx, msg.PageID, msg.Sections)
		},
		contentOpts...,
	)
	s.savePage = commands.NewHandler(
		func(ctx context.Context, msg SavePageCommand) error {
			return s.store.SavePage(ctx, msg.Page)
		},
		pageOpts...,
	)

	return s, nil
}

// WithLogger sets the logger used by the session and its save handlers.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator overrides section ID generation, mainly for tests.
func WithIDGenerator(gen sections.IDGenerator) Option {
	return func(s *Session) {
		if gen != nil {
			s.id = gen
		}
	}
}

// WithClock overrides the session clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSaveTimeout bounds save dispatch with the given execution timeout.
// Zero or negative disables the timeout entirely.
func WithSaveTimeout(timeout time.Duration) Option {
	return func(s *Session) {
		s.saveTimeout = timeout
		s.hasSaveTimeout = true
	}
}

// WithOperator binds the acting operator to the session.
func WithOperator(operator Operator) Option {
	return func(s *Session) {
		s.operator = operator
	}
}

// Operator returns the identity bound to this session.
func (s *Session) Operator() Operator {
	return s.operator
}

// Load fetches the page document from the store. Malformed stored content is
// repaired by the store on the way in; on fetch failure the session degrades
// to an empty document so composition can start from scratch.
func (s *Session) Load(ctx context.Context) (*sections.Document, error) {
	doc, err := s.store.FetchPage(ctx, s.pageID)
	if err != nil {
		s.logger.Warn("page load failed, starting empty", "page_id", s.pageID, "error", err)
		s.doc = &sections.Document{ID: s.pageID, Sections: []*sections.Section{}}
		s.edit = nil
		s.setNotice("Page could not be loaded; starting with an empty layout.")
		return s.doc.Clone(), err
	}

	s.doc = doc
	s.edit = nil
	s.logger.Debug("page loaded", "page_id", s.pageID, "sections", len(doc.Sections))
	return s.doc.Clone(), nil
}

// Document returns a deep copy of the committed page document.
func (s *Session) Document() *sections.Document {
	return s.doc.Clone()
}

// Sections returns a deep copy of the committed section list in order.
func (s *Session) Sections() []*sections.Section {
	if s.doc == nil {
		return nil
	}
	return sections.CloneList(s.doc.Sections)
}

// Revision reports the local mutation counter. Every structural or committed
// change bumps it once.
func (s *Session) Revision() uint64 {
	return s.revision
}

// Notice returns the most recent operator-facing message, if any, and clears
// it. Silent save failures surface here instead of interrupting composition.
func (s *Session) Notice() string {
	notice := s.notice
	s.notice = ""
	return notice
}

func (s *Session) setNotice(notice string) {
	s.notice = notice
}

// AddFromTemplate appends a new section of the given type to the end of the
// page, seeded from the template's default property bag, then opens it for
// editing. An empty templateID seeds a minimal bag for the type instead.
func (s *Session) AddFromTemplate(ctx context.Context, sectionType sections.Type, templateID string) (*sections.Section, error) {
	if s.doc == nil {
		return nil, ErrDocumentNotLoaded
	}
	if !sectionType.Valid() {
		return nil, ErrSectionTypeInvalid
	}

	var content sections.PropertyBag
	if templateID != "" {
		tpl, ok := s.catalog.Get(sectionType, templateID)
		if !ok {
			return nil, ErrTemplateUnknown
		}
		content = tpl.Defaults.Clone()
	} else {
		content = emptyShape(sectionType)
	}
	if content == nil {
		content = sections.PropertyBag{}
	}

	section := &sections.Section{
		ID:         s.id(),
		Type:       sectionType,
		TemplateID: templateID,
		Content:    content,
		Order:      len(s.doc.Sections),
	}
	s.doc.Sections = append(s.doc.Sections, section)
	s.revision++
	s.logger.Info("section added", "page_id", s.pageID, "section_id", section.ID, "type", sectionType, "template_id", templateID)

	s.silentSave(ctx)

	// New sections open for editing immediately; adding is always followed by
	// filling in real content.
	s.edit = &activeEdit{
		sectionID: section.ID,
		working:   section.Content.Clone(),
	}

	return section.Clone(), nil
}

// BeginEdit opens the property editor on a section and returns a snapshot of
// the working copy. Starting an edit while another is open replaces the
// previous working copy without committing it.
func (s *Session) BeginEdit(sectionID uuid.UUID) (sections.PropertyBag, error) {
	section, _, err := s.find(sectionID)
	if err != nil {
		return nil, err
	}
	s.edit = &activeEdit{
		sectionID: sectionID,
		working:   section.Content.Clone(),
	}
	return s.edit.working.Clone(), nil
}

// ActiveEdit reports which section is open for editing, if any.
func (s *Session) ActiveEdit() (uuid.UUID, bool) {
	if s.edit == nil {
		return uuid.Nil, false
	}
	return s.edit.sectionID, true
}

// WorkingCopy returns a snapshot of the current working bag.
func (s *Session) WorkingCopy() (sections.PropertyBag, bool) {
	if s.edit == nil {
		return nil, false
	}
	return s.edit.working.Clone(), true
}

// UpdateWorkingProperty sets a property on the working bag. The committed
// section stays untouched until CommitEdit.
func (s *Session) UpdateWorkingProperty(name string, value any) error {
	if s.edit == nil {
		return ErrNoActiveEdit
	}
	s.edit.working[name] = value
	return nil
}

// RemoveWorkingProperty drops a property from the working bag, which also
// removes its control from the editor on the next inspection.
func (s *Session) RemoveWorkingProperty(name string) error {
	if s.edit == nil {
		return ErrNoActiveEdit
	}
	delete(s.edit.working, name)
	return nil
}

// DiscardEdit closes the property editor without applying the working copy.
func (s *Session) DiscardEdit() {
	s.edit = nil
}

// CommitEdit replaces the committed section's content wholesale with the
// working bag, closes the edit, and performs an explicit full save. After a
// successful save the document is re-fetched so local state reflects exactly
// what the backend persisted.
func (s *Session) CommitEdit(ctx context.Context) error {
	if s.edit == nil {
		return ErrNoActiveEdit
	}
	if s.doc == nil {
		return ErrDocumentNotLoaded
	}

	section, _, err := s.find(s.edit.sectionID)
	if err != nil {
		return err
	}
	section.Content = s.edit.working.Clone()
	s.edit = nil
	s.revision++

	return s.Save(ctx)
}

// Save performs an explicit full save of the current document. On failure the
// local document is retained so the operator can retry; on success the
// document is re-fetched from the backend.
func (s *Session) Save(ctx context.Context) error {
	if s.doc == nil {
		return ErrDocumentNotLoaded
	}

	err := s.savePage.Execute(ctx, SavePageCommand{
		Page:     s.doc.Clone(),
		Revision: s.revision,
	})
	if err != nil {
		s.logger.Error("page save failed", "page_id", s.pageID, "error", err)
		s.setNotice("Saving the page failed. Your changes are still here; try again.")
		return err
	}

	doc, fetchErr := s.store.FetchPage(ctx, s.pageID)
	if fetchErr != nil {
		// The save itself succeeded; a failed consistency re-fetch keeps the
		// local document rather than discarding operator work.
		s.logger.Warn("post-save refresh failed", "page_id", s.pageID, "error", fetchErr)
		return nil
	}
	s.doc = doc
	return nil
}

// DeleteSection removes a section and reindexes the remainder so order stays
// dense and contiguous. Deleting the section under edit discards that edit.
func (s *Session) DeleteSection(ctx context.Context, sectionID uuid.UUID) error {
	if s.doc == nil {
		return ErrDocumentNotLoaded
	}
	_, index, err := s.find(sectionID)
	if err != nil {
		return err
	}

	s.doc.Sections = append(s.doc.Sections[:index], s.doc.Sections[index+1:]...)
	sections.Reindex(s.doc.Sections)
	if s.edit != nil && s.edit.sectionID == sectionID {
		s.edit = nil
	}
	s.revision++
	s.logger.Info("section deleted", "page_id", s.pageID, "section_id", sectionID)

	s.silentSave(ctx)
	return nil
}

// MoveSection swaps a section with its neighbour in the given direction.
// Moving the first section up or the last section down is a no-op that
// triggers no save and no revision bump.
func (s *Session) MoveSection(ctx context.Context, sectionID uuid.UUID, direction Direction) error {
	if s.doc == nil {
		return ErrDocumentNotLoaded
	}
	_, index, err := s.find(sectionID)
	if err != nil {
		return err
	}

	var target int
	switch direction {
	case MoveUp:
		target = index - 1
	case MoveDown:
		target = index + 1
	default:
		return ErrDirectionInvalid
	}
	if target < 0 || target >= len(s.doc.Sections) {
		return nil
	}

	list := s.doc.Sections
	list[index], list[target] = list[target], list[index]
	sections.Reindex(list)
	s.revision++
	s.logger.Debug("section moved", "page_id", s.pageID, "section_id", sectionID, "direction", direction)

	s.silentSave(ctx)
	return nil
}

// silentSave persists the section list without interrupting composition.
// Failures are logged and surfaced through Notice; the local list is the
// source of truth until an explicit save reconciles with the backend.
func (s *Session) silentSave(ctx context.Context) {
	msg := SaveContentCommand{
		PageID:   s.pageID,
		Sections: sections.CloneList(s.doc.Sections),
		Revision: s.revision,
	}
	if err := s.saveContent.Execute(ctx, msg); err != nil {
		s.logger.Error("content save failed", "page_id", s.pageID, "error", err)
		s.setNotice("Layout changes could not be saved automatically.")
		return
	}
	if s.revision != msg.Revision {
		s.logger.Debug("content save superseded", "page_id", s.pageID, "saved_revision", msg.Revision, "revision", s.revision)
	}
}

func (s *Session) find(sectionID uuid.UUID) (*sections.Section, int, error) {
	if s.doc == nil {
		return nil, -1, ErrDocumentNotLoaded
	}
	for i, section := range s.doc.Sections {
		if section.ID == sectionID {
			return section, i, nil
		}
	}
	return nil, -1, ErrSectionNotFound
}

// emptyShape seeds the minimal property bag for a section added without a
// template, so the editor has something to bind to.
func emptyShape(sectionType sections.Type) sections.PropertyBag {
	switch sectionType {
	case sections.TypeHero:
		return sections.PropertyBag{"title": ""}
	case sections.TypeHeading:
		return sections.PropertyBag{"title": ""}
	case sections.TypeParagraph:
		return sections.PropertyBag{"text": ""}
	case sections.TypeGallery:
		return sections.PropertyBag{
			"layout":  "grid",
			"columns": 1,
			"images":  []any{},
		}
	}
	return sections.PropertyBag{}
}
