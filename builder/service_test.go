package builder

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-composer/sections"
	"github.com/goliatone/go-composer/store"
	"github.com/goliatone/go-composer/templates"
)

// stubStore records persistence calls and serves documents like a backend:
// saves replace its copy, fetches return clones of it.
type stubStore struct {
	doc *sections.Document

	fetchErr       error
	saveContentErr error
	savePageErr    error

	fetches      int
	contentSaves int
	pageSaves    int

	lastContent []*sections.Section
	lastPage    *sections.Document
}

func (s *stubStore) FetchPage(_ context.Context, id uuid.UUID) (*sections.Document, error) {
	s.fetches++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	if s.doc == nil || s.doc.ID != id {
		return nil, &store.NotFoundError{Resource: "page", Key: id.String()}
	}
	doc := s.doc.Clone()
	doc.Sections = sections.Normalize(doc.Sections, nil)
	return doc, nil
}

func (s *stubStore) SaveContent(_ context.Context, id uuid.UUID, list []*sections.Section) error {
	s.contentSaves++
	s.lastContent = sections.CloneList(list)
	if s.saveContentErr != nil {
		return s.saveContentErr
	}
	if s.doc != nil && s.doc.ID == id {
		s.doc.Sections = sections.CloneList(list)
	}
	return nil
}

func (s *stubStore) SavePage(_ context.Context, doc *sections.Document) error {
	s.pageSaves++
	s.lastPage = doc.Clone()
	if s.savePageErr != nil {
		return s.savePageErr
	}
	s.doc = doc.Clone()
	return nil
}

func newSession(t *testing.T, st *stubStore) *Session {
	t.Helper()
	session, err := NewSession(st, templates.Builtin(), st.doc.ID)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, err := session.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return session
}

func seededStore() *stubStore {
	return &stubStore{
		doc: &sections.Document{
			ID: uuid.New(),
			Sections: []*sections.Section{
				{ID: uuid.New(), Type: sections.TypeHero, Content: sections.PropertyBag{"title": "Hero"}, Order: 0},
				{ID: uuid.New(), Type: sections.TypeParagraph, Content: sections.PropertyBag{"text": "Body"}, Order: 1},
			},
			Fields: map[string]any{"title": "Landing", "status": "draft"},
		},
	}
}

func TestNewSessionRequiresCollaborators(t *testing.T) {
	catalog := templates.Builtin()
	st := seededStore()

	if _, err := NewSession(nil, catalog, uuid.New()); !errors.Is(err, ErrStoreRequired) {
		t.Fatalf("expected ErrStoreRequired, got %v", err)
	}
	if _, err := NewSession(st, nil, uuid.New()); !errors.Is(err, ErrCatalogRequired) {
		t.Fatalf("expected ErrCatalogRequired, got %v", err)
	}
	if _, err := NewSession(st, catalog, uuid.Nil); !errors.Is(err, ErrPageRequired) {
		t.Fatalf("expected ErrPageRequired, got %v", err)
	}
}

func TestLoadDegradesToEmptyOnFetchFailure(t *testing.T) {
	st := seededStore()
	st.fetchErr = errors.New("backend down")

	session, err := NewSession(st, templates.Builtin(), st.doc.ID)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	doc, loadErr := session.Load(context.Background())
	if loadErr == nil {
		t.Fatal("expected load error to surface")
	}
	if doc == nil || len(doc.Sections) != 0 {
		t.Fatalf("expected empty document, got %+v", doc)
	}
	if session.Notice() == "" {
		t.Fatal("expected operator notice after degraded load")
	}

	// Composition still works against the empty document.
	st.fetchErr = nil
	if _, err := session.AddFromTemplate(context.Background(), sections.TypeHero, "banner-minimal"); err != nil {
		t.Fatalf("add after degraded load: %v", err)
	}
}

func TestAddFromTemplateAppendsAndOpensEdit(t *testing.T) {
	st := seededStore()
	session := newSession(t, st)

	added, err := session.AddFromTemplate(context.Background(), sections.TypeHeading, "heading-standard")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	list := session.Sections()
	if len(list) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(list))
	}
	if list[2].ID != added.ID || list[2].Order != 2 {
		t.Fatalf("new section should append at the end: %+v", list[2])
	}
	if added.Content["text"] != "Section title" {
		t.Fatalf("template defaults not copied: %+v", added.Content)
	}

	if st.contentSaves != 1 {
		t.Fatalf("expected 1 silent save, got %d", st.contentSaves)
	}
	if editID, open := session.ActiveEdit(); !open || editID != added.ID {
		t.Fatalf("new section should open for editing, got %v %v", editID, open)
	}
	if session.Revision() != 1 {
		t.Fatalf("revision = %d, want 1", session.Revision())
	}
}

func TestAddFromTemplateWorkingCopyMatchesDefaults(t *testing.T) {
	st := seededStore()
	session := newSession(t, st)
	catalog := templates.Builtin()

	added, err := session.AddFromTemplate(context.Background(), sections.TypeGallery, "gallery-carousel")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := session.BeginEdit(added.ID); err != nil {
		t.Fatalf("begin edit: %v", err)
	}

	working, _ := session.WorkingCopy()
	template, _ := catalog.Get(sections.TypeGallery, "gallery-carousel")
	if !reflect.DeepEqual(map[string]any(working), map[string]any(template.Defaults)) {
		t.Fatalf("working copy diverged from template defaults:\n%v\n%v", working, template.Defaults)
	}
}

func TestAddFromTemplateDefaultsAreIndependentCopies(t *testing.T) {
	st := seededStore()
	session := newSession(t, st)
	ctx := context.Background()

	first, _ := session.AddFromTemplate(ctx, sections.TypeGallery, "gallery-grid")
	second, _ := session.AddFromTemplate(ctx, sections.TypeGallery, "gallery-grid")

	if _, err := session.BeginEdit(first.ID); err != nil {
		t.Fatalf("begin edit: %v", err)
	}
	if err := session.UpdateWorkingProperty("columns", 4); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := session.CommitEdit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	for _, section := range session.Sections() {
		if section.ID == second.ID {
			if got := section.Content["columns"]; got != 2 && got != float64(2) {
				t.Fatalf("sibling section content mutated: %v", got)
			}
		}
	}
}

func TestAddFromTemplateErrors(t *testing.T) {
	st := seededStore()
	session := newSession(t, st)
	ctx := context.Background()

	if _, err := session.AddFromTemplate(ctx, "sidebar", "whatever"); !errors.Is(err, ErrSectionTypeInvalid) {
		t.Fatalf("expected ErrSectionTypeInvalid, got %v", err)
	}
	if _, err := session.AddFromTemplate(ctx, sections.TypeHero, "nope"); !errors.Is(err, ErrTemplateUnknown) {
		t.Fatalf("expected ErrTemplateUnknown, got %v", err)
	}
	if st.contentSaves != 0 {
		t.Fatalf("failed adds must not save, got %d saves", st.contentSaves)
	}
}

func TestAddWithoutTemplateSeedsMinimalBag(t *testing.T) {
	st := seededStore()
	session := newSession(t, st)

	added, err := session.AddFromTemplate(context.Background(), sections.TypeGallery, "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.Content["layout"] != "grid" {
		t.Fatalf("minimal gallery bag = %+v", added.Content)
	}
}

func TestEditIsolationUntilCommit(t *testing.T) {
	st := seededStore()
	session := newSession(t, st)
	target := st.doc.Sections[0].ID

	working, err := session.BeginEdit(target)
	if err != nil {
		t.Fatalf("begin edit: %v", err)
	}
	if working["title"] != "Hero" {
		t.Fatalf("working copy = %+v", working)
	}

	if err := session.UpdateWorkingProperty("title", "Changed"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := session.UpdateWorkingProperty("backgroundColor", "#112233"); err != nil {
		t.Fatalf("update: %v", err)
	}

	// Committed state is untouched while the edit is open.
	if session.Sections()[0].Content["title"] != "Hero" {
		t.Fatal("working edit leaked into committed section")
	}

	session.DiscardEdit()
	if _, open := session.ActiveEdit(); open {
		t.Fatal("edit still open after discard")
	}
	committed := session.Sections()[0].Content
	if committed["title"] != "Hero" {
		t.Fatalf("discard changed committed content: %+v", committed)
	}
	if _, present := committed["backgroundColor"]; present {
		t.Fatal("discarded property reached committed content")
	}
	if st.pageSaves != 0 {
		t.Fatalf("discard must not save, got %d page saves", st.pageSaves)
	}
}

func TestCommitReplacesContentWholesale(t *testing.T) {
	st := seededStore()
	session := newSession(t, st)
	ctx := context.Background()
	target := st.doc.Sections[0].ID

	if _, err := session.BeginEdit(target); err != nil {
		t.Fatalf("begin edit: %v", err)
	}
	if err := session.RemoveWorkingProperty("title"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := session.UpdateWorkingProperty("subtitle", "Only this"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := session.CommitEdit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	content := session.Sections()[0].Content
	if _, present := content["title"]; present {
		t.Fatal("removed property survived commit; replacement must be wholesale")
	}
	if content["subtitle"] != "Only this" {
		t.Fatalf("content after commit = %+v", content)
	}

	if st.pageSaves != 1 {
		t.Fatalf("expected 1 explicit save, got %d", st.pageSaves)
	}
	if _, open := session.ActiveEdit(); open {
		t.Fatal("edit should close after commit")
	}
	// Explicit saves re-fetch for consistency: one fetch on load, one after
	// the save.
	if st.fetches != 2 {
		t.Fatalf("fetches = %d, want 2", st.fetches)
	}
}

func TestCommitFailureRetainsLocalChanges(t *testing.T) {
	st := seededStore()
	session := newSession(t, st)
	ctx := context.Background()
	target := st.doc.Sections[0].ID

	if _, err := session.BeginEdit(target); err != nil {
		t.Fatalf("begin edit: %v", err)
	}
	if err := session.UpdateWorkingProperty("title", "Local"); err != nil {
		t.Fatalf("update: %v", err)
	}

	st.savePageErr = errors.New("backend rejected")
	if err := session.CommitEdit(ctx); err == nil {
		t.Fatal("expected commit to surface the save failure")
	}

	if session.Sections()[0].Content["title"] != "Local" {
		t.Fatal("local commit lost after failed save")
	}
	if session.Notice() == "" {
		t.Fatal("expected operator notice after failed save")
	}

	// Retry succeeds once the backend recovers.
	st.savePageErr = nil
	if err := session.Save(ctx); err != nil {
		t.Fatalf("retry save: %v", err)
	}
	if st.doc.Sections[0].Content["title"] != "Local" {
		t.Fatal("retried save did not persist local changes")
	}
}

func TestCommitWithoutEdit(t *testing.T) {
	st := seededStore()
	session := newSession(t, st)
	if err := session.CommitEdit(context.Background()); !errors.Is(err, ErrNoActiveEdit) {
		t.Fatalf("expected ErrNoActiveEdit, got %v", err)
	}
}

func TestDeleteSectionReindexes(t *testing.T) {
	st := seededStore()
	session := newSession(t, st)
	ctx := context.Background()
	first := st.doc.Sections[0].ID
	second := st.doc.Sections[1].ID

	if err := session.DeleteSection(ctx, first); err != nil {
		t.Fatalf("delete: %v", err)
	}

	list := session.Sections()
	if len(list) != 1 || list[0].ID != second || list[0].Order != 0 {
		t.Fatalf("sections after delete = %+v", list)
	}
	if st.contentSaves != 1 {
		t.Fatalf("expected silent save after delete, got %d", st.contentSaves)
	}

	if err := session.DeleteSection(ctx, first); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}

func TestDeleteSectionDiscardsItsEdit(t *testing.T) {
	st := seededStore()
	session := newSession(t, st)
	ctx := context.Background()
	target := st.doc.Sections[0].ID

	if _, err := session.BeginEdit(target); err != nil {
		t.Fatalf("begin edit: %v", err)
	}
	if err := session.DeleteSection(ctx, target); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, open := session.ActiveEdit(); open {
		t.Fatal("edit should be discarded when its section is deleted")
	}
}

func TestMoveSectionSwapsNeighbours(t *testing.T) {
	st := seededStore()
	session := newSession(t, st)
	ctx := context.Background()
	first := st.doc.Sections[0].ID
	second := st.doc.Sections[1].ID

	if err := session.MoveSection(ctx, second, MoveUp); err != nil {
		t.Fatalf("move up: %v", err)
	}

	list := session.Sections()
	if list[0].ID != second || list[1].ID != first {
		t.Fatalf("sections after move = %+v", list)
	}
	if list[0].Order != 0 || list[1].Order != 1 {
		t.Fatalf("orders after move = %d, %d", list[0].Order, list[1].Order)
	}
	if st.contentSaves != 1 {
		t.Fatalf("expected silent save after move, got %d", st.contentSaves)
	}
}

func TestMoveSectionBoundariesAreNoOps(t *testing.T) {
	st := seededStore()
	session := newSession(t, st)
	ctx := context.Background()
	first := st.doc.Sections[0].ID
	last := st.doc.Sections[1].ID

	if err := session.MoveSection(ctx, first, MoveUp); err != nil {
		t.Fatalf("move first up: %v", err)
	}
	if err := session.MoveSection(ctx, last, MoveDown); err != nil {
		t.Fatalf("move last down: %v", err)
	}

	if st.contentSaves != 0 {
		t.Fatalf("boundary moves must not save, got %d", st.contentSaves)
	}
	if session.Revision() != 0 {
		t.Fatalf("boundary moves must not bump revision, got %d", session.Revision())
	}

	if err := session.MoveSection(ctx, first, "sideways"); !errors.Is(err, ErrDirectionInvalid) {
		t.Fatalf("expected ErrDirectionInvalid, got %v", err)
	}
}

func TestSilentSaveFailureSurfacesNotice(t *testing.T) {
	st := seededStore()
	session := newSession(t, st)
	ctx := context.Background()

	st.saveContentErr = errors.New("backend down")
	if _, err := session.AddFromTemplate(ctx, sections.TypeParagraph, "paragraph-body"); err != nil {
		t.Fatalf("add should succeed locally: %v", err)
	}

	if len(session.Sections()) != 3 {
		t.Fatal("local list should keep the new section")
	}
	notice := session.Notice()
	if notice == "" {
		t.Fatal("expected notice after silent save failure")
	}
	if session.Notice() != "" {
		t.Fatal("notice should clear after being read")
	}
}

func TestSaveRefreshesFromBackend(t *testing.T) {
	st := seededStore()
	session := newSession(t, st)
	ctx := context.Background()

	if err := session.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	// The backend copy saved by the stub round-trips through the re-fetch.
	if st.lastPage == nil || st.lastPage.Fields["title"] != "Landing" {
		t.Fatalf("saved page = %+v", st.lastPage)
	}
	doc := session.Document()
	if doc.Fields["title"] != "Landing" {
		t.Fatalf("document after refresh = %+v", doc.Fields)
	}
}

func TestOperatorIsExplicit(t *testing.T) {
	st := seededStore()
	operator := Operator{ID: uuid.New(), Role: "editor"}

	session, err := NewSession(st, templates.Builtin(), st.doc.ID, WithOperator(operator))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if got := session.Operator(); got != operator {
		t.Fatalf("operator = %+v, want %+v", got, operator)
	}

	// Without the option the session simply has no identity attached.
	plain, err := NewSession(st, templates.Builtin(), st.doc.ID)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if plain.Operator() != (Operator{}) {
		t.Fatalf("expected zero operator, got %+v", plain.Operator())
	}
}

func TestOperationsRequireLoadedDocument(t *testing.T) {
	st := seededStore()
	session, err := NewSession(st, templates.Builtin(), st.doc.ID)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	ctx := context.Background()

	if _, err := session.AddFromTemplate(ctx, sections.TypeHero, ""); !errors.Is(err, ErrDocumentNotLoaded) {
		t.Fatalf("expected ErrDocumentNotLoaded, got %v", err)
	}
	if err := session.Save(ctx); !errors.Is(err, ErrDocumentNotLoaded) {
		t.Fatalf("expected ErrDocumentNotLoaded, got %v", err)
	}
	if err := session.DeleteSection(ctx, uuid.New()); !errors.Is(err, ErrDocumentNotLoaded) {
		t.Fatalf("expected ErrDocumentNotLoaded, got %v", err)
	}
}

// blockingStore stalls every save until the caller's context expires.
type blockingStore struct {
	doc *sections.Document
}

func (s *blockingStore) FetchPage(_ context.Context, _ uuid.UUID) (*sections.Document, error) {
	return s.doc.Clone(), nil
}

func (s *blockingStore) SaveContent(ctx context.Context, _ uuid.UUID, _ []*sections.Section) error {
	<-ctx.Done()
	return ctx.Err()
}

func (s *blockingStore) SavePage(ctx context.Context, _ *sections.Document) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestWithSaveTimeoutBoundsSaves(t *testing.T) {
	ctx := context.Background()
	pageID := uuid.New()
	st := &blockingStore{doc: &sections.Document{ID: pageID}}

	session, err := NewSession(st, templates.Builtin(), pageID, WithSaveTimeout(10*time.Millisecond))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, err := session.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := session.Save(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
