package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-composer/sections"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	id := uuid.New()

	m.Put(&sections.Document{
		ID: id,
		Sections: []*sections.Section{
			{ID: uuid.New(), Type: sections.TypeHero, Content: sections.PropertyBag{"title": "a"}},
		},
		Fields: map[string]any{"title": "Page"},
	})

	doc, err := m.FetchPage(ctx, id)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(doc.Sections) != 1 || doc.Sections[0].Order != 0 {
		t.Fatalf("sections = %+v", doc.Sections)
	}

	// Mutating the fetched copy must not leak back into the store.
	doc.Sections[0].Content["title"] = "mutated"
	again, _ := m.FetchPage(ctx, id)
	if again.Sections[0].Content["title"] != "a" {
		t.Fatal("fetched document aliases stored state")
	}
}

func TestMemoryStoreFetchNormalizes(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	id := uuid.New()
	shared := uuid.New()

	m.Put(&sections.Document{
		ID: id,
		Sections: []*sections.Section{
			{ID: shared, Type: sections.TypeHero, Order: 4},
			{ID: shared, Type: sections.TypeParagraph, Order: 4},
		},
	})

	doc, err := m.FetchPage(ctx, id)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if doc.Sections[0].ID == doc.Sections[1].ID {
		t.Fatal("duplicate section IDs survived fetch")
	}
	if doc.Sections[0].Order != 0 || doc.Sections[1].Order != 1 {
		t.Fatalf("orders = %d, %d", doc.Sections[0].Order, doc.Sections[1].Order)
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	var notFound *NotFoundError
	if _, err := m.FetchPage(ctx, uuid.New()); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if err := m.SaveContent(ctx, uuid.New(), nil); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestMemoryStoreSaveContentReplacesSections(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	id := uuid.New()
	m.Put(&sections.Document{ID: id, Fields: map[string]any{"title": "Page"}})

	list := []*sections.Section{
		{ID: uuid.New(), Type: sections.TypeHeading, Content: sections.PropertyBag{"text": "hi"}, Order: 0},
	}
	if err := m.SaveContent(ctx, id, list); err != nil {
		t.Fatalf("save content: %v", err)
	}

	doc, _ := m.FetchPage(ctx, id)
	if len(doc.Sections) != 1 || doc.Sections[0].Content["text"] != "hi" {
		t.Fatalf("sections = %+v", doc.Sections)
	}
	if doc.Fields["title"] != "Page" {
		t.Fatal("partial save touched page fields")
	}
}

func TestMemoryStoreSavePageUpserts(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	id := uuid.New()

	doc := &sections.Document{ID: id, Fields: map[string]any{"title": "New"}}
	if err := m.SavePage(ctx, doc); err != nil {
		t.Fatalf("save page: %v", err)
	}

	got, err := m.FetchPage(ctx, id)
	if err != nil {
		t.Fatalf("fetch after save: %v", err)
	}
	if got.Fields["title"] != "New" {
		t.Fatalf("fields = %+v", got.Fields)
	}
}
