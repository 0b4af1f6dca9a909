package editor

import (
	"strings"
	"testing"

	"github.com/goliatone/go-composer/sections"
)

func TestGalleryEntriesTolerantDecoding(t *testing.T) {
	bag := sections.PropertyBag{
		"images": []any{
			map[string]any{"url": "/a.png", "title": "A", "description": "first"},
			"not a map",
			map[string]any{"url": "/b.png"},
		},
	}

	entries := GalleryEntries(bag)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].URL != "/a.png" || entries[0].Description != "first" {
		t.Fatalf("first entry = %+v", entries[0])
	}
	if entries[1].Title != "" {
		t.Fatalf("missing title should decode empty, got %q", entries[1].Title)
	}
}

func TestGalleryEntriesMissingList(t *testing.T) {
	if entries := GalleryEntries(sections.PropertyBag{}); len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestAppendAndRemoveGalleryEntry(t *testing.T) {
	bag := sections.PropertyBag{}

	AppendGalleryEntry(bag, GalleryEntry{URL: "/one.png", Title: "One"})
	AppendGalleryEntry(bag, GalleryEntry{URL: "/two.png", Title: "Two"})

	if entries := GalleryEntries(bag); len(entries) != 2 {
		t.Fatalf("expected 2 entries after append, got %d", len(entries))
	}

	RemoveGalleryEntry(bag, 0)
	entries := GalleryEntries(bag)
	if len(entries) != 1 || entries[0].URL != "/two.png" {
		t.Fatalf("entries after remove = %+v", entries)
	}

	// Out-of-range removals are no-ops.
	RemoveGalleryEntry(bag, 5)
	RemoveGalleryEntry(bag, -1)
	if entries := GalleryEntries(bag); len(entries) != 1 {
		t.Fatalf("out-of-range remove changed the list: %+v", entries)
	}
}

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("# Heading\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<h1") {
		t.Fatalf("expected heading markup, got %q", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Fatalf("expected bold markup, got %q", html)
	}
}
