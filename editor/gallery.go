package editor

import (
	"github.com/goliatone/go-composer/sections"
)

// GalleryEntry is one item managed by the gallery sub-list editor. URL is the
// durable address handed back by the external asset store; the editor never
// inspects upload mechanics.
type GalleryEntry struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GalleryEntries reads the images list from a working bag. Malformed rows are
// dropped rather than surfaced.
func GalleryEntries(bag sections.PropertyBag) []GalleryEntry {
	raw, _ := bag["images"].([]any)
	entries := make([]GalleryEntry, 0, len(raw))
	for _, item := range raw {
		row, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entry := GalleryEntry{}
		entry.URL, _ = row["url"].(string)
		entry.Title, _ = row["title"].(string)
		entry.Description, _ = row["description"].(string)
		entries = append(entries, entry)
	}
	return entries
}

// AppendGalleryEntry adds an entry to the working bag's images list.
func AppendGalleryEntry(bag sections.PropertyBag, entry GalleryEntry) {
	raw, _ := bag["images"].([]any)
	bag["images"] = append(raw, map[string]any{
		"url":         entry.URL,
		"title":       entry.Title,
		"description": entry.Description,
	})
}

// RemoveGalleryEntry removes the entry at index; out-of-range indexes are a
// no-op.
func RemoveGalleryEntry(bag sections.PropertyBag, index int) {
	raw, _ := bag["images"].([]any)
	if index < 0 || index >= len(raw) {
		return
	}
	bag["images"] = append(raw[:index:index], raw[index+1:]...)
}
