package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-composer/internal/identity"
)

// SeedPage makes sure a demo page exists so a fresh database has something to
// compose against. IDs derive from the slug, so reseeding is idempotent.
func SeedPage(ctx context.Context, pages *BunPageRepository, slug, title string) (uuid.UUID, error) {
	id := identity.PageUUID(slug)

	_, err := pages.GetByID(ctx, id)
	if err == nil {
		return id, nil
	}
	var notFound *PageNotFoundError
	if !errors.As(err, &notFound) {
		return uuid.Nil, err
	}

	content, err := json.Marshal(seedSections())
	if err != nil {
		return uuid.Nil, fmt.Errorf("server: encode seed content: %w", err)
	}

	now := time.Now().UTC()
	_, err = pages.Create(ctx, &PageRecord{
		ID:        id,
		Slug:      slug,
		Title:     title,
		Status:    "draft",
		Content:   string(content),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func seedSections() []map[string]any {
	return []map[string]any{
		{
			"id":    uuid.NewString(),
			"type":  "hero",
			"order": 0,
			"content": map[string]any{
				"title":           "Welcome",
				"subtitle":        "Build pages from reusable sections",
				"backgroundColor": "#1a1a2e",
				"textColor":       "#ffffff",
			},
		},
		{
			"id":    uuid.NewString(),
			"type":  "paragraph",
			"order": 1,
			"content": map[string]any{
				"text":     "Pick a template, drop in a section, and edit its properties.",
				"fontSize": 16,
				"align":    "left",
			},
		},
	}
}
