// Package store persists page documents against the backend content API.
// Two save modes exist on purpose: SaveContent is the silent partial update
// used after structural edits, SavePage is the explicit full update used when
// an operator confirms a save.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/goliatone/go-composer/sections"
)

var (
	ErrPageRequired    = errors.New("store: page id required")
	ErrRequestFailed   = errors.New("store: request failed")
	ErrResponseInvalid = errors.New("store: response invalid")
)

// Store describes page document persistence capabilities.
type Store interface {
	// FetchPage loads a page document. Implementations repair legacy or
	// malformed stored content (see sections.Normalize) before returning.
	FetchPage(ctx context.Context, id uuid.UUID) (*sections.Document, error)
	// SaveContent sends only the section list (partial update).
	SaveContent(ctx context.Context, id uuid.UUID, list []*sections.Section) error
	// SavePage sends the complete page representation.
	SavePage(ctx context.Context, doc *sections.Document) error
}

// NotFoundError indicates a missing backend resource.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("store: %s not found: %s", e.Resource, e.Key)
}
