// Package server hosts the reference content API the composer talks to:
// a small chi router over a bun/SQLite page table. Section content is stored
// as a JSON-encoded TEXT column, which is also the legacy wire shape the
// store tolerates on fetch.
package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PageRecord is the persisted page row.
type PageRecord struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Slug      string    `bun:"slug,notnull,unique" json:"slug"`
	Title     string    `bun:"title" json:"title"`
	Status    string    `bun:"status,notnull,default:'draft'" json:"status"`
	Content   string    `bun:"content,type:text" json:"content"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
