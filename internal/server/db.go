package server

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Open returns a bun handle over a SQLite database at the given DSN.
// Use "file::memory:?cache=shared" for an in-memory instance.
func Open(dsn string) (*bun.DB, error) {
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("server: open database: %w", err)
	}
	return bun.NewDB(sqlDB, sqlitedialect.New()), nil
}

// EnsureSchema creates the pages table when missing.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().
		Model((*PageRecord)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("server: create pages table: %w", err)
	}
	return nil
}
