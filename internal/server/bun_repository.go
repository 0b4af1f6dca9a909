package server

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PageNotFoundError indicates a page row that does not exist.
type PageNotFoundError struct {
	Key string
}

func (e *PageNotFoundError) Error() string {
	return fmt.Sprintf("page not found: %s", e.Key)
}

// BunPageRepository persists page rows through go-repository-bun, optionally
// wrapped with a read-through cache.
type BunPageRepository struct {
	db   *bun.DB
	repo repository.Repository[*PageRecord]
}

func NewBunPageRepository(db *bun.DB) *BunPageRepository {
	return NewBunPageRepositoryWithCache(db, nil, nil)
}

func NewBunPageRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPageRepository {
	base := NewPageRecordRepository(db)
	return &BunPageRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

func (r *BunPageRepository) Create(ctx context.Context, record *PageRecord) (*PageRecord, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunPageRepository) GetByID(ctx context.Context, id uuid.UUID) (*PageRecord, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return result, nil
}

func (r *BunPageRepository) GetBySlug(ctx context.Context, slug string) (*PageRecord, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.slug = ?", slug)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, slug)
	}
	if len(records) == 0 {
		return nil, &PageNotFoundError{Key: slug}
	}
	return records[0], nil
}

// UpdateContent replaces only the content column: the backend side of the
// silent partial save.
func (r *BunPageRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*PageRecord, error) {
	record, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	record.Content = content
	record.UpdatedAt = time.Now().UTC()

	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(id.String()),
		repository.UpdateColumns("content", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return updated, nil
}

// Replace overwrites the full page row: the backend side of the explicit save.
func (r *BunPageRepository) Replace(ctx context.Context, record *PageRecord) (*PageRecord, error) {
	record.UpdatedAt = time.Now().UTC()

	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns("slug", "title", "status", "content", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, record.ID.String())
	}
	return updated, nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &PageNotFoundError{Key: key}
	}
	return fmt.Errorf("page repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
