package builder

import "errors"

var (
	ErrStoreRequired      = errors.New("builder: document store required")
	ErrCatalogRequired    = errors.New("builder: template catalog required")
	ErrPageRequired       = errors.New("builder: page id required")
	ErrDocumentNotLoaded  = errors.New("builder: document not loaded")
	ErrSectionTypeInvalid = errors.New("builder: unknown section type")
	ErrTemplateUnknown    = errors.New("builder: template not found")
	ErrSectionNotFound    = errors.New("builder: section not found")
	ErrNoActiveEdit       = errors.New("builder: no active edit")
	ErrDirectionInvalid   = errors.New("builder: invalid move direction")
)
