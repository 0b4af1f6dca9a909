// Package composer is the page composition engine: a template catalog, a
// per-page composition session, a presence-driven property editor, and a
// document store that persists pages against a backend content API.
package composer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-composer/builder"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/logging/gologger"
	"github.com/goliatone/go-composer/pkg/interfaces"
	"github.com/goliatone/go-composer/store"
	"github.com/goliatone/go-composer/templates"
)

// Session exports the composition session contract.
type Session = builder.Session

// Operator exports the explicit operator identity passed into sessions.
type Operator = builder.Operator

// Store exports the document store contract.
type Store = store.Store

// Catalog exports the template catalog.
type Catalog = templates.Catalog

// Template exports the catalog entry type.
type Template = templates.Template

// Module is the top level composer runtime façade. It assembles the catalog,
// the store, and the logging provider once, then opens per-page sessions on
// demand.
type Module struct {
	cfg      Config
	store    store.Store
	catalog  *templates.Catalog
	provider interfaces.LoggerProvider
}

// Option overrides a Module collaborator during construction.
type Option func(*Module)

// WithStore injects a custom document store, bypassing the HTTP store that
// the API configuration would otherwise build.
func WithStore(st store.Store) Option {
	return func(m *Module) {
		m.store = st
	}
}

// WithCatalog injects a pre-assembled template catalog.
func WithCatalog(catalog *templates.Catalog) Option {
	return func(m *Module) {
		m.catalog = catalog
	}
}

// WithLoggerProvider injects a logging provider, bypassing the configured one.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.provider = provider
	}
}

// New constructs a composer module from configuration plus optional overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.provider == nil && cfg.Features.Logger {
		provider, err := buildProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		m.provider = provider
	}

	if m.catalog == nil {
		catalog, err := buildCatalog(cfg.Catalog, cfg.Features)
		if err != nil {
			return nil, err
		}
		m.catalog = catalog
	}

	if m.store == nil {
		if strings.TrimSpace(cfg.API.BaseURL) == "" {
			return nil, ErrAPIBaseURLRequired
		}
		storeOpts := []store.HTTPOption{
			store.WithLogger(logging.StoreLogger(m.provider)),
		}
		if cfg.API.Timeout > 0 {
			storeOpts = append(storeOpts, store.WithTimeout(cfg.API.Timeout))
		}
		m.store = store.NewHTTPStore(cfg.API.BaseURL, storeOpts...)
	}

	return m, nil
}

// Catalog returns the assembled template catalog.
func (m *Module) Catalog() *templates.Catalog {
	return m.catalog
}

// Store returns the configured document store.
func (m *Module) Store() store.Store {
	return m.store
}

// LoggerProvider exposes the logging provider for host integrations.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.provider
}

// OpenPage starts a composition session for the given page.
func (m *Module) OpenPage(pageID uuid.UUID, opts ...builder.Option) (*builder.Session, error) {
	sessionOpts := []builder.Option{
		builder.WithLogger(logging.BuilderLogger(m.provider)),
	}
	if m.cfg.Features.Commands && m.cfg.Commands.Enabled && m.cfg.Commands.Timeout > 0 {
		sessionOpts = append(sessionOpts, builder.WithSaveTimeout(m.cfg.Commands.Timeout))
	}
	sessionOpts = append(sessionOpts, opts...)
	return builder.NewSession(m.store, m.catalog, pageID, sessionOpts...)
}

func buildProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "noop":
		return nil, nil
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Provider)
	}
}

func buildCatalog(cfg CatalogConfig, features Features) (*templates.Catalog, error) {
	var catalog *templates.Catalog
	if cfg.Builtin {
		catalog = templates.Builtin()
	} else {
		catalog = templates.NewCatalog()
	}
	if features.FileTemplates {
		if err := templates.LoadDir(catalog, cfg.Dir); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}
