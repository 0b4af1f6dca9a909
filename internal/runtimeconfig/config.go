package runtimeconfig

import (
	"errors"
	"strings"
	"time"
)

var ErrAPIBaseURLRequired = errors.New("composer config: api base url is required when no store is injected")
var ErrAPITimeoutInvalid = errors.New("composer config: api timeout must be zero or positive")
var ErrCatalogDirRequired = errors.New("composer config: catalog directory is required when file templates are enabled")
var ErrLoggingProviderRequired = errors.New("composer config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("composer config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("composer config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("composer config: logging format is invalid")
var ErrCommandTimeoutInvalid = errors.New("composer config: command timeout must be zero or positive")
var ErrModuleDisabled = errors.New("composer config: module is disabled")

// Config aggregates feature flags and adapter bindings for the composer module.
// Fields intentionally use simple types so host applications can extend them.
type Config struct {
	Enabled  bool
	API      APIConfig
	Catalog  CatalogConfig
	Commands CommandsConfig
	Logging  LoggingConfig
	Features Features
}

// APIConfig captures the backend content API binding for the HTTP store.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CatalogConfig controls template catalog assembly.
type CatalogConfig struct {
	Builtin bool
	Dir     string
}

// CommandsConfig captures command-layer behaviour for save dispatch.
type CommandsConfig struct {
	Enabled bool
	Timeout time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	FileTemplates bool
	Commands      bool
	Logger        bool
}

// DefaultConfig returns the baseline configuration: builtin catalog enabled,
// command dispatch enabled, logging disabled.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		API: APIConfig{
			Timeout: 15 * time.Second,
		},
		Catalog: CatalogConfig{
			Builtin: true,
		},
		Commands: CommandsConfig{
			Enabled: true,
			Timeout: 30 * time.Second,
		},
		Features: Features{
			Commands: true,
		},
	}
}

// Validate checks cross-field invariants before the module wires services.
func Validate(cfg Config) error {
	if !cfg.Enabled {
		return ErrModuleDisabled
	}
	if cfg.API.Timeout < 0 {
		return ErrAPITimeoutInvalid
	}
	if cfg.Commands.Timeout < 0 {
		return ErrCommandTimeoutInvalid
	}
	if cfg.Features.FileTemplates && strings.TrimSpace(cfg.Catalog.Dir) == "" {
		return ErrCatalogDirRequired
	}
	if cfg.Features.Logger {
		provider := strings.ToLower(strings.TrimSpace(cfg.Logging.Provider))
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if provider != "gologger" && provider != "noop" {
			return ErrLoggingProviderUnknown
		}
		if !validLoggingLevel(cfg.Logging.Level) {
			return ErrLoggingLevelInvalid
		}
		if !validLoggingFormat(cfg.Logging.Format) {
			return ErrLoggingFormatInvalid
		}
	}
	return nil
}

func validLoggingLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func validLoggingFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json", "console", "pretty":
		return true
	default:
		return false
	}
}
