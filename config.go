package composer

import "github.com/goliatone/go-composer/internal/runtimeconfig"

var (
	ErrAPIBaseURLRequired      = runtimeconfig.ErrAPIBaseURLRequired
	ErrAPITimeoutInvalid       = runtimeconfig.ErrAPITimeoutInvalid
	ErrCatalogDirRequired      = runtimeconfig.ErrCatalogDirRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrCommandTimeoutInvalid   = runtimeconfig.ErrCommandTimeoutInvalid
	ErrModuleDisabled          = runtimeconfig.ErrModuleDisabled
)

type (
	Config         = runtimeconfig.Config
	APIConfig      = runtimeconfig.APIConfig
	CatalogConfig  = runtimeconfig.CatalogConfig
	CommandsConfig = runtimeconfig.CommandsConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	Features       = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// Validate checks configuration invariants before module assembly.
func Validate(cfg Config) error {
	return runtimeconfig.Validate(cfg)
}
