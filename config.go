package giac

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config controls how the native library is located and loaded.
type Config struct {
	// LibraryPath overrides the platform default soname of the GIAC C
	// shim. An empty value lets the dynamic loader search as usual.
	LibraryPath string `env:"GIAC_LIBRARY_PATH"`

	// DisableNative forces degraded mode: no shim is loaded, the command
	// registry stays empty and every native call fails with a resource
	// error. Used by tooling and CI hosts without the library installed.
	DisableNative bool `env:"GIAC_DISABLE_NATIVE"`
}

// ConfigFromEnv loads configuration from environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
