// Package qconfig loads qalg's runtime configuration from TOML, the
// format the teacher's own config-adjacent tooling favors in this corpus.
package qconfig

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the knobs cmd/qalg exposes. It is deliberately small: the
// library itself is configured in Go (Executor{Logger: ...}), not
// through a file; this only covers the CLI's own needs.
type Config struct {
	// LogLevel is one of logrus's level names ("debug", "info", "warn",
	// "error"); empty means "info".
	LogLevel string `toml:"log_level"`

	// QueryTimeoutSeconds bounds how long a single Execute call may run
	// before its context is canceled; 0 means no timeout.
	QueryTimeoutSeconds int `toml:"query_timeout_seconds"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{LogLevel: "info"}
}

// Load reads and parses a TOML config file at path, starting from
// Default() so an omitted field keeps its default rather than zeroing
// out.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
