package types

import (
	"log/slog"
	"strings"
)

// Config holds the parameters for opening a store.
type Config struct {
	// Path is the SQLite database file. Required.
	Path string `json:"path" yaml:"path"`

	// StrictSearch makes single-ingredient searches match the requested
	// ingredient instead of the legacy fixed "cacao" filter.
	StrictSearch bool `json:"strict_search" yaml:"strict_search"`

	// Logger for operational logging. Uses slog.Default() if nil.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return ErrPathRequired
	}
	return nil
}

// WithDefaults returns a copy of c with default values applied.
func (c Config) WithDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
