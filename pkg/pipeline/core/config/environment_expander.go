package config

import (
	"os"
)

// EnvironmentExpander expands environment variable placeholders within an
// input byte slice, e.g. ${VAR} inside an embedded YAML file.
type EnvironmentExpander interface {
	// Expand replaces ${VAR} or $VAR placeholders with the value of the
	// environment variable VAR and returns the expanded bytes.
	Expand(input []byte) ([]byte, error)
}

// OsEnvironmentExpander implements EnvironmentExpander with os.ExpandEnv.
type OsEnvironmentExpander struct{}

// NewOsEnvironmentExpander creates a new OsEnvironmentExpander.
func NewOsEnvironmentExpander() *OsEnvironmentExpander {
	return &OsEnvironmentExpander{}
}

// Expand replaces placeholders with environment variable values. Unset
// variables expand to the empty string; the error is always nil.
func (e *OsEnvironmentExpander) Expand(input []byte) ([]byte, error) {
	return []byte(os.ExpandEnv(string(input))), nil
}
