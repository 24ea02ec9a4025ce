// Package hookio is the pre-prompt hook surface: it reads the user query
// from the environment or stdin, routes it, and writes the assembled
// skill context to stdout. An empty query means emit nothing and exit
// clean.
package hookio

import (
	"io"
	"os"
	"strings"
)

// DefaultEnvVar is the environment variable consulted before stdin.
const DefaultEnvVar = "PROMPT"

// QuerySource reads the user query: the environment variable first (if
// set, even to whitespace), then stdin.
type QuerySource struct {
	envVar        string
	stdin         io.Reader
	stdinFallback bool
}

// SourceOption configures a QuerySource.
type SourceOption func(*QuerySource)

// WithEnvVar overrides the environment variable name.
func WithEnvVar(name string) SourceOption {
	return func(s *QuerySource) { s.envVar = name }
}

// WithStdin overrides the stdin reader.
func WithStdin(r io.Reader) SourceOption {
	return func(s *QuerySource) { s.stdin = r }
}

// WithoutStdinFallback disables the stdin read when the env var is unset.
func WithoutStdinFallback() SourceOption {
	return func(s *QuerySource) { s.stdinFallback = false }
}

// NewQuerySource creates a source reading PROMPT then stdin.
func NewQuerySource(opts ...SourceOption) *QuerySource {
	s := &QuerySource{
		envVar:        DefaultEnvVar,
		stdin:         os.Stdin,
		stdinFallback: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Query returns the trimmed user query, or the empty string when none is
// available.
func (s *QuerySource) Query() string {
	if value, ok := os.LookupEnv(s.envVar); ok {
		return strings.TrimSpace(value)
	}

	if !s.stdinFallback {
		return ""
	}

	data, err := io.ReadAll(s.stdin)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
