package catalog

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// NotFoundError indicates the catalog file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("catalog file not found: %s", e.Path)
}

// EmptyError indicates the catalog source parsed to an empty document.
type EmptyError struct {
	Path string
}

func (e *EmptyError) Error() string {
	if e.Path == "" {
		return "catalog is empty"
	}
	return fmt.Sprintf("catalog is empty: %s", e.Path)
}

// ParseError indicates invalid YAML syntax. Line is the 1-based line hint
// from the parser, or 0 when the parser did not supply one.
type ParseError struct {
	Message string
	Line    int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid catalog syntax (line %d): %s", e.Line, e.Message)
	}
	return fmt.Sprintf("invalid catalog syntax: %s", e.Message)
}

// MissingSectionError indicates a required top-level section is absent.
// Only the skills section is required.
type MissingSectionError struct {
	Section string
}

func (e *MissingSectionError) Error() string {
	return fmt.Sprintf("catalog is missing required section %q", e.Section)
}

// ValidationError carries every unresolved reference found during
// validation. Validation never fails fast; the full offender list is
// always reported.
type ValidationError struct {
	Issues *multierror.Error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("catalog validation failed: %s", e.Issues.Error())
}

// Messages returns each validation issue as a plain string.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Issues.Errors))
	for _, err := range e.Issues.Errors {
		msgs = append(msgs, err.Error())
	}
	return msgs
}
