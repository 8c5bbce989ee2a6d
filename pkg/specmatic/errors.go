package specmatic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ValidationError reports a document that does not match its shape.
type ValidationError struct {
	Document string // e.g. "specmatic coverage report"
	Path     string // dotted path to the offending field, empty for the root
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid %s: %s", e.Document, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s: %s", e.Document, e.Path, e.Reason)
}

// validationError converts a schema visit failure into a ValidationError
// rooted at prefix.
func validationError(kind Kind, prefix string, err error) *ValidationError {
	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		return &ValidationError{
			Document: kind.String(),
			Path:     joinPath(prefix, strings.Join(se.JSONPointer(), ".")),
			Reason:   se.Reason,
		}
	}
	return &ValidationError{Document: kind.String(), Path: prefix, Reason: err.Error()}
}

func joinPath(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ".")
}
