package cli

import (
	"errors"

	"github.com/dkoosis/insights-build-reporter/internal/config"
	"github.com/dkoosis/insights-build-reporter/internal/env"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// usageError wraps command-line parsing failures.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// exitCode maps an error from the pipeline to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var (
		cerr    *config.ConfigurationError
		missing *env.MissingError
		uerr    *usageError
	)
	if errors.As(err, &cerr) || errors.As(err, &missing) || errors.As(err, &uerr) {
		return ExitUsage
	}
	return ExitError
}
