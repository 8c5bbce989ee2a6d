package magetasks

import (
	"errors"
	"fmt"
)

// golangciDisabled lists linters that fight the project's style.
const golangciDisabled = "exhaustruct,varnamelen,ireturn,wrapcheck,nlreturn,gochecknoglobals,mnd,depguard,tagalign,tenv"

// optionalTool describes a linter that may not be installed.
type optionalTool struct {
	label   string
	command string
	install string
}

var (
	staticcheck = optionalTool{"Staticcheck", "staticcheck", "honnef.co/go/tools/cmd/staticcheck@latest"}
	golangci    = optionalTool{"Golangci-lint", "golangci-lint", "github.com/golangci/golangci-lint/cmd/golangci-lint@latest"}
)

// run executes the tool. A missing binary is reported as a warning and
// returned unwrapped so callers can test it with IsCommandNotFound.
func (t optionalTool) run(label string, args ...string) error {
	err := Run(label, t.command, args...)
	switch {
	case err == nil:
		return nil
	case IsCommandNotFound(err):
		PrintWarning(fmt.Sprintf("%s not found (install: go install %s)", t.label, t.install))
		return err
	default:
		return fmt.Errorf("%s failed: %w", t.command, err)
	}
}

// LintAll runs all linters. Optional linters that are not installed are
// skipped.
func LintAll() error {
	var errs []error
	for _, lint := range []func() error{LintFormat, LintVet, LintStaticcheck, LintGolangci} {
		if err := lint(); err != nil && !IsCommandNotFound(err) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	PrintSuccess("All linters passed")
	return nil
}

// LintFormat checks code formatting.
func LintFormat() error {
	return Run("Go Format", "go", "fmt", "./...")
}

// LintVet runs go vet.
func LintVet() error {
	return Run("Go Vet", "go", "vet", "./...")
}

// LintStaticcheck runs staticcheck.
func LintStaticcheck() error {
	return staticcheck.run(staticcheck.label, "./...")
}

// LintGolangci runs golangci-lint.
func LintGolangci() error {
	return golangci.run(golangci.label, golangciArgs()...)
}

// LintGolangciFix runs golangci-lint with auto-fixes.
func LintGolangciFix() error {
	return golangci.run(golangci.label+" Fix", golangciArgs("--fix")...)
}

func golangciArgs(extra ...string) []string {
	args := append([]string{"run"}, extra...)
	return append(args, "--disable="+golangciDisabled, "--timeout=5m", "./...")
}
