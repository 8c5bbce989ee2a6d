package magetasks

import (
	"strings"
	"testing"
)

func TestGolangciArgs(t *testing.T) {
	got := strings.Join(golangciArgs("--fix"), " ")
	want := "run --fix --disable=" + golangciDisabled + " --timeout=5m ./..."
	if got != want {
		t.Errorf("golangciArgs(--fix) = %q, want %q", got, want)
	}
	if got := golangciArgs(); got[0] != "run" || got[len(got)-1] != "./..." {
		t.Errorf("golangciArgs() = %v", got)
	}
}

func TestOptionalTool_MissingBinaryWarns(t *testing.T) {
	buf := captureOutput(t)
	tool := optionalTool{"Fake Lint", "definitely-not-a-real-linter-xyz", "example.com/fake@latest"}

	err := tool.run(tool.label, "./...")
	if !IsCommandNotFound(err) {
		t.Fatalf("run() error = %v, want command not found", err)
	}
	if !strings.Contains(buf.String(), "warning: Fake Lint not found (install: go install example.com/fake@latest)") {
		t.Errorf("missing install hint, got: %s", buf.String())
	}
}
