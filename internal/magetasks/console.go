package magetasks

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/dkoosis/insights-build-reporter/pkg/console"
)

// out receives all task output.
var out io.Writer = os.Stdout

func logger() *console.Logger {
	return console.New(out)
}

// PrintH1Header prints a top-level header with decoration.
func PrintH1Header(title string) {
	width := 80
	bold := logger().Theme().Bold
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", width))
	padding := max((width-len(title))/2, 0)
	fmt.Fprintf(out, "%s%s\n", strings.Repeat(" ", padding), bold.Render(title))
	fmt.Fprintln(out, strings.Repeat("=", width))
	fmt.Fprintln(out)
}

// PrintH2Header prints a section header.
func PrintH2Header(title string) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "=== %s ===\n", title)
	fmt.Fprintln(out)
}

// PrintSuccess prints a success message.
func PrintSuccess(msg string) {
	logger().Success("%s", msg)
}

// PrintWarning prints a warning message.
func PrintWarning(msg string) {
	logger().Info("warning: %s", msg)
}

// PrintError prints an error message.
func PrintError(msg string) {
	logger().Error("%s", msg)
}

// PrintInfo prints an info message.
func PrintInfo(msg string) {
	logger().Info("%s", msg)
}

// Run executes an external command under a labeled step, streaming its
// output.
func Run(label, name string, args ...string) error {
	PrintInfo(label)
	cmd := exec.Command(name, args...)
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Run(); err != nil {
		if !IsCommandNotFound(err) {
			PrintError(fmt.Sprintf("%s failed", label))
		}
		return err
	}
	PrintSuccess(label)
	return nil
}
