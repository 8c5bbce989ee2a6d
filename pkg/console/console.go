// Package console prints step-by-step progress for the reporter.
//
// Every line is an indented icon followed by the message:
//
//	  • Loaded specmatic coverage report from build/reports/specmatic/coverage_report.json
//	  ✓ Successfully posted build report to Specmatic Insights
//	  × Error reading specmatic stub usage report: stub.json: no such file or directory
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/dkoosis/insights-build-reporter/internal/env"
)

// isTerminal is swapped in tests.
var isTerminal = term.IsTerminal

// Logger writes styled step lines to a writer.
type Logger struct {
	w     io.Writer
	env   env.Provider
	theme Theme
	debug bool
}

// Option configures a Logger.
type Option func(*Logger)

// WithTheme selects a theme by name. Colors are still dropped when the writer
// is not a terminal or NO_COLOR is set.
func WithTheme(name string) Option {
	return func(l *Logger) { l.theme = ThemeByName(name) }
}

// WithDebug enables Debug lines.
func WithDebug(on bool) Option {
	return func(l *Logger) { l.debug = on }
}

// WithEnv sets where NO_COLOR is looked up. The process environment is used
// by default.
func WithEnv(p env.Provider) Option {
	return func(l *Logger) {
		if p != nil {
			l.env = p
		}
	}
}

// New returns a Logger writing to w.
func New(w io.Writer, opts ...Option) *Logger {
	l := &Logger{w: w, env: env.OS{}, theme: DefaultTheme()}
	for _, opt := range opts {
		opt(l)
	}
	if !colorEnabled(w, l.env) {
		l.theme = MonoTheme()
	}
	return l
}

// colorEnabled reports whether w is a terminal and NO_COLOR is unset.
func colorEnabled(w io.Writer, p env.Provider) bool {
	if env.Set(p, "NO_COLOR") {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(int(f.Fd()))
}

// Theme returns the active theme.
func (l *Logger) Theme() Theme { return l.theme }

// DebugEnabled reports whether Debug lines are printed.
func (l *Logger) DebugEnabled() bool { return l.debug }

// Info prints a progress step.
func (l *Logger) Info(format string, args ...any) {
	l.step(l.theme.Info, l.theme.Icons.Info, format, args...)
}

// Success prints a completed step.
func (l *Logger) Success(format string, args ...any) {
	l.step(l.theme.Success, l.theme.Icons.Success, format, args...)
}

// Error prints a failed step.
func (l *Logger) Error(format string, args ...any) {
	l.step(l.theme.Error, l.theme.Icons.Error, format, args...)
}

// Debug prints a diagnostic step when debug output is on.
func (l *Logger) Debug(format string, args ...any) {
	if !l.debug {
		return
	}
	l.step(l.theme.Muted, l.theme.Icons.Debug, format, args...)
}

func (l *Logger) step(style lipgloss.Style, icon, format string, args ...any) {
	fmt.Fprintf(l.w, "  %s %s\n", style.Render(icon), fmt.Sprintf(format, args...))
}
