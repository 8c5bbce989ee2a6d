// Package cli implements the insights-build-reporter command.
package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dkoosis/insights-build-reporter/internal/config"
	"github.com/dkoosis/insights-build-reporter/internal/env"
	"github.com/dkoosis/insights-build-reporter/internal/version"
)

// Deps are the process-level collaborators. Zero values use the real
// environment, http.DefaultClient, time.Now and the current directory.
type Deps struct {
	Env        env.Provider
	HTTPClient *http.Client
	Now        func() time.Time
	NewID      func() string
	WorkDir    string
}

func (d Deps) withDefaults() (Deps, error) {
	if d.Env == nil {
		d.Env = env.OS{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return d, fmt.Errorf("working directory: %w", err)
		}
		d.WorkDir = wd
	}
	return d, nil
}

// Run executes the command with args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, deps Deps) int {
	cmd, started := newRootCommand(deps, stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err != nil && !*started {
		// cobra rejected the command line before the pipeline ran
		err = &usageError{err: err}
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", version.Name, err)
	}
	return exitCode(err)
}

// NewRootCommand builds the cobra command tree.
func NewRootCommand(deps Deps, stdout, stderr io.Writer) *cobra.Command {
	cmd, _ := newRootCommand(deps, stdout, stderr)
	return cmd
}

// newRootCommand also reports whether the pipeline started, which separates
// usage errors from run failures.
func newRootCommand(deps Deps, stdout, stderr io.Writer) (*cobra.Command, *bool) {
	var flags config.Flags
	started := new(bool)

	cmd := &cobra.Command{
		Use:   version.Name,
		Short: "Validate Specmatic reports and publish a build report to Specmatic Insights",
		Long: `insights-build-reporter collects CI build metadata and the optional Specmatic
report fragments (API coverage, stub usage, central repository usage, test
data and the specmatic config), validates them, writes one normalized build
report and posts it to {host}/api/github-build-report.

Build identity comes from --org-id/--repo-name/... flags, a --build-metadata
file, or the GitHub Actions environment (enriched through the GitHub API when
GITHUB_TOKEN is set), in that order.`,
		Example: `  insights-build-reporter --specmatic-insights-host=https://insights.example.com
  insights-build-reporter --sih=https://insights.example.com --sc=build/reports/specmatic/coverage_report.json
  insights-build-reporter --sih=https://insights.example.com --scr=central_contract_repo_report.json --dry-run`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			*started = true
			markSet(cmd, &flags)
			d, err := deps.withDefaults()
			if err != nil {
				return err
			}
			flags.WorkDir = d.WorkDir
			return newRunner(d, stdout).run(cmd.Context(), flags)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	bindFlags(cmd, &flags)

	cmd.AddCommand(newVersionCommand(stdout))
	return cmd, started
}

func newVersionCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintln(stdout, version.Detail())
		},
	}
}
