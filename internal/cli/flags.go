package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dkoosis/insights-build-reporter/internal/config"
)

// aliases maps the short multi-letter spellings onto canonical flag names.
var aliases = map[string]string{
	"sih": "specmatic-insights-host",
	"sc":  "specmatic-coverage",
	"ss":  "specmatic-stub-usage",
	"scr": "specmatic-central-repo-report",
	"std": "specmatic-test-data",
	"scf": "specmatic-config",
	"dr":  "dry-run",
	"nv":  "no-verify",
}

func normalizeAlias(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	return pflag.NormalizedName(name)
}

// bindFlags registers every reporter flag on cmd and stores values in f.
func bindFlags(cmd *cobra.Command, f *config.Flags) {
	fs := cmd.Flags()
	fs.SortFlags = false

	fs.StringVar(&f.InsightsHost, "specmatic-insights-host", "", "Specmatic Insights host (alias --sih)")
	fs.StringVar(&f.Paths.Coverage, "specmatic-coverage", "", "The path to the Specmatic coverage report (alias --sc)")
	fs.StringVar(&f.Paths.StubUsage, "specmatic-stub-usage", "", "The path to the Specmatic stub usage report (alias --ss)")
	fs.StringVar(&f.Paths.CentralRepo, "specmatic-central-repo-report", "", "The path to the Specmatic central repository report (alias --scr)")
	fs.StringVar(&f.Paths.TestData, "specmatic-test-data", "", "The path to the Specmatic test data report (alias --std)")
	fs.StringVar(&f.Paths.SpecmaticConfig, "specmatic-config", "", "The path to the Specmatic config file (alias --scf)")
	fs.StringVar(&f.ReportsDir, "reports-dir", "", "Directory scanned for Specmatic reports (default "+config.DefaultReportsDir+")")
	fs.StringVar(&f.Output, "output", "", "Where the build report is written (default "+config.DefaultOutput+")")
	fs.BoolVar(&f.DryRun, "dry-run", false, "Do not post to Specmatic Insights (alias --dr)")
	fs.BoolVar(&f.NoVerify, "no-verify", false, "Do not verify the SSL certificate, not recommended (alias --nv)")

	fs.StringVar(&f.Identity.OrgID, "org-id", "", "Organization id")
	fs.StringVar(&f.Identity.RepoName, "repo-name", "", "Repository name")
	fs.StringVar(&f.Identity.RepoID, "repo-id", "", "Repository id")
	fs.StringVar(&f.Identity.RepoURL, "repo-url", "", "Repository URL")
	fs.StringVar(&f.Identity.BranchName, "branch-name", "", "Branch name")
	fs.StringVar(&f.Identity.BranchRef, "branch-ref", "", "Branch ref")
	fs.StringVar(&f.Identity.BuildID, "build-id", "", "Build id")
	fs.StringVar(&f.Identity.BuildDefinitionID, "build-definition-id", "", "Build definition id")
	fs.StringVar(&f.Paths.BuildMetadata, "build-metadata", "", "JSON or YAML file with build metadata")

	fs.StringVar(&f.GitHubAPIURL, "github-api-url", "", "GitHub REST API root (default "+config.DefaultGitHubAPIURL+")")
	fs.BoolVar(&f.Debug, "debug", false, "Print resolved settings and skipped files")
	fs.StringVar(&f.Theme, "theme", "", "Console theme: default, mono")

	fs.SetNormalizeFunc(normalizeAlias)
}

// markSet records which boolean flags were given explicitly.
func markSet(cmd *cobra.Command, f *config.Flags) {
	fs := cmd.Flags()
	f.DryRunSet = fs.Changed("dry-run")
	f.NoVerifySet = fs.Changed("no-verify")
	f.DebugSet = fs.Changed("debug")
}
