package config

import (
	"fmt"
	"maps"
	"net/url"
	"slices"

	"github.com/dkoosis/insights-build-reporter/pkg/specmatic"
)

// Constants for default values.
const (
	DefaultReportsDir   = "build/reports/specmatic"
	DefaultOutput       = "build-report.html"
	DefaultGitHubAPIURL = "https://api.github.com"
	DefaultTheme        = "default"
	MonoTheme           = "mono"
)

// Environment variable names.
const (
	EnvInsightsHost = "SPECMATIC_INSIGHTS_HOST"
	EnvDryRun       = "SPECMATIC_INSIGHTS_DRY_RUN"
	EnvNoVerify     = "SPECMATIC_INSIGHTS_NO_VERIFY"
	EnvDebug        = "SPECMATIC_INSIGHTS_DEBUG"
	EnvTheme        = "SPECMATIC_INSIGHTS_THEME"
	EnvReportsDir   = "SPECMATIC_REPORTS_DIR"
	EnvGitHubAPIURL = "GITHUB_API_URL"
	EnvNoColor      = "NO_COLOR"
)

// Source records where a resolved value came from.
type Source string

const (
	SourceCLI     Source = "cli"
	SourceEnv     Source = "env"
	SourceDefault Source = "default"
)

// Identity holds the build identity flags. Empty means unset.
type Identity struct {
	OrgID             string
	RepoName          string
	RepoID            string
	RepoURL           string
	BranchName        string
	BranchRef         string
	BuildID           string
	BuildDefinitionID string
}

func (i Identity) empty() bool {
	return i == Identity{}
}

// Paths holds explicitly supplied input files. Empty means not supplied.
type Paths struct {
	Coverage        string
	StubUsage       string
	CentralRepo     string
	TestData        string
	SpecmaticConfig string
	BuildMetadata   string
}

// Flags holds the values of command-line flags.
type Flags struct {
	InsightsHost string
	ReportsDir   string
	Output       string
	GitHubAPIURL string
	Theme        string
	DryRun       bool
	NoVerify     bool
	Debug        bool
	WorkDir      string

	Paths    Paths
	Identity Identity

	// Flags to track if they were explicitly set by the user
	DryRunSet   bool
	NoVerifySet bool
	DebugSet    bool
}

// Config is the fully resolved configuration.
type Config struct {
	InsightsHost *url.URL
	ReportsDir   string
	Output       string // absolute, or relative to WorkDir
	GitHubAPIURL string
	Theme        string
	DryRun       bool
	NoVerify     bool
	Debug        bool
	WorkDir      string

	Paths Paths

	// Identity is non-nil only when identity flags were given.
	Identity *specmatic.BuildMetadata

	// Resolution metadata (for --debug)
	Sources map[string]Source
}

// ConfigurationError reports a missing or invalid setting.
type ConfigurationError struct {
	Key     string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Key, e.Message)
}

// SourceKeys returns the resolved setting names in sorted order.
func (c *Config) SourceKeys() []string {
	return slices.Sorted(maps.Keys(c.Sources))
}
