package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dkoosis/insights-build-reporter/internal/env"
	"github.com/dkoosis/insights-build-reporter/pkg/specmatic"
)

// Themes lists the accepted theme names.
var Themes = []string{DefaultTheme, MonoTheme}

// Resolve applies CLI flags, then environment variables, then defaults.
// This is the single source of truth for config resolution.
func Resolve(flags Flags, p env.Provider) (*Config, error) {
	cfg := &Config{
		Paths:   flags.Paths,
		WorkDir: flags.WorkDir,
		Sources: make(map[string]Source),
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}

	host := resolveString(cfg, "specmatic-insights-host", flags.InsightsHost, p, EnvInsightsHost, "")
	u, err := parseHost(host)
	if err != nil {
		return nil, err
	}
	cfg.InsightsHost = u

	cfg.ReportsDir = cfg.resolvePath(resolveString(cfg, "reports-dir", flags.ReportsDir, p, EnvReportsDir, DefaultReportsDir))
	cfg.Output = cfg.resolvePath(resolveString(cfg, "output", flags.Output, p, "", DefaultOutput))
	cfg.GitHubAPIURL = strings.TrimRight(resolveString(cfg, "github-api-url", flags.GitHubAPIURL, p, EnvGitHubAPIURL, DefaultGitHubAPIURL), "/")
	if _, err := parseURL("github-api-url", cfg.GitHubAPIURL); err != nil {
		return nil, err
	}

	if cfg.DryRun, err = resolveBool(cfg, "dry-run", flags.DryRun, flags.DryRunSet, p, EnvDryRun); err != nil {
		return nil, err
	}
	if cfg.NoVerify, err = resolveBool(cfg, "no-verify", flags.NoVerify, flags.NoVerifySet, p, EnvNoVerify); err != nil {
		return nil, err
	}
	if cfg.Debug, err = resolveBool(cfg, "debug", flags.Debug, flags.DebugSet, p, EnvDebug); err != nil {
		return nil, err
	}

	cfg.Theme = resolveString(cfg, "theme", flags.Theme, p, EnvTheme, DefaultTheme)
	if !slices.Contains(Themes, cfg.Theme) {
		return nil, &ConfigurationError{Key: "theme", Message: fmt.Sprintf("unknown theme %q (must be: %s)", cfg.Theme, strings.Join(Themes, ", "))}
	}
	// NO_COLOR only overrides a theme nobody asked for.
	if cfg.Sources["theme"] == SourceDefault && env.Set(p, EnvNoColor) {
		cfg.Theme = MonoTheme
		cfg.Sources["theme"] = SourceEnv
	}

	if cfg.Identity, err = resolveIdentity(flags.Identity); err != nil {
		return nil, err
	}
	if cfg.Identity != nil && cfg.Paths.BuildMetadata != "" {
		return nil, &ConfigurationError{Key: "build-metadata", Message: "cannot be combined with build identity flags"}
	}

	return cfg, nil
}

// resolvePath anchors relative paths at the working directory.
func (c *Config) resolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.WorkDir, p)
}

func resolveString(cfg *Config, key, flag string, p env.Provider, envKey, def string) string {
	if strings.TrimSpace(flag) != "" {
		cfg.Sources[key] = SourceCLI
		return strings.TrimSpace(flag)
	}
	if envKey != "" {
		if v := env.First(p, envKey); v != "" {
			cfg.Sources[key] = SourceEnv
			return strings.TrimSpace(v)
		}
	}
	cfg.Sources[key] = SourceDefault
	return def
}

func resolveBool(cfg *Config, key string, flag, set bool, p env.Provider, envKey string) (bool, error) {
	if set {
		cfg.Sources[key] = SourceCLI
		return flag, nil
	}
	if env.Set(p, envKey) {
		v, err := env.Bool(p, envKey, false)
		if err != nil {
			return false, &ConfigurationError{Key: envKey, Message: err.Error()}
		}
		cfg.Sources[key] = SourceEnv
		return v, nil
	}
	cfg.Sources[key] = SourceDefault
	return false, nil
}

func parseHost(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, &ConfigurationError{
			Key:     "specmatic-insights-host",
			Message: fmt.Sprintf("required (flag --specmatic-insights-host or %s)", EnvInsightsHost),
		}
	}
	return parseURL("specmatic-insights-host", raw)
}

func parseURL(key, raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &ConfigurationError{Key: key, Message: fmt.Sprintf("invalid URL %q", raw)}
	}
	return u, nil
}

// resolveIdentity returns nil when no identity flag was given.
func resolveIdentity(id Identity) (*specmatic.BuildMetadata, error) {
	if id.empty() {
		return nil, nil
	}
	required := []struct {
		key   string
		value string
	}{
		{"org-id", id.OrgID},
		{"repo-name", id.RepoName},
		{"repo-id", id.RepoID},
		{"repo-url", id.RepoURL},
		{"branch-name", id.BranchName},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, "--"+r.key)
		}
	}
	if len(missing) > 0 {
		return nil, &ConfigurationError{
			Key:     "build identity",
			Message: "incomplete, missing " + strings.Join(missing, ", "),
		}
	}
	return &specmatic.BuildMetadata{
		OrgID:             id.OrgID,
		RepoName:          id.RepoName,
		RepoID:            id.RepoID,
		RepoURL:           id.RepoURL,
		BranchName:        id.BranchName,
		BranchRef:         id.BranchRef,
		BuildID:           id.BuildID,
		BuildDefinitionID: id.BuildDefinitionID,
	}, nil
}
