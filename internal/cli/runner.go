package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dkoosis/insights-build-reporter/internal/ci"
	"github.com/dkoosis/insights-build-reporter/internal/collect"
	"github.com/dkoosis/insights-build-reporter/internal/config"
	"github.com/dkoosis/insights-build-reporter/internal/docread"
	"github.com/dkoosis/insights-build-reporter/internal/insights"
	"github.com/dkoosis/insights-build-reporter/internal/version"
	"github.com/dkoosis/insights-build-reporter/pkg/buildreport"
	"github.com/dkoosis/insights-build-reporter/pkg/console"
	"github.com/dkoosis/insights-build-reporter/pkg/specmatic"
)

// runner executes one reporting pass.
type runner struct {
	deps   Deps
	stdout io.Writer
	log    *console.Logger
}

func newRunner(deps Deps, stdout io.Writer) *runner {
	return &runner{deps: deps, stdout: stdout}
}

func (r *runner) run(ctx context.Context, flags config.Flags) error {
	r.log = console.New(r.stdout, console.WithEnv(r.deps.Env), console.WithTheme(flags.Theme), console.WithDebug(flags.Debug))
	r.log.Info("%s", version.Banner())

	cfg, err := config.Resolve(flags, r.deps.Env)
	if err != nil {
		r.log.Error("%v", err)
		return err
	}
	r.log = console.New(r.stdout, console.WithEnv(r.deps.Env), console.WithTheme(cfg.Theme), console.WithDebug(cfg.Debug))
	for _, key := range cfg.SourceKeys() {
		r.log.Debug("%s (%s)", key, cfg.Sources[key])
	}

	meta, err := r.metadata(ctx, cfg)
	if err != nil {
		r.log.Error("Could not determine build metadata: %v", err)
		return err
	}

	frags, err := collect.Load(collect.Request{
		Coverage:    cfg.Paths.Coverage,
		StubUsage:   cfg.Paths.StubUsage,
		CentralRepo: cfg.Paths.CentralRepo,
		TestData:    cfg.Paths.TestData,
		Config:      cfg.Paths.SpecmaticConfig,
		ReportsDir:  cfg.ReportsDir,
		WorkDir:     cfg.WorkDir,
	}, r.log)
	if err != nil {
		r.log.Error("%v", err)
		return err
	}

	report := buildreport.Assemble(meta, frags.Inputs(), buildreport.WithClock(r.deps.Now))
	if err := writeReport(cfg.Output, report); err != nil {
		r.log.Error("%v", err)
		return err
	}
	r.log.Success("Wrote build report to %s", cfg.Output)
	r.log.Summary(report.Summary())

	if cfg.DryRun {
		r.log.Info("Dry run, not posting to Specmatic Insights")
		return nil
	}

	var opts []insights.Option
	if r.deps.HTTPClient != nil {
		opts = append(opts, insights.WithHTTPClient(r.deps.HTTPClient))
	}
	client := insights.NewClient(cfg.InsightsHost, cfg.NoVerify, opts...)
	r.log.Debug("posting to %s", client.Endpoint())
	if err := client.Post(ctx, report); err != nil {
		r.log.Error("%v", err)
		return err
	}
	r.log.Success("Successfully posted build report to Specmatic Insights")
	return nil
}

// metadata picks the build identity: flags, then a metadata file, then CI.
func (r *runner) metadata(ctx context.Context, cfg *config.Config) (specmatic.BuildMetadata, error) {
	switch {
	case cfg.Identity != nil:
		r.log.Info("Using build identity from flags")
		return specmatic.ValidateBuildMetadata(cfg.Identity.Tree())

	case cfg.Paths.BuildMetadata != "":
		path := cfg.Paths.BuildMetadata
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.WorkDir, path)
		}
		doc, err := docread.ReadFile(path)
		if err != nil {
			return specmatic.BuildMetadata{}, err
		}
		r.log.Info("Using build metadata from %s", path)
		return specmatic.ValidateBuildMetadata(doc.Tree)

	default:
		resolver := &ci.Resolver{
			Env:        r.deps.Env,
			HTTPClient: r.deps.HTTPClient,
			BaseURL:    cfg.GitHubAPIURL,
			NewID:      r.deps.NewID,
		}
		meta, err := resolver.Resolve(ctx)
		if err != nil {
			return specmatic.BuildMetadata{}, err
		}
		r.log.Info("Using build metadata from GitHub Actions (build %s)", meta.BuildID)
		return meta, nil
	}
}

func writeReport(path string, report *buildreport.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode build report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write build report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 - report is not secret
		return fmt.Errorf("write build report: %w", err)
	}
	return nil
}
