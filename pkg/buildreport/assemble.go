package buildreport

import (
	"bytes"
	"time"

	"github.com/dkoosis/insights-build-reporter/pkg/specmatic"
)

type options struct {
	now func() time.Time
}

// Option configures Assemble.
type Option func(*options)

// WithClock sets the source of "now" for createdAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Assemble builds the normalized report for one build. It never fails and
// never mutates its inputs; all validation happens before it is called.
func Assemble(meta specmatic.BuildMetadata, in Inputs, opts ...Option) *Report {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Report{
		OrgID:             meta.OrgID,
		Repo:              meta.RepoName,
		RepoID:            meta.RepoID,
		RepoURL:           meta.RepoURL,
		Branch:            meta.BranchRef,
		BranchName:        meta.BranchName,
		BuildID:           meta.BuildID,
		BuildDefinitionID: meta.BuildDefinitionID,
		CreatedAt:         createdAt(meta, o.now),
	}

	r.SpecmaticConfigPath = configPath(in.StubUsage, in.Coverage)

	if in.Coverage != nil {
		r.SpecmaticCoverage = make([]specmatic.CoverageEntry, 0, len(in.Coverage.APICoverage))
		for _, e := range in.Coverage.APICoverage {
			r.SpecmaticCoverage = append(r.SpecmaticCoverage, coverageEntry(e))
		}
	}
	if in.StubUsage != nil {
		r.SpecmaticStubUsage = make([]specmatic.StubUsageEntry, 0, len(in.StubUsage.StubUsage))
		for _, e := range in.StubUsage.StubUsage {
			r.SpecmaticStubUsage = append(r.SpecmaticStubUsage, e.Clone())
		}
	}
	if in.CentralRepo != nil {
		r.SpecmaticCentralRepoReport = make([]specmatic.CentralRepoSpec, 0, len(in.CentralRepo.Specifications))
		for _, s := range in.CentralRepo.Specifications {
			r.SpecmaticCentralRepoReport = append(r.SpecmaticCentralRepoReport, s.Clone())
		}
	}
	if len(in.TestData) > 0 {
		r.SpecmaticTestData = bytes.Clone(in.TestData)
	}
	if in.Config != nil {
		r.SpecmaticConfig = specmatic.Normalize(in.Config)
	}

	return r
}

// createdAt prefers the upstream CI run's creation time so the report marks
// when the build started, not when this tool ran.
func createdAt(meta specmatic.BuildMetadata, now func() time.Time) time.Time {
	if meta.RunCreatedAt != nil {
		return meta.RunCreatedAt.UTC()
	}
	return now().UTC()
}

// configPath resolves specmaticConfigPath: stub usage wins over coverage.
func configPath(stub *specmatic.StubUsageReport, cov *specmatic.CoverageReport) string {
	if stub != nil && stub.SpecmaticConfigPath != "" {
		return stub.SpecmaticConfigPath
	}
	if cov != nil {
		return cov.SpecmaticConfigPath
	}
	return ""
}

// coverageEntry copies a coverage entry, dropping an explicitly null branch
// so the key is omitted rather than written as null. A null count means the
// same as a missing one and is omitted too.
func coverageEntry(e specmatic.CoverageEntry) specmatic.CoverageEntry {
	out := e.Clone()
	if out.Branch.IsNull() {
		out.Branch = specmatic.Nullable[string]{}
	}
	for i := range out.Operations {
		out.Operations[i].Count = out.Operations[i].Count.Known()
	}
	return out
}
