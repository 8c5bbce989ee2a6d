// Package buildreport assembles the normalized build report that is written
// to disk and delivered to Specmatic Insights.
package buildreport

import (
	"encoding/json"
	"time"

	"github.com/dkoosis/insights-build-reporter/pkg/specmatic"
)

// Report is the normalized document for one build. Keys for fragments that
// were not supplied are omitted, never emitted as null.
type Report struct {
	OrgID             string    `json:"orgId"`
	Repo              string    `json:"repo"`
	RepoID            string    `json:"repoId"`
	RepoURL           string    `json:"repoUrl"`
	Branch            string    `json:"branch,omitempty"`
	BranchName        string    `json:"branchName"`
	BuildID           string    `json:"buildId,omitempty"`
	BuildDefinitionID string    `json:"buildDefinitionId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`

	SpecmaticConfigPath        string                      `json:"specmaticConfigPath,omitempty"`
	SpecmaticCoverage          []specmatic.CoverageEntry   `json:"specmaticCoverage,omitzero"`
	SpecmaticStubUsage         []specmatic.StubUsageEntry  `json:"specmaticStubUsage,omitzero"`
	SpecmaticCentralRepoReport []specmatic.CentralRepoSpec `json:"specmaticCentralRepoReport,omitzero"`
	SpecmaticTestData          json.RawMessage             `json:"specmaticTestData,omitempty"`
	SpecmaticConfig            any                         `json:"specmaticConfig,omitempty"`
}

// Inputs are the optional fragments folded into a report.
type Inputs struct {
	Coverage    *specmatic.CoverageReport
	StubUsage   *specmatic.StubUsageReport
	CentralRepo *specmatic.CentralRepoReport
	TestData    json.RawMessage
	Config      any
}
