// Package specmatic declares the shapes of the Specmatic report documents
// (API coverage, stub usage, central contract repository) and of the build
// metadata record, and validates untyped parsed trees against them.
//
// Report entries are a flat merge of two tagged unions: a source descriptor
// discriminated by "type" and a service payload discriminated by
// "serviceType". Each union is a closed registry; unknown discriminants are
// rejected.
package specmatic

import "slices"

// SourceType discriminates source descriptor variants.
type SourceType string

// SourceGit is a specification sourced from a git repository.
const SourceGit SourceType = "git"

// ServiceType discriminates service payload variants.
type ServiceType string

// ServiceHTTP is an HTTP service payload.
const ServiceHTTP ServiceType = "HTTP"

// CoverageStatus is the coverage verdict for one operation.
type CoverageStatus string

// Coverage statuses reported by Specmatic.
const (
	StatusCovered        CoverageStatus = "covered"
	StatusMissingInSpec  CoverageStatus = "missing in spec"
	StatusNotImplemented CoverageStatus = "not implemented"
)

// CoverageStatuses lists every accepted coverage status.
var CoverageStatuses = []CoverageStatus{StatusCovered, StatusMissingInSpec, StatusNotImplemented}

// Source describes where a specification came from.
type Source struct {
	Type          SourceType       `json:"type"`
	Repository    *string          `json:"repository,omitempty"`
	Specification string           `json:"specification"`
	Branch        Nullable[string] `json:"branch,omitzero"`
}

// Operation is one HTTP operation observed or declared for a specification.
type Operation struct {
	Path         string `json:"path"`
	Method       string `json:"method"`
	ResponseCode int    `json:"responseCode"`
}

// CoverageOperation is an operation with its coverage verdict.
type CoverageOperation struct {
	Operation
	CoverageStatus CoverageStatus `json:"coverageStatus"`
	Count          Nullable[int]  `json:"count,omitzero"`
}

// StubUsageOperation is an operation with the number of times a stub served it.
type StubUsageOperation struct {
	Operation
	Count int `json:"count"`
}

// CoverageEntry is a source descriptor merged with an HTTP coverage payload.
type CoverageEntry struct {
	Source
	ServiceType ServiceType         `json:"serviceType"`
	Operations  []CoverageOperation `json:"operations"`
}

// StubUsageEntry is a source descriptor merged with an HTTP stub usage payload.
type StubUsageEntry struct {
	Source
	ServiceType ServiceType          `json:"serviceType"`
	Operations  []StubUsageOperation `json:"operations"`
}

// CentralRepoSpec is one specification listed in the central contract repository.
type CentralRepoSpec struct {
	Specification string      `json:"specification"`
	ServiceType   ServiceType `json:"serviceType"`
	Operations    []Operation `json:"operations"`
}

// CoverageReport is the document written by `specmatic test`.
type CoverageReport struct {
	SpecmaticConfigPath string          `json:"specmaticConfigPath"`
	APICoverage         []CoverageEntry `json:"apiCoverage"`
}

// StubUsageReport is the document written by `specmatic stub`.
type StubUsageReport struct {
	SpecmaticConfigPath string           `json:"specmaticConfigPath"`
	StubUsage           []StubUsageEntry `json:"stubUsage"`
}

// CentralRepoReport is the document written by `specmatic central-contract-repo-report`.
type CentralRepoReport struct {
	Specifications []CentralRepoSpec `json:"specifications"`
}

// Clone returns a deep copy of s.
func (s Source) Clone() Source {
	if s.Repository != nil {
		repo := *s.Repository
		s.Repository = &repo
	}
	return s
}

// Clone returns a deep copy of e.
func (e CoverageEntry) Clone() CoverageEntry {
	e.Source = e.Source.Clone()
	e.Operations = slices.Clone(e.Operations)
	return e
}

// Clone returns a deep copy of e.
func (e StubUsageEntry) Clone() StubUsageEntry {
	e.Source = e.Source.Clone()
	e.Operations = slices.Clone(e.Operations)
	return e
}

// Clone returns a deep copy of s.
func (s CentralRepoSpec) Clone() CentralRepoSpec {
	s.Operations = slices.Clone(s.Operations)
	return s
}
