package specmatic

import "time"

// BuildMetadata identifies the CI context that produced a report.
type BuildMetadata struct {
	OrgID             string `json:"org_id"`
	RepoName          string `json:"repo_name"`
	RepoID            string `json:"repo_id"`
	RepoURL           string `json:"repo_url"`
	BranchName        string `json:"branch_name"`
	BranchRef         string `json:"branch_ref,omitempty"`
	BuildID           string `json:"build_id,omitempty"`
	BuildDefinitionID string `json:"build_definition_id,omitempty"`

	// RunCreatedAt is set only when the metadata came from an upstream CI
	// run record.
	RunCreatedAt *time.Time `json:"run_created_at,omitempty"`
}

// metadataAliases maps deprecated build metadata keys onto canonical ones.
var metadataAliases = map[string]string{
	"repo":       "repo_name",
	"branch":     "branch_ref",
	"branchName": "branch_name",
}

// Tree returns m as an untyped tree suitable for ValidateBuildMetadata.
func (m BuildMetadata) Tree() map[string]any {
	tree := map[string]any{
		"org_id":      m.OrgID,
		"repo_name":   m.RepoName,
		"repo_id":     m.RepoID,
		"repo_url":    m.RepoURL,
		"branch_name": m.BranchName,
	}
	optional := map[string]string{
		"branch_ref":          m.BranchRef,
		"build_id":            m.BuildID,
		"build_definition_id": m.BuildDefinitionID,
	}
	for k, v := range optional {
		if v != "" {
			tree[k] = v
		}
	}
	if m.RunCreatedAt != nil {
		tree["run_created_at"] = m.RunCreatedAt.UTC().Format(time.RFC3339)
	}
	return tree
}

// foldAliases returns a copy of obj with deprecated keys moved onto their
// canonical names. Canonical keys win when both are present.
func foldAliases(obj map[string]any) map[string]any {
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		out[k] = v
	}
	for alias, canonical := range metadataAliases {
		v, ok := out[alias]
		if !ok {
			continue
		}
		delete(out, alias)
		if _, exists := out[canonical]; !exists {
			out[canonical] = v
		}
	}
	return out
}
