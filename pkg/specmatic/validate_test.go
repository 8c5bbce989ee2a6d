package specmatic

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTree(t *testing.T, doc string) any {
	t.Helper()
	var tree any
	require.NoError(t, json.Unmarshal([]byte(doc), &tree))
	return tree
}

const validCoverage = `{
	"specmaticConfigPath": "specmatic.yaml",
	"apiCoverage": [{
		"type": "git",
		"repository": "https://github.com/acme/contracts",
		"specification": "orders.yaml",
		"branch": "main",
		"serviceType": "HTTP",
		"operations": [
			{"path": "/orders", "method": "GET", "responseCode": 200, "coverageStatus": "covered", "count": 3},
			{"path": "/orders/{id}", "method": "DELETE", "responseCode": 404, "coverageStatus": "missing in spec"},
			{"path": "/orders", "method": "POST", "responseCode": 201, "coverageStatus": "not implemented", "count": null}
		]
	}]
}`

func TestValidateCoverage_RoundTripsOperationFields(t *testing.T) {
	report, err := ValidateCoverage(parseTree(t, validCoverage))
	require.NoError(t, err)

	assert.Equal(t, "specmatic.yaml", report.SpecmaticConfigPath)
	require.Len(t, report.APICoverage, 1)

	entry := report.APICoverage[0]
	assert.Equal(t, SourceGit, entry.Type)
	require.NotNil(t, entry.Repository)
	assert.Equal(t, "https://github.com/acme/contracts", *entry.Repository)
	assert.Equal(t, "orders.yaml", entry.Specification)
	branch, ok := entry.Branch.Get()
	assert.True(t, ok)
	assert.Equal(t, "main", branch)
	assert.Equal(t, ServiceHTTP, entry.ServiceType)

	require.Len(t, entry.Operations, 3)
	first := entry.Operations[0]
	assert.Equal(t, "/orders", first.Path)
	assert.Equal(t, "GET", first.Method)
	assert.Equal(t, 200, first.ResponseCode)
	assert.Equal(t, StatusCovered, first.CoverageStatus)
	count, ok := first.Count.Get()
	assert.True(t, ok)
	assert.Equal(t, 3, count)

	assert.True(t, entry.Operations[1].Count.IsZero(), "absent count stays absent")
	assert.True(t, entry.Operations[2].Count.IsNull(), "explicit null count stays null")
	assert.Equal(t, StatusNotImplemented, entry.Operations[2].CoverageStatus)
}

func TestValidateCoverage_Rejects(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		wantPath   string
		wantReason string
	}{
		{
			name:     "coverage status outside enum",
			doc:      `{"specmaticConfigPath":"s.yaml","apiCoverage":[{"type":"git","specification":"a","serviceType":"HTTP","operations":[{"path":"/a","method":"GET","responseCode":200,"coverageStatus":"partially covered"}]}]}`,
			wantPath: "apiCoverage.0",
		},
		{
			name:       "unknown source type",
			doc:        `{"specmaticConfigPath":"s.yaml","apiCoverage":[{"type":"svn","specification":"a","serviceType":"HTTP","operations":[]}]}`,
			wantPath:   "apiCoverage.0.type",
			wantReason: `unknown type "svn"`,
		},
		{
			name:       "unknown service type",
			doc:        `{"specmaticConfigPath":"s.yaml","apiCoverage":[{"type":"git","specification":"a","serviceType":"GRPC","operations":[]}]}`,
			wantPath:   "apiCoverage.0.serviceType",
			wantReason: `unknown serviceType "GRPC"`,
		},
		{
			name:       "missing source discriminant",
			doc:        `{"specmaticConfigPath":"s.yaml","apiCoverage":[{"specification":"a","serviceType":"HTTP","operations":[]}]}`,
			wantPath:   "apiCoverage.0.type",
			wantReason: "discriminant is missing",
		},
		{
			name:     "response code out of range",
			doc:      `{"specmaticConfigPath":"s.yaml","apiCoverage":[{"type":"git","specification":"a","serviceType":"HTTP","operations":[{"path":"/a","method":"GET","responseCode":42,"coverageStatus":"covered"}]}]}`,
			wantPath: "apiCoverage.0",
		},
		{
			name:     "empty method",
			doc:      `{"specmaticConfigPath":"s.yaml","apiCoverage":[{"type":"git","specification":"a","serviceType":"HTTP","operations":[{"path":"/a","method":"","responseCode":200,"coverageStatus":"covered"}]}]}`,
			wantPath: "apiCoverage.0",
		},
		{
			name:     "fractional count",
			doc:      `{"specmaticConfigPath":"s.yaml","apiCoverage":[{"type":"git","specification":"a","serviceType":"HTTP","operations":[{"path":"/a","method":"GET","responseCode":200,"coverageStatus":"covered","count":1.5}]}]}`,
			wantPath: "apiCoverage.0",
		},
		{
			name: "missing config path",
			doc:  `{"apiCoverage":[]}`,
		},
		{
			name: "not an object",
			doc:  `["apiCoverage"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateCoverage(parseTree(t, tt.doc))
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "specmatic coverage report", verr.Document)
			if tt.wantPath != "" {
				assert.Contains(t, verr.Path, tt.wantPath)
			}
			if tt.wantReason != "" {
				assert.Contains(t, verr.Reason, tt.wantReason)
			}
		})
	}
}

func TestValidateStubUsage(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		doc := `{"specmaticConfigPath":"specmatic.json","stubUsage":[{"type":"git","specification":"pay.yaml","branch":null,"serviceType":"HTTP","operations":[{"path":"/pay","method":"POST","responseCode":200,"count":7}]}]}`
		report, err := ValidateStubUsage(parseTree(t, doc))
		require.NoError(t, err)
		require.Len(t, report.StubUsage, 1)
		assert.True(t, report.StubUsage[0].Branch.IsNull())
		assert.Nil(t, report.StubUsage[0].Repository)
		assert.Equal(t, 7, report.StubUsage[0].Operations[0].Count)
	})

	t.Run("count is required", func(t *testing.T) {
		doc := `{"specmaticConfigPath":"specmatic.json","stubUsage":[{"type":"git","specification":"pay.yaml","serviceType":"HTTP","operations":[{"path":"/pay","method":"POST","responseCode":200}]}]}`
		_, err := ValidateStubUsage(parseTree(t, doc))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "specmatic stub usage report", verr.Document)
	})

	t.Run("count must not be null", func(t *testing.T) {
		doc := `{"specmaticConfigPath":"specmatic.json","stubUsage":[{"type":"git","specification":"pay.yaml","serviceType":"HTTP","operations":[{"path":"/pay","method":"POST","responseCode":200,"count":null}]}]}`
		_, err := ValidateStubUsage(parseTree(t, doc))
		require.Error(t, err)
	})
}

func TestValidateCentralRepo(t *testing.T) {
	doc := `{"specifications":[{"specification":"orders.yaml","serviceType":"HTTP","operations":[{"path":"/orders","method":"GET","responseCode":200}]}]}`
	report, err := ValidateCentralRepo(parseTree(t, doc))
	require.NoError(t, err)
	require.Len(t, report.Specifications, 1)
	assert.Equal(t, "orders.yaml", report.Specifications[0].Specification)
	assert.Equal(t, Operation{Path: "/orders", Method: "GET", ResponseCode: 200}, report.Specifications[0].Operations[0])

	_, err = ValidateCentralRepo(parseTree(t, `{"specifications":[{"specification":"x","serviceType":"KAFKA","operations":[]}]}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "specifications.0.serviceType", verr.Path)

	_, err = ValidateCentralRepo(parseTree(t, `{"specifications":[{"serviceType":"HTTP","operations":[]}]}`))
	require.Error(t, err, "specification id is required")
}

func TestValidateBuildMetadata(t *testing.T) {
	t.Run("canonical keys", func(t *testing.T) {
		doc := `{"org_id":"o1","repo_name":"r1","repo_id":"1","repo_url":"https://x/r1","branch_name":"main","build_id":"42"}`
		meta, err := ValidateBuildMetadata(parseTree(t, doc))
		require.NoError(t, err)
		assert.Equal(t, BuildMetadata{
			OrgID: "o1", RepoName: "r1", RepoID: "1", RepoURL: "https://x/r1",
			BranchName: "main", BuildID: "42",
		}, meta)
	})

	t.Run("deprecated aliases fold onto canonical keys", func(t *testing.T) {
		doc := `{"org_id":"o1","repo":"r1","repo_id":"1","repo_url":"https://x/r1","branchName":"main","branch":"refs/heads/main"}`
		meta, err := ValidateBuildMetadata(parseTree(t, doc))
		require.NoError(t, err)
		assert.Equal(t, "r1", meta.RepoName)
		assert.Equal(t, "main", meta.BranchName)
		assert.Equal(t, "refs/heads/main", meta.BranchRef)
	})

	t.Run("run created at", func(t *testing.T) {
		doc := `{"org_id":"o1","repo_name":"r1","repo_id":"1","repo_url":"https://x/r1","branch_name":"main","run_created_at":"2024-05-01T10:00:00Z"}`
		meta, err := ValidateBuildMetadata(parseTree(t, doc))
		require.NoError(t, err)
		require.NotNil(t, meta.RunCreatedAt)
		assert.True(t, meta.RunCreatedAt.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
	})

	t.Run("empty required field", func(t *testing.T) {
		doc := `{"org_id":"","repo_name":"r1","repo_id":"1","repo_url":"https://x/r1","branch_name":"main"}`
		_, err := ValidateBuildMetadata(parseTree(t, doc))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "build metadata", verr.Document)
		assert.Equal(t, "org_id", verr.Path)
	})

	t.Run("missing required field", func(t *testing.T) {
		doc := `{"org_id":"o1","repo_id":"1","repo_url":"https://x/r1","branch_name":"main"}`
		_, err := ValidateBuildMetadata(parseTree(t, doc))
		require.Error(t, err)
	})

	t.Run("tree round trip", func(t *testing.T) {
		created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		in := BuildMetadata{OrgID: "o", RepoName: "r", RepoID: "1", RepoURL: "u", BranchName: "b", BranchRef: "refs/heads/b", RunCreatedAt: &created}
		out, err := ValidateBuildMetadata(in.Tree())
		require.NoError(t, err)
		assert.Equal(t, in.BranchRef, out.BranchRef)
		require.NotNil(t, out.RunCreatedAt)
		assert.True(t, created.Equal(*out.RunCreatedAt))
	})
}

func TestValidate_DispatchesByKind(t *testing.T) {
	got, err := Validate(KindCoverage, parseTree(t, validCoverage))
	require.NoError(t, err)
	assert.IsType(t, &CoverageReport{}, got)

	got, err = Validate(KindCentralRepo, parseTree(t, `{"specifications":[]}`))
	require.NoError(t, err)
	assert.IsType(t, &CentralRepoReport{}, got)

	_, err = Validate(Kind(99), nil)
	require.Error(t, err)
}

func TestValidate_AcceptsYAMLShapedTrees(t *testing.T) {
	tree := map[string]any{
		"specmaticConfigPath": "specmatic.yaml",
		"stubUsage": []any{
			map[any]any{
				"type":          "git",
				"specification": "pay.yaml",
				"serviceType":   "HTTP",
				"operations": []any{
					map[string]any{"path": "/pay", "method": "POST", "responseCode": 200, "count": 2},
				},
			},
		},
	}
	report, err := ValidateStubUsage(tree)
	require.NoError(t, err)
	assert.Equal(t, 2, report.StubUsage[0].Operations[0].Count)
	assert.IsType(t, map[any]any{}, tree["stubUsage"].([]any)[0], "input tree is left untouched")
}
