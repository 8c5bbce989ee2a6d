package ci

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/insights-build-reporter/internal/env"
	"github.com/dkoosis/insights-build-reporter/pkg/specmatic"
)

func actionsEnv() env.Map {
	return env.Map{
		EnvRepository:   "acme/orders",
		EnvRepositoryID: "123",
		EnvOwnerID:      "77",
		EnvServerURL:    "https://github.com",
		EnvRefName:      "main",
		EnvRef:          "refs/heads/main",
		EnvRunID:        "9001",
		EnvWorkflowRef:  "acme/orders/.github/workflows/ci.yml@refs/heads/main",
	}
}

func TestFromEnv(t *testing.T) {
	r := &Resolver{Env: actionsEnv()}
	meta, err := r.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, specmatic.BuildMetadata{
		OrgID:             "77",
		RepoName:          "orders",
		RepoID:            "123",
		RepoURL:           "https://github.com/acme/orders",
		BranchName:        "main",
		BranchRef:         "refs/heads/main",
		BuildID:           "9001",
		BuildDefinitionID: "acme/orders/.github/workflows/ci.yml@refs/heads/main",
	}, meta)
}

func TestFromEnv_PullRequestUsesHeadRef(t *testing.T) {
	e := actionsEnv()
	e[EnvHeadRef] = "feature/login"
	e[EnvRefName] = "42/merge"

	meta, err := (&Resolver{Env: e}).FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "feature/login", meta.BranchName)
}

func TestFromEnv_SynthesizesRunID(t *testing.T) {
	e := actionsEnv()
	delete(e, EnvRunID)

	r := &Resolver{Env: e, NewID: func() string { return "generated-id" }}
	meta, err := r.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "generated-id", meta.BuildID)

	r.NewID = nil
	meta, err = r.FromEnv()
	require.NoError(t, err)
	assert.Len(t, meta.BuildID, 36, "uuid string")
}

func TestFromEnv_MissingIdentity(t *testing.T) {
	r := &Resolver{Env: env.Map{EnvRunID: "1"}}
	_, err := r.FromEnv()

	var verr *specmatic.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "build metadata", verr.Document)
}

func TestResolve_WithoutTokenUsesEnv(t *testing.T) {
	r := &Resolver{Env: actionsEnv(), BaseURL: "http://127.0.0.1:1"}
	meta, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "9001", meta.BuildID)
	assert.Nil(t, meta.RunCreatedAt)
}

const runBody = `{
	"id": 9001,
	"workflow_id": 555,
	"head_branch": "feature/login",
	"created_at": "2024-12-01T08:00:00Z",
	"repository": {
		"id": 123,
		"name": "orders",
		"html_url": "https://github.com/acme/orders",
		"owner": {"id": 77}
	}
}`

func TestResolve_OverlaysWorkflowRun(t *testing.T) {
	var gotPath, gotAuth, gotAccept, gotVersion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotVersion = r.Header.Get("X-GitHub-Api-Version")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(runBody))
	}))
	defer srv.Close()

	e := actionsEnv()
	e[EnvToken] = "ghs_secret"
	e[EnvRepositoryID] = ""
	e[EnvOwnerID] = ""

	r := &Resolver{Env: e, HTTPClient: srv.Client(), BaseURL: srv.URL + "/"}
	meta, err := r.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/repos/acme/orders/actions/runs/9001", gotPath)
	assert.Equal(t, "Bearer ghs_secret", gotAuth)
	assert.Equal(t, githubAcceptHeader, gotAccept)
	assert.Equal(t, githubAPIVersion, gotVersion)

	assert.Equal(t, "77", meta.OrgID)
	assert.Equal(t, "123", meta.RepoID)
	assert.Equal(t, "orders", meta.RepoName)
	assert.Equal(t, "feature/login", meta.BranchName)
	assert.Equal(t, "refs/heads/main", meta.BranchRef)
	assert.Equal(t, "9001", meta.BuildID)
	assert.Equal(t, "555", meta.BuildDefinitionID)
	require.NotNil(t, meta.RunCreatedAt)
	assert.True(t, meta.RunCreatedAt.Equal(time.Date(2024, 12, 1, 8, 0, 0, 0, time.UTC)))
}

func TestResolve_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer srv.Close()

	e := actionsEnv()
	e[EnvToken] = "ghs_secret"

	r := &Resolver{Env: e, HTTPClient: srv.Client(), BaseURL: srv.URL}
	_, err := r.Resolve(context.Background())

	var uerr *UpstreamMetadataError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, http.StatusNotFound, uerr.Status)
	assert.Equal(t, `{"message":"Not Found"}`, uerr.Body)
	assert.Contains(t, err.Error(), "404")
}

func TestResolve_TokenRequiresRunID(t *testing.T) {
	e := actionsEnv()
	e[EnvToken] = "ghs_secret"
	delete(e, EnvRunID)

	_, err := (&Resolver{Env: e}).Resolve(context.Background())
	var missing *env.MissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, EnvRunID, missing.Key)
}

func TestRepoName(t *testing.T) {
	assert.Equal(t, "orders", repoName("acme/orders"))
	assert.Equal(t, "orders", repoName("orders"))
}
