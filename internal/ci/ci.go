// Package ci derives build metadata from the GitHub Actions environment.
//
// Without a GITHUB_TOKEN the metadata comes from environment variables only
// and a missing run id is synthesized. With a token, one authenticated call
// to the workflow run endpoint supplies the numeric ids, the head branch and
// the run's creation time.
package ci

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dkoosis/insights-build-reporter/internal/env"
	"github.com/dkoosis/insights-build-reporter/pkg/specmatic"
)

// GitHub Actions environment variables.
const (
	EnvToken           = "GITHUB_TOKEN"
	EnvRepository      = "GITHUB_REPOSITORY"
	EnvRepositoryID    = "GITHUB_REPOSITORY_ID"
	EnvOwnerID         = "GITHUB_REPOSITORY_OWNER_ID"
	EnvServerURL       = "GITHUB_SERVER_URL"
	EnvHeadRef         = "GITHUB_HEAD_REF"
	EnvRefName         = "GITHUB_REF_NAME"
	EnvRef             = "GITHUB_REF"
	EnvRunID           = "GITHUB_RUN_ID"
	EnvWorkflowRef     = "GITHUB_WORKFLOW_REF"
	EnvWorkflow        = "GITHUB_WORKFLOW"
	defaultGitHubAPI   = "https://api.github.com"
	defaultGitHubHost  = "https://github.com"
	githubAPIVersion   = "2022-11-28"
	githubAcceptHeader = "application/vnd.github+json"
)

// Resolver builds BuildMetadata for the current CI run.
type Resolver struct {
	Env        env.Provider
	HTTPClient *http.Client // base client; nil uses http.DefaultClient
	BaseURL    string       // GitHub REST root; empty uses https://api.github.com
	NewID      func() string
}

// New returns a Resolver over the process environment.
func New(baseURL string) *Resolver {
	return &Resolver{Env: env.OS{}, BaseURL: baseURL}
}

// FromEnv reads metadata from environment variables only. A missing run id
// is replaced by a random one.
func (r *Resolver) FromEnv() (specmatic.BuildMetadata, error) {
	meta := r.envMetadata()
	if meta.BuildID == "" {
		meta.BuildID = r.newID()
	}
	return validate(meta)
}

// Resolve returns metadata for the current run. With GITHUB_TOKEN set it
// overlays the run record fetched from the GitHub API.
func (r *Resolver) Resolve(ctx context.Context) (specmatic.BuildMetadata, error) {
	token := env.First(r.Env, EnvToken)
	if token == "" {
		return r.FromEnv()
	}

	repository, err := env.Require(r.Env, EnvRepository)
	if err != nil {
		return specmatic.BuildMetadata{}, err
	}
	runID, err := env.Require(r.Env, EnvRunID)
	if err != nil {
		return specmatic.BuildMetadata{}, err
	}

	run, err := r.fetchRun(ctx, token, repository, runID)
	if err != nil {
		return specmatic.BuildMetadata{}, err
	}

	meta := r.envMetadata()
	run.overlay(&meta)
	return validate(meta)
}

func (r *Resolver) envMetadata() specmatic.BuildMetadata {
	repository := env.First(r.Env, EnvRepository)
	server := strings.TrimRight(env.First(r.Env, EnvServerURL), "/")
	if server == "" {
		server = defaultGitHubHost
	}

	meta := specmatic.BuildMetadata{
		OrgID:             env.First(r.Env, EnvOwnerID),
		RepoID:            env.First(r.Env, EnvRepositoryID),
		BranchName:        env.First(r.Env, EnvHeadRef, EnvRefName),
		BranchRef:         env.First(r.Env, EnvRef),
		BuildID:           env.First(r.Env, EnvRunID),
		BuildDefinitionID: env.First(r.Env, EnvWorkflowRef, EnvWorkflow),
	}
	if repository != "" {
		meta.RepoName = repoName(repository)
		meta.RepoURL = server + "/" + repository
	}
	return meta
}

func (r *Resolver) newID() string {
	if r.NewID != nil {
		return r.NewID()
	}
	return uuid.NewString()
}

// repoName returns the part of owner/name after the slash.
func repoName(repository string) string {
	if _, name, ok := strings.Cut(repository, "/"); ok {
		return name
	}
	return repository
}

func validate(meta specmatic.BuildMetadata) (specmatic.BuildMetadata, error) {
	out, err := specmatic.ValidateBuildMetadata(meta.Tree())
	if err != nil {
		return specmatic.BuildMetadata{}, err
	}
	return out, nil
}
