package ci

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/dkoosis/insights-build-reporter/internal/version"
	"github.com/dkoosis/insights-build-reporter/pkg/specmatic"
)

// maxErrorBody caps how much of a failed response is kept.
const maxErrorBody = 64 << 10

// UpstreamMetadataError reports a non-success response from the run
// metadata endpoint.
type UpstreamMetadataError struct {
	URL    string
	Status int
	Body   string
}

func (e *UpstreamMetadataError) Error() string {
	return fmt.Sprintf("fetch workflow run %s: %d %s", e.URL, e.Status, strconv.Quote(e.Body))
}

// workflowRun is the subset of GET /repos/{owner}/{repo}/actions/runs/{id}
// that feeds BuildMetadata.
type workflowRun struct {
	ID         int64     `json:"id"`
	WorkflowID int64     `json:"workflow_id"`
	HeadBranch string    `json:"head_branch"`
	CreatedAt  time.Time `json:"created_at"`
	Repository struct {
		ID      int64  `json:"id"`
		Name    string `json:"name"`
		HTMLURL string `json:"html_url"`
		Owner   struct {
			ID int64 `json:"id"`
		} `json:"owner"`
	} `json:"repository"`
}

// overlay copies the fields the run record knows onto meta.
func (run *workflowRun) overlay(meta *specmatic.BuildMetadata) {
	setID := func(dst *string, v int64) {
		if v != 0 {
			*dst = strconv.FormatInt(v, 10)
		}
	}
	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	setID(&meta.OrgID, run.Repository.Owner.ID)
	setString(&meta.RepoName, run.Repository.Name)
	setID(&meta.RepoID, run.Repository.ID)
	setString(&meta.RepoURL, run.Repository.HTMLURL)
	setString(&meta.BranchName, run.HeadBranch)
	setID(&meta.BuildID, run.ID)
	setID(&meta.BuildDefinitionID, run.WorkflowID)
	if !run.CreatedAt.IsZero() {
		created := run.CreatedAt.UTC()
		meta.RunCreatedAt = &created
	}
}

func (r *Resolver) runURL(repository, runID string) string {
	base := strings.TrimRight(r.BaseURL, "/")
	if base == "" {
		base = defaultGitHubAPI
	}
	owner, name, _ := strings.Cut(repository, "/")
	return fmt.Sprintf("%s/repos/%s/%s/actions/runs/%s",
		base, url.PathEscape(owner), url.PathEscape(name), url.PathEscape(runID))
}

// client wraps the base client with a bearer token source.
func (r *Resolver) client(ctx context.Context, token string) *http.Client {
	if r.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, r.HTTPClient)
	}
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
}

func (r *Resolver) fetchRun(ctx context.Context, token, repository, runID string) (*workflowRun, error) {
	endpoint := r.runURL(repository, runID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build workflow run request: %w", err)
	}
	req.Header.Set("Accept", githubAcceptHeader)
	req.Header.Set("X-GitHub-Api-Version", githubAPIVersion)
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := r.client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch workflow run: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &UpstreamMetadataError{URL: endpoint, Status: resp.StatusCode, Body: string(body)}
	}

	var run workflowRun
	if err := json.NewDecoder(resp.Body).Decode(&run); err != nil {
		return nil, fmt.Errorf("decode workflow run: %w", err)
	}
	return &run, nil
}
