package insights

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/insights-build-reporter/pkg/buildreport"
	"github.com/dkoosis/insights-build-reporter/pkg/specmatic"
)

func sampleReport() *buildreport.Report {
	meta := specmatic.BuildMetadata{OrgID: "o1", RepoName: "r1", RepoID: "1", RepoURL: "https://x/r1", BranchName: "main"}
	return buildreport.Assemble(meta, buildreport.Inputs{}, buildreport.WithClock(func() time.Time {
		return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	}))
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestNewClient_UsesOrigin(t *testing.T) {
	c := NewClient(mustURL(t, "https://insights.example.com/some/path?x=1"), false)
	assert.Equal(t, "https://insights.example.com/api/github-build-report", c.Endpoint())
}

func TestPost_Success(t *testing.T) {
	var got map[string]any
	var contentType, method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		contentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(mustURL(t, srv.URL), false)
	require.NoError(t, c.Post(context.Background(), sampleReport()))

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, ReportPath, path)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "r1", got["repo"])
	assert.Equal(t, "2025-01-02T03:04:05Z", got["createdAt"])
}

func TestPost_NonOKIsDeliveryError(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"created is not success", http.StatusCreated},
		{"bad request", http.StatusBadRequest},
		{"server error", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`bad "repo"`))
			}))
			defer srv.Close()

			err := NewClient(mustURL(t, srv.URL), false).Post(context.Background(), sampleReport())
			var derr *DeliveryError
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, tt.status, derr.Status)
			assert.Equal(t, `bad "repo"`, derr.Body)
			assert.Contains(t, err.Error(), `failed to post build report to Specmatic Insights`)
			assert.Contains(t, err.Error(), `"bad \"repo\""`)
		})
	}
}

func TestPost_TLSVerification(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	host := mustURL(t, srv.URL)

	err := NewClient(host, false).Post(context.Background(), sampleReport())
	require.Error(t, err, "self-signed certificate is rejected by default")
	var derr *DeliveryError
	assert.NotErrorAs(t, err, &derr)

	require.NoError(t, NewClient(host, true).Post(context.Background(), sampleReport()))
}

func TestNewClient_NoVerifyIgnoredForHTTP(t *testing.T) {
	base := &http.Client{}
	c := NewClient(mustURL(t, "http://localhost:9000"), true, WithHTTPClient(base))
	assert.Same(t, base, c.httpClient)
}

func TestPost_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewClient(mustURL(t, srv.URL), false).Post(ctx, sampleReport())
	assert.ErrorIs(t, err, context.Canceled)
}
