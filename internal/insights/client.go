// Package insights uploads build reports to a Specmatic Insights server.
package insights

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dkoosis/insights-build-reporter/internal/version"
	"github.com/dkoosis/insights-build-reporter/pkg/buildreport"
)

// ReportPath is the upload endpoint relative to the host origin.
const ReportPath = "/api/github-build-report"

const (
	defaultTimeout = 60 * time.Second
	maxErrorBody   = 64 << 10
)

// DeliveryError reports a response other than 200 OK.
type DeliveryError struct {
	Status int
	Body   string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to post build report to Specmatic Insights: %d %s", e.Status, strconv.Quote(e.Body))
}

// Client posts reports to one Insights host.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient targets host's origin; any path on host is ignored. noVerify
// disables certificate verification for https hosts.
func NewClient(host *url.URL, noVerify bool, opts ...Option) *Client {
	origin := url.URL{Scheme: host.Scheme, Host: host.Host}
	c := &Client{
		endpoint:   origin.String() + ReportPath,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if noVerify && host.Scheme == "https" {
		c.httpClient = insecure(c.httpClient)
	}
	return c
}

// Endpoint returns the URL reports are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// insecure returns a copy of hc whose transport skips TLS verification.
func insecure(hc *http.Client) *http.Client {
	var transport *http.Transport
	switch t := hc.Transport.(type) {
	case *http.Transport:
		transport = t.Clone()
	default:
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	}
	transport.TLSClientConfig.InsecureSkipVerify = true // #nosec G402 - opt-in via --no-verify

	out := *hc
	out.Transport = transport
	return &out
}

// Post sends report as JSON. Anything but 200 is a *DeliveryError.
func (c *Client) Post(ctx context.Context, report *buildreport.Report) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode build report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post build report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &DeliveryError{Status: resp.StatusCode, Body: string(data)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
