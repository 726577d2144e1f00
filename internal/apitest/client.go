package apitest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"signup-qa/internal/pkg/response"
	"signup-qa/internal/pkg/xerrors"
)

// Client is the session-scoped HTTP helper shared by all test cases. Its
// configuration is read-only after construction; test cases must not
// mutate it.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client from the suite config.
func NewClient(cfg Config) *Client {
	return NewClientForURL(cfg.BaseURL, cfg.APITimeout)
}

// NewClientForURL creates a client against an explicit base URL.
func NewClientForURL(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Close releases the client's transport resources. Call once at session
// end.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// PostJSON sends a JSON POST and wraps whatever comes back into an
// ApiResult. The payload is marshaled as-is with no client-side
// validation, so tests can characterize how the server validates.
func (c *Client) PostJSON(ctx context.Context, path string, payload any) (*ApiResult, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "signup-qa-tests/1.0")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, xerrors.NewTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, xerrors.NewTransportError(err)
	}

	result := &ApiResult{
		StatusCode: resp.StatusCode,
		Raw:        raw,
		OK:         resp.StatusCode >= 200 && resp.StatusCode < 300,
		Duration:   time.Since(start),
	}

	// Bodies that are not the JSON envelope stay available as raw text.
	var env response.Envelope
	if json.Unmarshal(raw, &env) == nil {
		result.Body = &env
	}

	return result, nil
}

// Status safely returns the HTTP status code (0 if res is nil).
func Status(res *ApiResult) int {
	if res == nil {
		return 0
	}
	return res.StatusCode
}
