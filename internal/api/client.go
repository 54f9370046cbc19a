// Package api implements the HTTP request pipeline shared by every service
// client: path normalization, bearer attachment, and transparent recovery
// from access-token expiry.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	slogctx "github.com/veqryn/slog-context"
)

// Credentials is the pipeline's view of the session manager. The pipeline
// never mutates tokens itself; it asks the single owner.
type Credentials interface {
	// AccessToken returns the freshest stored access token, or "" when the
	// session is unauthenticated.
	AccessToken(ctx context.Context) (string, error)

	// Refresh exchanges the refresh token for a new access token. Concurrent
	// callers must be coalesced onto one in-flight exchange.
	Refresh(ctx context.Context) (string, error)
}

type Client struct {
	baseURL       string
	httpClient    *http.Client
	creds         Credentials
	refreshLeeway time.Duration
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithCredentials(creds Credentials) Option {
	return func(c *Client) { c.creds = creds }
}

// WithRefreshLeeway enables proactive refresh of JWT access tokens that
// expire within the given window.
func WithRefreshLeeway(leeway time.Duration) Option {
	return func(c *Client) { c.refreshLeeway = leeway }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    NormalizePath(baseURL),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Do sends one logical request. An unauthorized response triggers a single
// refresh-and-replay; the attempt count lives here, never on caller data, so
// a request that comes back unauthorized twice is rejected instead of looping.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
	}

	u := c.baseURL + NormalizePath(path)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	start := time.Now()
	retried := false
	for {
		resp, err := c.send(ctx, method, u, payload, retried)
		if err != nil {
			// Network errors, timeouts included, are surfaced as-is and
			// never retried by the pipeline.
			return fmt.Errorf("executing request: %w", err)
		}

		if resp.StatusCode == http.StatusUnauthorized && !retried && c.creds != nil {
			drain(resp)
			retried = true

			if _, err := c.creds.Refresh(ctx); err != nil {
				recordRequest(ctx, method, path, resp.StatusCode, time.Since(start))
				return fmt.Errorf("refreshing session: %w", err)
			}

			slogctx.Debug(ctx, "Replaying request after token refresh", "method", method, "path", path)

			continue
		}

		recordRequest(ctx, method, path, resp.StatusCode, time.Since(start))

		return decodeResponse(resp, out)
	}
}

func (c *Client) send(ctx context.Context, method, u string, payload []byte, retried bool) (*http.Response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	// The token is read at send time, not snapshotted earlier, so a replay
	// after refresh picks up the new token.
	if c.creds != nil {
		token, err := c.creds.AccessToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading access token: %w", err)
		}

		if token != "" && !retried && c.refreshLeeway > 0 && expiringSoon(token, c.refreshLeeway) {
			refreshed, err := c.creds.Refresh(ctx)
			if err != nil {
				// The reactive unauthorized path will settle it; keep the
				// stale token for this attempt.
				slogctx.Debug(ctx, "Proactive token refresh failed", "error", err)
			} else {
				token = refreshed
			}
		}

		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return c.httpClient.Do(req)
}

func decodeResponse(resp *http.Response, out any) error {
	defer drain(resp)

	if resp.StatusCode >= http.StatusBadRequest {
		return DecodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
