// Package session owns the client-side authentication state: the persisted
// token pair, the current user, and the refresh exchange. The Manager is the
// only writer of the token store.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/google/uuid"

	slogctx "github.com/veqryn/slog-context"

	"github.com/coding1100/appointment-setter-console/internal/api"
	"github.com/coding1100/appointment-setter-console/internal/config"
	"github.com/coding1100/appointment-setter-console/internal/serviceerr"
	"github.com/coding1100/appointment-setter-console/internal/tokenstore"
)

const authBasePath = "/api/v1/auth"

type Manager struct {
	tokens     tokenstore.Store
	httpClient *http.Client
	baseURL    string
	onExpired  func(context.Context)

	mu         sync.Mutex
	user       *User
	rehydrated bool
	refreshing *refreshResult
}

// refreshResult is the shared outcome of one in-flight refresh exchange.
// Every caller that hits an unauthorized response while it is pending awaits
// this result instead of starting its own exchange.
type refreshResult struct {
	done  chan struct{}
	token string
	err   error
}

type Option func(*Manager)

// WithExpiredHandler installs the hook fired when the refresh token itself is
// rejected and the session is torn down. The CLI uses it to tell the operator
// to log in again.
func WithExpiredHandler(fn func(context.Context)) Option {
	return func(m *Manager) { m.onExpired = fn }
}

func NewManager(cfg *config.API, tokens tokenstore.Store, httpClient *http.Client, opts ...Option) *Manager {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	m := &Manager{
		tokens:     tokens,
		httpClient: httpClient,
		baseURL:    api.NormalizePath(cfg.BaseURL),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Login exchanges credentials for a token pair and the user record. Both
// tokens are stored in a single overwrite; on any failure nothing is stored.
func (m *Manager) Login(ctx context.Context, creds Credentials) (Session, error) {
	var result struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		User         User   `json:"user"`
	}

	if err := m.post(ctx, authBasePath+"/login", "", creds, &result); err != nil {
		return Session{}, classifyLoginError(err)
	}

	pair := tokenstore.Pair{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}
	if err := m.tokens.Save(ctx, pair); err != nil {
		return Session{}, fmt.Errorf("storing tokens: %w", err)
	}

	m.mu.Lock()
	user := result.User
	m.user = &user
	m.rehydrated = true
	m.mu.Unlock()

	slogctx.Info(ctx, "Logged in", "username", result.User.Username)

	return Session{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         result.User,
	}, nil
}

// Register creates an operator account. It does not establish a session; the
// caller is expected to log in afterwards.
func (m *Manager) Register(ctx context.Context, profile Profile) (User, error) {
	var user User
	if err := m.post(ctx, authBasePath+"/register", "", profile, &user); err != nil {
		return User{}, api.StatusError(err)
	}

	slogctx.Info(ctx, "Registered account", "username", user.Username)

	return user, nil
}

// Rehydrate restores the session from persisted tokens, once per process. A
// stored token that no longer resolves to a user is cleared; a stale token
// must never survive paired with a missing user.
func (m *Manager) Rehydrate(ctx context.Context) error {
	m.mu.Lock()
	if m.rehydrated {
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.rehydrated = true
		m.mu.Unlock()
	}()

	pair, err := m.tokens.Load(ctx)
	if errors.Is(err, tokenstore.ErrNoTokens) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading stored tokens: %w", err)
	}

	var user User
	if err := m.get(ctx, authBasePath+"/me", pair.AccessToken, &user); err != nil {
		slogctx.Warn(ctx, "Session rehydration failed, clearing stored tokens", "error", err)

		if clearErr := m.tokens.Clear(ctx); clearErr != nil {
			return fmt.Errorf("clearing tokens after failed rehydration: %w", clearErr)
		}

		return nil
	}

	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()

	slogctx.Debug(ctx, "Session rehydrated", "username", user.Username)

	return nil
}

// Logout notifies the backend to invalidate the refresh token, then clears
// local state. The notification is best effort; logging out always succeeds
// locally.
func (m *Manager) Logout(ctx context.Context) error {
	pair, err := m.tokens.Load(ctx)
	if err != nil && !errors.Is(err, tokenstore.ErrNoTokens) {
		// An unreadable store must not block logout; skip the backend
		// notification and clear whatever is there.
		slogctx.Warn(ctx, "Loading stored tokens failed", "error", err)
	}

	if pair.RefreshToken != "" {
		body := map[string]string{"refresh_token": pair.RefreshToken}
		if err := m.post(ctx, authBasePath+"/logout", pair.AccessToken, body, nil); err != nil {
			slogctx.Warn(ctx, "Backend logout failed", "error", err)
		}
	}

	if err := m.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("clearing tokens: %w", err)
	}

	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()

	slogctx.Info(ctx, "Logged out")

	return nil
}

// Snapshot returns the read-only session projection.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	var user *User
	if m.user != nil {
		u := *m.user
		user = &u
	}

	return Snapshot{
		User:          user,
		Rehydrated:    m.rehydrated,
		Authenticated: m.user != nil,
	}
}

// AccessToken implements api.Credentials.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	pair, err := m.tokens.Load(ctx)
	if errors.Is(err, tokenstore.ErrNoTokens) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading stored tokens: %w", err)
	}

	return pair.AccessToken, nil
}

// Refresh implements api.Credentials. Concurrent callers are coalesced onto a
// single exchange; only the first initiates the call, the rest await its
// outcome.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	m.mu.Lock()
	if pending := m.refreshing; pending != nil {
		m.mu.Unlock()

		select {
		case <-pending.done:
			return pending.token, pending.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	result := &refreshResult{done: make(chan struct{})}
	m.refreshing = result
	m.mu.Unlock()

	result.token, result.err = m.refresh(ctx)

	m.mu.Lock()
	m.refreshing = nil
	m.mu.Unlock()
	close(result.done)

	api.RecordRefresh(ctx, result.err == nil)

	return result.token, result.err
}

func (m *Manager) refresh(ctx context.Context) (string, error) {
	pair, err := m.tokens.Load(ctx)
	if errors.Is(err, tokenstore.ErrNoTokens) || (err == nil && pair.RefreshToken == "") {
		return "", serviceerr.ErrRefreshFailed
	}
	if err != nil {
		return "", fmt.Errorf("loading stored tokens: %w", err)
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}

	body := map[string]string{"refresh_token": pair.RefreshToken}
	if err := m.post(ctx, authBasePath+"/refresh", "", body, &result); err != nil {
		var apiErr *serviceerr.APIError
		if errors.As(err, &apiErr) {
			// The backend rejected the refresh token; the session is over.
			m.expire(ctx)
			return "", fmt.Errorf("%w: %s", serviceerr.ErrRefreshFailed, apiErr.Detail)
		}

		// Transient network failure: keep the session, surface the error.
		return "", fmt.Errorf("refreshing access token: %w", err)
	}

	// The refresh token is reused; only the access token is replaced, still
	// as one full overwrite of the pair.
	newPair := tokenstore.Pair{
		AccessToken:  result.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
	if err := m.tokens.Save(ctx, newPair); err != nil {
		return "", fmt.Errorf("storing refreshed tokens: %w", err)
	}

	slogctx.Info(ctx, "Refreshed access token")

	return result.AccessToken, nil
}

func (m *Manager) expire(ctx context.Context) {
	if err := m.tokens.Clear(ctx); err != nil {
		slogctx.Error(ctx, "Failed to clear tokens for expired session", "error", err)
	}

	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()

	if m.onExpired != nil {
		m.onExpired(ctx)
	}
}

func classifyLoginError(err error) error {
	var apiErr *serviceerr.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", serviceerr.ErrInvalidCredentials, apiErr.Detail)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", serviceerr.ErrRateLimited, apiErr.Detail)
	default:
		return err
	}
}

// post and get talk to the auth endpoints directly. Auth calls must not run
// through the retrying pipeline: login and register are unauthenticated, and
// a rehydration failure clears tokens instead of refreshing them.
func (m *Manager) post(ctx context.Context, path, token string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+api.NormalizePath(path), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return m.send(req, token, out)
}

func (m *Manager) get(ctx context.Context, path, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+api.NormalizePath(path), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	return m.send(req, token, out)
}

func (m *Manager) send(req *http.Request, token string, out any) error {
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return api.DecodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

var _ api.Credentials = (*Manager)(nil)
