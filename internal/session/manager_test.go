package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coding1100/appointment-setter-console/internal/config"
	"github.com/coding1100/appointment-setter-console/internal/serviceerr"
	"github.com/coding1100/appointment-setter-console/internal/tokenstore"
	tokenstoremock "github.com/coding1100/appointment-setter-console/internal/tokenstore/mock"
)

func newTestManager(t *testing.T, handler http.Handler, store tokenstore.Store, opts ...Option) *Manager {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.API{BaseURL: server.URL, Timeout: 5 * time.Second}

	return NewManager(cfg, store, server.Client(), opts...)
}

func TestLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice", creds.Username)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access-1",
			"refresh_token": "refresh-1",
			"user":          User{ID: "u1", Username: "alice", Email: "alice@example.com"},
		})
	})

	store := tokenstoremock.NewInMemStore()
	m := newTestManager(t, mux, store)

	sess, err := m.Login(t.Context(), Credentials{Username: "alice", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "access-1", sess.AccessToken)
	assert.Equal(t, "alice", sess.User.Username)

	pair, set := store.TPair()
	assert.True(t, set, "both tokens stored in one overwrite")
	assert.Equal(t, "access-1", pair.AccessToken)
	assert.Equal(t, "refresh-1", pair.RefreshToken)

	snap := m.Snapshot()
	assert.True(t, snap.Authenticated)
	assert.True(t, snap.Rehydrated)
	assert.Equal(t, "alice", snap.User.Username)
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		errAssert assert.ErrorAssertionFunc
	}{
		{
			name:   "wrong password",
			status: http.StatusUnauthorized,
			body:   `{"detail": "invalid username or password"}`,
			errAssert: func(t assert.TestingT, err error, _ ...any) bool {
				return assert.ErrorIs(t, err, serviceerr.ErrInvalidCredentials)
			},
		},
		{
			name:   "disabled account",
			status: http.StatusForbidden,
			body:   `{"detail": "account disabled"}`,
			errAssert: func(t assert.TestingT, err error, _ ...any) bool {
				return assert.ErrorIs(t, err, serviceerr.ErrInvalidCredentials)
			},
		},
		{
			name:   "too many attempts",
			status: http.StatusTooManyRequests,
			body:   `{"detail": "too many attempts"}`,
			errAssert: func(t assert.TestingT, err error, _ ...any) bool {
				return assert.ErrorIs(t, err, serviceerr.ErrRateLimited)
			},
		},
		{
			name:   "validation error",
			status: http.StatusUnprocessableEntity,
			body:   `{"detail": [{"loc": ["body", "username"], "msg": "field required"}]}`,
			errAssert: func(t assert.TestingT, err error, _ ...any) bool {
				var validationErr *serviceerr.ValidationError
				return assert.ErrorAs(t, err, &validationErr)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			store := tokenstoremock.NewInMemStore()
			m := newTestManager(t, handler, store)

			_, err := m.Login(t.Context(), Credentials{Username: "alice", Password: "bad"})

			tc.errAssert(t, err)

			_, set := store.TPair()
			assert.False(t, set, "nothing stored on a failed login")
			assert.False(t, m.Snapshot().Authenticated)
		})
	}
}

func TestRegisterDoesNotEstablishSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var profile Profile
		require.NoError(t, json.NewDecoder(r.Body).Decode(&profile))

		_ = json.NewEncoder(w).Encode(User{ID: "u2", Username: profile.Username})
	})

	store := tokenstoremock.NewInMemStore()
	m := newTestManager(t, mux, store)

	user, err := m.Register(t.Context(), Profile{Username: "bob", Email: "bob@example.com", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, 0, store.TSaves(), "registration stores no tokens")
	assert.False(t, m.Snapshot().Authenticated)
}

func TestRehydrateWithoutTokens(t *testing.T) {
	m := newTestManager(t, http.NewServeMux(), tokenstoremock.NewInMemStore())

	require.NoError(t, m.Rehydrate(t.Context()))

	snap := m.Snapshot()
	assert.True(t, snap.Rehydrated)
	assert.False(t, snap.Authenticated)
}

func TestRehydrateRestoresUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(User{ID: "u1", Username: "alice"})
	})

	store := tokenstoremock.NewInMemStore(tokenstoremock.WithPair(tokenstore.Pair{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}))
	m := newTestManager(t, mux, store)

	require.NoError(t, m.Rehydrate(t.Context()))

	snap := m.Snapshot()
	assert.True(t, snap.Authenticated)
	assert.Equal(t, "alice", snap.User.Username)
}

func TestRehydrateClearsRejectedTokens(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/auth/me", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "token expired"}`))
	})

	store := tokenstoremock.NewInMemStore(tokenstoremock.WithPair(tokenstore.Pair{
		AccessToken:  "stale",
		RefreshToken: "stale-refresh",
	}))
	m := newTestManager(t, mux, store)

	require.NoError(t, m.Rehydrate(t.Context()))

	assert.Equal(t, 1, store.TClears(), "a token that resolves to no user must not survive")

	snap := m.Snapshot()
	assert.True(t, snap.Rehydrated)
	assert.False(t, snap.Authenticated)
}

func TestRehydrateRunsOnce(t *testing.T) {
	var calls int

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/auth/me", func(w http.ResponseWriter, _ *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(User{ID: "u1", Username: "alice"})
	})

	store := tokenstoremock.NewInMemStore(tokenstoremock.WithPair(tokenstore.Pair{AccessToken: "a", RefreshToken: "r"}))
	m := newTestManager(t, mux, store)

	require.NoError(t, m.Rehydrate(t.Context()))
	require.NoError(t, m.Rehydrate(t.Context()))

	assert.Equal(t, 1, calls)
}

func TestLogoutClearsLocallyDespiteBackendFailure(t *testing.T) {
	var sawRefreshToken string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		sawRefreshToken = body["refresh_token"]

		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail": "boom"}`))
	})

	store := tokenstoremock.NewInMemStore(tokenstoremock.WithPair(tokenstore.Pair{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}))
	m := newTestManager(t, mux, store)

	require.NoError(t, m.Logout(t.Context()))

	assert.Equal(t, "refresh-1", sawRefreshToken)
	assert.Equal(t, 1, store.TClears())
	assert.False(t, m.Snapshot().Authenticated)
}

func TestLogoutClearsCorruptTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"access_token": "a1", "ref`), 0o600))

	var backendCalled bool

	handler := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { backendCalled = true })

	store := tokenstore.NewFileStore(path)
	m := newTestManager(t, handler, store)

	require.NoError(t, m.Logout(t.Context()), "an unreadable store must not block logout")

	assert.False(t, backendCalled, "no usable refresh token, nothing to invalidate")
	assert.NoFileExists(t, path)
	assert.False(t, m.Snapshot().Authenticated)
}

func TestLogoutWithoutSession(t *testing.T) {
	var backendCalled bool

	handler := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { backendCalled = true })

	store := tokenstoremock.NewInMemStore()
	m := newTestManager(t, handler, store)

	require.NoError(t, m.Logout(t.Context()))

	assert.False(t, backendCalled, "no refresh token, nothing to invalidate")
	assert.Equal(t, 1, store.TClears())
}

func TestRefreshReplacesAccessToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "refresh-1", body["refresh_token"])

		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "access-2"})
	})

	store := tokenstoremock.NewInMemStore(tokenstoremock.WithPair(tokenstore.Pair{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}))
	m := newTestManager(t, mux, store)

	token, err := m.Refresh(t.Context())

	require.NoError(t, err)
	assert.Equal(t, "access-2", token)

	pair, _ := store.TPair()
	assert.Equal(t, "access-2", pair.AccessToken)
	assert.Equal(t, "refresh-1", pair.RefreshToken, "the refresh token is reused")
}

func TestRefreshRejectedTearsDownSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "refresh token revoked"}`))
	})

	var expired bool

	store := tokenstoremock.NewInMemStore(tokenstoremock.WithPair(tokenstore.Pair{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}))
	m := newTestManager(t, mux, store, WithExpiredHandler(func(context.Context) { expired = true }))

	_, err := m.Refresh(t.Context())

	require.ErrorIs(t, err, serviceerr.ErrRefreshFailed)
	assert.Equal(t, 1, store.TClears())
	assert.True(t, expired, "expiry hook fires when the backend rejects the refresh token")
	assert.False(t, m.Snapshot().Authenticated)
}

func TestRefreshNetworkFailureKeepsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	store := tokenstoremock.NewInMemStore(tokenstoremock.WithPair(tokenstore.Pair{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}))

	cfg := &config.API{BaseURL: server.URL, Timeout: time.Second}
	m := NewManager(cfg, store, &http.Client{Timeout: time.Second})

	_, err := m.Refresh(t.Context())

	require.Error(t, err)
	assert.NotErrorIs(t, err, serviceerr.ErrRefreshFailed)
	assert.Equal(t, 0, store.TClears(), "a transient failure must not destroy the session")
}

func TestRefreshWithoutRefreshToken(t *testing.T) {
	m := newTestManager(t, http.NewServeMux(), tokenstoremock.NewInMemStore())

	_, err := m.Refresh(t.Context())

	require.ErrorIs(t, err, serviceerr.ErrRefreshFailed)
}

func TestRefreshCoalescesConcurrentCallers(t *testing.T) {
	var refreshCalls int

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		refreshCalls++
		time.Sleep(50 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "access-2"})
	})

	store := tokenstoremock.NewInMemStore(tokenstoremock.WithPair(tokenstore.Pair{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}))
	m := newTestManager(t, mux, store)

	const callers = 8

	var wg sync.WaitGroup
	tokens := make([]string, callers)
	errs := make([]error, callers)

	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tokens[i], errs[i] = m.Refresh(t.Context())
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, refreshCalls, "concurrent callers share one exchange")
	for i := range callers {
		require.NoError(t, errs[i])
		assert.Equal(t, "access-2", tokens[i])
	}
}
