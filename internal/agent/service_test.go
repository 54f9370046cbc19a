package agent

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coding1100/appointment-setter-console/internal/api"
)

func newTestService(t *testing.T, handler http.Handler) *Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewService(api.NewClient(server.URL, api.WithHTTPClient(server.Client())))
}

func TestCreateUnderTenant(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/agents/tenant/t1", func(w http.ResponseWriter, r *http.Request) {
		var params Params
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(t, "Scheduler", params.Name)

		_ = json.NewEncoder(w).Encode(Agent{ID: "a1", TenantID: "t1", Name: params.Name})
	})

	created, err := newTestService(t, mux).Create(t.Context(), "t1", Params{Name: "Scheduler"})

	require.NoError(t, err)
	assert.Equal(t, "a1", created.ID)
	assert.Equal(t, "t1", created.TenantID)
}

func TestVoicesCached(t *testing.T) {
	var hits int

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/agents/voices/list", func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_ = json.NewEncoder(w).Encode([]Voice{{ID: "v1", Name: "Aria"}})
	})

	svc := newTestService(t, mux)

	first, err := svc.Voices(t.Context())
	require.NoError(t, err)

	second, err := svc.Voices(t.Context())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, hits, "the catalog is served from cache on repeat calls")
}

func TestActivateDeactivate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/agents/a1/activate", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(Agent{ID: "a1", IsActive: true})
	})
	mux.HandleFunc("POST /api/v1/agents/a1/deactivate", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(Agent{ID: "a1", IsActive: false})
	})

	svc := newTestService(t, mux)

	activated, err := svc.Activate(t.Context(), "a1")
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	deactivated, err := svc.Deactivate(t.Context(), "a1")
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)
}

func TestVoicePreview(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/agents/voices/preview/v1", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(VoicePreview{VoiceID: "v1", URL: "https://cdn.example.com/v1.mp3"})
	})

	preview, err := newTestService(t, mux).VoicePreview(t.Context(), "v1")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/v1.mp3", preview.URL)
}
