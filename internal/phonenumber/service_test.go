package phonenumber

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

func TestAssign(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/phone-numbers/tenant/t1/assign", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a1", body["agent_id"])
		assert.Equal(t, "+15551230000", body["phone_number"])

		_ = json.NewEncoder(w).Encode(PhoneNumber{ID: "p1", TenantID: "t1", AgentID: "a1", PhoneNumber: "+15551230000"})
	})

	assigned, err := newTestService(t, mux).Assign(t.Context(), "t1", "a1", "+15551230000")

	require.NoError(t, err)
	assert.Equal(t, "a1", assigned.AgentID)
}

func TestUnassign(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/v1/phone-numbers/agent/a1/unassign", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, newTestService(t, mux).Unassign(t.Context(), "a1"))
}

func TestByAgent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/phone-numbers/agent/a1", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(PhoneNumber{ID: "p1", AgentID: "a1", PhoneNumber: "+15551230000"})
	})

	n, err := newTestService(t, mux).ByAgent(t.Context(), "a1")

	require.NoError(t, err)
	assert.Equal(t, "+15551230000", n.PhoneNumber)
}
