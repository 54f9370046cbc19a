package configdump

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestRedactSecrets(t *testing.T) {
	cfg := map[string]any{
		"api": map[string]any{
			"baseURL": "http://localhost:8001",
		},
		"tokenStore": map[string]any{
			"valkey": map[string]any{
				"password": "hunter2",
				"user":     "console",
			},
		},
		"twilioAuthToken": "tok",
		"emptySecret":     "",
	}

	redactSecrets(cfg)

	want := map[string]any{
		"api": map[string]any{
			"baseURL": "http://localhost:8001",
		},
		"tokenStore": map[string]any{
			"valkey": map[string]any{
				"password": redacted,
				"user":     "console",
			},
		},
		"twilioAuthToken": redacted,
		"emptySecret":     "",
	}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("redacted config mismatch (-want +got):\n%s", diff)
	}
}

func TestSecretKey(t *testing.T) {
	assert.True(t, secretKey("password"))
	assert.True(t, secretKey("AuthToken"))
	assert.True(t, secretKey("clientSecret"))
	assert.True(t, secretKey("credentials"))
	assert.False(t, secretKey("baseURL"))
	assert.False(t, secretKey("user"))
}
