package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "no trailing slash", path: "/api/v1/tenants", want: "/api/v1/tenants"},
		{name: "single trailing slash", path: "/api/v1/tenants/", want: "/api/v1/tenants"},
		{name: "many trailing slashes", path: "/api/v1/tenants///", want: "/api/v1/tenants"},
		{name: "root stays root", path: "/", want: "/"},
		{name: "empty", path: "", want: ""},
		{name: "base url", path: "http://localhost:8001/", want: "http://localhost:8001"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizePath(tc.path)

			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, NormalizePath(got), "normalization must be idempotent")
		})
	}
}
