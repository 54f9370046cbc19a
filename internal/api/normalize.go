package api

import "strings"

// NormalizePath strips trailing slashes from a request path. The upstream
// reverse proxy answers trailing-slash paths with a 301, which breaks
// cross-origin calls, so no outbound path may end in one. The bare root path
// is kept as-is. The function is idempotent.
func NormalizePath(path string) string {
	if path == "/" {
		return path
	}

	return strings.TrimRight(path, "/")
}
