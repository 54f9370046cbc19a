// Package tokenstore persists the session token pair across process restarts.
package tokenstore

import (
	"context"
	"errors"
)

// ErrNoTokens is returned by Load when no pair is stored.
var ErrNoTokens = errors.New("no stored tokens")

// Pair is the access/refresh token pair. The two values are always written
// together in a single overwrite so readers never observe a torn pair.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Store interface {
	Load(ctx context.Context) (Pair, error)
	Save(ctx context.Context, pair Pair) error
	Clear(ctx context.Context) error
}
