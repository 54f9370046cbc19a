// Package tokenstorevalkey stores the token pair in valkey, for consoles that
// share a session across hosts (team kiosks, web terminals).
package tokenstorevalkey

import (
	"context"
	"fmt"
	"strings"

	"github.com/valkey-io/valkey-go"

	"github.com/coding1100/appointment-setter-console/internal/tokenstore"
)

const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
)

type Store struct {
	valkey valkey.Client
	prefix string
}

func NewStore(valkeyClient valkey.Client, prefix string) *Store {
	prefix = strings.TrimSuffix(prefix, ":")
	return &Store{
		valkey: valkeyClient,
		prefix: prefix,
	}
}

func (s *Store) Load(ctx context.Context) (tokenstore.Pair, error) {
	cmd := s.valkey.B().Mget().Key(s.key(accessTokenKey), s.key(refreshTokenKey)).Build()

	values, err := s.valkey.Do(ctx, cmd).ToArray()
	if err != nil {
		return tokenstore.Pair{}, fmt.Errorf("executing mget command: %w", err)
	}

	if len(values) != 2 {
		return tokenstore.Pair{}, fmt.Errorf("unexpected mget reply length: %d", len(values))
	}

	access, err := asString(values[0])
	if err != nil {
		return tokenstore.Pair{}, err
	}

	refresh, err := asString(values[1])
	if err != nil {
		return tokenstore.Pair{}, err
	}

	if access == "" && refresh == "" {
		return tokenstore.Pair{}, tokenstore.ErrNoTokens
	}

	return tokenstore.Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// Save writes both values in one MSET so a concurrent reader never sees a
// half-replaced pair.
func (s *Store) Save(ctx context.Context, pair tokenstore.Pair) error {
	cmd := s.valkey.B().Mset().
		KeyValue().
		KeyValue(s.key(accessTokenKey), pair.AccessToken).
		KeyValue(s.key(refreshTokenKey), pair.RefreshToken).
		Build()

	if err := s.valkey.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("executing mset command: %w", err)
	}

	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	cmd := s.valkey.B().Del().Key(s.key(accessTokenKey), s.key(refreshTokenKey)).Build()
	if err := s.valkey.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("executing del command: %w", err)
	}

	return nil
}

func (s *Store) key(name string) string {
	return fmt.Sprintf("%s:token:%s", s.prefix, name)
}

func asString(msg valkey.ValkeyMessage) (string, error) {
	value, err := msg.ToString()
	if err != nil {
		valkeyErr, ok := valkey.IsValkeyErr(err)
		if ok && valkeyErr.IsNil() {
			return "", nil
		}

		return "", fmt.Errorf("reading mget element: %w", err)
	}

	return value, nil
}
