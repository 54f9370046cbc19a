package api

import (
	"testing"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signedToken builds an HS256 JWT with the given expiry. The pipeline never
// verifies signatures, so any key works.
func signedToken(t *testing.T, expiry time.Time) string {
	t.Helper()

	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: []byte("0123456789abcdef0123456789abcdef")},
		nil,
	)
	require.NoError(t, err)

	token, err := jwt.Signed(signer).
		Claims(jwt.Claims{Expiry: jwt.NewNumericDate(expiry)}).
		Serialize()
	require.NoError(t, err)

	return token
}

func TestExpiringSoon(t *testing.T) {
	leeway := 30 * time.Second

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{
			name:  "expires inside leeway",
			token: signedToken(t, time.Now().Add(10*time.Second)),
			want:  true,
		},
		{
			name:  "already expired",
			token: signedToken(t, time.Now().Add(-time.Minute)),
			want:  true,
		},
		{
			name:  "expires well beyond leeway",
			token: signedToken(t, time.Now().Add(time.Hour)),
			want:  false,
		},
		{
			name:  "opaque token",
			token: "not-a-jwt",
			want:  false,
		},
		{
			name:  "empty token",
			token: "",
			want:  false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, expiringSoon(tc.token, leeway))
		})
	}
}

func TestExpiringSoonNoExpiryClaim(t *testing.T) {
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: []byte("0123456789abcdef0123456789abcdef")},
		nil,
	)
	require.NoError(t, err)

	token, err := jwt.Signed(signer).Claims(jwt.Claims{Subject: "user-1"}).Serialize()
	require.NoError(t, err)

	assert.False(t, expiringSoon(token, 30*time.Second))
}
