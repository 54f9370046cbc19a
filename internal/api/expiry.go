package api

import (
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
)

// Algorithms the platform's identity service is known to sign with.
var jwsSigAlgs = []jose.SignatureAlgorithm{
	jose.RS256, jose.RS384, jose.RS512,
	jose.ES256, jose.ES384, jose.ES512,
	jose.PS256, jose.PS384, jose.PS512,
	jose.HS256,
}

// expiringSoon reports whether the access token is a JWT whose exp claim
// falls within the leeway window. Opaque tokens and tokens without exp are
// never considered expiring; the reactive unauthorized path covers them.
func expiringSoon(token string, leeway time.Duration) bool {
	parsed, err := jwt.ParseSigned(token, jwsSigAlgs)
	if err != nil {
		return false
	}

	var claims jwt.Claims
	if err := parsed.UnsafeClaimsWithoutVerification(&claims); err != nil {
		return false
	}

	if claims.Expiry == nil {
		return false
	}

	return time.Until(claims.Expiry.Time()) < leeway
}
