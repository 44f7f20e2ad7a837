package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"warehouse-platform/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// Codec encodes and decodes signed tokens. It is a pure function of the
// decoded secret key: no storage, no clock of its own.
type Codec struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodec reads key material exactly once. A missing or undecodable secret
// is a constructor error; callers must treat it as fatal at startup, because
// no token can ever be issued or verified without a valid key.
//
// TTLs are taken as-is. Zero means tokens expire the instant they are
// issued; production config must never rely on that fallback.
func NewCodec(cfg config.AuthConfig) (*Codec, error) {
	if cfg.JWTSecretBase64 == "" {
		return nil, ErrSecretKeyMissing
	}
	secret, err := base64.StdEncoding.DecodeString(cfg.JWTSecretBase64)
	if err != nil || len(secret) == 0 {
		return nil, fmt.Errorf("%w: bad base64", ErrSecretKeyMissing)
	}

	return &Codec{
		secret:     secret,
		issuer:     cfg.JWTIssuer,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}, nil
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

/* ===================== ENCODE ===================== */

// IssuePair mints an access/refresh pair for an identity. Deterministic for
// identical inputs: no random token IDs are embedded.
func (c *Codec) IssuePair(now time.Time, identity, role string, authorities []string) (TokenPair, error) {
	access, err := c.AccessToken(now, identity, role, authorities)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := c.RefreshToken(now, identity)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (c *Codec) AccessToken(now time.Time, identity, role string, authorities []string) (string, error) {
	return c.encode(now, TokenTypeAccess, identity, role, authorities, c.accessTTL)
}

// RefreshToken carries subject and expiry only. Its validity is checked by
// signature, expiry and subject match; it is never ledgered.
func (c *Codec) RefreshToken(now time.Time, identity string) (string, error) {
	return c.encode(now, TokenTypeRefresh, identity, "", nil, c.refreshTTL)
}

func (c *Codec) encode(now time.Time, tokenType TokenType, identity, role string, authorities []string, ttl time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role:      role,
		Roles:     authorities,
		TokenType: tokenType,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

/* ===================== DECODE ===================== */

// Decode verifies signature and structure and returns the claims.
//
// Expiry is deliberately NOT validated here; callers that need to inspect
// expired tokens (the refresh flow) decode first and check IsExpired
// separately. Invariant: signature and internal claim consistency are
// checked before anything else; an unverifiable token is never partially
// trusted.
func (c *Codec) Decode(tokenString string) (Claims, error) {
	var claims Claims

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	_, err := parser.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		default:
			return Claims{}, ErrUnparseable
		}
	}

	// Internal consistency: subject present, expiry not before issued-at.
	// Zero-TTL (degraded) tokens carry expiry == issued-at and still decode.
	if claims.Subject == "" {
		return Claims{}, ErrMalformed
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return Claims{}, ErrMalformed
	}
	if claims.ExpiresAt.Time.Before(claims.IssuedAt.Time) {
		return Claims{}, ErrMalformed
	}

	return claims, nil
}

// IsExpired reports whether the embedded expiry is strictly before now.
func (c *Codec) IsExpired(claims Claims, now time.Time) bool {
	if claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.Time.Before(now)
}

// ValidForUser checks decoded claims against a freshly loaded user record:
// subject match, role membership match (set-based over the authority
// strings), and not expired.
func (c *Codec) ValidForUser(claims Claims, u UserDetails, now time.Time) bool {
	if claims.Subject != u.Identity() {
		return false
	}
	if c.IsExpired(claims, now) {
		return false
	}
	if claims.TokenType == TokenTypeAccess {
		if claims.Role != u.RoleName() {
			return false
		}
		if !containsAuthority(claims.Roles, "role:"+u.RoleName()) {
			return false
		}
	}
	return true
}

func containsAuthority(haystack []string, needle string) bool {
	for _, a := range haystack {
		if a == needle {
			return true
		}
	}
	return false
}
