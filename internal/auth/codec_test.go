package auth

import (
	"errors"
	"testing"
	"time"

	"warehouse-platform/internal/config"
)

const (
	testSecretB64  = "c2VjcmV0LXNpZ25pbmcta2V5"
	otherSecretB64 = "YW5vdGhlci1zaWduaW5nLWtleQ=="
)

func testCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(config.AuthConfig{
		JWTSecretBase64: testSecretB64,
		JWTIssuer:       "warehouse-platform",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	return c
}

func TestNewCodec_RequiresSecret(t *testing.T) {
	if _, err := NewCodec(config.AuthConfig{}); !errors.Is(err, ErrSecretKeyMissing) {
		t.Fatalf("expected ErrSecretKeyMissing, got %v", err)
	}
	if _, err := NewCodec(config.AuthConfig{JWTSecretBase64: "%%%not-base64%%%"}); !errors.Is(err, ErrSecretKeyMissing) {
		t.Fatalf("expected ErrSecretKeyMissing for bad base64, got %v", err)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := testCodec(t)
	now := time.Unix(1700000000, 0).UTC()

	pair, err := c.IssuePair(now, "a@x.com", "USER", []string{"role:USER", "item:read"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected token strings")
	}

	claims, err := c.Decode(pair.AccessToken)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.Subject != "a@x.com" || claims.Role != "USER" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Fatalf("expected access token type, got %q", claims.TokenType)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != "role:USER" {
		t.Fatalf("authorities not preserved: %v", claims.Roles)
	}
	if !claims.IssuedAt.Time.Equal(now) {
		t.Fatalf("issued-at not preserved: %v", claims.IssuedAt)
	}
	if !claims.ExpiresAt.Time.Equal(now.Add(15 * time.Minute)) {
		t.Fatalf("expiry not preserved: %v", claims.ExpiresAt)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	c := testCodec(t)
	now := time.Unix(1700000000, 0).UTC()

	a, err := c.AccessToken(now, "a@x.com", "USER", []string{"role:USER"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	b, err := c.AccessToken(now, "a@x.com", "USER", []string{"role:USER"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if a != b {
		t.Fatalf("identical inputs must encode identically")
	}
}

func TestDecode_WrongKeyIsInvalidSignature(t *testing.T) {
	c := testCodec(t)
	other, err := NewCodec(config.AuthConfig{
		JWTSecretBase64: otherSecretB64,
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("codec: %v", err)
	}

	tok, err := other.AccessToken(time.Now(), "a@x.com", "USER", nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := c.Decode(tok); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestDecode_GarbageIsMalformed(t *testing.T) {
	c := testCodec(t)
	if _, err := c.Decode("not.a.token"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestDecode_AcceptsExpiredTokens(t *testing.T) {
	// The refresh flow needs to inspect expired tokens; expiry is the
	// caller's check, not Decode's.
	c := testCodec(t)
	past := time.Unix(1000000000, 0).UTC()

	tok, err := c.AccessToken(past, "a@x.com", "USER", nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	claims, err := c.Decode(tok)
	if err != nil {
		t.Fatalf("decode of expired token: %v", err)
	}
	if !c.IsExpired(claims, time.Now().UTC()) {
		t.Fatalf("expected expired")
	}
	if c.IsExpired(claims, past.Add(time.Minute)) {
		t.Fatalf("expected valid within ttl")
	}
}

func TestZeroTTL_ExpiresImmediately(t *testing.T) {
	c, err := NewCodec(config.AuthConfig{JWTSecretBase64: testSecretB64})
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	now := time.Unix(1700000000, 0).UTC()

	tok, err := c.AccessToken(now, "a@x.com", "USER", nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	claims, err := c.Decode(tok)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !c.IsExpired(claims, now.Add(time.Second)) {
		t.Fatalf("zero-ttl token must expire immediately")
	}
}

type fakeUser struct {
	identity string
	role     string
}

func (u fakeUser) Identity() string   { return u.identity }
func (u fakeUser) SecretHash() string { return "" }
func (u fakeUser) RoleName() string   { return u.role }

func TestValidForUser(t *testing.T) {
	c := testCodec(t)
	now := time.Unix(1700000000, 0).UTC()

	tok, err := c.AccessToken(now, "a@x.com", "MANAGER", []string{"role:MANAGER", "item:write"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	claims, err := c.Decode(tok)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !c.ValidForUser(claims, fakeUser{"a@x.com", "MANAGER"}, now.Add(time.Minute)) {
		t.Fatalf("expected valid")
	}
	if c.ValidForUser(claims, fakeUser{"b@x.com", "MANAGER"}, now.Add(time.Minute)) {
		t.Fatalf("subject mismatch must fail")
	}
	// Role changed since issuance: the stale snapshot must not validate.
	if c.ValidForUser(claims, fakeUser{"a@x.com", "DRIVER"}, now.Add(time.Minute)) {
		t.Fatalf("role mismatch must fail")
	}
	if c.ValidForUser(claims, fakeUser{"a@x.com", "MANAGER"}, now.Add(time.Hour)) {
		t.Fatalf("expired token must fail")
	}
}
