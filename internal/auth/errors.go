package auth

import (
	"errors"
	"sort"
	"strings"
)

var (
	// Token decode failures. The guard treats all of them as "anonymous";
	// they are never surfaced to clients as distinct errors.
	ErrInvalidSignature = errors.New("auth: invalid token signature")
	ErrMalformed        = errors.New("auth: malformed token")
	ErrUnparseable      = errors.New("auth: unparseable token claims")

	// ErrSecretKeyMissing is fatal at startup. The process must not serve
	// traffic without a usable signing key.
	ErrSecretKeyMissing = errors.New("auth: signing secret missing or undecodable")

	// ErrInvalidCredentials covers both unknown identity and wrong secret.
	// The two cases are detected separately but must never be distinguishable
	// to the caller (identity enumeration).
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	ErrIdentityTaken   = errors.New("auth: identity already registered")
	ErrUnknownRole     = errors.New("auth: unknown role")
	ErrTooManyAttempts = errors.New("auth: too many login attempts")
)

// ValidationError reports malformed registration/login input with
// field-level detail.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "auth: validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString("auth: validation failed:")
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Fields[k])
		b.WriteString(";")
	}
	return strings.TrimSuffix(b.String(), ";")
}

// IsValidation reports whether err is a field-validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
