package auth

import "github.com/golang-jwt/jwt/v5"

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims are the only supported JWT claims shape for this service.
// Subject carries the account identity (email). Access tokens additionally
// snapshot the role and its authority strings at issuance time; refresh
// tokens carry neither.
type Claims struct {
	jwt.RegisteredClaims

	Role      string    `json:"role,omitempty"`
	Roles     []string  `json:"roles,omitempty"`
	TokenType TokenType `json:"token_type"`
}

// UserDetails is the minimal user contract the codec and guard depend on.
// Any concrete user-like type satisfies it.
type UserDetails interface {
	Identity() string
	SecretHash() string
	RoleName() string
}
