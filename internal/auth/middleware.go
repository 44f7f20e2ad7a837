package auth

import (
	"context"
	"strings"
	"time"

	"warehouse-platform/internal/rbac"
	"warehouse-platform/internal/token"
	"warehouse-platform/internal/user"

	"github.com/gin-gonic/gin"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

// LedgerReader is the read-only ledger view the guard needs.
type LedgerReader interface {
	FindByToken(ctx context.Context, tok string) (token.Entry, bool, error)
}

// IdentityReader resolves an identity to its current user record.
type IdentityReader interface {
	FindByIdentity(ctx context.Context, identity string) (user.User, error)
}

// Authenticate resolves a bearer token into a request principal.
//
// This guard never aborts the pipeline: a missing, malformed, revoked or
// mismatched token simply leaves the request anonymous. Rejecting anonymous
// access to protected resources is the job of the rbac middlewares
// downstream, so an invalid token and no token look identical to clients.
func Authenticate(codec *Codec, ledger LedgerReader, users IdentityReader, publicPrefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range publicPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		raw := strings.TrimSpace(c.GetHeader(authorizationHeader))
		if raw == "" || !strings.HasPrefix(raw, bearerPrefix) {
			c.Next()
			return
		}
		tok := strings.TrimPrefix(raw, bearerPrefix)

		claims, err := codec.Decode(tok)
		if err != nil || claims.TokenType != TokenTypeAccess {
			c.Next()
			return
		}

		entry, ok, err := ledger.FindByToken(c.Request.Context(), tok)
		if err != nil || !ok || !entry.Valid() {
			c.Next()
			return
		}

		u, err := users.FindByIdentity(c.Request.Context(), claims.Subject)
		if err != nil {
			c.Next()
			return
		}
		if !codec.ValidForUser(claims, u, time.Now().UTC()) {
			c.Next()
			return
		}

		p := rbac.Principal{
			Identity:    u.Email,
			Role:        u.Role,
			Permissions: rbac.Permissions(u.Role),
		}
		c.Request = c.Request.WithContext(rbac.WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}
