package rbac

import "context"

// Principal is the resolved identity for one request. It is threaded
// explicitly through the request context; there is no ambient security
// state anywhere else.
type Principal struct {
	Identity    string
	Role        string
	Permissions []string
}

// HasPermission reports whether the principal carries the permission string.
func (p Principal) HasPermission(perm string) bool {
	for _, have := range p.Permissions {
		if have == perm {
			return true
		}
	}
	return false
}

type ctxKey struct{}

// WithPrincipal stores the authenticated principal in context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PrincipalFrom returns the request principal, if any. An absent principal
// means the request is anonymous.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	v := ctx.Value(ctxKey{})
	if p, ok := v.(Principal); ok && p.Identity != "" {
		return p, true
	}
	return Principal{}, false
}
