package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"warehouse-platform/internal/audit"
	"warehouse-platform/internal/rbac"
	"warehouse-platform/internal/token"
	"warehouse-platform/internal/user"
	"warehouse-platform/pkg/logger"

	"github.com/google/uuid"
)

// Directory is the credential-store contract the service orchestrates.
type Directory interface {
	Create(ctx context.Context, u user.User) (user.User, error)
	FindByIdentity(ctx context.Context, identity string) (user.User, error)
	UpdateRole(ctx context.Context, identity, role string) (user.User, error)
	Delete(ctx context.Context, identity string) error
}

// Ledger is the server-side token-tracking contract. All ledger mutation
// goes through these methods; nothing outside the ledger flips entry flags.
type Ledger interface {
	Persist(ctx context.Context, identity, tok string) error
	FindByToken(ctx context.Context, tok string) (token.Entry, bool, error)
	FindAllValidForIdentity(ctx context.Context, identity string) ([]token.Entry, error)
	RevokeAll(ctx context.Context, entries []token.Entry) error
	// Rotate revokes all valid entries for the identity and persists the new
	// token atomically (see internal/token).
	Rotate(ctx context.Context, identity, tok string) error
	DeleteAllForIdentity(ctx context.Context, identity string) error
}

// Service orchestrates login, registration, refresh and revocation.
//
// Lifecycle invariant: issuing a new pair for an identity revokes every
// previously valid ledger entry first, so at most one access token per
// identity is valid at any instant. A ledger failure during that rotation
// aborts the whole operation; proceeding past it could leave two valid
// tokens, which is a security regression.
type Service struct {
	codec    *Codec
	users    Directory
	ledger   Ledger
	auditor  *audit.Service
	throttle Throttle
	clock    func() time.Time
}

type ServiceOption func(*Service)

// WithAudit enables best-effort security-event auditing.
func WithAudit(a *audit.Service) ServiceOption {
	return func(s *Service) { s.auditor = a }
}

// WithThrottle bounds login attempts per identity.
func WithThrottle(t Throttle) ServiceOption {
	return func(s *Service) { s.throttle = t }
}

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.clock = fn
		}
	}
}

func NewService(codec *Codec, users Directory, ledger Ledger, opts ...ServiceOption) *Service {
	s := &Service{
		codec:  codec,
		users:  users,
		ledger: ledger,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

/* ===================== REGISTER ===================== */

type RegisterRequest struct {
	Name     string
	Identity string
	Secret   string

	// Role is the requested role. Elevated roles are honored only when the
	// acting principal is an admin; everyone else gets USER regardless.
	Role string
}

// Register creates an account and treats it as an implicit login: the new
// user immediately gets a ledgered token pair.
func (s *Service) Register(ctx context.Context, req RegisterRequest, actor *rbac.Principal) (TokenPair, error) {
	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "must not be blank"
	}
	if strings.TrimSpace(req.Identity) == "" {
		fields["identity"] = "must not be blank"
	}
	if strings.TrimSpace(req.Secret) == "" {
		fields["secret"] = "must not be blank"
	}
	if len(fields) > 0 {
		return TokenPair{}, &ValidationError{Fields: fields}
	}

	role := rbac.RoleUser
	if req.Role != "" && req.Role != rbac.RoleUser {
		if actor != nil && rbac.IsAdmin(actor.Role) {
			if !rbac.Valid(req.Role) {
				return TokenPair{}, ErrUnknownRole
			}
			role = req.Role
		}
		// Non-admin requests for elevated roles are silently downgraded.
	}

	hash, err := HashSecret(req.Secret)
	if err != nil {
		return TokenPair{}, err
	}

	now := s.clock().UTC()
	u, err := s.users.Create(ctx, user.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Identity,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, user.ErrAlreadyExists) {
			return TokenPair{}, ErrIdentityTaken
		}
		return TokenPair{}, err
	}

	pair, err := s.reissue(ctx, u, "")
	if err != nil {
		return TokenPair{}, err
	}
	s.record(ctx, audit.EventTypeRegister, u.Email, "account registered")
	return pair, nil
}

/* ===================== LOGIN ===================== */

// Login verifies credentials and reissues a token pair. Unknown identity and
// wrong secret both surface as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, identity, secret string) (TokenPair, error) {
	fields := map[string]string{}
	if strings.TrimSpace(identity) == "" {
		fields["identity"] = "must not be blank"
	}
	if secret == "" {
		fields["secret"] = "must not be blank"
	}
	if len(fields) > 0 {
		return TokenPair{}, &ValidationError{Fields: fields}
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, identity)
		if err != nil {
			// A throttle outage must not lock every account out.
			logger.From(ctx).Warn("login throttle unavailable", "err", err)
		} else if !allowed {
			return TokenPair{}, ErrTooManyAttempts
		}
	}

	u, err := s.users.FindByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			s.record(ctx, audit.EventTypeLoginFailed, identity, "unknown identity")
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}

	if err := VerifySecret(u.PasswordHash, secret); err != nil {
		s.record(ctx, audit.EventTypeLoginFailed, identity, "secret mismatch")
		return TokenPair{}, ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, identity); err != nil {
			logger.From(ctx).Warn("login throttle reset failed", "err", err)
		}
	}

	pair, err := s.reissue(ctx, u, "")
	if err != nil {
		return TokenPair{}, err
	}
	s.record(ctx, audit.EventTypeLogin, u.Email, "login")
	return pair, nil
}

/* ===================== REFRESH ===================== */

// Refresh mints a new access token from a bearer refresh token. The refresh
// token itself is reused, not rotated.
//
// Missing or malformed input is a deliberate soft no-op (issued == false,
// err == nil): the caller may be an anonymous request hitting a shared
// endpoint, and that must not be an error.
func (s *Service) Refresh(ctx context.Context, bearerHeader string) (TokenPair, bool, error) {
	raw := strings.TrimSpace(bearerHeader)
	if raw == "" || !strings.HasPrefix(raw, bearerPrefix) {
		return TokenPair{}, false, nil
	}
	tok := strings.TrimPrefix(raw, bearerPrefix)

	claims, err := s.codec.Decode(tok)
	if err != nil || claims.TokenType != TokenTypeRefresh {
		return TokenPair{}, false, nil
	}

	u, err := s.users.FindByIdentity(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return TokenPair{}, false, nil
		}
		return TokenPair{}, false, err
	}

	if !s.codec.ValidForUser(claims, u, s.clock().UTC()) {
		return TokenPair{}, false, nil
	}

	pair, err := s.reissue(ctx, u, tok)
	if err != nil {
		return TokenPair{}, false, err
	}
	s.record(ctx, audit.EventTypeRefresh, u.Email, "access token refreshed")
	return pair, true, nil
}

/* ===================== REVOCATION ===================== */

// Logout revokes every valid token for the identity. Idempotent: revoking
// an identity with zero valid entries is a no-op.
func (s *Service) Logout(ctx context.Context, identity string) error {
	return s.RevokeAllUserTokens(ctx, identity)
}

func (s *Service) RevokeAllUserTokens(ctx context.Context, identity string) error {
	entries, err := s.ledger.FindAllValidForIdentity(ctx, identity)
	if err != nil {
		return fmt.Errorf("ledger read: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}
	if err := s.ledger.RevokeAll(ctx, entries); err != nil {
		return fmt.Errorf("ledger revoke: %w", err)
	}
	s.record(ctx, audit.EventTypeRevoke, identity, "all tokens revoked")
	return nil
}

/* ===================== ADMIN ===================== */

// ChangeRole updates a user's role and revokes all their tokens, forcing
// re-authentication under the new role.
func (s *Service) ChangeRole(ctx context.Context, identity, role, actorIdentity string) error {
	if !rbac.Valid(role) {
		return ErrUnknownRole
	}
	if _, err := s.users.UpdateRole(ctx, identity, role); err != nil {
		return err
	}
	if err := s.RevokeAllUserTokens(ctx, identity); err != nil {
		return err
	}
	s.recordActor(ctx, audit.EventTypeRoleChange, identity, actorIdentity, "role changed to "+role)
	return nil
}

// DeleteUser removes the account and cascades to its ledger entries.
func (s *Service) DeleteUser(ctx context.Context, identity, actorIdentity string) error {
	if err := s.users.Delete(ctx, identity); err != nil {
		return err
	}
	if err := s.ledger.DeleteAllForIdentity(ctx, identity); err != nil {
		return fmt.Errorf("ledger delete: %w", err)
	}
	s.recordActor(ctx, audit.EventTypeUserDeleted, identity, actorIdentity, "account deleted")
	return nil
}

/* ===================== INTERNAL ===================== */

// reissue is the shared revoke-then-issue procedure used by register, login
// and refresh. An empty refresh argument means "mint a fresh refresh token"
// (login path); a non-empty one is reused as-is (refresh path).
func (s *Service) reissue(ctx context.Context, u user.User, refresh string) (TokenPair, error) {
	now := s.clock().UTC()

	access, err := s.codec.AccessToken(now, u.Email, u.Role, rbac.Authorities(u.Role))
	if err != nil {
		return TokenPair{}, err
	}
	if refresh == "" {
		refresh, err = s.codec.RefreshToken(now, u.Email)
		if err != nil {
			return TokenPair{}, err
		}
	}

	// Revoke-before-reissue must not be recovered from: failing here and
	// proceeding could leave two simultaneously valid tokens.
	if err := s.ledger.Rotate(ctx, u.Email, access); err != nil {
		return TokenPair{}, fmt.Errorf("token rotate: %w", err)
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) record(ctx context.Context, t audit.EventType, identity, msg string) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Record(ctx, t, identity, msg); err != nil {
		logger.From(ctx).Warn("audit append failed", "type", string(t), "err", err)
	}
}

func (s *Service) recordActor(ctx context.Context, t audit.EventType, identity, actor, msg string) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.RecordActor(ctx, t, identity, actor, msg); err != nil {
		logger.From(ctx).Warn("audit append failed", "type", string(t), "err", err)
	}
}
