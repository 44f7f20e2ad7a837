package audit

import "time"

// Event is an immutable, append-only security audit record.
//
// Invariants:
// - Events are never updated or deleted.
// - Audit capture is best-effort; authentication flows must not fail on it.
type Event struct {
	ID string `json:"id" db:"id"`

	// Type indicates the security category of the audit record.
	Type EventType `json:"type" db:"type"`

	// Identity is the account the event concerns (may be empty for
	// anonymous failures, e.g. login against an unknown identity).
	Identity string `json:"identity,omitempty" db:"identity"`

	// ActorIdentity is the authenticated principal causing the event,
	// when different from Identity (e.g. an admin changing a role).
	ActorIdentity string `json:"actor_identity,omitempty" db:"actor_identity"`

	// Message is a short human-readable description for internal ops.
	Message string `json:"message,omitempty" db:"message"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypeRegister    EventType = "register"
	EventTypeLogin       EventType = "login"
	EventTypeLoginFailed EventType = "login_failed"
	EventTypeRefresh     EventType = "refresh"
	EventTypeRevoke      EventType = "revoke"
	EventTypeRoleChange  EventType = "role_change"
	EventTypeUserDeleted EventType = "user_deleted"
)
