package token

import "time"

// Entry is a server-side record for one issued access token.
//
// Invariants:
// - An entry is valid iff both flags are false. The embedded JWT expiry is
//   checked separately by the codec; the ledger only tracks server-side state.
// - Entries are never flipped back to valid. Revocation is one-way.
// - Refresh tokens are never ledgered.
type Entry struct {
	ID        string    `json:"id" db:"id"`
	Identity  string    `json:"identity" db:"identity"`
	Token     string    `json:"token" db:"token"`
	Expired   bool      `json:"expired" db:"expired"`
	Revoked   bool      `json:"revoked" db:"revoked"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Valid reports the server-side validity of the entry.
func (e Entry) Valid() bool { return !e.Expired && !e.Revoked }
