package token

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"warehouse-platform/pkg/utils"

	"github.com/google/uuid"
)

// Repo persists ledger entries in Postgres.
//
// Assumed table:
//   auth_tokens (id, identity, token, expired, revoked, created_at)
//
// Revocation invariant: Rotate revokes every valid entry for the identity and
// inserts the replacement inside one transaction, so no reader can observe
// two simultaneously valid access tokens for the same identity.
type Repo struct {
	db *sql.DB
	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db, clock: time.Now}
}

func (r *Repo) Persist(ctx context.Context, identity, tok string) error {
	const q = `
INSERT INTO auth_tokens (id, identity, token, expired, revoked, created_at)
VALUES ($1,$2,$3,false,false,$4)
`
	_, err := r.db.ExecContext(ctx, q, uuid.NewString(), identity, tok, r.clock().UTC())
	return err
}

func (r *Repo) FindByToken(ctx context.Context, tok string) (Entry, bool, error) {
	// Deterministic encoding can reissue an identical token string within the
	// same second; the newest ledger entry is authoritative.
	const q = `
SELECT id, identity, token, expired, revoked, created_at
FROM auth_tokens
WHERE token = $1
ORDER BY created_at DESC
LIMIT 1
`
	var e Entry
	err := r.db.QueryRowContext(ctx, q, tok).Scan(&e.ID, &e.Identity, &e.Token, &e.Expired, &e.Revoked, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}
	return e, true, nil
}

func (r *Repo) FindAllValidForIdentity(ctx context.Context, identity string) ([]Entry, error) {
	const q = `
SELECT id, identity, token, expired, revoked, created_at
FROM auth_tokens
WHERE identity = $1 AND expired = false AND revoked = false
ORDER BY created_at
`
	rows, err := r.db.QueryContext(ctx, q, identity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Identity, &e.Token, &e.Expired, &e.Revoked, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repo) RevokeAll(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return utils.WithTx(ctx, r.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
UPDATE auth_tokens
SET expired = true, revoked = true
WHERE id = ANY($1)
`
		_, err := tx.ExecContext(ctx, q, ids)
		return err
	})
}

// Rotate implements revoke-before-reissue atomically: every currently valid
// entry for the identity is invalidated and the new token inserted in one
// transaction.
func (r *Repo) Rotate(ctx context.Context, identity, tok string) error {
	now := r.clock().UTC()
	id := uuid.NewString()
	return utils.WithTx(ctx, r.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		const revoke = `
UPDATE auth_tokens
SET expired = true, revoked = true
WHERE identity = $1 AND expired = false AND revoked = false
`
		if _, err := tx.ExecContext(ctx, revoke, identity); err != nil {
			return err
		}
		const insert = `
INSERT INTO auth_tokens (id, identity, token, expired, revoked, created_at)
VALUES ($1,$2,$3,false,false,$4)
`
		_, err := tx.ExecContext(ctx, insert, id, identity, tok, now)
		return err
	})
}

func (r *Repo) DeleteAllForIdentity(ctx context.Context, identity string) error {
	const q = `DELETE FROM auth_tokens WHERE identity = $1`
	_, err := r.db.ExecContext(ctx, q, identity)
	return err
}
