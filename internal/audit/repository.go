package audit

import (
	"context"
	"database/sql"
)

// PostgresRepo appends audit events to Postgres.
//
// Assumed table (INSERT-only policy recommended):
//   audit_events (id, type, identity, actor_identity, message, created_at)
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	const q = `
INSERT INTO audit_events (id, type, identity, actor_identity, message, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`
	_, err := r.db.ExecContext(ctx, q, e.ID, e.Type, e.Identity, e.ActorIdentity, e.Message, e.CreatedAt)
	return err
}
