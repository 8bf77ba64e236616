package session

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresStore keeps sessions in the sessions table so logins survive
// restarts and are shared across instances.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a session store backed by the given database.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ Store = (*PostgresStore)(nil)

func (p *PostgresStore) Put(ctx context.Context, s Session) error {
	const q = `
		INSERT INTO sessions (token, user_id, username, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (token) DO UPDATE
		SET user_id = EXCLUDED.user_id, username = EXCLUDED.username, expires_at = EXCLUDED.expires_at
	`
	_, err := p.db.ExecContext(ctx, q, s.Token, s.UserID, s.Username, s.ExpiresAt)
	return err
}

func (p *PostgresStore) Get(ctx context.Context, token string) (*Session, error) {
	const q = `
		SELECT token, user_id, username, expires_at
		FROM sessions
		WHERE token = $1 AND expires_at > now()
	`
	var s Session
	err := p.db.QueryRowContext(ctx, q, token).Scan(&s.Token, &s.UserID, &s.Username, &s.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (p *PostgresStore) Delete(ctx context.Context, token string) error {
	const q = `DELETE FROM sessions WHERE token = $1`
	_, err := p.db.ExecContext(ctx, q, token)
	return err
}
