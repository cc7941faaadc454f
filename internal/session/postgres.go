package session

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies the session schema migrations.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db.DB, "migrations"); err != nil {
		return fmt.Errorf("migrate session schema: %w", err)
	}
	return nil
}

// PostgresBackend stores entries in the portal_session_entries table.
type PostgresBackend struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewPostgresBackend constructs the backend over an open pool.
func NewPostgresBackend(db *sqlx.DB) *PostgresBackend {
	return &PostgresBackend{db: db, now: time.Now}
}

// Get implements Backend.
func (p *PostgresBackend) Get(ctx context.Context, key string) (string, bool, error) {
	const query = `SELECT value FROM portal_session_entries
WHERE key = $1 AND (expires_at IS NULL OR expires_at > $2)`
	var value string
	if err := p.db.GetContext(ctx, &value, query, key, p.now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get session entry: %w", err)
	}
	return value, true, nil
}

// Set implements Backend.
func (p *PostgresBackend) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	const query = `INSERT INTO portal_session_entries (key, value, expires_at, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (key)
DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at`
	now := p.now().UTC()
	var expiresAt *time.Time
	if ttl > 0 {
		t := now.Add(ttl)
		expiresAt = &t
	}
	if _, err := p.db.ExecContext(ctx, query, key, value, expiresAt, now); err != nil {
		return fmt.Errorf("set session entry: %w", err)
	}
	return nil
}

// Delete implements Backend with one statement.
func (p *PostgresBackend) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	const query = `DELETE FROM portal_session_entries WHERE key = ANY($1)`
	if _, err := p.db.ExecContext(ctx, query, pq.Array(keys)); err != nil {
		return fmt.Errorf("delete session entries: %w", err)
	}
	return nil
}

// Expire implements Backend with one statement; rows already expired are not revived.
func (p *PostgresBackend) Expire(ctx context.Context, ttl time.Duration, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	const query = `UPDATE portal_session_entries SET expires_at = $1, updated_at = $2
WHERE key = ANY($3) AND (expires_at IS NULL OR expires_at > $2)`
	now := p.now().UTC()
	var expiresAt *time.Time
	if ttl > 0 {
		t := now.Add(ttl)
		expiresAt = &t
	}
	if _, err := p.db.ExecContext(ctx, query, expiresAt, now, pq.Array(keys)); err != nil {
		return fmt.Errorf("expire session entries: %w", err)
	}
	return nil
}

// PurgeExpired removes expired rows and returns how many were deleted.
func (p *PostgresBackend) PurgeExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM portal_session_entries WHERE expires_at IS NOT NULL AND expires_at <= $1`
	res, err := p.db.ExecContext(ctx, query, p.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge session entries: %w", err)
	}
	return res.RowsAffected()
}
