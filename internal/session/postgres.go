package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Postgres persists sessions in a key/value table, for deployments that
// already run Postgres and do not want a redis instance.
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens a Postgres connection with sane pool defaults and
// ensures the session table exists.
func NewPostgres(connString string) (*Postgres, error) {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS campulse_sessions (
			sid        TEXT NOT NULL,
			key        TEXT NOT NULL,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (sid, key)
		)
	`); err != nil {
		return nil, err
	}
	return &Postgres{db: db}, nil
}

// Close closes the underlying connection pool.
func (p *Postgres) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

// Healthy verifies database connectivity.
func (p *Postgres) Healthy(ctx context.Context) bool {
	if p == nil || p.db == nil {
		return false
	}
	return p.db.PingContext(ctx) == nil
}

// Get returns the value for key, or ErrNotFound.
func (p *Postgres) Get(ctx context.Context, sid, key string) (string, error) {
	var val string
	err := p.db.QueryRowContext(ctx, `
		SELECT value FROM campulse_sessions WHERE sid = $1 AND key = $2
	`, sid, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores value under key for the session.
func (p *Postgres) Set(ctx context.Context, sid, key, value string) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO campulse_sessions (sid, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (sid, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, sid, key, value)
	return err
}

// Remove deletes key for the session.
func (p *Postgres) Remove(ctx context.Context, sid, key string) error {
	_, err := p.db.ExecContext(ctx, `
		DELETE FROM campulse_sessions WHERE sid = $1 AND key = $2
	`, sid, key)
	return err
}
