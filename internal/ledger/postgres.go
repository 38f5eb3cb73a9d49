package ledger

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const maxRecent = 1000

// PostgresLedger appends entries to the llm_attempts table.
type PostgresLedger struct {
	db *sql.DB

	schemaOnce sync.Once
	schemaErr  error
}

func NewPostgres(dsn string) (*PostgresLedger, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresLedger{db: db}, nil
}

func (p *PostgresLedger) Close() error { return p.db.Close() }

// ensureSchema runs once per process. The DDL ignores the caller's
// cancellation so an aborted first request cannot latch an error.
func (p *PostgresLedger) ensureSchema(ctx context.Context) error {
	p.schemaOnce.Do(func() {
		_, p.schemaErr = p.db.ExecContext(context.WithoutCancel(ctx), `
CREATE TABLE IF NOT EXISTS llm_attempts (
  id BIGSERIAL PRIMARY KEY,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL,
  phase TEXT NOT NULL DEFAULT '',
  provider TEXT NOT NULL DEFAULT '',
  attempt INTEGER NOT NULL DEFAULT 0,
  prompt_bytes INTEGER NOT NULL DEFAULT 0,
  response_bytes INTEGER NOT NULL DEFAULT 0,
  duration_ms BIGINT NOT NULL DEFAULT 0,
  error TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_llm_attempts_created_at ON llm_attempts (created_at DESC);
`)
	})
	return p.schemaErr
}

func (p *PostgresLedger) Record(ctx context.Context, e Entry) error {
	if err := p.ensureSchema(ctx); err != nil {
		return err
	}
	_, err := p.db.ExecContext(ctx, `
INSERT INTO llm_attempts (
  created_at, phase, provider, attempt, prompt_bytes, response_bytes, duration_ms, error
)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		e.Time.UTC(), e.Phase, e.Provider, e.Attempt, e.PromptBytes, e.ResponseBytes, e.DurationMs, e.Error)
	return err
}

func (p *PostgresLedger) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if err := p.ensureSchema(ctx); err != nil {
		return nil, err
	}
	rows, err := p.db.QueryContext(ctx, `SELECT created_at, phase, provider, attempt, prompt_bytes, response_bytes, duration_ms, error
FROM llm_attempts ORDER BY created_at DESC, id DESC LIMIT $1`, clampLimit(limit, maxRecent))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Time, &e.Phase, &e.Provider, &e.Attempt, &e.PromptBytes, &e.ResponseBytes, &e.DurationMs, &e.Error); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
