// Package ledger records one entry per LLM attempt so operators can see what
// the generation pipeline did. Entries never feed back into results.
package ledger

import (
	"context"
	"strings"
	"time"
)

// Entry describes a single chat completion attempt.
type Entry struct {
	Time          time.Time `json:"time"`
	Phase         string    `json:"phase"`
	Provider      string    `json:"provider"`
	Attempt       int       `json:"attempt"`
	PromptBytes   int       `json:"prompt_bytes"`
	ResponseBytes int       `json:"response_bytes"`
	DurationMs    int64     `json:"duration_ms"`
	Error         string    `json:"error,omitempty"`
}

// Ledger stores attempt entries. Recent returns the newest first.
type Ledger interface {
	Record(ctx context.Context, e Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

const DefaultCapacity = 500

// Open returns a PostgresLedger when dsn is set, otherwise a MemoryLedger.
// If Postgres is unreachable the MemoryLedger is returned with the error.
func Open(dsn string) (Ledger, error) {
	if strings.TrimSpace(dsn) == "" {
		return NewMemory(DefaultCapacity), nil
	}
	pg, err := NewPostgres(dsn)
	if err != nil {
		return NewMemory(DefaultCapacity), err
	}
	return pg, nil
}

func clampLimit(limit, max int) int {
	if limit <= 0 || limit > max {
		return max
	}
	return limit
}
