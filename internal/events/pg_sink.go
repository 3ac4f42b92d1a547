package events

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is the subset of pgxpool.Pool the sink needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PgSink appends events to the event_logs audit table. Rows are never read
// back by the service.
type PgSink struct {
	db Execer
}

func NewPgSink(db Execer) *PgSink {
	return &PgSink{db: db}
}

func (s *PgSink) Name() string { return "postgres" }

// EnsureSchema creates the audit table if it does not exist yet.
func (s *PgSink) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS event_logs (
			id          UUID PRIMARY KEY,
			event_type  TEXT NOT NULL,
			subject     TEXT NOT NULL,
			payload     JSONB,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("create event_logs: %w", err)
	}
	return nil
}

func (s *PgSink) Write(ctx context.Context, ev Event) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO event_logs (id, event_type, subject, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, ev.ID, ev.Type, ev.Subject, ev.Payload, ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert event log: %w", err)
	}
	return nil
}
