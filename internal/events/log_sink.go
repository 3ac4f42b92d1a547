package events

import (
	"context"

	"go.uber.org/zap"
)

// LogSink writes every event as a structured log line.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Write(_ context.Context, ev Event) error {
	s.log.Info("clinic event",
		zap.String("event_id", ev.ID.String()),
		zap.String("event_type", ev.Type),
		zap.String("subject", ev.Subject),
		zap.ByteString("payload", ev.Payload),
		zap.Time("created_at", ev.CreatedAt))
	return nil
}
