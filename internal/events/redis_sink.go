package events

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSink publishes events on a Redis stream for downstream consumers.
type RedisSink struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

// NewRedisSink publishes to stream. A positive maxLen caps the stream
// length approximately.
func NewRedisSink(client redis.Cmdable, stream string, maxLen int64) *RedisSink {
	return &RedisSink{client: client, stream: stream, maxLen: maxLen}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Write(ctx context.Context, ev Event) error {
	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"id":         ev.ID.String(),
			"type":       ev.Type,
			"subject":    ev.Subject,
			"payload":    string(ev.Payload),
			"created_at": ev.CreatedAt.Format(time.RFC3339Nano),
		},
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}

	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", s.stream, err)
	}
	return nil
}
