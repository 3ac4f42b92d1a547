package events

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const drainTimeout = 5 * time.Second

// Dispatcher buffers events and fans them out to its sinks from a single
// goroutine started with Run.
type Dispatcher struct {
	queue   chan Event
	sinks   []Sink
	log     *zap.Logger
	timeout time.Duration
	dropped atomic.Int64
}

func NewDispatcher(buffer int, log *zap.Logger, sinks ...Sink) *Dispatcher {
	if buffer <= 0 {
		buffer = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		queue:   make(chan Event, buffer),
		sinks:   sinks,
		log:     log,
		timeout: 2 * time.Second,
	}
}

// Notify queues an event without blocking. When the buffer is full the
// event is dropped and counted.
func (d *Dispatcher) Notify(eventType, subject string, payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		d.log.Error("failed to marshal event payload", zap.String("event_type", eventType), zap.Error(err))
		data = nil
	}

	ev := Event{
		ID:        uuid.New(),
		Type:      eventType,
		Subject:   subject,
		Payload:   data,
		CreatedAt: time.Now().UTC(),
	}

	select {
	case d.queue <- ev:
	default:
		d.dropped.Add(1)
		d.log.Warn("event buffer full, dropping event",
			zap.String("event_type", eventType),
			zap.String("subject", subject))
	}
}

// Dropped returns how many events were discarded because the buffer was full.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Run delivers queued events until ctx is done, then flushes what is left
// in the buffer.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			d.drain(context.WithoutCancel(ctx))
			return
		case ev := <-d.queue:
			d.deliver(ctx, ev)
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, drainTimeout)
	defer cancel()

	for {
		select {
		case ev := <-d.queue:
			d.deliver(ctx, ev)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, ev Event) {
	for _, s := range d.sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, d.timeout)
		err := s.Write(sinkCtx, ev)
		cancel()
		if err != nil {
			d.log.Error("failed to write event",
				zap.String("sink", s.Name()),
				zap.String("event_type", ev.Type),
				zap.String("event_id", ev.ID.String()),
				zap.Error(err))
		}
	}
}
