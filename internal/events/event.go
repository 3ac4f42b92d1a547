// Package events carries clinic change notices from the core to external
// sinks. Delivery is asynchronous so the core never waits on I/O.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID        uuid.UUID
	Type      string
	Subject   string
	Payload   []byte // JSON
	CreatedAt time.Time
}

// Sink receives dispatched events. Errors are logged by the dispatcher and
// never reach the clinic.
type Sink interface {
	Name() string
	Write(ctx context.Context, ev Event) error
}
