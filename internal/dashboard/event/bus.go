package event

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
)

var ErrBusClosed = errors.New("event bus is closed")

// Bus queues risk level changes for the notifier workers. Publish is called
// from alert evaluation and never waits for a slow notifier: when the queue is
// full the oldest pending change is dropped, since a newer level supersedes it.
type Bus struct {
	mu      sync.Mutex
	closed  bool
	ch      chan entity.RiskEvent
	dropped atomic.Uint64
}

func NewBus(buffer int) *Bus {
	if buffer < 1 {
		buffer = 1
	}

	return &Bus{
		ch: make(chan entity.RiskEvent, buffer),
	}
}

func (b *Bus) Publish(ctx context.Context, event entity.RiskEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBusClosed
	}

	for {
		select {
		case b.ch <- event:
			return nil
		default:
		}

		select {
		case old := <-b.ch:
			b.dropped.Add(1)
			slog.WarnContext(ctx, "risk event queue full, dropping oldest",
				"dropped_event_id", old.EventID, "dropped_to", old.To, "event_id", event.EventID)
		default:
			// a worker took one in between; retry the send
		}
	}
}

func (b *Bus) Subscribe() <-chan entity.RiskEvent {
	return b.ch
}

// Dropped reports how many queued events were discarded to make room.
func (b *Bus) Dropped() uint64 {
	return b.dropped.Load()
}

// Pending reports how many events wait for a worker.
func (b *Bus) Pending() int {
	return len(b.ch)
}

// Close stops accepting events. Events already queued are still delivered to
// workers ranging over Subscribe.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	close(b.ch)
}
