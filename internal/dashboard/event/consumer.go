package event

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
)

type Handler interface {
	Handle(ctx context.Context, event entity.RiskEvent) error
}

type ConsumerConfig struct {
	Workers     int
	MaxRetries  int
	BaseBackoff time.Duration
	// DedupSize bounds how many recent event IDs are remembered.
	DedupSize int
}

const defaultDedupSize = 1024

// Consumer drains the bus and hands every risk event to the handler,
// retrying with exponential backoff. An event ID seen among the last DedupSize
// events is not delivered again.
type Consumer struct {
	bus         *Bus
	handler     Handler
	workers     int
	maxRetries  int
	baseBackoff time.Duration
	seen        *recentIDs
	wg          sync.WaitGroup
}

func NewConsumer(bus *Bus, handler Handler, cfg ConsumerConfig) *Consumer {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = 100 * time.Millisecond
	}

	dedupSize := cfg.DedupSize
	if dedupSize < 1 {
		dedupSize = defaultDedupSize
	}

	return &Consumer{
		bus:         bus,
		handler:     handler,
		workers:     workers,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
		seen:        newRecentIDs(dedupSize),
	}
}

func (c *Consumer) Start() {
	for range c.workers {
		c.wg.Add(1)
		go c.worker()
	}
}

func (c *Consumer) Stop(ctx context.Context) error {
	if c.bus != nil {
		c.bus.Close()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Consumer) worker() {
	defer c.wg.Done()

	for event := range c.bus.Subscribe() {
		c.process(event)
	}
}

func (c *Consumer) process(event entity.RiskEvent) {
	if c.handler == nil {
		return
	}

	if event.EventID != "" {
		if !c.seen.Add(event.EventID) {
			slog.Info("skip duplicate risk event", "event_id", event.EventID)
			return
		}
	}

	backoff := c.baseBackoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		err := c.handler.Handle(context.Background(), event)
		if err == nil {
			return
		}

		if attempt == c.maxRetries {
			slog.Error("failed to deliver risk event after retries", "event_id", event.EventID, "to", event.To, "error", err)
			return
		}

		sleepBackoff(backoff)
		backoff *= 2
	}
}

func sleepBackoff(d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	<-timer.C
}

// recentIDs remembers the last size IDs and forgets the oldest first.
type recentIDs struct {
	mu    sync.Mutex
	ids   map[string]struct{}
	order []string
	next  int
}

func newRecentIDs(size int) *recentIDs {
	return &recentIDs{
		ids:   make(map[string]struct{}, size),
		order: make([]string, 0, size),
	}
}

// Add records id and reports false when it is already remembered.
func (r *recentIDs) Add(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ids[id]; ok {
		return false
	}

	if len(r.order) < cap(r.order) {
		r.order = append(r.order, id)
	} else {
		delete(r.ids, r.order[r.next])
		r.order[r.next] = id
		r.next = (r.next + 1) % len(r.order)
	}
	r.ids[id] = struct{}{}
	return true
}

func (r *recentIDs) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}
