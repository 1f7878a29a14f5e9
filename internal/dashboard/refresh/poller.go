package refresh

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Refresher interface {
	Name() string
	Refresh(ctx context.Context) error
}

// Poller refreshes its target once on start, then on every tick and every
// trigger bump until the context is cancelled or Stop is called.
type Poller struct {
	target   Refresher
	interval time.Duration
	trigger  *Trigger

	stop chan struct{}
	once sync.Once
}

// NewPoller builds a poller. A zero interval disables the timer and a nil
// trigger disables bump refreshes.
func NewPoller(target Refresher, interval time.Duration, trigger *Trigger) *Poller {
	return &Poller{
		target:   target,
		interval: interval,
		trigger:  trigger,
		stop:     make(chan struct{}),
	}
}

func (p *Poller) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if p.interval > 0 {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	var bump <-chan struct{}
	if p.trigger != nil {
		ch, unsubscribe := p.trigger.Subscribe()
		defer unsubscribe()
		bump = ch
	}

	slog.InfoContext(ctx, "view poller started", "view", p.target.Name(), "interval", p.interval.String(), "on_trigger", p.trigger != nil)
	p.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "view poller stopped", "view", p.target.Name(), "because", ctx.Err())
			return nil
		case <-p.stop:
			slog.InfoContext(ctx, "view poller stopped", "view", p.target.Name())
			return nil
		case <-tick:
			p.refresh(ctx)
		case <-bump:
			p.refresh(ctx)
		}
	}
}

func (p *Poller) Stop() {
	p.once.Do(func() { close(p.stop) })
}

func (p *Poller) refresh(ctx context.Context) {
	// errors are recorded on the view itself
	_ = p.target.Refresh(ctx)
}
