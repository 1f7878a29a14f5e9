package alert

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkguid"
)

const (
	DefaultHistoryLimit     = 20
	DefaultNotificationTime = 5 * time.Second
)

type Publisher interface {
	Publish(ctx context.Context, event entity.RiskEvent) error
}

type Dependency struct {
	Rules     []Rule
	ID        pkguid.StringID
	Clock     Clock
	Publisher Publisher

	HistoryLimit     int
	NotificationTime time.Duration
}

// Engine keeps the alert history, the overall risk level and the transient
// level-change notification. It is safe for concurrent use.
type Engine struct {
	rules     []Rule
	id        pkguid.StringID
	clock     Clock
	publisher Publisher
	limit     int
	notifyFor time.Duration

	mu           sync.Mutex
	history      []entity.Alert
	level        entity.RiskLevel
	notification *entity.Notification
	dismiss      Timer
}

func New(dep Dependency) *Engine {
	e := &Engine{
		rules:     dep.Rules,
		id:        dep.ID,
		clock:     dep.Clock,
		publisher: dep.Publisher,
		limit:     dep.HistoryLimit,
		notifyFor: dep.NotificationTime,
		level:     entity.RiskLevelLow,
	}
	if e.rules == nil {
		e.rules = DefaultRules()
	}
	if e.id == nil {
		e.id = pkguid.NewPrefixedUUID("alert")
	}
	if e.clock == nil {
		e.clock = realClock{}
	}
	if e.limit <= 0 {
		e.limit = DefaultHistoryLimit
	}
	if e.notifyFor <= 0 {
		e.notifyFor = DefaultNotificationTime
	}
	return e
}

// Snapshot is a copy of the engine state.
type Snapshot struct {
	Alerts       []entity.Alert       `json:"alerts"`
	RiskLevel    entity.RiskLevel     `json:"riskLevel"`
	Notification *entity.Notification `json:"notification,omitempty"`
	New          int                  `json:"newAlerts"`
}

// Evaluate runs every rule over the batch, prepends the new alerts to the
// history and recomputes the risk level. A level change raises a notification
// that clears itself after the notification time.
func (e *Engine) Evaluate(ctx context.Context, txs []entity.Transaction) Snapshot {
	now := e.clock.Now()

	var fresh []entity.Alert
	top := entity.Severity("")
	for _, r := range e.rules {
		f := r.Evaluate(txs, now)
		if f == nil {
			continue
		}
		slog.InfoContext(ctx, "risk alert raised", "rule", r.Name(), "severity", f.Severity, "count", f.Count)

		fresh = append(fresh, entity.Alert{
			ID:          e.id.Generate(),
			Type:        f.Type,
			Severity:    f.Severity,
			Title:       f.Title,
			Message:     f.Message,
			Timestamp:   now,
			Count:       f.Count,
			TotalAmount: f.TotalAmount,
		})
		if f.Severity.Rank() > top.Rank() {
			top = f.Severity
		}
	}
	level := entity.RiskLevelOf(top)

	e.mu.Lock()
	e.history = append(fresh, e.history...)
	if len(e.history) > e.limit {
		e.history = e.history[:e.limit]
	}

	var event *entity.RiskEvent
	if level != e.level {
		event = &entity.RiskEvent{
			EventID:   e.id.Generate(),
			From:      e.level,
			To:        level,
			Alerts:    slices.Clone(fresh),
			Timestamp: now,
		}
		e.raise(e.level, level, now)
		e.level = level
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	snap.New = len(fresh)

	if event != nil {
		slog.InfoContext(ctx, "risk level changed", "from", event.From, "to", event.To)
		if e.publisher != nil {
			if err := e.publisher.Publish(ctx, *event); err != nil {
				slog.WarnContext(ctx, "failed to publish risk event", "event_id", event.EventID, "error", err)
			}
		}
	}

	return snap
}

func (e *Engine) raise(from, to entity.RiskLevel, now time.Time) {
	if e.dismiss != nil {
		e.dismiss.Stop()
	}

	n := &entity.Notification{From: from, To: to, RaisedAt: now, ExpiresAt: now.Add(e.notifyFor)}
	e.notification = n
	e.dismiss = e.clock.AfterFunc(e.notifyFor, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.notification == n {
			e.notification = nil
			e.dismiss = nil
		}
	})
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		Alerts:    slices.Clone(e.history),
		RiskLevel: e.level,
	}
	if snap.Alerts == nil {
		snap.Alerts = []entity.Alert{}
	}
	if e.notification != nil {
		n := *e.notification
		snap.Notification = &n
	}
	return snap
}

// Reset drops the history and any pending notification.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dismiss != nil {
		e.dismiss.Stop()
		e.dismiss = nil
	}
	e.history = nil
	e.notification = nil
	e.level = entity.RiskLevelLow
}

func sumAmounts(txs []entity.Transaction) float64 {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(decimal.NewFromFloat(tx.Amount))
	}
	return total.Round(2).InexactFloat64()
}
