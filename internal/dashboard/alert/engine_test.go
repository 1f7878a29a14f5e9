package alert

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
)

type fakeTimer struct {
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

type seqID struct {
	mu sync.Mutex
	n  int
}

func (s *seqID) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return "alert-" + string(rune('a'+s.n-1))
}

type recordingPublisher struct {
	events []entity.RiskEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev entity.RiskEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

func repeat(typ entity.TxType, amount float64, n int) []entity.Transaction {
	out := make([]entity.Transaction, n)
	for i := range out {
		out[i] = entity.Transaction{ID: int64(i + 1), Type: typ, Amount: amount}
	}
	return out
}

func hasType(alerts []entity.Alert, typ entity.AlertType) *entity.Alert {
	for i := range alerts {
		if alerts[i].Type == typ {
			return &alerts[i]
		}
	}
	return nil
}

func TestHighValueRule(t *testing.T) {
	e := New(Dependency{Clock: newFakeClock(), ID: &seqID{}})

	batch := []entity.Transaction{
		{ID: 1, Type: entity.TxTypePayment, Amount: 1_000_000},
		{ID: 2, Type: entity.TxTypePayment, Amount: 1_500_000},
		{ID: 3, Type: entity.TxTypePayment, Amount: 2_250_000.5},
	}
	snap := e.Evaluate(context.Background(), batch)

	got := hasType(snap.Alerts, entity.AlertTypeHighValue)
	if got == nil {
		t.Fatalf("expected high value alert, got %+v", snap.Alerts)
	}
	if got.Count != 2 {
		t.Fatalf("exactly-threshold amounts must not count, got %d", got.Count)
	}
	if got.TotalAmount == nil || *got.TotalAmount != 3_750_000.5 {
		t.Fatalf("unexpected total amount: %v", got.TotalAmount)
	}
	if got.Message != "2 transactions over ₹10L detected" {
		t.Fatalf("unexpected message: %q", got.Message)
	}
	if snap.RiskLevel != entity.RiskLevelCritical {
		t.Fatalf("expected CRITICAL, got %s", snap.RiskLevel)
	}

	e.Reset()
	snap = e.Evaluate(context.Background(), repeat(entity.TxTypePayment, 1_000_000, 3))
	if hasType(snap.Alerts, entity.AlertTypeHighValue) != nil {
		t.Fatalf("no amount above threshold must not raise high value alert")
	}
}

func TestTransferSpikeThreshold(t *testing.T) {
	cases := []struct {
		n    int
		want bool
	}{
		{n: 22, want: true},
		{n: 16, want: true},
		{n: 15, want: false},
	}

	for _, tc := range cases {
		e := New(Dependency{Clock: newFakeClock(), ID: &seqID{}})
		snap := e.Evaluate(context.Background(), repeat(entity.TxTypeTransfer, 5000, tc.n))

		got := hasType(snap.Alerts, entity.AlertTypeTransferSpike)
		if (got != nil) != tc.want {
			t.Fatalf("n=%d: transfer spike raised=%v, want %v", tc.n, got != nil, tc.want)
		}
		if got != nil && got.Count != tc.n {
			t.Fatalf("n=%d: unexpected count %d", tc.n, got.Count)
		}
		if tc.want && snap.RiskLevel != entity.RiskLevelMedium {
			t.Fatalf("n=%d: warning must map to MEDIUM, got %s", tc.n, snap.RiskLevel)
		}
		if freq := hasType(snap.Alerts, entity.AlertTypeHighFrequency); (freq != nil) != (tc.n > 20) {
			t.Fatalf("n=%d: transactions without timestamps count as detected now, frequency raised=%v", tc.n, freq != nil)
		}
	}
}

func TestCashOutPattern(t *testing.T) {
	e := New(Dependency{Clock: newFakeClock(), ID: &seqID{}})

	snap := e.Evaluate(context.Background(), repeat(entity.TxTypeCashOut, 100, 10))
	if len(snap.Alerts) != 0 {
		t.Fatalf("ten cash-outs must not alert, got %+v", snap.Alerts)
	}

	snap = e.Evaluate(context.Background(), repeat(entity.TxTypeCashOut, 100, 11))
	got := hasType(snap.Alerts, entity.AlertTypeCashoutPattern)
	if got == nil || got.Severity != entity.SeverityHigh {
		t.Fatalf("expected HIGH cash-out alert, got %+v", snap.Alerts)
	}
	if snap.RiskLevel != entity.RiskLevelHigh {
		t.Fatalf("expected HIGH level, got %s", snap.RiskLevel)
	}
}

func TestHighFrequencyWindow(t *testing.T) {
	clock := newFakeClock()
	now := clock.Now()
	e := New(Dependency{Clock: clock, ID: &seqID{}})

	batch := make([]entity.Transaction, 0, 25)
	for i := range 21 {
		batch = append(batch, entity.Transaction{
			ID:         int64(i),
			Type:       entity.TxTypePayment,
			DetectedAt: now.Add(-time.Duration(i) * time.Minute).Format(time.RFC3339),
		})
	}
	for i := range 4 {
		batch = append(batch, entity.Transaction{
			ID:         int64(100 + i),
			Type:       entity.TxTypePayment,
			DetectedAt: now.Add(-2 * time.Hour).Format(time.RFC3339),
		})
	}

	snap := e.Evaluate(context.Background(), batch)
	got := hasType(snap.Alerts, entity.AlertTypeHighFrequency)
	if got == nil {
		t.Fatalf("expected high frequency alert")
	}
	if got.Count != 21 {
		t.Fatalf("only the last hour must count, got %d", got.Count)
	}
	if got.Message != "21 fraudulent transactions in the last hour" {
		t.Fatalf("unexpected message: %q", got.Message)
	}

	e.Reset()
	snap = e.Evaluate(context.Background(), batch[1:])
	if hasType(snap.Alerts, entity.AlertTypeHighFrequency) != nil {
		t.Fatalf("twenty recent transactions must not alert")
	}
}

func TestHighFrequencyMissingTimestamp(t *testing.T) {
	e := New(Dependency{Clock: newFakeClock(), ID: &seqID{}})

	batch := make([]entity.Transaction, 0, 30)
	for i := range 25 {
		batch = append(batch, entity.Transaction{ID: int64(i), Type: entity.TxTypePayment})
	}
	for i := range 5 {
		batch = append(batch, entity.Transaction{ID: int64(100 + i), Type: entity.TxTypePayment, DetectedAt: "not-a-date"})
	}

	snap := e.Evaluate(context.Background(), batch)
	got := hasType(snap.Alerts, entity.AlertTypeHighFrequency)
	if got == nil {
		t.Fatalf("transactions without a timestamp must count as recent, got %+v", snap.Alerts)
	}
	if got.Count != 25 {
		t.Fatalf("unparseable timestamps must not count, got %d", got.Count)
	}
}

func TestHistoryIsBoundedNewestFirst(t *testing.T) {
	clock := newFakeClock()
	e := New(Dependency{Clock: clock, ID: &seqID{}})

	batch := append(repeat(entity.TxTypeTransfer, 2_000_000, 16), repeat(entity.TxTypeCashOut, 10, 11)...)
	for range 8 {
		e.Evaluate(context.Background(), batch)
		clock.Advance(time.Second)
	}

	snap := e.Snapshot()
	if len(snap.Alerts) != DefaultHistoryLimit {
		t.Fatalf("expected %d alerts, got %d", DefaultHistoryLimit, len(snap.Alerts))
	}
	for i := 1; i < len(snap.Alerts); i++ {
		if snap.Alerts[i].Timestamp.After(snap.Alerts[i-1].Timestamp) {
			t.Fatalf("history must be newest first at %d", i)
		}
	}
	if first := snap.Alerts[0]; !first.Timestamp.Equal(clock.Now().Add(-time.Second)) {
		t.Fatalf("expected newest cycle first, got %v", first.Timestamp)
	}
}

func TestNotificationDismissedAfterFiveSeconds(t *testing.T) {
	clock := newFakeClock()
	e := New(Dependency{Clock: clock, ID: &seqID{}})

	snap := e.Evaluate(context.Background(), repeat(entity.TxTypeCashOut, 10, 12))
	if snap.Notification == nil {
		t.Fatalf("expected notification on LOW -> HIGH")
	}
	if snap.Notification.From != entity.RiskLevelLow || snap.Notification.To != entity.RiskLevelHigh {
		t.Fatalf("unexpected notification: %+v", snap.Notification)
	}

	clock.Advance(4999 * time.Millisecond)
	if e.Snapshot().Notification == nil {
		t.Fatalf("notification cleared too early")
	}

	clock.Advance(time.Millisecond)
	if n := e.Snapshot().Notification; n != nil {
		t.Fatalf("expected notification cleared, got %+v", n)
	}
	if e.Snapshot().RiskLevel != entity.RiskLevelHigh {
		t.Fatalf("risk level must survive the notification")
	}
}

func TestNotificationOnlyOnChange(t *testing.T) {
	clock := newFakeClock()
	e := New(Dependency{Clock: clock, ID: &seqID{}})
	batch := repeat(entity.TxTypeCashOut, 10, 12)

	e.Evaluate(context.Background(), batch)
	clock.Advance(DefaultNotificationTime)

	snap := e.Evaluate(context.Background(), batch)
	if snap.Notification != nil {
		t.Fatalf("same level must not notify again")
	}

	snap = e.Evaluate(context.Background(), nil)
	if snap.RiskLevel != entity.RiskLevelLow || snap.Notification == nil {
		t.Fatalf("expected notification back to LOW, got %+v", snap)
	}
}

func TestLevelChangePublishesEvent(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("nats down")}
	e := New(Dependency{Clock: newFakeClock(), ID: &seqID{}, Publisher: pub})

	e.Evaluate(context.Background(), repeat(entity.TxTypePayment, 3_000_000, 1))
	e.Evaluate(context.Background(), repeat(entity.TxTypePayment, 3_000_000, 1))

	if len(pub.events) != 1 {
		t.Fatalf("expected one event, got %d", len(pub.events))
	}
	ev := pub.events[0]
	if ev.From != entity.RiskLevelLow || ev.To != entity.RiskLevelCritical {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if len(ev.Alerts) != 1 || ev.Alerts[0].Type != entity.AlertTypeHighValue {
		t.Fatalf("unexpected event alerts: %+v", ev.Alerts)
	}
}
