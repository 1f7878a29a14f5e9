package refresh

import "sync"

// Trigger is the shared refresh counter bumped after uploads and data clears.
type Trigger struct {
	mu   sync.Mutex
	n    uint64
	subs map[chan struct{}]struct{}
}

func NewTrigger() *Trigger {
	return &Trigger{subs: make(map[chan struct{}]struct{})}
}

// Bump increments the counter and wakes every subscriber. Bumps that arrive
// while a subscriber has not drained its channel are coalesced.
func (t *Trigger) Bump() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.n++
	for ch := range t.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return t.n
}

func (t *Trigger) Value() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.n
}

// Subscribe returns a channel signalled on every bump and a func that removes it.
func (t *Trigger) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	t.mu.Lock()
	t.subs[ch] = struct{}{}
	t.mu.Unlock()

	return ch, func() {
		t.mu.Lock()
		delete(t.subs, ch)
		t.mu.Unlock()
	}
}
