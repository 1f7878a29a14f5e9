package refresh

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgerror"
)

// Policy decides what a view shows after a failed fetch.
type Policy int

const (
	// PolicyRetry keeps the previous data and exposes the error for a manual retry.
	PolicyRetry Policy = iota
	// PolicyFallback replaces the data with a synthetic dataset and clears the error.
	PolicyFallback
)

func (p Policy) String() string {
	if p == PolicyFallback {
		return "fallback"
	}
	return "retry"
}

type Options[T any] struct {
	Name     string
	Policy   Policy
	Fetch    func(ctx context.Context) (T, error)
	Fallback func() T
	Now      func() time.Time
	// Commit, when set, runs with live data after the generation check and
	// under the view lock. Side effects of a refresh belong here, not in Fetch.
	Commit func(ctx context.Context, data T)
}

// State is a copy of what a view currently holds.
type State[T any] struct {
	Data      T
	Source    entity.Source
	Err       error
	UpdatedAt time.Time
	Loading   bool
}

// Status is the type-erased part of State served next to every view.
type Status struct {
	Name      string        `json:"name"`
	Policy    string        `json:"policy"`
	Source    entity.Source `json:"source"`
	Loading   bool          `json:"loading"`
	UpdatedAt *time.Time    `json:"updatedAt,omitempty"`
	Error     string        `json:"error,omitempty"`
	Retryable bool          `json:"retryable"`
}

type View[T any] struct {
	name     string
	policy   Policy
	fetch    func(ctx context.Context) (T, error)
	fallback func() T
	now      func() time.Time
	commit   func(ctx context.Context, data T)

	gen      atomic.Uint64
	inflight atomic.Int64

	mu    sync.RWMutex
	state State[T]
}

func NewView[T any](opts Options[T]) *View[T] {
	v := &View[T]{
		name:     opts.Name,
		policy:   opts.Policy,
		fetch:    opts.Fetch,
		fallback: opts.Fallback,
		now:      opts.Now,
		commit:   opts.Commit,
	}
	if v.now == nil {
		v.now = time.Now
	}
	return v
}

func (v *View[T]) Name() string {
	return v.name
}

// Refresh fetches once and commits the outcome unless a newer refresh started
// in the meantime or ctx was cancelled. The returned error is the fetch error
// that the view recorded, nil when the fetch succeeded or a fallback was used.
func (v *View[T]) Refresh(ctx context.Context) error {
	g := v.gen.Add(1)
	v.inflight.Add(1)
	defer v.inflight.Add(-1)

	data, err := v.fetch(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if g != v.gen.Load() {
		slog.DebugContext(ctx, "discard stale refresh", "view", v.name, "generation", g)
		return nil
	}

	now := v.now()
	if err == nil {
		if v.commit != nil {
			v.commit(ctx, data)
		}
		v.state = State[T]{Data: data, Source: entity.SourceLive, UpdatedAt: now}
		return nil
	}

	if v.policy == PolicyFallback && v.fallback != nil {
		slog.WarnContext(ctx, "view fetch failed, using fallback data", "view", v.name, "error", err)
		v.state = State[T]{Data: v.fallback(), Source: entity.SourceFallback, UpdatedAt: now}
		return nil
	}

	slog.ErrorContext(ctx, "view fetch failed", "view", v.name, "error", err)
	v.state.Err = err
	return err
}

// State returns the committed state.
func (v *View[T]) State() State[T] {
	v.mu.RLock()
	defer v.mu.RUnlock()

	s := v.state
	s.Loading = v.inflight.Load() > 0
	return s
}

func (v *View[T]) Status() Status {
	s := v.State()

	st := Status{
		Name:    v.name,
		Policy:  v.policy.String(),
		Source:  s.Source,
		Loading: s.Loading,
	}
	if !s.UpdatedAt.IsZero() {
		at := s.UpdatedAt
		st.UpdatedAt = &at
	}
	if s.Err != nil {
		st.Error = s.Err.Error()
		st.Retryable = retryable(s.Err)
	}
	return st
}

// Reset drops the committed state and invalidates in-flight refreshes.
func (v *View[T]) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.gen.Add(1)
	v.state = State[T]{}
}

func retryable(err error) bool {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr.Retryable()
	}
	return true
}
