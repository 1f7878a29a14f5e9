package pkgroutine

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewManagerDefaultMax(t *testing.T) {
	mgr := NewManager(0)
	if got := cap(mgr.sema); got != DefaultMaxGoroutine {
		t.Fatalf("expected cap %d, got %d", DefaultMaxGoroutine, got)
	}
}

func TestManagerCollectsErrors(t *testing.T) {
	mgr := NewManager(2)
	errOne := errors.New("one")
	errTwo := errors.New("two")

	mgr.Go(context.Background(), "first", func(ctx context.Context) error {
		return errOne
	})
	mgr.Go(context.Background(), "second", func(ctx context.Context) error {
		return errTwo
	})

	joined := mgr.Wait()
	if joined == nil {
		t.Fatalf("expected errors")
	}
	if !errors.Is(joined, errOne) || !errors.Is(joined, errTwo) {
		t.Fatalf("expected both errors to be present, got %v", joined)
	}
}

func TestManagerIgnoresCancellation(t *testing.T) {
	mgr := NewManager(1)
	mgr.Go(context.Background(), "poller", func(ctx context.Context) error {
		return context.Canceled
	})

	if err := mgr.Wait(); err != nil {
		t.Fatalf("expected nil error for cancelled task, got %v", err)
	}
}

func TestManagerRecoversPanics(t *testing.T) {
	mgr := NewManager(1)
	mgr.Go(context.Background(), "boom", func(ctx context.Context) error {
		panic("boom")
	})

	err := mgr.Wait()
	if !errors.Is(err, ErrPanic) {
		t.Fatalf("expected ErrPanic, got %v", err)
	}
}

func TestManagerRunningCount(t *testing.T) {
	mgr := NewManager(2)
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})

	mgr.Go(ctx, "long", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})

	<-started
	if got := mgr.Running(); got != 1 {
		t.Fatalf("expected 1 running task, got %d", got)
	}

	cancel()
	if err := mgr.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for mgr.Running() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := mgr.Running(); got != 0 {
		t.Fatalf("expected 0 running tasks, got %d", got)
	}
}

func TestManagerSkipsWhenContextDone(t *testing.T) {
	mgr := NewManager(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	mgr.Go(ctx, "late", func(ctx context.Context) error {
		ran = true
		return nil
	})

	if err := mgr.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ran {
		t.Fatalf("expected task not to run on cancelled context")
	}
}
