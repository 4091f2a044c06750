package timeoutpolicy

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAbandonedOperationLifecycle(t *testing.T) {
	t.Run("Result before completion", func(t *testing.T) {
		ab := newAbandonedOperation()
		if _, err := ab.Result(); !errors.Is(err, ErrStillRunning) {
			t.Errorf("expected ErrStillRunning, got %v", err)
		}
	})

	t.Run("Result after completion", func(t *testing.T) {
		ab := newAbandonedOperation()
		ab.complete("done", nil)

		<-ab.Done()
		value, err := ab.Result()
		if err != nil || value != "done" {
			t.Errorf("got %v, %v", value, err)
		}
	})

	t.Run("Wait returns terminal error", func(t *testing.T) {
		terminal := errors.New("late fault")
		ab := newAbandonedOperation()
		go func() {
			time.Sleep(10 * time.Millisecond)
			ab.complete(nil, terminal)
		}()

		if err := ab.Wait(context.Background()); !errors.Is(err, terminal) {
			t.Errorf("expected terminal error, got %v", err)
		}
	})

	t.Run("Wait honors context cancellation", func(t *testing.T) {
		ab := newAbandonedOperation()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		if err := ab.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected DeadlineExceeded, got %v", err)
		}
	})
}

func TestCompletedOutcomeTyping(t *testing.T) {
	t.Run("typed value round-trips", func(t *testing.T) {
		ab := newAbandonedOperation()
		ab.complete(42, nil)

		value, err := completedOutcome[int](ab)
		if err != nil || value != 42 {
			t.Errorf("got %d, %v", value, err)
		}
	})

	t.Run("fault drops the value", func(t *testing.T) {
		fault := errors.New("failed")
		ab := newAbandonedOperation()
		ab.complete(42, fault)

		value, err := completedOutcome[int](ab)
		if !errors.Is(err, fault) || value != 0 {
			t.Errorf("got %d, %v", value, err)
		}
	})

	t.Run("nil value yields zero", func(t *testing.T) {
		ab := newAbandonedOperation()
		ab.complete(nil, nil)

		value, err := completedOutcome[*string](ab)
		if err != nil || value != nil {
			t.Errorf("got %v, %v", value, err)
		}
	})

	t.Run("mismatched value is an error", func(t *testing.T) {
		ab := newAbandonedOperation()
		ab.complete("not an int", nil)

		value, err := completedOutcome[int](ab)
		if err == nil || value != 0 {
			t.Errorf("expected typing error, got %d, %v", value, err)
		}
	})
}
