package timeoutpolicy

import (
	"context"
	"errors"
)

// ErrStillRunning is returned by Result while the abandoned operation has
// not yet reached a terminal outcome.
var ErrStillRunning = errors.New("abandoned operation is still running")

// AbandonedOperation is the handle to a guarded operation the pessimistic
// strategy left running after reporting a timeout. The policy never cancels
// the work; the handle only makes its terminal outcome observable so a
// late fault is captured rather than lost.
type AbandonedOperation struct {
	done  chan struct{}
	value any
	err   error
}

func newAbandonedOperation() *AbandonedOperation {
	return &AbandonedOperation{done: make(chan struct{})}
}

// Done is closed once the operation reaches a terminal outcome.
func (a *AbandonedOperation) Done() <-chan struct{} {
	return a.done
}

// Wait blocks until the operation terminates or ctx is canceled, and
// returns the operation's terminal error.
func (a *AbandonedOperation) Wait(ctx context.Context) error {
	select {
	case <-a.done:
		return a.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Result returns the terminal outcome, or ErrStillRunning if the operation
// has not finished yet. A recovered panic surfaces as a *PanicError.
func (a *AbandonedOperation) Result() (any, error) {
	select {
	case <-a.done:
		return a.value, a.err
	default:
		return nil, ErrStillRunning
	}
}

// complete records the terminal outcome. Called exactly once, from the
// operation's own goroutine.
func (a *AbandonedOperation) complete(value any, err error) {
	a.value = value
	a.err = err
	close(a.done)
}
