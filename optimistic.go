package timeoutpolicy

import (
	"context"
	"errors"
	"time"
)

// errDeadlineElapsed marks a cancellation caused by the policy's own timer,
// so it can be told apart from the caller's cancellation at the same call
// site.
var errDeadlineElapsed = errors.New("timeout policy deadline elapsed")

// executeOptimistic links the caller's context with an internal deadline
// into one composite signal, passes it into the operation and awaits it
// directly. The internal deadline never cancels the caller's own context.
func (p *Policy[T]) executeOptimistic(ctx context.Context, ec *ExecutionContext, timeout time.Duration, op Operation[T]) (T, error) {
	var zero T

	opCtx, cancel := context.WithTimeoutCause(ctx, timeout, errDeadlineElapsed)
	defer cancel()

	value, err := op(opCtx)
	if err == nil {
		// Completion wins even if the deadline also elapsed.
		return value, nil
	}
	if !isCancellation(err) {
		return zero, err
	}

	// Caller cancellation takes priority in labeling and is never reported
	// as a timeout, even if the internal timer also elapsed.
	if ctx.Err() != nil {
		return zero, err
	}
	if context.Cause(opCtx) == errDeadlineElapsed {
		p.notifyTimeout(ec, timeout, nil)
		return zero, NewTimeoutRejectedError(p.name, timeout, nil)
	}

	// A cancellation the operation raised on its own, unrelated to either
	// signal. Propagate it unchanged.
	return zero, err
}
