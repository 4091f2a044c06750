package timeoutpolicy

import (
	"context"
	"fmt"
	"time"
)

// executePessimistic races the operation, run on a detached goroutine,
// against a timer. The caller's values survive into the operation but its
// cancellation does not: a timed-out call abandons the work rather than
// stopping it, and the handle keeps the eventual outcome observable.
func (p *Policy[T]) executePessimistic(ctx context.Context, ec *ExecutionContext, timeout time.Duration, op Operation[T]) (T, error) {
	var zero T

	opCtx := context.WithoutCancel(ctx)
	abandoned := newAbandonedOperation()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				abandoned.complete(nil, &PanicError{Value: r})
			}
		}()
		value, err := op(opCtx)
		abandoned.complete(value, err)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-abandoned.done:
		return completedOutcome[T](abandoned)
	case <-timer.C:
		// Completion wins when both become observable together; the timer
		// is advisory once the operation has actually finished.
		select {
		case <-abandoned.done:
			return completedOutcome[T](abandoned)
		default:
		}
		p.notifyTimeout(ec, timeout, abandoned)
		return zero, NewTimeoutRejectedError(p.name, timeout, abandoned)
	}
}

// completedOutcome converts a terminal handle outcome back to the typed
// result. Only called once the handle's done channel is closed. The
// goroutine in executePessimistic always stores a T, so a nil value is
// the operation's zero result; anything else is a corrupted handle.
func completedOutcome[T any](abandoned *AbandonedOperation) (T, error) {
	var zero T
	value, err := abandoned.Result()
	if err != nil {
		return zero, err
	}
	if value == nil {
		return zero, nil
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("abandoned operation completed with %T, want %T", value, zero)
	}
	return typed, nil
}
