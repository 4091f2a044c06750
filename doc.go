// Package timeoutpolicy bounds the wall-clock duration of arbitrary
// operations and reports a distinct TimeoutRejectedError when the bound is
// exceeded, whether or not the guarded operation cooperates with
// cancellation.
//
// A Policy is immutable and safe for unlimited concurrent use. Each call
// owns its own timer and cancellation resources. Two enforcement strategies
// are available:
//
//   - Optimistic (default): a composite cancellation signal linking the
//     caller's context and an internal deadline is passed into the
//     operation, which is trusted to stop promptly.
//   - Pessimistic: the operation runs on a detached goroutine raced against
//     a timer; on expiry the call returns immediately and the still-running
//     work is abandoned behind an AbandonedOperation handle.
//
// A genuine caller cancellation is always propagated verbatim and never
// relabeled as a timeout.
package timeoutpolicy
