package timeoutpolicy

import (
	"fmt"
	"time"
)

// Provider resolves the timeout to apply for one call. It is evaluated
// exactly once per call, before the operation starts. A failed resolution
// fails the whole call as an operation fault, not as a timeout.
type Provider func(ec *ExecutionContext) (time.Duration, error)

func fixedProvider(timeout time.Duration) Provider {
	return func(*ExecutionContext) (time.Duration, error) {
		return timeout, nil
	}
}

// TimeoutFromContext is a Provider reading the duration pre-seeded under
// TimeoutKey in the execution context.
func TimeoutFromContext(ec *ExecutionContext) (time.Duration, error) {
	d, err := ec.Duration(TimeoutKey)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("execution context timeout %v is not positive", d)
	}
	return d, nil
}
