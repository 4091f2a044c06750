package timeoutpolicy

import (
	"fmt"
	"time"
)

// TimeoutKey is the well-known execution context key a context-aware
// provider reads a per-call timeout from.
const TimeoutKey = "timeout"

// ExecutionContext is a caller-owned key/value carrier threaded through one
// call. The policy reads well-known entries from it and forwards it
// unmodified to the timeout callback; it retains no reference after the
// call returns.
type ExecutionContext struct {
	operationKey  string
	correlationID string
	values        map[string]any
}

// NewExecutionContext creates an execution context with an identifying
// operation key.
func NewExecutionContext(operationKey string) *ExecutionContext {
	return &ExecutionContext{
		operationKey: operationKey,
		values:       make(map[string]any),
	}
}

// OperationKey returns the identifying key for this execution.
func (c *ExecutionContext) OperationKey() string {
	if c == nil {
		return ""
	}
	return c.operationKey
}

// CorrelationID returns the correlation ID, if set.
func (c *ExecutionContext) CorrelationID() string {
	if c == nil {
		return ""
	}
	return c.correlationID
}

// WithCorrelationID sets the correlation ID.
func (c *ExecutionContext) WithCorrelationID(id string) *ExecutionContext {
	c.correlationID = id
	return c
}

// Set stores a value under key.
func (c *ExecutionContext) Set(key string, value any) *ExecutionContext {
	if c.values == nil {
		c.values = make(map[string]any)
	}
	c.values[key] = value
	return c
}

// Get returns the value stored under key.
func (c *ExecutionContext) Get(key string) (any, bool) {
	if c == nil || c.values == nil {
		return nil, false
	}
	value, ok := c.values[key]
	return value, ok
}

// Duration returns the value stored under key as a time.Duration. A missing
// entry or a value of another type is an error, never a silently wrong
// duration.
func (c *ExecutionContext) Duration(key string) (time.Duration, error) {
	value, ok := c.Get(key)
	if !ok {
		return 0, fmt.Errorf("execution context has no value for %q", key)
	}
	d, ok := value.(time.Duration)
	if !ok {
		return 0, fmt.Errorf("execution context value for %q is %T, not a duration", key, value)
	}
	return d, nil
}
