package timeoutpolicy

import "context"

// CorrelationFunc produces the correlation ID stamped onto timeout events
// when the execution context does not already carry one.
type CorrelationFunc func() string

// DefaultCorrelationFunc leaves timeout events uncorrelated.
func DefaultCorrelationFunc() string {
	return ""
}

// EnsureCorrelationFunc falls back to DefaultCorrelationFunc when fn is nil.
func EnsureCorrelationFunc(fn CorrelationFunc) CorrelationFunc {
	if fn == nil {
		return DefaultCorrelationFunc
	}
	return fn
}

type correlationKey struct{}

// ContextWithCorrelationID returns a context carrying the given correlation
// ID so a timeout rejection can be tied back to the request that ran into it.
func ContextWithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationKey{}, correlationID)
}

// CorrelationIDFromContext reports the correlation ID carried by ctx, or the
// empty string when the request was never correlated.
func CorrelationIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(correlationKey{}).(string); ok {
		return id
	}
	return ""
}
