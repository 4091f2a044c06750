package timeoutpolicy

import (
	"context"
	"time"
)

// Manager selects a timeout policy per operation key. It is built once from
// a Config and is immutable afterwards; the per-operation table falls back
// to the default policy for unknown keys.
type Manager[T any] struct {
	config   Config
	fallback *Policy[T]
	perOp    map[string]*Policy[T]
}

// NewManager creates a manager from a validated configuration. The given
// options apply to every constructed policy; strategy and name come from
// the configuration.
func NewManager[T any](cfg Config, opts ...Option) (*Manager[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	strategy, err := ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	// Each policy gets its own option slice; appending to the caller's
	// slice directly could share a backing array across policies.
	combine := func(extra ...Option) []Option {
		combined := make([]Option, 0, len(opts)+len(extra))
		combined = append(combined, opts...)
		return append(combined, extra...)
	}

	fallback, err := New[T](cfg.Default, combine(WithStrategy(strategy), WithName("timeout.default"))...)
	if err != nil {
		return nil, err
	}

	perOp := make(map[string]*Policy[T], len(cfg.PerOperation))
	for op, oc := range cfg.PerOperation {
		opStrategy, err := ParseStrategy(oc.Strategy)
		if err != nil {
			return nil, err
		}
		policy, err := New[T](oc.Timeout, combine(WithStrategy(opStrategy), WithName("timeout."+op))...)
		if err != nil {
			return nil, err
		}
		perOp[op] = policy
	}

	return &Manager[T]{
		config:   cfg,
		fallback: fallback,
		perOp:    perOp,
	}, nil
}

// Execute runs op under the policy selected by the execution context's
// operation key.
func (m *Manager[T]) Execute(ctx context.Context, ec *ExecutionContext, op Operation[T]) (T, error) {
	return m.PolicyFor(ec.OperationKey()).Execute(ctx, ec, op)
}

// PolicyFor returns the policy for an operation key, falling back to the
// default policy.
func (m *Manager[T]) PolicyFor(operation string) *Policy[T] {
	if policy, ok := m.perOp[operation]; ok {
		return policy
	}
	return m.fallback
}

// TimeoutFor returns the configured timeout for an operation key.
func (m *Manager[T]) TimeoutFor(operation string) time.Duration {
	if oc, ok := m.config.PerOperation[operation]; ok {
		return oc.Timeout
	}
	return m.config.Default
}
