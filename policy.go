package timeoutpolicy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Operation is the guarded unit of work. The context it receives carries
// the enforcement signal: for the optimistic strategy it is canceled when
// the deadline elapses, for the pessimistic strategy it is detached from
// the caller's cancellation.
type Operation[T any] func(ctx context.Context) (T, error)

// OnTimeoutFunc is invoked synchronously, exactly once, when the deadline
// elapses before the operation completes. abandoned is non-nil only for the
// pessimistic strategy. The callback cannot suppress the timeout rejection.
type OnTimeoutFunc func(ec *ExecutionContext, timeout time.Duration, abandoned *AbandonedOperation)

// Policy enforces a wall-clock bound on guarded operations. It is immutable
// after construction and safe for unlimited concurrent use; each call owns
// its own timer and cancellation resources.
type Policy[T any] struct {
	name          string
	provider      Provider
	strategy      Strategy
	onTimeout     OnTimeoutFunc
	emitter       EventEmitter
	correlationFn CorrelationFunc
	logger        *slog.Logger
	tracer        trace.Tracer
}

type policyOptions struct {
	name          string
	strategy      Strategy
	onTimeout     OnTimeoutFunc
	onTimeoutSet  bool
	emitter       EventEmitter
	correlationFn CorrelationFunc
	logger        *slog.Logger
	tracer        trace.Tracer
}

// Option configures a policy.
type Option func(*policyOptions)

// WithName sets the policy name used in errors, events and logs.
func WithName(name string) Option {
	return func(o *policyOptions) { o.name = name }
}

// WithStrategy selects the enforcement strategy. Default is Optimistic.
func WithStrategy(s Strategy) Option {
	return func(o *policyOptions) { o.strategy = s }
}

// WithOnTimeout sets the timeout notification callback. Passing nil is a
// configuration error.
func WithOnTimeout(fn OnTimeoutFunc) Option {
	return func(o *policyOptions) {
		o.onTimeout = fn
		o.onTimeoutSet = true
	}
}

// WithEmitter sets the event emitter for timeout events.
func WithEmitter(emitter EventEmitter) Option {
	return func(o *policyOptions) { o.emitter = emitter }
}

// WithCorrelationFunc sets the correlation ID source for emitted events.
func WithCorrelationFunc(fn CorrelationFunc) Option {
	return func(o *policyOptions) { o.correlationFn = fn }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *policyOptions) { o.logger = logger }
}

// WithTracer enables span creation around Execute.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *policyOptions) { o.tracer = tracer }
}

// New creates a policy with a fixed timeout.
func New[T any](timeout time.Duration, opts ...Option) (*Policy[T], error) {
	if timeout <= 0 {
		return nil, NewInvalidArgumentError("timeout", "must be a positive duration")
	}
	return newPolicy[T](fixedProvider(timeout), opts)
}

// NewFromSeconds creates a policy with a fixed timeout of a whole number of
// seconds.
func NewFromSeconds[T any](seconds int, opts ...Option) (*Policy[T], error) {
	if seconds <= 0 {
		return nil, NewInvalidArgumentError("seconds", "must be positive")
	}
	return newPolicy[T](fixedProvider(time.Duration(seconds)*time.Second), opts)
}

// NewWithProvider creates a policy whose timeout is resolved once per call
// by a zero-argument provider.
func NewWithProvider[T any](provider func() time.Duration, opts ...Option) (*Policy[T], error) {
	if provider == nil {
		return nil, NewMissingArgumentError("provider")
	}
	return newPolicy[T](func(*ExecutionContext) (time.Duration, error) {
		return provider(), nil
	}, opts)
}

// NewWithContextProvider creates a policy whose timeout is resolved once
// per call from the live execution context.
func NewWithContextProvider[T any](provider Provider, opts ...Option) (*Policy[T], error) {
	if provider == nil {
		return nil, NewMissingArgumentError("provider")
	}
	return newPolicy[T](provider, opts)
}

func newPolicy[T any](provider Provider, opts []Option) (*Policy[T], error) {
	o := policyOptions{
		name:     "timeout",
		strategy: Optimistic,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if !o.strategy.valid() {
		return nil, NewInvalidArgumentError("strategy", "is not a known strategy")
	}
	if o.onTimeoutSet && o.onTimeout == nil {
		return nil, NewMissingArgumentError("onTimeout")
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	return &Policy[T]{
		name:          o.name,
		provider:      provider,
		strategy:      o.strategy,
		onTimeout:     o.onTimeout,
		emitter:       o.emitter,
		correlationFn: EnsureCorrelationFunc(o.correlationFn),
		logger:        o.logger,
		tracer:        o.tracer,
	}, nil
}

// Name returns the policy name.
func (p *Policy[T]) Name() string { return p.name }

// Strategy returns the enforcement strategy.
func (p *Policy[T]) Strategy() Strategy { return p.strategy }

// Execute runs op under the policy's deadline. It returns the operation's
// result unchanged, a *TimeoutRejectedError when the deadline elapsed
// first, the caller's own cancellation verbatim, or the operation's fault
// unchanged. ec may be nil.
func (p *Policy[T]) Execute(ctx context.Context, ec *ExecutionContext, op Operation[T]) (T, error) {
	var zero T

	if op == nil {
		return zero, fmt.Errorf("timeoutpolicy: nil operation")
	}

	// A pre-canceled caller token fails immediately; the operation body
	// never runs under either strategy.
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	timeout, err := p.resolveTimeout(ec)
	if err != nil {
		return zero, err
	}

	var span trace.Span
	if p.tracer != nil {
		ctx, span = p.tracer.Start(ctx, "timeoutpolicy.execute",
			trace.WithAttributes(
				attribute.String("timeout.policy", p.name),
				attribute.String("timeout.strategy", p.strategy.String()),
				attribute.Int64("timeout.ms", timeout.Milliseconds()),
			))
		defer span.End()
	}

	var value T
	if p.strategy == Pessimistic {
		value, err = p.executePessimistic(ctx, ec, timeout, op)
	} else {
		value, err = p.executeOptimistic(ctx, ec, timeout, op)
	}

	if span != nil && err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
	}
	return value, err
}

// resolveTimeout evaluates the provider once. The resolved duration must be
// strictly positive at execution time.
func (p *Policy[T]) resolveTimeout(ec *ExecutionContext) (time.Duration, error) {
	timeout, err := p.provider(ec)
	if err != nil {
		return 0, fmt.Errorf("resolve timeout: %w", err)
	}
	if timeout <= 0 {
		return 0, fmt.Errorf("resolve timeout: provider returned non-positive duration %v", timeout)
	}
	return timeout, nil
}

// notifyTimeout fires the timeout event and the user callback. A panic in
// the callback is recovered and logged; the timeout rejection stands.
func (p *Policy[T]) notifyTimeout(ec *ExecutionContext, timeout time.Duration, abandoned *AbandonedOperation) {
	p.emitTimeoutEvent(ec, timeout)

	p.logger.Warn("operation timed out",
		slog.String("policy", p.name),
		slog.String("strategy", p.strategy.String()),
		slog.String("operation_key", ec.OperationKey()),
		slog.Duration("timeout", timeout))

	if p.onTimeout == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("timeout callback panicked",
				slog.String("policy", p.name),
				slog.Any("panic", r))
		}
	}()
	p.onTimeout(ec, timeout, abandoned)
}

func (p *Policy[T]) emitTimeoutEvent(ec *ExecutionContext, timeout time.Duration) {
	if p.emitter == nil {
		return
	}

	correlationID := ec.CorrelationID()
	if correlationID == "" {
		correlationID = p.correlationFn()
	}

	p.emitter.Emit(NewTimeoutEvent(p.name, p.strategy, timeout).
		WithOperationKey(ec.OperationKey()).
		WithCorrelationID(correlationID))
}

// isCancellation reports whether err carries a context cancellation.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
