// Package grpctimeout maps timeout policy errors onto gRPC status codes and
// applies a policy to outgoing unary calls.
package grpctimeout

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/auth-platform/libs/go/timeoutpolicy"
)

// ErrorMapping maps policy error codes to gRPC status codes.
var ErrorMapping = map[timeoutpolicy.ErrorCode]codes.Code{
	timeoutpolicy.ErrTimeout:         codes.DeadlineExceeded,
	timeoutpolicy.ErrInvalidArgument: codes.InvalidArgument,
	timeoutpolicy.ErrMissingArgument: codes.InvalidArgument,
}

// CodeFor returns the gRPC code for a policy error code.
func CodeFor(code timeoutpolicy.ErrorCode) codes.Code {
	if grpcCode, ok := ErrorMapping[code]; ok {
		return grpcCode
	}
	return codes.Internal
}

// ToStatusError converts a policy error to a gRPC status error. Caller
// cancellations keep their canonical codes; already-status errors pass
// through unchanged.
func ToStatusError(err error) error {
	if err == nil {
		return nil
	}

	var rejected *timeoutpolicy.TimeoutRejectedError
	if errors.As(err, &rejected) {
		return status.Error(CodeFor(rejected.Code), rejected.Message)
	}
	var config *timeoutpolicy.ConfigurationError
	if errors.As(err, &config) {
		return status.Error(CodeFor(config.Code), config.Message)
	}
	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codes.Internal, err.Error())
}

// UnaryClientInterceptor applies the policy to every outgoing unary call.
// The full method name becomes the operation key, and a correlation ID
// present on the context is carried onto the execution context.
func UnaryClientInterceptor(policy *timeoutpolicy.Policy[struct{}]) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ec := timeoutpolicy.NewExecutionContext(method).
			WithCorrelationID(timeoutpolicy.CorrelationIDFromContext(ctx))

		_, err := policy.Execute(ctx, ec, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, invoker(ctx, method, req, reply, cc, opts...)
		})
		return ToStatusError(err)
	}
}
