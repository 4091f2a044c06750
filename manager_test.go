package timeoutpolicy_test

import (
	"context"
	"testing"
	"time"

	"github.com/auth-platform/libs/go/timeoutpolicy"
)

func managerConfig() timeoutpolicy.Config {
	return timeoutpolicy.Config{
		Default:  time.Second,
		Strategy: "OPTIMISTIC",
		PerOperation: map[string]timeoutpolicy.OperationConfig{
			"fast-op": {Timeout: 30 * time.Millisecond, Strategy: "PESSIMISTIC"},
			"slow-op": {Timeout: 45 * time.Second},
		},
	}
}

func TestManagerSelection(t *testing.T) {
	m, err := timeoutpolicy.NewManager[int](managerConfig(), timeoutpolicy.WithLogger(discardLogger()))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		operation string
		timeout   time.Duration
		strategy  timeoutpolicy.Strategy
	}{
		{"fast-op", 30 * time.Millisecond, timeoutpolicy.Pessimistic},
		{"slow-op", 45 * time.Second, timeoutpolicy.Optimistic},
		{"unknown-op", time.Second, timeoutpolicy.Optimistic},
	}

	for _, tt := range tests {
		t.Run(tt.operation, func(t *testing.T) {
			if got := m.TimeoutFor(tt.operation); got != tt.timeout {
				t.Errorf("TimeoutFor(%s) = %v, want %v", tt.operation, got, tt.timeout)
			}
			if got := m.PolicyFor(tt.operation).Strategy(); got != tt.strategy {
				t.Errorf("PolicyFor(%s).Strategy() = %v, want %v", tt.operation, got, tt.strategy)
			}
		})
	}
}

func TestManagerExecuteUsesOperationKey(t *testing.T) {
	m, err := timeoutpolicy.NewManager[int](managerConfig(), timeoutpolicy.WithLogger(discardLogger()))
	if err != nil {
		t.Fatal(err)
	}

	ec := timeoutpolicy.NewExecutionContext("fast-op")
	_, err = m.Execute(context.Background(), ec, func(ctx context.Context) (int, error) {
		time.Sleep(200 * time.Millisecond)
		return 42, nil
	})

	if !timeoutpolicy.IsTimeoutRejected(err) {
		t.Errorf("expected the per-operation 30ms timeout to apply, got %v", err)
	}
}

func TestManagerExecuteFallsBackToDefault(t *testing.T) {
	m, err := timeoutpolicy.NewManager[int](managerConfig(), timeoutpolicy.WithLogger(discardLogger()))
	if err != nil {
		t.Fatal(err)
	}

	ec := timeoutpolicy.NewExecutionContext("unlisted-op")
	result, err := m.Execute(context.Background(), ec, func(ctx context.Context) (int, error) {
		return 42, nil
	})

	if err != nil || result != 42 {
		t.Errorf("expected 42 under the default policy, got %d, err: %v", result, err)
	}
}

func TestManagerRejectsInvalidConfig(t *testing.T) {
	_, err := timeoutpolicy.NewManager[int](timeoutpolicy.Config{Default: -1})
	if err == nil {
		t.Fatal("expected error for invalid configuration")
	}
}
