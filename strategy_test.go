package timeoutpolicy

import "testing"

func TestStrategyString(t *testing.T) {
	tests := []struct {
		strategy Strategy
		want     string
	}{
		{Optimistic, "OPTIMISTIC"},
		{Pessimistic, "PESSIMISTIC"},
		{Strategy(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.strategy.String(); got != tt.want {
			t.Errorf("Strategy(%d).String() = %q, want %q", tt.strategy, got, tt.want)
		}
	}
}

func TestStrategyValid(t *testing.T) {
	if !Optimistic.valid() || !Pessimistic.valid() {
		t.Error("known strategies must be valid")
	}
	if Strategy(-1).valid() || Strategy(2).valid() {
		t.Error("unknown strategies must be invalid")
	}
}
