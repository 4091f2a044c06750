package testutil

import (
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"

	"github.com/auth-platform/libs/go/timeoutpolicy"
)

// GenStrategy generates random enforcement strategies.
func GenStrategy() gopter.Gen {
	return gen.IntRange(0, 1).Map(func(i int) timeoutpolicy.Strategy {
		return timeoutpolicy.Strategy(i)
	})
}

// GenConfig generates valid timeout configurations.
func GenConfig() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(1, 60000), // Default in ms
		GenStrategy(),
	).Map(func(vals []any) timeoutpolicy.Config {
		return timeoutpolicy.Config{
			Default:  time.Duration(vals[0].(int)) * time.Millisecond,
			Strategy: vals[1].(timeoutpolicy.Strategy).String(),
		}
	})
}

// GenOperationConfig generates valid per-operation overrides.
func GenOperationConfig() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(1, 60000), // Timeout in ms
		GenStrategy(),
	).Map(func(vals []any) timeoutpolicy.OperationConfig {
		return timeoutpolicy.OperationConfig{
			Timeout:  time.Duration(vals[0].(int)) * time.Millisecond,
			Strategy: vals[1].(timeoutpolicy.Strategy).String(),
		}
	})
}
