package timeoutpolicy

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// OperationConfig overrides timeout behavior for one operation key.
type OperationConfig struct {
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
	Strategy string        `json:"strategy" yaml:"strategy"`
}

// Config defines timeout behavior for a Manager: a default timeout and
// strategy plus per-operation overrides.
type Config struct {
	Default      time.Duration              `json:"default" yaml:"default"`
	Strategy     string                     `json:"strategy" yaml:"strategy"`
	PerOperation map[string]OperationConfig `json:"per_operation" yaml:"perOperation"`
}

// duration decodes YAML timeout values. yaml.v3 has no time.Duration
// support, so both "250ms" strings and integer nanoseconds are accepted.
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	var n int64
	if err := value.Decode(&n); err == nil {
		*d = duration(n)
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string such as %q or integer nanoseconds", "250ms")
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = duration(parsed)
	return nil
}

func (d duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

type rawOperationConfig struct {
	Timeout  duration `yaml:"timeout"`
	Strategy string   `yaml:"strategy"`
}

type rawConfig struct {
	Default      duration                      `yaml:"default"`
	Strategy     string                        `yaml:"strategy"`
	PerOperation map[string]rawOperationConfig `yaml:"perOperation"`
}

// UnmarshalYAML decodes an operation override, accepting human-readable
// duration strings for the timeout.
func (oc *OperationConfig) UnmarshalYAML(value *yaml.Node) error {
	raw := rawOperationConfig{
		Timeout:  duration(oc.Timeout),
		Strategy: oc.Strategy,
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	oc.Timeout = time.Duration(raw.Timeout)
	oc.Strategy = raw.Strategy
	return nil
}

// MarshalYAML encodes the timeout as a human-readable duration string.
func (oc OperationConfig) MarshalYAML() (any, error) {
	return rawOperationConfig{
		Timeout:  duration(oc.Timeout),
		Strategy: oc.Strategy,
	}, nil
}

// UnmarshalYAML decodes the configuration, accepting human-readable
// duration strings for timeouts. Fields absent from the document keep
// their current values, so decoding into DefaultConfig layers the
// document over the defaults.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	raw := rawConfig{
		Default:  duration(c.Default),
		Strategy: c.Strategy,
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	c.Default = time.Duration(raw.Default)
	c.Strategy = raw.Strategy
	if raw.PerOperation != nil {
		c.PerOperation = make(map[string]OperationConfig, len(raw.PerOperation))
		for op, roc := range raw.PerOperation {
			c.PerOperation[op] = OperationConfig{
				Timeout:  time.Duration(roc.Timeout),
				Strategy: roc.Strategy,
			}
		}
	}
	return nil
}

// MarshalYAML encodes timeouts as human-readable duration strings.
func (c Config) MarshalYAML() (any, error) {
	raw := rawConfig{
		Default:  duration(c.Default),
		Strategy: c.Strategy,
	}
	if c.PerOperation != nil {
		raw.PerOperation = make(map[string]rawOperationConfig, len(c.PerOperation))
		for op, oc := range c.PerOperation {
			raw.PerOperation[op] = rawOperationConfig{
				Timeout:  duration(oc.Timeout),
				Strategy: oc.Strategy,
			}
		}
	}
	return raw, nil
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Default:  30 * time.Second,
		Strategy: Optimistic.String(),
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Default <= 0 {
		return fmt.Errorf("timeout.default must be positive")
	}
	if _, err := ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("timeout.strategy: %w", err)
	}
	for op, oc := range c.PerOperation {
		if oc.Timeout <= 0 {
			return fmt.Errorf("timeout.per_operation[%s].timeout must be positive", op)
		}
		if _, err := ParseStrategy(oc.Strategy); err != nil {
			return fmt.Errorf("timeout.per_operation[%s].strategy: %w", op, err)
		}
	}
	return nil
}

// ParseConfig parses and validates a YAML configuration.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse timeout config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseStrategy parses a strategy name. The empty string maps to
// Optimistic.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "OPTIMISTIC":
		return Optimistic, nil
	case "PESSIMISTIC":
		return Pessimistic, nil
	default:
		return Optimistic, fmt.Errorf("unknown strategy %q", s)
	}
}
