package timeoutpolicy

import (
	"time"

	"github.com/google/uuid"
)

// EventEmitter receives timeout events for observability.
type EventEmitter interface {
	Emit(event TimeoutEvent)
}

// TimeoutEvent records one deadline expiry for observability.
type TimeoutEvent struct {
	ID            string        `json:"id"`
	Policy        string        `json:"policy"`
	OperationKey  string        `json:"operation_key,omitempty"`
	Strategy      string        `json:"strategy"`
	Timeout       time.Duration `json:"timeout"`
	CorrelationID string        `json:"correlation_id,omitempty"`
	Timestamp     time.Time     `json:"timestamp"`
}

// NewTimeoutEvent creates a timeout event with auto-generated ID and
// timestamp.
func NewTimeoutEvent(policy string, strategy Strategy, timeout time.Duration) TimeoutEvent {
	return TimeoutEvent{
		ID:        uuid.NewString(),
		Policy:    policy,
		Strategy:  strategy.String(),
		Timeout:   timeout,
		Timestamp: NowUTC(),
	}
}

// WithOperationKey sets the operation key.
func (e TimeoutEvent) WithOperationKey(key string) TimeoutEvent {
	e.OperationKey = key
	return e
}

// WithCorrelationID sets the correlation ID.
func (e TimeoutEvent) WithCorrelationID(id string) TimeoutEvent {
	e.CorrelationID = id
	return e
}

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}
