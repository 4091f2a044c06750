// Package testutil provides test utilities and generators for
// property-based testing.
package testutil

import (
	"sync"

	"github.com/auth-platform/libs/go/timeoutpolicy"
)

// MockEmitter is a test implementation of EventEmitter.
type MockEmitter struct {
	mu     sync.Mutex
	events []timeoutpolicy.TimeoutEvent
}

// NewMockEmitter creates a new mock event emitter.
func NewMockEmitter() *MockEmitter {
	return &MockEmitter{
		events: make([]timeoutpolicy.TimeoutEvent, 0),
	}
}

// Emit records a timeout event.
func (m *MockEmitter) Emit(event timeoutpolicy.TimeoutEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns all recorded events.
func (m *MockEmitter) Events() []timeoutpolicy.TimeoutEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]timeoutpolicy.TimeoutEvent, len(m.events))
	copy(result, m.events)
	return result
}

// EventCount returns the number of recorded events.
func (m *MockEmitter) EventCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

// Clear removes all recorded events.
func (m *MockEmitter) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = m.events[:0]
}
