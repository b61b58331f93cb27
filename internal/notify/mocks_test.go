// Mock backends for notifier testing.

package notify

import (
	"errors"
	"sync"
)

// MockBackend records every notification and returns a configurable error.
type MockBackend struct {
	mu sync.Mutex

	name      string
	available bool
	SendError error
	SendFunc  func(Notification) error

	Calls     []Notification
	CallCount int
}

// NewMockBackend creates an available mock backend that always succeeds
func NewMockBackend(name string) *MockBackend {
	return &MockBackend{
		name:      name,
		available: true,
		Calls:     make([]Notification, 0),
	}
}

// WithError configures the mock to fail every Send
func (m *MockBackend) WithError(err error) *MockBackend {
	m.SendError = err
	return m
}

// WithAvailable configures the probe result
func (m *MockBackend) WithAvailable(available bool) *MockBackend {
	m.available = available
	return m
}

// WithSendFunc configures a custom Send implementation
func (m *MockBackend) WithSendFunc(fn func(Notification) error) *MockBackend {
	m.SendFunc = fn
	return m
}

func (m *MockBackend) Name() string { return m.name }

func (m *MockBackend) Available() bool { return m.available }

func (m *MockBackend) Send(n Notification) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, n)
	m.CallCount++
	fn := m.SendFunc
	err := m.SendError
	m.mu.Unlock()

	if fn != nil {
		return fn(n)
	}
	return err
}

// Count returns the number of Send calls so far
func (m *MockBackend) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}

// recordingStarter captures tool invocations instead of running them
type recordingStarter struct {
	mu    sync.Mutex
	calls [][]string
	err   error
}

func (r *recordingStarter) start(name string, args ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, append([]string{name}, args...))
	return r.err
}

var errToolMissing = errors.New("exec: tool not found")
