package engine

import (
	"sync"
	"time"
)

// TimeProvider abstracts the clock so systems can be tested with
// controlled time
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider provides the real system time with monotonic
// clock readings
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a hand-driven clock for tests. Safe for concurrent
// reads since combination dispatch goroutines stamp events with it.
type MockTimeProvider struct {
	mu sync.Mutex
	at time.Time
}

// NewMockTimeProvider creates a mock clock frozen at the given instant.
func NewMockTimeProvider(at time.Time) *MockTimeProvider {
	return &MockTimeProvider{at: at}
}

// Now returns the mocked instant.
func (p *MockTimeProvider) Now() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.at
}

// Advance moves the clock forward.
func (p *MockTimeProvider) Advance(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.at = p.at.Add(d)
}
