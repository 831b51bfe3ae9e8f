package memstore

import (
	"context"
	"sync"
	"time"
)

// TxManager serializes transactional functions with a single mutex,
// the way a therapist row lock serializes concurrent bookings.
type TxManager struct {
	mu sync.Mutex
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// Clock fixed time provider
type Clock struct {
	T time.Time
}

func (c Clock) Now() time.Time {
	return c.T
}

// Logger discards everything
type Logger struct{}

func (Logger) Info(string, ...interface{})  {}
func (Logger) Warn(string, ...interface{})  {}
func (Logger) Error(string, ...interface{}) {}
