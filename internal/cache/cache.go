// Package cache holds short-lived, per-process caches for data fetched from the backend.
package cache

import (
	"context"
	"sync"
	"time"

	"finance-tracker/internal/log"
)

// Cache defines a generic cache interface
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)
	Size() int
}

// Cleaner is implemented by caches that can drop expired entries on demand.
type Cleaner interface {
	CleanExpired() int
}

// Manager periodically cleans every registered cache.
type Manager struct {
	mu     sync.Mutex
	caches []Cleaner
	logger *log.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// NewManager creates a new cache manager
func NewManager(logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Discard()
	}
	return &Manager{logger: logger.WithComponent(log.ComponentCache)}
}

// Register adds a cache to the manager for cleanup
func (m *Manager) Register(c Cleaner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.caches = append(m.caches, c)
}

// CleanAll runs one cleanup pass and returns the number of entries removed.
func (m *Manager) CleanAll() int {
	m.mu.Lock()
	caches := append([]Cleaner(nil), m.caches...)
	m.mu.Unlock()

	total := 0
	for _, c := range caches {
		total += c.CleanExpired()
	}
	return total
}

// StartCleanup begins periodic cleanup until ctx is done or Stop is called.
// Calling it again while running is a no-op.
func (m *Manager) StartCleanup(ctx context.Context, interval time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done != nil {
		return
	}

	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	go m.run(ctx, interval, m.done)
}

func (m *Manager) run(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := m.CleanAll(); n > 0 {
				m.logger.Debug("Expired cache entries removed", log.FieldCount, n)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Stop halts the cleanup goroutine and waits for it to exit.
func (m *Manager) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}
