package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type memoryEntry struct {
	values  []string
	expires time.Time
}

// MemoryOptionCache is the in-process OptionCache used when Redis is not
// configured.
type MemoryOptionCache struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	ttl     time.Duration
	gen     int64
	entries map[string]memoryEntry
}

func NewMemoryOptionCache(clock clockwork.Clock, ttl time.Duration) *MemoryOptionCache {
	return &MemoryOptionCache{
		clock:   clock,
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryOptionCache) Get(ctx context.Context, key string) ([]string, int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, m.gen, false, nil
	}
	if !m.clock.Now().Before(e.expires) {
		delete(m.entries, key)
		return nil, m.gen, false, nil
	}
	return clone(e.values), m.gen, true, nil
}

// Set drops the page when gen is older than the current generation.
func (m *MemoryOptionCache) Set(ctx context.Context, gen int64, key string, values []string) error {
	if m.ttl <= 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen {
		return nil
	}
	m.entries[key] = memoryEntry{
		values:  clone(values),
		expires: m.clock.Now().Add(m.ttl),
	}
	return nil
}

func (m *MemoryOptionCache) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gen++
	m.entries = make(map[string]memoryEntry)
	return nil
}

func clone(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}
