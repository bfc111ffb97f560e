package cache

import (
	"context"
	"strconv"
	"sync"
	"time"
)

type memoryItem struct {
	value   string
	expires time.Time // zero = no ttl
}

// MemoryStore is a process-local Store for development without Redis and
// for tests. All operations hold a single mutex, so the atomic operations
// of Store hold trivially.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]memoryItem
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]memoryItem),
		now:  time.Now,
	}
}

// WithClock replaces the time source, for expiry tests.
func (m *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
	return m
}

// lookup must be called with mu held.
func (m *MemoryStore) lookup(key string) (memoryItem, bool) {
	item, ok := m.data[key]
	if !ok {
		return memoryItem{}, false
	}
	if !item.expires.IsZero() && !m.now().Before(item.expires) {
		delete(m.data, key)
		return memoryItem{}, false
	}
	return item, true
}

func (m *MemoryStore) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return m.now().Add(ttl)
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.lookup(key)
	if !ok {
		return "", ErrCacheMiss
	}
	return item.value, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = memoryItem{value: value, expires: m.expiry(ttl)}
	return nil
}

func (m *MemoryStore) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *MemoryStore) TTL(_ context.Context, key string) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.lookup(key)
	if !ok {
		return 0, ErrCacheMiss
	}
	if item.expires.IsZero() {
		return 0, nil
	}
	return item.expires.Sub(m.now()), nil
}

func (m *MemoryStore) Incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, _ := m.lookup(key)
	n, err := incrValue(item.value)
	if err != nil {
		return 0, err
	}
	item.value = strconv.FormatInt(n, 10)
	m.data[key] = item
	return n, nil
}

func (m *MemoryStore) IncrWithTTL(_ context.Context, key string, ttl time.Duration) (int64, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, _ := m.lookup(key)
	n, err := incrValue(item.value)
	if err != nil {
		return 0, 0, err
	}
	item.value = strconv.FormatInt(n, 10)
	if n == 1 || item.expires.IsZero() {
		item.expires = m.expiry(ttl)
	}
	m.data[key] = item

	left := ttl
	if !item.expires.IsZero() {
		left = item.expires.Sub(m.now())
	}
	return n, left, nil
}

func (m *MemoryStore) CompareAndDelete(_ context.Context, key, expected string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.lookup(key)
	if !ok || item.value != expected {
		return false, nil
	}
	delete(m.data, key)
	return true, nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func incrValue(v string) (int64, error) {
	if v == "" {
		return 1, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, err
	}
	return n + 1, nil
}

var _ Store = (*MemoryStore)(nil)
