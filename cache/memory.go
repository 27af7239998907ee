package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	value    string
	expireAt time.Time
}

func (m memoryItem) expired() bool {
	return time.Now().After(m.expireAt)
}

// Memory is an in-process Store. Expired entries are dropped lazily on
// read; there is no background janitor, which is fine for its intended
// use in tests and as a Redis-less fallback.
type Memory struct {
	mu   sync.RWMutex
	data map[string]memoryItem
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]memoryItem)}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.data[key]
	if !ok {
		return "", ErrCacheMiss
	}
	if item.expired() {
		delete(m.data, key)
		return "", ErrCacheMiss
	}
	return item.value, nil
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	expireAt := time.Now().Add(ttl)
	if ttl <= 0 {
		expireAt = time.Now().Add(24 * time.Hour)
	}
	m.data[key] = memoryItem{value: value, expireAt: expireAt}
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}
