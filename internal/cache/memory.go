package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type entry struct {
	value    string
	expireAt time.Time
}

// Memory is an in-process Cache. It is only suitable for a single instance,
// if horizontal scaling is necessary use MyRedis.
type Memory struct {
	data map[string]entry
	mu   sync.RWMutex
	now  func() time.Time
	done chan struct{}
	once sync.Once
}

// NewMemory returns a Memory cache and starts a goroutine which removes
// expired entries every interval. Close stops it.
func NewMemory(interval time.Duration) *Memory {
	return NewMemoryWithClock(interval, time.Now)
}

// NewMemoryWithClock is NewMemory with a custom time source.
func NewMemoryWithClock(interval time.Duration, now func() time.Time) *Memory {
	m := &Memory{
		data: make(map[string]entry),
		now:  now,
		done: make(chan struct{}),
	}
	go m.cleanup(interval)
	return m
}

func (m *Memory) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.mu.Lock()
			for key, e := range m.data {
				if m.expired(e) {
					delete(m.data, key)
				}
			}
			m.mu.Unlock()
		}
	}
}

func (m *Memory) expired(e entry) bool {
	return !m.now().Before(e.expireAt)
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	e, exist := m.data[key]
	m.mu.RUnlock()

	if !exist || m.expired(e) {
		return "", ErrNotFound
	}
	return e.value, nil
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	m.data[key] = entry{
		value:    value,
		expireAt: m.now().Add(ttl),
	}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []string
	for key, e := range m.data {
		if strings.HasPrefix(key, prefix) && !m.expired(e) {
			result = append(result, key)
		}
	}
	return result, nil
}

func (m *Memory) FlushAll(_ context.Context) error {
	m.mu.Lock()
	m.data = make(map[string]entry)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close(_ context.Context) error {
	m.once.Do(func() { close(m.done) })
	return nil
}
