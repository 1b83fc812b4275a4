// Package cachetest cung cấp cache.Cache in-memory cho unit test.
package cachetest

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"

	"book-catalog/pkg/cache"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Memory mirrors RedisCache semantics: values are JSON-encoded, TTL 0 never expires.
type Memory struct {
	mu      sync.Mutex
	items   map[string]entry
	now     func() time.Time
	FailGet error
	FailSet error
}

var _ cache.Cache = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{items: map[string]entry{}, now: time.Now}
}

func (m *Memory) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if m.FailGet != nil {
		return false, m.FailGet
	}
	m.mu.Lock()
	e, ok := m.items[key]
	if ok && !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		delete(m.items, key)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(e.data, dest)
}

func (m *Memory) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.FailSet != nil {
		return m.FailSet
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	e := entry{data: data}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.items[key] = e
	m.mu.Unlock()
	return nil
}

func (m *Memory) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	if m.FailSet != nil {
		return false, m.FailSet
	}
	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.items[key]; ok && (e.expiresAt.IsZero() || !m.now().After(e.expiresAt)) {
		return false, nil
	}
	e := entry{data: data}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.items[key] = e
	return true, nil
}

func (m *Memory) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *Memory) DeletePattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.items {
		if ok, _ := path.Match(pattern, k); ok {
			delete(m.items, k)
		}
	}
	return nil
}

func (m *Memory) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[key]
	return ok, nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

// Len trả về số key hiện có, dùng để assert cache đã bị invalidate
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
