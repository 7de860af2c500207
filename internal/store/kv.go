package store

import (
	"context"
	"sync"
)

// KV is the persistence substrate: a flat byte store with whole-value
// overwrites. The record schema lives in GameStore; implementations only
// move bytes. Every write must be a single-record overwrite so an
// interrupted process never leaves a half-written record behind.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// MemKV is an in-memory KV for tests and ephemeral sessions.
type MemKV struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemKV() *MemKV {
	return &MemKV{records: make(map[string][]byte)}
}

func (m *MemKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.records[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (m *MemKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}
