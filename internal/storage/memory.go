package storage

import (
	"context"
	"sync"

	"github.com/kpsunited/kps-admin-backend/internal/errors"
)

// MemoryBackend is a quota-enforced in-memory Backend. It is the test
// substrate and also serves throwaway demo deployments.
type MemoryBackend struct {
	mu    sync.RWMutex
	data  map[string][]byte
	quota int64
}

// NewMemoryBackend creates a MemoryBackend. quota <= 0 means
// DefaultQuotaBytes.
func NewMemoryBackend(quota int64) *MemoryBackend {
	if quota <= 0 {
		quota = DefaultQuotaBytes
	}
	return &MemoryBackend{
		data:  make(map[string][]byte),
		quota: quota,
	}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (m *MemoryBackend) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	used := m.usedLocked()
	next := used - int64(len(m.data[key])) + int64(len(value))
	if next > m.quota {
		return &errors.QuotaExceededError{Key: key, Used: used, Cap: m.quota}
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *MemoryBackend) Used(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.usedLocked(), nil
}

func (m *MemoryBackend) Close() error { return nil }

func (m *MemoryBackend) usedLocked() int64 {
	var used int64
	for _, v := range m.data {
		used += int64(len(v))
	}
	return used
}
