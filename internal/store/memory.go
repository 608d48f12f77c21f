package store

import (
	"bytes"
	"context"
	"sync"
)

// MemoryBackend keeps the document in process memory. Contents are lost
// on restart.
type MemoryBackend struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Load(_ context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data == nil {
		return nil, ErrNotFound
	}
	return bytes.Clone(m.data), nil
}

func (m *MemoryBackend) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	m.data = bytes.Clone(data)
	m.mu.Unlock()
	return nil
}

func (m *MemoryBackend) Name() string { return "memory" }
