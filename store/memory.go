package store

import (
	"context"
	"sync"

	"github.com/sicko7947/storybook"
)

// MemoryBackend implements storybook.Backend using in-memory storage (for testing)
type MemoryBackend struct {
	values map[string]string
	mu     sync.RWMutex
}

// NewMemoryBackend creates a new in-memory backend
func NewMemoryBackend() storybook.Backend {
	return &MemoryBackend{
		values: make(map[string]string),
	}
}

func (b *MemoryBackend) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	value, exists := b.values[key]
	return value, exists, nil
}

func (b *MemoryBackend) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.values[key] = value
	return nil
}

// Len returns the number of keys held
func (b *MemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.values)
}
