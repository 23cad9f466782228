package usage

import (
	"context"
	"sync"
)

// implements KV with an in-process map
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// creates an empty in-memory key/value store
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (kv *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()

	value, ok := kv.values[key]
	return value, ok, nil
}

func (kv *MemoryKV) Set(_ context.Context, key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	kv.values[key] = value
	return nil
}

// returns the number of stored keys
func (kv *MemoryKV) Len() int {
	kv.mu.RLock()
	defer kv.mu.RUnlock()
	return len(kv.values)
}
