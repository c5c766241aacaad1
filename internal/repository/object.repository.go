package repository

import (
	"context"
	"fmt"
	"portfoliobias/internal/domain"
	"sort"
	"strings"
	"sync"
)

// ObjectRepository is a flat keyed store of JSON documents. Results,
// uploaded portfolios and combined reports all go through it.
type ObjectRepository interface {
	Put(ctx context.Context, key string, body []byte) error
	// Get returns an error wrapping domain.ErrResultNotFound for a missing key.
	Get(ctx context.Context, key string) ([]byte, error)
	// List returns every key starting with prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

type memoryObjectRepositoryHandler struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryObjectRepository keeps objects in process. Used by the CLI and
// tests.
func NewMemoryObjectRepository() ObjectRepository {
	return &memoryObjectRepositoryHandler{
		objects: map[string][]byte{},
	}
}

func (h *memoryObjectRepositoryHandler) Put(ctx context.Context, key string, body []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	stored := make([]byte, len(body))
	copy(stored, body)
	h.objects[key] = stored
	return nil
}

func (h *memoryObjectRepositoryHandler) Get(ctx context.Context, key string) ([]byte, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	body, ok := h.objects[key]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", key, domain.ErrResultNotFound)
	}
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}

func (h *memoryObjectRepositoryHandler) List(ctx context.Context, prefix string) ([]string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	keys := []string{}
	for k := range h.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
