// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used directly in tests and as the working set behind the JSON file store.
//
// Characteristics:
//   - Records are keyed by canonical username.
//   - Get hands out copies; changes land only through Set/SetAll.
//   - Concurrency-safe via RWMutex even though the game itself is single-threaded.

package store

import (
	"context"
	"maps"
	"sync"

	"github.com/robalobadob/guessgame/internal/player"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex
	users map[string]*player.Record
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return newMemory(nil)
}

func newMemory(seed map[string]*player.Record) *memory {
	m := &memory{users: make(map[string]*player.Record, len(seed))}
	for name, r := range seed {
		r.Normalize()
		m.users[name] = r
	}
	return m
}

func (m *memory) Get(_ context.Context, name string) (*player.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.users[name]; ok {
		return r.Clone(), nil
	}
	return nil, notFound(name)
}

func (m *memory) Set(_ context.Context, name string, r *player.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[name] = r.Clone()
	return nil
}

func (m *memory) SetAll(_ context.Context, recs map[string]*player.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, r := range recs {
		m.users[name] = r.Clone()
	}
	return nil
}

func (m *memory) Exists(_ context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.users[name]
	return ok, nil
}

func (m *memory) All(_ context.Context) (map[string]*player.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]*player.Record, len(m.users))
	for name, r := range m.users {
		out[name] = r.Clone()
	}
	return out, nil
}

func (m *memory) Flush(context.Context) error { return nil }

func (m *memory) Close() error { return nil }

// snapshot returns the live map contents for serialisation. Caller must hold mu.
func (m *memory) snapshot() map[string]*player.Record {
	return maps.Clone(m.users)
}
