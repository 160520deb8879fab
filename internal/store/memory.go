// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// This is the default persistence layer for scorekeeping sessions when no
// database is configured, and the one used by tests.
//
// Characteristics:
//   - Stores game.State values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - ErrNotFound is returned for missing game IDs.

package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/robalobadob/scorekeeper/apps/go-server/internal/game"
)

// ErrNotFound is returned when no game has the requested ID.
var ErrNotFound = errors.New("store: game not found")

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

// Store defines the persistence interface for games.
// Implementations must round-trip game.State without loss.
type Store interface {
	// Save persists or replaces a game.
	Save(ctx context.Context, s game.State) error

	// Get retrieves a game by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (game.State, error)

	// Delete removes a game. Deleting a missing game is not an error.
	Delete(ctx context.Context, id string) error

	// List returns up to limit games (DefaultListLimit when limit <= 0),
	// most recently updated first.
	List(ctx context.Context, limit int) ([]game.State, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex          // guards games map
	games map[string]game.State // keyed by State.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]game.State)}
}

// Save adds or replaces the game in the map.
// game.State is only ever replaced wholesale, so storing the value is safe.
func (m *memory) Save(ctx context.Context, s game.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[s.ID] = s
	return nil
}

// Get looks up a game by ID.
func (m *memory) Get(ctx context.Context, id string) (game.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.games[id]; ok {
		return s, nil
	}
	return game.State{}, ErrNotFound
}

// Delete removes a game by ID.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

// List returns games ordered by UpdatedAt, newest first.
func (m *memory) List(ctx context.Context, limit int) ([]game.State, error) {
	m.mu.RLock()
	out := make([]game.State, 0, len(m.games))
	for _, s := range m.games {
		out = append(out, s)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
