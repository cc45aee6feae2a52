// internal/store/memory.go
//
// Persistence for boards.
// Characteristics of the in-memory implementation:
//   - Stores copies of *board.Board keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts; used in tests and when
//     DB_PATH is ":memory:".

package store

import (
	"context"
	"sort"
	"sync"

	"github.com/robalobadob/wordle-elements/internal/board"
)

// Store defines the persistence interface for boards.
type Store interface {
	// Save inserts or replaces a board.
	Save(ctx context.Context, b *board.Board) error

	// Get retrieves a board by ID, or board.ErrNotFound.
	Get(ctx context.Context, id string) (*board.Board, error)

	// List returns the newest boards first.
	List(ctx context.Context, limit int) ([]board.Board, error)

	// Delete removes a board owned by authorID, or returns board.ErrNotFound.
	Delete(ctx context.Context, id, authorID string) error
}

const defaultListLimit = 50

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex            // guards boards
	boards map[string]*board.Board // keyed by Board.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{boards: make(map[string]*board.Board)}
}

func (m *memory) Save(ctx context.Context, b *board.Board) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boards[b.ID] = clone(b)
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*board.Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.boards[id]; ok {
		return clone(b), nil
	}
	return nil, board.ErrNotFound
}

func (m *memory) List(ctx context.Context, limit int) ([]board.Board, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	m.mu.RLock()
	out := make([]board.Board, 0, len(m.boards))
	for _, b := range m.boards {
		out = append(out, *clone(b))
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memory) Delete(ctx context.Context, id, authorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.boards[id]
	if !ok || b.AuthorID != authorID {
		return board.ErrNotFound
	}
	delete(m.boards, id)
	return nil
}

func clone(b *board.Board) *board.Board {
	c := *b
	c.Rows = append([]board.RowSpec(nil), b.Rows...)
	return &c
}
