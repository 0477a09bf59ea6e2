// file: internals/features/timetable/workspace/service/store.go
package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	gen "planova_backend/internals/features/timetable/generation/service"
)

// Store keeps workspaces in memory, keyed by id and scoped to their client.
type Store struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*Workspace

	gen     gen.Generator
	history HistorySink
	now     func() time.Time
}

func NewStore(g gen.Generator, history HistorySink) *Store {
	return &Store{
		items:   map[uuid.UUID]*Workspace{},
		gen:     g,
		history: history,
		now:     time.Now,
	}
}

func (s *Store) Create(clientID uuid.UUID) *Workspace {
	w := newWorkspace(clientID, s.gen, s.history, s.now)
	s.mu.Lock()
	s.items[w.ID] = w
	s.mu.Unlock()
	return w
}

// Get returns the workspace only to the client that created it.
func (s *Store) Get(id, clientID uuid.UUID) (*Workspace, error) {
	s.mu.RLock()
	w, ok := s.items[id]
	s.mu.RUnlock()
	if !ok || w.ClientID != clientID {
		return nil, ErrWorkspaceNotFound
	}
	return w, nil
}

func (s *Store) Delete(id, clientID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.items[id]
	if !ok || w.ClientID != clientID {
		return ErrWorkspaceNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Sweep evicts workspaces untouched for longer than ttl. Workspaces with a
// generation in flight are kept.
func (s *Store) Sweep(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-ttl)

	s.mu.RLock()
	stale := make([]*Workspace, 0)
	for _, w := range s.items {
		if w.expired(cutoff) {
			stale = append(stale, w)
		}
	}
	s.mu.RUnlock()

	if len(stale) == 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictLocked(stale, cutoff)
}

// evictLocked deletes the candidates that are still stale and idle. A
// candidate may have been touched, started generating or been replaced
// since it was collected.
func (s *Store) evictLocked(stale []*Workspace, cutoff time.Time) int {
	n := 0
	for _, w := range stale {
		if s.items[w.ID] != w || !w.expired(cutoff) {
			continue
		}
		delete(s.items, w.ID)
		n++
	}
	return n
}
