package session

import (
	"context"
	"ctchen222/growing-tic-tac-toe/internal/engine"
	"errors"
	"sync"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Store keeps one engine snapshot per session id for at most the store's TTL.
type Store interface {
	Load(ctx context.Context, id string) (engine.Snapshot, error)
	Save(ctx context.Context, id string, snap engine.Snapshot) error
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	snap    engine.Snapshot
	expires time.Time
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Load(_ context.Context, id string) (engine.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return engine.Snapshot{}, ErrNotFound
	}
	if !s.now().Before(entry.expires) {
		delete(s.entries, id)
		return engine.Snapshot{}, ErrNotFound
	}
	snap := entry.snap
	snap.Board = snap.Board.Clone()
	return snap, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, snap engine.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap.Board = snap.Board.Clone()
	s.entries[id] = memoryEntry{snap: snap, expires: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

// Sweep drops expired entries and reports how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.entries {
		if !now.Before(entry.expires) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
