package storage

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/aliskhannn/shadowfit-bot/internal/domain/entities"
	"github.com/aliskhannn/shadowfit-bot/internal/repository"
)

// MemoryStore is a process-local progress store. Records are copied on the
// way in and out so callers never share state with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[int64]*entities.UserProgress
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[int64]*entities.UserProgress),
	}
}

func (s *MemoryStore) Get(_ context.Context, userID int64) (*entities.UserProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.records[userID]
	if !ok {
		return nil, repository.ErrProgressNotFound
	}
	return p.Clone(), nil
}

func (s *MemoryStore) Put(_ context.Context, p *entities.UserProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[p.UserID] = p.Clone()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.records[userID]
	delete(s.records, userID)
	return ok, nil
}

// List returns all records ordered by user ID.
func (s *MemoryStore) List(_ context.Context) ([]*entities.UserProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.UserProgress, 0, len(s.records))
	for _, p := range s.records {
		out = append(out, p.Clone())
	}
	slices.SortFunc(out, func(a, b *entities.UserProgress) int {
		return cmp.Compare(a.UserID, b.UserID)
	})
	return out, nil
}
