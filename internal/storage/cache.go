package storage

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/aliskhannn/shadowfit-bot/internal/domain/entities"
	"github.com/aliskhannn/shadowfit-bot/internal/repository"
)

// Store is the progress store contract shared by every backend.
type Store interface {
	Get(ctx context.Context, userID int64) (*entities.UserProgress, error)
	Put(ctx context.Context, p *entities.UserProgress) error
	Delete(ctx context.Context, userID int64) (bool, error)
	List(ctx context.Context) ([]*entities.UserProgress, error)
}

// CachedStore keeps recently used records in an LRU in front of a slower store.
// Writes go to the backend first and update the cache only on success.
type CachedStore struct {
	next  Store
	cache *lru.Cache
}

// NewCachedStore wraps next with an LRU of the given size.
func NewCachedStore(next Store, size int) (*CachedStore, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("new lru cache: %w", err)
	}

	return &CachedStore{
		next:  next,
		cache: cache,
	}, nil
}

func (s *CachedStore) Get(ctx context.Context, userID int64) (*entities.UserProgress, error) {
	if v, ok := s.cache.Get(userID); ok {
		return v.(*entities.UserProgress).Clone(), nil
	}

	p, err := s.next.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProgressNotFound) {
			s.cache.Remove(userID)
		}
		return nil, err
	}

	s.cache.Add(userID, p.Clone())
	return p, nil
}

func (s *CachedStore) Put(ctx context.Context, p *entities.UserProgress) error {
	if err := s.next.Put(ctx, p); err != nil {
		s.cache.Remove(p.UserID)
		return err
	}

	s.cache.Add(p.UserID, p.Clone())
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, userID int64) (bool, error) {
	s.cache.Remove(userID)
	return s.next.Delete(ctx, userID)
}

// List always reads through to the backend.
func (s *CachedStore) List(ctx context.Context) ([]*entities.UserProgress, error) {
	return s.next.List(ctx)
}

// Len reports how many records are cached.
func (s *CachedStore) Len() int {
	return s.cache.Len()
}

type ranker interface {
	TopByXP(ctx context.Context, limit int) ([]*entities.UserProgress, error)
}

// TopByXP delegates ranking to the backend when it supports it and otherwise
// returns every record for the caller to sort.
func (s *CachedStore) TopByXP(ctx context.Context, limit int) ([]*entities.UserProgress, error) {
	if r, ok := s.next.(ranker); ok {
		return r.TopByXP(ctx, limit)
	}
	return s.next.List(ctx)
}
