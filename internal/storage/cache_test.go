package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/aliskhannn/shadowfit-bot/internal/domain/entities"
)

type countingStore struct {
	*MemoryStore
	gets    int
	failPut bool
}

func (s *countingStore) Get(ctx context.Context, userID int64) (*entities.UserProgress, error) {
	s.gets++
	return s.MemoryStore.Get(ctx, userID)
}

func (s *countingStore) Put(ctx context.Context, p *entities.UserProgress) error {
	if s.failPut {
		return errors.New("disk full")
	}
	return s.MemoryStore.Put(ctx, p)
}

func TestCachedStore_ReadThrough(t *testing.T) {
	ctx := context.Background()
	backend := &countingStore{MemoryStore: NewMemoryStore()}
	_ = backend.MemoryStore.Put(ctx, entities.NewUserProgress(1, entities.Date{}))

	s, err := NewCachedStore(backend, 8)
	if err != nil {
		t.Fatalf("NewCachedStore() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := s.Get(ctx, 1); err != nil {
			t.Fatalf("Get() error = %v", err)
		}
	}
	if backend.gets != 1 {
		t.Errorf("backend gets = %d, want 1", backend.gets)
	}
}

func TestCachedStore_WriteThrough(t *testing.T) {
	ctx := context.Background()
	backend := &countingStore{MemoryStore: NewMemoryStore()}
	s, err := NewCachedStore(backend, 8)
	if err != nil {
		t.Fatalf("NewCachedStore() error = %v", err)
	}

	p := entities.NewUserProgress(1, entities.Date{})
	p.XP = 5
	if err := s.Put(ctx, p); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	backend.failPut = true
	p.XP = 50
	if err := s.Put(ctx, p); err == nil {
		t.Fatal("Put() error = nil, want backend failure")
	}
	if s.Len() != 0 {
		t.Errorf("cache kept %d entries after a failed write", s.Len())
	}

	got, err := s.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.XP != 5 {
		t.Errorf("XP = %d, want the last persisted value 5", got.XP)
	}

	if existed, _ := s.Delete(ctx, 1); !existed {
		t.Error("Delete() = false")
	}
	if _, err := s.Get(ctx, 1); err == nil {
		t.Error("Get() after Delete() returned a cached record")
	}
}

type rankingStore struct {
	*MemoryStore
	limit int
}

func (s *rankingStore) TopByXP(ctx context.Context, limit int) ([]*entities.UserProgress, error) {
	s.limit = limit
	return s.MemoryStore.List(ctx)
}

func TestCachedStore_TopByXP(t *testing.T) {
	ctx := context.Background()

	plain := NewMemoryStore()
	for id := int64(1); id <= 3; id++ {
		_ = plain.Put(ctx, entities.NewUserProgress(id, entities.Date{}))
	}
	s, _ := NewCachedStore(plain, 8)
	got, err := s.TopByXP(ctx, 1)
	if err != nil {
		t.Fatalf("TopByXP() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("TopByXP() without ranking backend returned %d records, want all 3", len(got))
	}

	ranked := &rankingStore{MemoryStore: NewMemoryStore()}
	s, _ = NewCachedStore(ranked, 8)
	if _, err := s.TopByXP(ctx, 2); err != nil {
		t.Fatalf("TopByXP() error = %v", err)
	}
	if ranked.limit != 2 {
		t.Errorf("backend limit = %d, want 2", ranked.limit)
	}
}
