package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aliskhannn/shadowfit-bot/internal/domain/entities"
)

func TestFileRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")

	repo, err := NewFileRepository(path)
	if err != nil {
		t.Fatalf("NewFileRepository() error = %v", err)
	}

	if _, err := repo.Get(ctx, 7); !errors.Is(err, ErrProgressNotFound) {
		t.Fatalf("Get() on empty store error = %v, want ErrProgressNotFound", err)
	}

	day := entities.NewDate(2024, 6, 1)
	p := entities.NewUserProgress(7, day)
	p.Rollover(day)
	p.XP = 120
	if err := repo.Put(ctx, p); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	// A second repository reads what the first one flushed.
	reopened, err := NewFileRepository(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	got, err := reopened.Get(ctx, 7)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.XP != 120 || got.Streak != 1 || len(got.Quests) != 9 || !got.LastActiveDate.Equal(day) {
		t.Errorf("Get() = %+v", got)
	}
}

func TestFileRepository_DeleteAndList(t *testing.T) {
	ctx := context.Background()
	repo, err := NewFileRepository(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatalf("NewFileRepository() error = %v", err)
	}

	for _, id := range []int64{30, 10, 20} {
		if err := repo.Put(ctx, entities.NewUserProgress(id, entities.NewDate(2024, 1, 1))); err != nil {
			t.Fatalf("Put(%d) error = %v", id, err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 3 || list[0].UserID != 10 || list[2].UserID != 30 {
		t.Errorf("List() order = %v", list)
	}

	existed, err := repo.Delete(ctx, 20)
	if err != nil || !existed {
		t.Fatalf("Delete(20) = %v, %v, want true, nil", existed, err)
	}
	existed, err = repo.Delete(ctx, 20)
	if err != nil || existed {
		t.Errorf("second Delete(20) = %v, %v, want false, nil", existed, err)
	}
}

func TestFileRepository_LegacyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	doc := `{"99": {"xp": 50, "streak": 2, "last_active_date": "2024-06-01", "quests": [], "completed": []}}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	repo, err := NewFileRepository(path)
	if err != nil {
		t.Fatalf("NewFileRepository() error = %v", err)
	}
	got, err := repo.Get(context.Background(), 99)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.UserID != 99 || got.XP != 50 {
		t.Errorf("Get() = %+v", got)
	}
}

func TestFileRepository_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileRepository(path); err == nil {
		t.Error("NewFileRepository() accepted a corrupt document")
	}
}
