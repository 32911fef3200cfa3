package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/aliskhannn/shadowfit-bot/internal/domain/entities"
	"github.com/aliskhannn/shadowfit-bot/internal/repository"
)

const testPrefix = "shadowfit:progress:"

func newTestRepository(t *testing.T) (*ProgressRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewProgressRepository(client, testPrefix), mr
}

func TestProgressRepository_GetPut(t *testing.T) {
	repo, mr := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.Get(ctx, 42); !errors.Is(err, repository.ErrProgressNotFound) {
		t.Fatalf("Get() on empty store error = %v, want ErrProgressNotFound", err)
	}

	p := entities.NewUserProgress(42, entities.NewDate(2024, 3, 1))
	p.XP = 1200
	p.Streak = 3
	p.Username = "hunter"
	if err := repo.Put(ctx, p); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if !mr.Exists(testPrefix + "42") {
		t.Errorf("key %q not written", testPrefix+"42")
	}

	got, err := repo.Get(ctx, 42)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.UserID != 42 || got.XP != 1200 || got.Streak != 3 || got.Username != "hunter" {
		t.Errorf("Get() = %+v, want the stored record", got)
	}
	if !got.JoinDate.Equal(p.JoinDate) {
		t.Errorf("JoinDate = %s, want %s", got.JoinDate, p.JoinDate)
	}
}

func TestProgressRepository_Delete(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	_ = repo.Put(ctx, entities.NewUserProgress(7, entities.Date{}))

	tests := []struct {
		name string
		want bool
	}{
		{name: "existing record", want: true},
		{name: "already deleted", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Delete(ctx, 7)
			if err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Delete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressRepository_List(t *testing.T) {
	repo, mr := newTestRepository(t)
	ctx := context.Background()

	// Lexical key order (100, 2, 30) differs from numeric order.
	for _, id := range []int64{30, 100, 2} {
		if err := repo.Put(ctx, entities.NewUserProgress(id, entities.Date{})); err != nil {
			t.Fatalf("Put(%d) error = %v", id, err)
		}
	}
	_ = mr.Set(testPrefix+"not-a-number", "{}")
	_ = mr.Set("other:progress:5", "{}")

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	want := []int64{2, 30, 100}
	if len(got) != len(want) {
		t.Fatalf("List() returned %d records, want %d", len(got), len(want))
	}
	for i, p := range got {
		if p.UserID != want[i] {
			t.Errorf("List()[%d].UserID = %d, want %d", i, p.UserID, want[i])
		}
	}
}

func TestProgressRepository_CorruptValue(t *testing.T) {
	repo, mr := newTestRepository(t)

	_ = mr.Set(testPrefix+"9", "{broken")
	if _, err := repo.Get(context.Background(), 9); err == nil || errors.Is(err, repository.ErrProgressNotFound) {
		t.Errorf("Get() error = %v, want a decode error", err)
	}
}

func TestProgressRepository_ParseKey(t *testing.T) {
	repo := NewProgressRepository(nil, testPrefix)

	tests := []struct {
		key    string
		want   int64
		wantOK bool
	}{
		{key: testPrefix + "42", want: 42, wantOK: true},
		{key: testPrefix + "-1001234", want: -1001234, wantOK: true},
		{key: testPrefix + "abc", wantOK: false},
		{key: testPrefix, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := repo.parseKey(tt.key)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("parseKey(%q) = %d, %v, want %d, %v", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
