package repository

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/aliskhannn/shadowfit-bot/internal/domain/entities"
)

// FileRepository keeps every user record in one JSON document on disk.
// The document is loaded once and rewritten in full after each mutation.
type FileRepository struct {
	path string

	mu      sync.RWMutex
	records map[int64]*entities.UserProgress
}

// NewFileRepository opens the JSON store at path. A missing file is an empty store.
func NewFileRepository(path string) (*FileRepository, error) {
	records, err := loadRecords(path)
	if err != nil {
		return nil, err
	}

	return &FileRepository{
		path:    path,
		records: records,
	}, nil
}

// Get returns a copy of the user's record.
func (r *FileRepository) Get(_ context.Context, userID int64) (*entities.UserProgress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.records[userID]
	if !ok {
		return nil, ErrProgressNotFound
	}
	return p.Clone(), nil
}

// Put replaces the user's record and flushes the whole document.
func (r *FileRepository) Put(_ context.Context, p *entities.UserProgress) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, existed := r.records[p.UserID]
	r.records[p.UserID] = p.Clone()

	if err := r.flushLocked(); err != nil {
		if existed {
			r.records[p.UserID] = prev
		} else {
			delete(r.records, p.UserID)
		}
		return err
	}
	return nil
}

// Delete removes the user's record and reports whether it existed.
func (r *FileRepository) Delete(_ context.Context, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.records[userID]
	if !ok {
		return false, nil
	}
	delete(r.records, userID)

	if err := r.flushLocked(); err != nil {
		r.records[userID] = prev
		return false, err
	}
	return true, nil
}

// List returns copies of all records ordered by user ID.
func (r *FileRepository) List(_ context.Context) ([]*entities.UserProgress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.UserProgress, 0, len(r.records))
	for _, p := range r.records {
		out = append(out, p.Clone())
	}
	slices.SortFunc(out, func(a, b *entities.UserProgress) int {
		return cmp.Compare(a.UserID, b.UserID)
	})
	return out, nil
}

// flushLocked writes the document to a temp file and renames it over the
// original so readers never observe a half-written file.
func (r *FileRepository) flushLocked() error {
	data, err := json.MarshalIndent(r.records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err = os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}

func loadRecords(path string) (map[int64]*entities.UserProgress, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[int64]*entities.UserProgress), nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	records := make(map[int64]*entities.UserProgress)
	if len(data) == 0 {
		return records, nil
	}
	if err = json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}

	// The key is authoritative for records written before user_id existed.
	for id, p := range records {
		if p == nil {
			delete(records, id)
			continue
		}
		p.UserID = id
	}
	return records, nil
}
