package redis

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aliskhannn/shadowfit-bot/internal/domain/entities"
	"github.com/aliskhannn/shadowfit-bot/internal/repository"
)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, opts Options) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// ProgressRepository stores each record as a JSON string under prefix+userID.
type ProgressRepository struct {
	client goredis.UniversalClient
	prefix string
}

func NewProgressRepository(client goredis.UniversalClient, prefix string) *ProgressRepository {
	return &ProgressRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *ProgressRepository) Get(ctx context.Context, userID int64) (*entities.UserProgress, error) {
	data, err := r.client.Get(ctx, r.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, repository.ErrProgressNotFound
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}

	return decode(userID, data)
}

func (r *ProgressRepository) Put(ctx context.Context, p *entities.UserProgress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	if err = r.client.Set(ctx, r.key(p.UserID), data, 0).Err(); err != nil {
		return fmt.Errorf("put progress: %w", err)
	}
	return nil
}

func (r *ProgressRepository) Delete(ctx context.Context, userID int64) (bool, error) {
	n, err := r.client.Del(ctx, r.key(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("delete progress: %w", err)
	}
	return n > 0, nil
}

// List scans every key under the prefix. Records deleted mid-scan are skipped.
func (r *ProgressRepository) List(ctx context.Context) ([]*entities.UserProgress, error) {
	var out []*entities.UserProgress

	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		userID, ok := r.parseKey(iter.Val())
		if !ok {
			continue
		}

		p, err := r.Get(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrProgressNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, p)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan progress: %w", err)
	}

	slices.SortFunc(out, func(a, b *entities.UserProgress) int {
		return cmp.Compare(a.UserID, b.UserID)
	})
	return out, nil
}

func (r *ProgressRepository) key(userID int64) string {
	return r.prefix + strconv.FormatInt(userID, 10)
}

func (r *ProgressRepository) parseKey(key string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimPrefix(key, r.prefix), 10, 64)
	return id, err == nil
}

func decode(userID int64, data []byte) (*entities.UserProgress, error) {
	var p entities.UserProgress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal progress %d: %w", userID, err)
	}
	p.UserID = userID
	return &p, nil
}
