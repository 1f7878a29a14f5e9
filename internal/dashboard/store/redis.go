package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgerror"
)

const maxTxRetries = 8

// Satisfied by both *redis.Client and *redis.Tx.
type (
	hashReader interface {
		HGet(ctx context.Context, key, field string) *redis.StringCmd
	}
	stringReader interface {
		Get(ctx context.Context, key string) *redis.StringCmd
	}
)

// RedisStore keeps uploads and the active case in Redis so several instances
// behind one load balancer share them.
type RedisStore struct {
	rdb        *redis.Client
	uploadsKey string
	caseKey    string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// NewRedisStore connects and pings before returning.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return newRedisStore(rdb, cfg.Prefix), nil
}

func newRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "fraudboard"
	}
	return &RedisStore{
		rdb:        rdb,
		uploadsKey: prefix + ":uploads",
		caseKey:    prefix + ":case:active",
	}
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func (s *RedisStore) CreateUpload(ctx context.Context, meta entity.UploadMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal upload: %w", err)
	}

	created, err := s.rdb.HSetNX(ctx, s.uploadsKey, meta.ID, data).Result()
	if err != nil {
		return fmt.Errorf("failed to store upload: %w", err)
	}
	if !created {
		return pkgerror.NewBusiness("upload already exists", pkgerror.CodeConflict)
	}

	return nil
}

func (s *RedisStore) UpdateMeta(ctx context.Context, uploadID string, fn func(meta *entity.UploadMeta)) error {
	return s.watch(ctx, s.uploadsKey, func(tx *redis.Tx) error {
		meta, err := s.readUpload(ctx, tx, uploadID)
		if err != nil {
			return err
		}

		fn(&meta)

		data, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("failed to marshal upload: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, s.uploadsKey, uploadID, data)
			return nil
		})
		return err
	})
}

func (s *RedisStore) GetUpload(ctx context.Context, uploadID string) (entity.UploadMeta, error) {
	return s.readUpload(ctx, s.rdb, uploadID)
}

// ListUploads returns every upload, most recently started first.
func (s *RedisStore) ListUploads(ctx context.Context) ([]entity.UploadMeta, error) {
	raw, err := s.rdb.HGetAll(ctx, s.uploadsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}

	items := make([]entity.UploadMeta, 0, len(raw))
	for id, data := range raw {
		var meta entity.UploadMeta
		if err := json.Unmarshal([]byte(data), &meta); err != nil {
			return nil, fmt.Errorf("failed to unmarshal upload %s: %w", id, err)
		}
		items = append(items, meta)
	}

	slices.SortStableFunc(items, compareUploads)
	return items, nil
}

// SelectCase replaces the active case. Any previous selection is discarded.
func (s *RedisStore) SelectCase(ctx context.Context, detail entity.CaseDetail) error {
	data, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("failed to marshal case: %w", err)
	}

	if err := s.rdb.Set(ctx, s.caseKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store case: %w", err)
	}
	return nil
}

func (s *RedisStore) ActiveCase(ctx context.Context) (entity.CaseDetail, error) {
	return s.readCase(ctx, s.rdb)
}

// UpdateCase applies fn to the active case. The change is kept only when fn
// returns nil.
func (s *RedisStore) UpdateCase(ctx context.Context, fn func(detail *entity.CaseDetail) error) (entity.CaseDetail, error) {
	var out entity.CaseDetail
	err := s.watch(ctx, s.caseKey, func(tx *redis.Tx) error {
		d, err := s.readCase(ctx, tx)
		if err != nil {
			return err
		}
		if err := fn(&d); err != nil {
			return err
		}

		data, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("failed to marshal case: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.caseKey, data, 0)
			return nil
		})
		if err == nil {
			out = d
		}
		return err
	})
	if err != nil {
		return entity.CaseDetail{}, err
	}

	return out, nil
}

func (s *RedisStore) ClearCase(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.caseKey).Err(); err != nil {
		return fmt.Errorf("failed to clear case: %w", err)
	}
	return nil
}

// watch runs fn under WATCH on key and retries when another writer got there first.
func (s *RedisStore) watch(ctx context.Context, key string, fn func(tx *redis.Tx) error) error {
	for range maxTxRetries {
		err := s.rdb.Watch(ctx, fn, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return pkgerror.NewBusiness("too many concurrent updates", pkgerror.CodeConflict)
}

func (s *RedisStore) readUpload(ctx context.Context, c hashReader, uploadID string) (entity.UploadMeta, error) {
	data, err := c.HGet(ctx, s.uploadsKey, uploadID).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.UploadMeta{}, pkgerror.ErrNotFound
	}
	if err != nil {
		return entity.UploadMeta{}, fmt.Errorf("failed to get upload: %w", err)
	}

	var meta entity.UploadMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return entity.UploadMeta{}, fmt.Errorf("failed to unmarshal upload: %w", err)
	}
	return meta, nil
}

func (s *RedisStore) readCase(ctx context.Context, c stringReader) (entity.CaseDetail, error) {
	data, err := c.Get(ctx, s.caseKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.CaseDetail{}, pkgerror.ErrNotFound
	}
	if err != nil {
		return entity.CaseDetail{}, fmt.Errorf("failed to get case: %w", err)
	}

	var d entity.CaseDetail
	if err := json.Unmarshal(data, &d); err != nil {
		return entity.CaseDetail{}, fmt.Errorf("failed to unmarshal case: %w", err)
	}
	return d, nil
}
