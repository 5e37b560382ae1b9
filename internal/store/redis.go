package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const documentPrefix = "mdlens:doc:"

// RedisStore keeps documents as JSON values under documentPrefix+id.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects lazily to addr. ttl <= 0 keeps documents forever.
func NewRedisStore(addr string, ttl time.Duration) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
	return &RedisStore{client: rdb, ttl: max(ttl, 0)}
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Create(ctx context.Context, text string) (Document, error) {
	doc := Document{ID: uuid.NewString(), Version: 1, Text: text, UpdatedAt: time.Now().UTC()}
	data, err := json.Marshal(doc)
	if err != nil {
		return Document{}, fmt.Errorf("failed to serialize document: %w", err)
	}
	if err := s.client.Set(ctx, documentPrefix+doc.ID, data, s.ttl).Err(); err != nil {
		return Document{}, fmt.Errorf("failed to store document: %w", err)
	}
	return doc, nil
}

// Update bumps the version inside a WATCH transaction so concurrent
// updates of one document never reuse a version.
func (s *RedisStore) Update(ctx context.Context, id string, text string) (Document, error) {
	key := documentPrefix + id
	var doc Document
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := decodeDocument(tx.Get(ctx, key))
		if err != nil {
			return err
		}
		doc = Document{ID: id, Version: current.Version + 1, Text: text, UpdatedAt: time.Now().UTC()}
		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to serialize document: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Document{}, err
		}
		return Document{}, fmt.Errorf("failed to update document: %w", err)
	}
	return doc, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Document, error) {
	return decodeDocument(s.client.Get(ctx, documentPrefix+id))
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	removed, err := s.client.Del(ctx, documentPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func decodeDocument(cmd *redis.StringCmd) (Document, error) {
	raw, err := cmd.Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("failed to get document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to parse document json: %w", err)
	}
	return doc, nil
}
