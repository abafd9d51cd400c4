// Package redis keeps habitcards data in a Redis database, one string per key
// under a shared prefix.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/julianstephens/habitcards/internal/constants"
	"github.com/julianstephens/habitcards/internal/storage"
)

type Store struct {
	url    string
	prefix string
	client *redis.Client
}

// New creates a store for a redis:// or rediss:// URL
func New(url string) *Store {
	return &Store{url: url, prefix: constants.RedisKeyPrefix}
}

// NewWithClient wraps an existing client, used by tests
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client, prefix: constants.RedisKeyPrefix}
}

func (s *Store) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), constants.RedisOpTimeout)
}

func (s *Store) connect() error {
	if s.client == nil {
		opts, err := redis.ParseURL(s.url)
		if err != nil {
			return fmt.Errorf("invalid redis URL: %w", err)
		}
		s.client = redis.NewClient(opts)
	}

	ctx, cancel := s.ctx()
	defer cancel()
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	return nil
}

func (s *Store) Init() error { return s.connect() }
func (s *Store) Load() error { return s.connect() }

func (s *Store) Close() error {
	if s.client != nil {
		err := s.client.Close()
		s.client = nil
		return err
	}
	return nil
}

func (s *Store) key(k string) string { return s.prefix + k }

func (s *Store) Get(key string) (string, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", key, err)
	}
	return v, nil
}

func (s *Store) Set(key, value string) error {
	ctx, cancel := s.ctx()
	defer cancel()
	return s.client.Set(ctx, s.key(key), value, 0).Err()
}

func (s *Store) Remove(key string) error {
	return s.RemoveMany([]string{key})
}

// SetMany issues a single MSET inside MULTI/EXEC
func (s *Store) SetMany(entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	pairs := make([]interface{}, 0, len(entries)*2)
	for k, v := range entries {
		pairs = append(pairs, s.key(k), v)
	}

	ctx, cancel := s.ctx()
	defer cancel()
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.MSet(ctx, pairs...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write %d keys: %w", len(entries), err)
	}
	return nil
}

func (s *Store) RemoveMany(keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}

	ctx, cancel := s.ctx()
	defer cancel()
	return s.client.Del(ctx, full...).Err()
}

func (s *Store) Keys() ([]string, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) GetConfigPath() string {
	return "redis"
}
