// Package redisstore keeps records as Redis string keys. A unit of work
// stages writes and applies them in one MULTI/EXEC block on commit.
package redisstore

import (
	"context"
	"errors"

	"pos/internal/core/ports"
	"pos/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces record keys, e.g. "pos:orders".
const DefaultKeyPrefix = "pos:"

type Store struct {
	client *redis.Client
	prefix string
}

var _ ports.RecordStore = (*Store)(nil)

func NewStore(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) Key(key string) string {
	return s.prefix + key
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := s.client.Get(ctx, s.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.NewPersistenceFailureError("redis get "+s.Key(key), err)
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.Key(key), value, 0).Err(); err != nil {
		return errs.NewPersistenceFailureError("redis set "+s.Key(key), err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.Key(key)).Err(); err != nil {
		return errs.NewPersistenceFailureError("redis del "+s.Key(key), err)
	}
	return nil
}

// Apply writes all changes in a single transaction.
func (s *Store) Apply(ctx context.Context, writes map[string][]byte, deletes []string) error {
	if len(writes) == 0 && len(deletes) == 0 {
		return nil
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range writes {
			pipe.Set(ctx, s.Key(k), v, 0)
		}
		for _, k := range deletes {
			pipe.Del(ctx, s.Key(k))
		}
		return nil
	})
	if err != nil {
		return errs.NewPersistenceFailureError("redis exec", err)
	}
	return nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
