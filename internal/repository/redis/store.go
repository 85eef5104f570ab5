package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/mindcare/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Store implements domain.BlobStore with plain string keys. Keys persist
// unless an expiry was registered with WithKeyTTL.
type Store struct {
	client *Client
	owned  bool
	ttls   map[string]time.Duration
}

// NewStore wraps a client shared with other components; Close leaves it open
func NewStore(client *Client) *Store {
	return &Store{client: client, ttls: make(map[string]time.Duration)}
}

// NewOwnedStore wraps a client the store is responsible for closing
func NewOwnedStore(client *Client) *Store {
	s := NewStore(client)
	s.owned = true
	return s
}

// WithKeyTTL makes every write to key expire after ttl
func (s *Store) WithKeyTTL(key string, ttl time.Duration) *Store {
	s.ttls[key] = ttl
	return s
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return data, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.rdb.Set(ctx, key, value, s.ttls[key]).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}
