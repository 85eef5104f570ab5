package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a BlobStore when the key holds no value
var ErrNotFound = errors.New("not found")

// BlobStore is a key-value store of opaque values
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
