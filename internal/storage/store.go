// Package storage provides a provider-agnostic object store abstraction
// for the raw uploads, extracted text, and evidence artifacts the
// pipeline reads and writes.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Sentinel errors returned by Store implementations.
var (
	ErrNotFound = errors.New("storage: object not found")
	ErrExists   = errors.New("storage: object already exists")
)

// ObjectMeta describes a stored object without its content.
type ObjectMeta struct {
	Key          string
	Size         int64
	ETag         string
	LastModified time.Time
}

// ListOptions bounds a List call.
type ListOptions struct {
	Prefix  string
	MaxKeys int
}

// ListResult is the page of objects a List call returns.
type ListResult struct {
	Objects    []ObjectMeta
	Truncated  bool
}

// Store is the contract every storage backend (local filesystem, S3)
// implements. Keys are opaque strings chosen by callers; this package
// never attaches meaning to them beyond byte storage.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetReader(ctx context.Context, key string) (io.ReadCloser, error)
	Put(ctx context.Context, key string, data []byte) error
	PutReader(ctx context.Context, key string, r io.Reader) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Metadata(ctx context.Context, key string) (ObjectMeta, error)
	List(ctx context.Context, opts ListOptions) (ListResult, error)
	Close() error
}
