package storage

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileStore stores objects as files under a base directory. Writes are
// atomic: content lands in a temp file in the same directory, then is
// renamed into place, so readers never observe a partially-written
// object.
type FileStore struct {
	basePath string
}

// NewFileStore creates the base directory if needed and returns a
// FileStore rooted there.
func NewFileStore(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create base path: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

// sanitizeKey prevents path traversal outside basePath via ".." segments.
func sanitizeKey(key string) string {
	clean := filepath.Clean("/" + key)
	clean = strings.TrimPrefix(clean, "/")
	clean = strings.ReplaceAll(clean, "..", "_")
	return clean
}

func (s *FileStore) keyToPath(key string) string {
	return filepath.Join(s.basePath, sanitizeKey(key))
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.keyToPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *FileStore) GetReader(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(s.keyToPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *FileStore) Put(ctx context.Context, key string, data []byte) error {
	return s.PutReader(ctx, key, bytes.NewReader(data))
}

func (s *FileStore) PutReader(ctx context.Context, key string, r io.Reader) error {
	path := s.keyToPath(key)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: rename into place: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.keyToPath(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *FileStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(s.keyToPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *FileStore) Metadata(ctx context.Context, key string) (ObjectMeta, error) {
	path := s.keyToPath(key)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ObjectMeta{}, ErrNotFound
		}
		return ObjectMeta{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ObjectMeta{}, err
	}
	sum := md5.Sum(data)
	return ObjectMeta{
		Key:          key,
		Size:         info.Size(),
		ETag:         hex.EncodeToString(sum[:]),
		LastModified: info.ModTime(),
	}, nil
}

func (s *FileStore) List(ctx context.Context, opts ListOptions) (ListResult, error) {
	maxKeys := opts.MaxKeys
	if maxKeys <= 0 {
		maxKeys = 1000
	}

	var keys []string
	err := filepath.Walk(s.basePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if strings.HasPrefix(info.Name(), ".tmp-") {
			return nil
		}
		rel, err := filepath.Rel(s.basePath, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if opts.Prefix != "" && !strings.HasPrefix(rel, opts.Prefix) {
			return nil
		}
		keys = append(keys, rel)
		return nil
	})
	if err != nil {
		return ListResult{}, err
	}
	sort.Strings(keys)

	truncated := len(keys) > maxKeys
	if truncated {
		keys = keys[:maxKeys]
	}

	objects := make([]ObjectMeta, 0, len(keys))
	for _, k := range keys {
		meta, err := s.Metadata(ctx, k)
		if err != nil {
			return ListResult{}, err
		}
		objects = append(objects, meta)
	}
	return ListResult{Objects: objects, Truncated: truncated}, nil
}

func (s *FileStore) Close() error { return nil }
