package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a KV persisted as one JSON object on disk. Writes go to a
// temporary file that is renamed over the original.
type File struct {
	path string

	mu    sync.Mutex
	store map[string]string
}

// OpenFile opens or creates the store at path. A missing file is an empty
// store; an unreadable or corrupt one is an error.
func OpenFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("file store path must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	f := &File{path: path, store: make(map[string]string)}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return f, nil
	case err != nil:
		return nil, fmt.Errorf("read store file: %w", err)
	case len(data) == 0:
		return f, nil
	}

	if err := json.Unmarshal(data, &f.store); err != nil {
		return nil, fmt.Errorf("decode store file %s: %w", path, err)
	}
	return f, nil
}

// GetMany returns the values present for keys.
func (f *File) GetMany(ctx context.Context, keys ...string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := f.store[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// SetMany applies entries and rewrites the file. The in-memory view only
// changes once the new file is in place.
func (f *File) SetMany(ctx context.Context, entries map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	next := make(map[string]string, len(f.store)+len(entries))
	for k, v := range f.store {
		next[k] = v
	}
	for k, v := range entries {
		next[k] = v
	}

	if err := f.writeLocked(next); err != nil {
		return err
	}
	f.store = next
	return nil
}

func (f *File) writeLocked(m map[string]string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".cart-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

// Path returns the location of the store file.
func (f *File) Path() string { return f.path }

// Close is a no-op; every write is already on disk.
func (f *File) Close() error { return nil }
