// Package storage provides the durable key-value stores the cart snapshot
// is written to.
//
// Every backend offers the same small contract: read several keys at once,
// and overwrite several keys in a single write so a snapshot's entries
// never land half-written. Missing keys are simply absent from the result
// of GetMany.
//
// Backends:
//
//   - memory: process-local map, for tests and throwaway instances
//   - file: a JSON object on disk, replaced atomically on each write
//   - postgres: a key/value table, upserted in one transaction
//   - redis: plain string keys written with MSET
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// KV is a durable key-value store.
type KV interface {
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)
	SetMany(ctx context.Context, entries map[string]string) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend     string
	Path        string // file
	DatabaseURL string // postgres
	MaxConns    int    // postgres
	RedisURL    string // redis
}

// Open connects to the backend named in opts.
func Open(ctx context.Context, opts Options) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile, "":
		return OpenFile(opts.Path)
	case BackendPostgres:
		return OpenPostgres(ctx, opts.DatabaseURL, opts.MaxConns)
	case BackendRedis:
		return OpenRedis(ctx, opts.RedisURL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
