// Package storage provides durable string-keyed blob stores backing the seen-set.
// SQLite is the default backend, Redis is available for users who already run one.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Backend is a durable key-value store for string blobs
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Type names a storage backend
type Type string

// supported backends
const (
	TypeSQLite Type = "sqlite"
	TypeRedis  Type = "redis"
)

// Config selects and configures a backend
type Config struct {
	Type            Type
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Redis           RedisConfig
}

// Open creates the backend selected by cfg.Type, sqlite if empty
func Open(ctx context.Context, cfg Config) (Backend, error) {
	switch Type(strings.ToLower(string(cfg.Type))) {
	case TypeSQLite, "":
		return NewSQLite(ctx, cfg)
	case TypeRedis:
		return NewRedis(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}
