package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(context.Background(), Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLite_GetSetDelete(t *testing.T) {
	s := testSQLite(t)
	ctx := context.Background()

	// absent key is empty, not an error
	val, err := s.Get(ctx, "seenPosts")
	require.NoError(t, err)
	assert.Empty(t, val)

	require.NoError(t, s.Set(ctx, "seenPosts", `["1","2"]`))
	val, err = s.Get(ctx, "seenPosts")
	require.NoError(t, err)
	assert.Equal(t, `["1","2"]`, val)

	// overwrite
	require.NoError(t, s.Set(ctx, "seenPosts", `["1","2","3"]`))
	val, err = s.Get(ctx, "seenPosts")
	require.NoError(t, err)
	assert.Equal(t, `["1","2","3"]`, val)

	// other keys untouched by delete
	require.NoError(t, s.Set(ctx, "other", "x"))
	require.NoError(t, s.Delete(ctx, "seenPosts"))
	val, err = s.Get(ctx, "seenPosts")
	require.NoError(t, err)
	assert.Empty(t, val)
	val, err = s.Get(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, "x", val)

	// deleting absent key is fine
	require.NoError(t, s.Delete(ctx, "seenPosts"))
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "notwice.db") + "?mode=rwc"
	ctx := context.Background()

	s, err := NewSQLite(ctx, Config{DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "seenPosts", `["42"]`))
	require.NoError(t, s.Close())

	s, err = NewSQLite(ctx, Config{DSN: dsn})
	require.NoError(t, err)
	defer s.Close()
	val, err := s.Get(ctx, "seenPosts")
	require.NoError(t, err)
	assert.Equal(t, `["42"]`, val)
}

func TestSQLite_WriteErrors(t *testing.T) {
	t.Run("non-lock error is returned without retry", func(t *testing.T) {
		s := testSQLite(t)
		calls := 0
		s.retry = func(ctx context.Context, fn func() error) error {
			calls++
			return fn()
		}
		require.NoError(t, s.db.Close())

		err := s.Set(context.Background(), "k", "v")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "set k")
		assert.Equal(t, 1, calls)
	})

	t.Run("lock error surfaces when retries exhausted", func(t *testing.T) {
		s := testSQLite(t)
		s.retry = func(ctx context.Context, fn func() error) error {
			return errors.New("database is locked")
		}
		err := s.Delete(context.Background(), "k")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database is locked")
	})
}

func TestIsLockError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("SQLITE_BUSY: busy"), true},
		{errors.New("database is locked (5)"), true},
		{errors.New("database table is locked"), true},
		{errors.New("no such table: kv"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isLockError(tt.err), "%v", tt.err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	b, err := Open(ctx, Config{DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, b)
	require.NoError(t, b.Close())

	b, err = Open(ctx, Config{Type: "SQLite", DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, b.Close())

	_, err = Open(ctx, Config{Type: "etcd"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported storage type")
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping redis test")
	}
	ctx := context.Background()
	prefix := "notwice-test:" + time.Now().Format("150405.000000") + ":"

	r, err := NewRedis(ctx, RedisConfig{Addr: addr, Prefix: prefix})
	require.NoError(t, err)
	defer r.Close()

	val, err := r.Get(ctx, "seenPosts")
	require.NoError(t, err)
	assert.Empty(t, val)

	require.NoError(t, r.Set(ctx, "seenPosts", `["7"]`))
	val, err = r.Get(ctx, "seenPosts")
	require.NoError(t, err)
	assert.Equal(t, `["7"]`, val)

	require.NoError(t, r.Delete(ctx, "seenPosts"))
	val, err = r.Get(ctx, "seenPosts")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestRedis_ConnectFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := NewRedis(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to redis")
}

func TestRedis_Key(t *testing.T) {
	r := &Redis{prefix: "notwice:"}
	assert.Equal(t, "notwice:seenPosts", r.key("seenPosts"))
	r = &Redis{}
	assert.Equal(t, "seenPosts", r.key("seenPosts"))
}
