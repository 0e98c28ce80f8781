package seen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/notwice/pkg/seen/mocks"
)

// memKV returns a KVMock backed by a map
func memKV(data map[string]string) *mocks.KVMock {
	return &mocks.KVMock{
		GetFunc: func(ctx context.Context, key string) (string, error) {
			return data[key], nil
		},
		SetFunc: func(ctx context.Context, key, value string) error {
			data[key] = value
			return nil
		},
		DeleteFunc: func(ctx context.Context, key string) error {
			delete(data, key)
			return nil
		},
	}
}

func confirmer(answer bool) *mocks.ConfirmerMock {
	return &mocks.ConfirmerMock{
		ConfirmFunc: func(ctx context.Context, prompt string) (bool, error) {
			return answer, nil
		},
	}
}

func TestStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("absent blob", func(t *testing.T) {
		s := New(memKV(map[string]string{}), Options{})
		assert.Empty(t, s.Load(ctx))
		assert.Equal(t, 0, s.Len())
	})

	t.Run("valid blob", func(t *testing.T) {
		s := New(memKV(map[string]string{"seenPosts": `["1","2","3"]`}), Options{})
		assert.Equal(t, []string{"1", "2", "3"}, s.Load(ctx))
		assert.True(t, s.Contains("2"))
		assert.False(t, s.Contains("4"))
	})

	t.Run("malformed blob", func(t *testing.T) {
		for _, blob := range []string{`{"a":1}`, `[1,2`, `not json`, `null`} {
			s := New(memKV(map[string]string{"seenPosts": blob}), Options{})
			assert.Empty(t, s.Load(ctx), blob)
			assert.Equal(t, 0, s.Len(), blob)
		}
	})

	t.Run("backend error", func(t *testing.T) {
		kv := &mocks.KVMock{GetFunc: func(ctx context.Context, key string) (string, error) {
			return "", errors.New("disk gone")
		}}
		s := New(kv, Options{})
		assert.Empty(t, s.Load(ctx))
	})

	t.Run("over cap keeps most recent", func(t *testing.T) {
		kv := memKV(map[string]string{"seenPosts": `["1","2","3","4","5"]`})
		s := New(kv, Options{MaxEntries: 3})
		assert.Equal(t, []string{"3", "4", "5"}, s.Load(ctx))
		assert.Equal(t, 3, s.Len())
		assert.False(t, s.Contains("1"))
		assert.False(t, s.Contains("2"))
		assert.True(t, s.Contains("3"))
		assert.Equal(t, 3, s.Summarize().Total)
		assert.Empty(t, kv.SetCalls(), "load never writes")
	})

	t.Run("custom key", func(t *testing.T) {
		kv := memKV(map[string]string{"other": `["9"]`})
		s := New(kv, Options{Key: "other"})
		assert.Equal(t, []string{"9"}, s.Load(ctx))
		require.Len(t, kv.GetCalls(), 1)
		assert.Equal(t, "other", kv.GetCalls()[0].Key)
	})
}

func TestStore_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("record then contains", func(t *testing.T) {
		data := map[string]string{}
		s := New(memKV(data), Options{})
		s.Load(ctx)

		assert.True(t, s.Record(ctx, "12345"))
		assert.True(t, s.Contains("12345"))
		assert.JSONEq(t, `["12345"]`, data["seenPosts"])
	})

	t.Run("idempotent", func(t *testing.T) {
		data := map[string]string{}
		kv := memKV(data)
		s := New(kv, Options{})
		s.Load(ctx)

		assert.True(t, s.Record(ctx, "1"))
		blob := data["seenPosts"]
		assert.False(t, s.Record(ctx, "1"))
		assert.Equal(t, blob, data["seenPosts"])
		assert.Len(t, kv.SetCalls(), 1, "second record must not write")
		assert.Equal(t, []string{"1"}, s.IDs())
	})

	t.Run("cap drops oldest", func(t *testing.T) {
		data := map[string]string{}
		s := New(memKV(data), Options{MaxEntries: 5})
		s.Load(ctx)

		for i := 1; i <= 12; i++ {
			s.Record(ctx, strconv.Itoa(i))
			assert.LessOrEqual(t, s.Len(), 5)
		}
		assert.Equal(t, []string{"8", "9", "10", "11", "12"}, s.IDs())
		assert.False(t, s.Contains("7"))
		assert.True(t, s.Contains("8"))

		var persisted []string
		require.NoError(t, json.Unmarshal([]byte(data["seenPosts"]), &persisted))
		assert.Equal(t, s.IDs(), persisted)

		// dropped id can be recorded again as the newest
		assert.True(t, s.Record(ctx, "1"))
		assert.Equal(t, []string{"9", "10", "11", "12", "1"}, s.IDs())
	})

	t.Run("cap with duplicates keeps distinct most recent", func(t *testing.T) {
		s := New(memKV(map[string]string{}), Options{MaxEntries: 3})
		s.Load(ctx)
		for _, id := range []string{"a", "b", "a", "c", "b", "d"} {
			s.Record(ctx, id)
		}
		assert.Equal(t, []string{"b", "c", "d"}, s.IDs())
	})

	t.Run("loaded blob over cap is trimmed on next record", func(t *testing.T) {
		data := map[string]string{"seenPosts": `["1","2","3","4"]`}
		s := New(memKV(data), Options{MaxEntries: 2})
		s.Load(ctx)
		s.Record(ctx, "5")
		assert.Equal(t, []string{"4", "5"}, s.IDs())
		assert.False(t, s.Contains("1"))
	})

	t.Run("persist failure keeps memory", func(t *testing.T) {
		kv := &mocks.KVMock{
			GetFunc: func(ctx context.Context, key string) (string, error) { return "", nil },
			SetFunc: func(ctx context.Context, key, value string) error {
				return errors.New("quota exceeded")
			},
		}
		s := New(kv, Options{})
		s.Load(ctx)
		assert.True(t, s.Record(ctx, "1"))
		assert.True(t, s.Contains("1"))
		assert.True(t, s.Record(ctx, "2"))
		assert.Len(t, kv.SetCalls(), 2)
		assert.JSONEq(t, `["1","2"]`, kv.SetCalls()[1].Value, "each write carries the full list")
	})
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()

	t.Run("declined", func(t *testing.T) {
		data := map[string]string{"seenPosts": `["1","2"]`}
		kv := memKV(data)
		s := New(kv, Options{})
		s.Load(ctx)

		cleared, err := s.Clear(ctx, confirmer(false))
		require.NoError(t, err)
		assert.False(t, cleared)
		assert.Equal(t, `["1","2"]`, data["seenPosts"])
		assert.Equal(t, []string{"1", "2"}, s.IDs())
		assert.Empty(t, kv.DeleteCalls())
	})

	t.Run("confirmed", func(t *testing.T) {
		data := map[string]string{"seenPosts": `["1","2"]`}
		s := New(memKV(data), Options{})
		s.Load(ctx)
		c := confirmer(true)

		cleared, err := s.Clear(ctx, c)
		require.NoError(t, err)
		assert.True(t, cleared)
		_, exists := data["seenPosts"]
		assert.False(t, exists)
		assert.Equal(t, 0, s.Len())
		assert.False(t, s.Contains("1"))
		require.Len(t, c.ConfirmCalls(), 1)
		assert.Contains(t, c.ConfirmCalls()[0].Prompt, "clear all tracked posts")
	})

	t.Run("confirm error", func(t *testing.T) {
		s := New(memKV(map[string]string{"seenPosts": `["1"]`}), Options{})
		s.Load(ctx)
		c := &mocks.ConfirmerMock{ConfirmFunc: func(ctx context.Context, prompt string) (bool, error) {
			return false, context.Canceled
		}}
		cleared, err := s.Clear(ctx, c)
		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, cleared)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("delete failure still resets memory", func(t *testing.T) {
		kv := memKV(map[string]string{"seenPosts": `["1"]`})
		kv.DeleteFunc = func(ctx context.Context, key string) error { return errors.New("read-only") }
		s := New(kv, Options{})
		s.Load(ctx)
		cleared, err := s.Clear(ctx, confirmer(true))
		require.Error(t, err)
		assert.True(t, cleared)
		assert.Equal(t, 0, s.Len())
	})
}

func TestStore_Summarize(t *testing.T) {
	ctx := context.Background()
	data := map[string]string{}
	s := New(memKV(data), Options{})
	s.Load(ctx)

	empty := s.Summarize()
	assert.Equal(t, 0, empty.Total)
	assert.Empty(t, empty.Recent)

	for i := 1; i <= 15; i++ {
		s.Record(ctx, fmt.Sprintf("%d", 1000+i))
	}
	sum := s.Summarize()
	assert.Equal(t, 15, sum.Total)
	assert.Equal(t, len(data["seenPosts"]), sum.StorageBytes)
	require.Len(t, sum.Recent, 10)
	assert.Equal(t, "https://x.com/i/status/1015", sum.Recent[0])
	assert.Equal(t, "https://x.com/i/status/1006", sum.Recent[9])

	out := sum.String()
	assert.Contains(t, out, "Total tracked posts: 15\n")
	assert.Contains(t, out, fmt.Sprintf("Storage used: %.2f KB\n", float64(len(data["seenPosts"]))/1024))
	assert.Contains(t, out, "1. https://x.com/i/status/1015\n")
	assert.Contains(t, out, "10. https://x.com/i/status/1006\n")
}

func TestStore_SummarizeCustomBase(t *testing.T) {
	s := New(memKV(map[string]string{"seenPosts": `["5"]`}), Options{PermalinkBase: "https://twitter.com/"})
	s.Load(context.Background())
	assert.Equal(t, []string{"https://twitter.com/i/status/5"}, s.Summarize().Recent)
}

func TestSummary_KiB(t *testing.T) {
	assert.InDelta(t, 2.0, Summary{StorageBytes: 2048}.KiB(), 0.0001)
}
