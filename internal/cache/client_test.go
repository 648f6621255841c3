// internal/cache/client_test.go
package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- テストヘルパー関数 ---
func setupTestCache(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewWithRedis(rdb, testLogger), mr
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestClient_SetAndGet(t *testing.T) {
	ctx := context.Background()
	c, mr := setupTestCache(t)

	ok := c.Set(ctx, "course:detail:1", payload{Name: "Go入門", Count: 3}, 10*time.Minute)
	require.True(t, ok)

	var got payload
	hit := c.Get(ctx, "course:detail:1", &got)
	require.True(t, hit)
	assert.Equal(t, "Go入門", got.Name)
	assert.Equal(t, 3, got.Count)

	// TTLが設定されていること
	assert.True(t, mr.TTL("course:detail:1") > 0)
}

func TestClient_Get_Miss(t *testing.T) {
	ctx := context.Background()
	c, _ := setupTestCache(t)

	var got payload
	hit := c.Get(ctx, "course:detail:999", &got)
	assert.False(t, hit)
}

func TestClient_Get_CorruptEntryIsDeleted(t *testing.T) {
	ctx := context.Background()
	c, mr := setupTestCache(t)

	// JSONとして読めないエントリを直接仕込む
	require.NoError(t, mr.Set("course:detail:1", "{{{not json"))

	var got payload
	hit := c.Get(ctx, "course:detail:1", &got)
	assert.False(t, hit)
	// 壊れたエントリは削除されている
	assert.False(t, mr.Exists("course:detail:1"))
}

func TestClient_Get_ExpiredEntry(t *testing.T) {
	ctx := context.Background()
	c, mr := setupTestCache(t)

	require.True(t, c.Set(ctx, "course:detail:1", payload{Name: "x"}, 1*time.Second))
	mr.FastForward(2 * time.Second)

	var got payload
	assert.False(t, c.Get(ctx, "course:detail:1", &got))
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()
	c, mr := setupTestCache(t)

	require.True(t, c.Set(ctx, "a", 1, time.Minute))
	require.True(t, c.Set(ctx, "b", 2, time.Minute))

	assert.True(t, c.Delete(ctx, "a", "b"))
	assert.False(t, mr.Exists("a"))
	assert.False(t, mr.Exists("b"))
}

func TestClient_DeletePattern(t *testing.T) {
	ctx := context.Background()
	c, mr := setupTestCache(t)

	require.True(t, c.Set(ctx, "course:published:0:20", payload{}, time.Minute))
	require.True(t, c.Set(ctx, "course:published:20:20", payload{}, time.Minute))
	require.True(t, c.Set(ctx, "course:detail:1", payload{}, time.Minute))

	deleted := c.DeletePattern(ctx, "course:published:*")
	assert.Equal(t, 2, deleted)

	// 一覧キーだけが消え、詳細キーは残る
	assert.False(t, mr.Exists("course:published:0:20"))
	assert.False(t, mr.Exists("course:published:20:20"))
	assert.True(t, mr.Exists("course:detail:1"))
}

func TestClient_Exists(t *testing.T) {
	ctx := context.Background()
	c, _ := setupTestCache(t)

	assert.False(t, c.Exists(ctx, "k"))
	require.True(t, c.Set(ctx, "k", true, time.Minute))
	assert.True(t, c.Exists(ctx, "k"))
}

// ストア障害時はすべての操作がミス/false扱いになり、エラーにはならない
func TestClient_FailOpenWhenStoreDown(t *testing.T) {
	ctx := context.Background()
	c, mr := setupTestCache(t)

	require.True(t, c.Set(ctx, "k", payload{Name: "x"}, time.Minute))
	mr.Close()

	var got payload
	assert.False(t, c.Get(ctx, "k", &got))
	assert.False(t, c.Set(ctx, "k", payload{Name: "y"}, time.Minute))
	assert.False(t, c.Delete(ctx, "k"))
	assert.Equal(t, 0, c.DeletePattern(ctx, "*"))
	assert.False(t, c.Exists(ctx, "k"))
}

// Redis未設定 (rdbがnil) でも常にミスとして動作する
func TestClient_DisabledCache(t *testing.T) {
	ctx := context.Background()
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := New("", testLogger)

	var got payload
	assert.False(t, c.Get(ctx, "k", &got))
	assert.False(t, c.Set(ctx, "k", payload{}, time.Minute))
	assert.False(t, c.Delete(ctx, "k"))
	assert.Equal(t, 0, c.DeletePattern(ctx, "*"))
	assert.NoError(t, c.Close())
}

func TestClient_Ping(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 接続中はnil", func(t *testing.T) {
		c, _ := setupTestCache(t)
		assert.NoError(t, c.Ping(ctx))
	})

	t.Run("正常系: 無効化クライアントはnil", func(t *testing.T) {
		testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
		c := New("", testLogger)
		assert.NoError(t, c.Ping(ctx))
	})

	t.Run("異常系: 接続断はエラー", func(t *testing.T) {
		c, mr := setupTestCache(t)
		mr.Close()
		assert.Error(t, c.Ping(ctx))
	})
}
