// internal/cache/client.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"smartcourse/internal/middleware"
)

// Client はキーバリューストア (Redis) の薄いラッパーです。
// 全操作がフォールトトレラント: ストアに到達できない場合、
// Get/Exists はミス/false、Set/Delete は何もせず false/0 を返す。
// キャッシュ障害を呼び出し側がハードエラーとして扱うことはない。
type Client struct {
	rdb    *redis.Client // nil なら常にミスとして振る舞う
	logger *slog.Logger
}

// New はRedisに接続してClientを生成します。
// 接続に失敗してもエラーにはせず、キャッシュ無効のClientを返す
// (アプリはキャッシュなしでも動作する)。
func New(redisURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if redisURL == "" {
		logger.Warn("Redis URL not configured, cache disabled")
		return &Client{logger: logger}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn("Invalid Redis URL, cache disabled", "error", err)
		return &Client{logger: logger}
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 5 * time.Second
	opts.WriteTimeout = 5 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis connection failed, cache disabled", "error", err)
		rdb.Close()
		return &Client{logger: logger}
	}

	logger.Info("Redis connection established")
	return &Client{rdb: rdb, logger: logger}
}

// NewWithRedis は既存のRedisクライアントからClientを生成します (テスト用途)
func NewWithRedis(rdb *redis.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{rdb: rdb, logger: logger}
}

// Close はRedis接続を閉じます
func (c *Client) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// Ping はRedisへの疎通確認を行います。キャッシュ無効時はnilを返す。
func (c *Client) Ping(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// Get はキャッシュから値を取得し dest にデコードします。
// 戻り値はヒットしたかどうか。ミス・障害・デコード失敗はすべて false。
func (c *Client) Get(ctx context.Context, key string, dest any) bool {
	if c.rdb == nil {
		return false
	}
	logger := middleware.GetLogger(ctx)

	data, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("Cache get error", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		// デコードできないエントリは壊れているので捨てる
		logger.Warn("Cache entry corrupt, deleting", "key", key, "error", err)
		c.rdb.Del(ctx, key)
		return false
	}
	return true
}

// Set は値をJSONエンコードしてTTL付きで格納します。
// シリアライズ不能な値はプログラミングエラーだが、実行時には
// 警告ログを残して false を返すに留める。
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	if c.rdb == nil {
		return false
	}
	logger := middleware.GetLogger(ctx)

	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn("Cache set: value not serializable", "key", key, "error", err)
		return false
	}
	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Warn("Cache set error", "key", key, "error", err)
		return false
	}
	return true
}

// Delete は指定キーを削除します
func (c *Client) Delete(ctx context.Context, keys ...string) bool {
	if c.rdb == nil || len(keys) == 0 {
		return false
	}
	logger := middleware.GetLogger(ctx)

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("Cache delete error", "keys", keys, "error", err)
		return false
	}
	return true
}

// DeletePattern はglobパターンに一致するキーを削除し、削除数を返します。
// 大きなキー空間でストアをブロックしないよう、KEYSではなく
// SCANによる逐次走査で削除する。
func (c *Client) DeletePattern(ctx context.Context, pattern string) int {
	if c.rdb == nil {
		return 0
	}
	logger := middleware.GetLogger(ctx)

	deleted := 0
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn("Cache delete error during pattern scan", "key", iter.Val(), "error", err)
			continue
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		logger.Warn("Cache pattern scan error", "pattern", pattern, "error", err)
	}
	if deleted > 0 {
		logger.Debug("Cache pattern delete", "pattern", pattern, "deleted", deleted)
	}
	return deleted
}

// Exists はキーの存在だけを確認します (値は取得しない)
func (c *Client) Exists(ctx context.Context, key string) bool {
	if c.rdb == nil {
		return false
	}
	logger := middleware.GetLogger(ctx)

	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		logger.Warn("Cache exists error", "key", key, "error", err)
		return false
	}
	return n > 0
}
