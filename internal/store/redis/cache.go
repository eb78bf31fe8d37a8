// Package redis provides a rolling cache of recent candles in Redis, used by
// the live loop to warm-start strategy history after a restart.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/ranjananubhav7/algobot/internal/model"
)

// defaultTailLen bounds the per-symbol candle tail kept in Redis.
const defaultTailLen = 2000

// CacheConfig configures the candle cache.
type CacheConfig struct {
	Addr     string // Redis address, e.g. "localhost:6379"
	Password string
	DB       int
	TailLen  int // max candles retained per symbol; 0 uses the default
}

// Cache writes candles to a capped per-symbol list and reads the tail back.
type Cache struct {
	client  *goredis.Client
	tailLen int

	// OnWrite, when set, observes each write duration (metrics).
	OnWrite func(dur time.Duration)
}

// Client returns the underlying Redis client for health checks.
func (c *Cache) Client() *goredis.Client { return c.client }

// New creates a candle cache and pings the server.
func New(cfg CacheConfig) (*Cache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	tailLen := cfg.TailLen
	if tailLen <= 0 {
		tailLen = defaultTailLen
	}

	log.Printf("[redis] connected to %s", cfg.Addr)
	return &Cache{client: client, tailLen: tailLen}, nil
}

func tailKey(symbol string) string {
	return "candles:" + symbol
}

// Append pushes one candle onto the symbol's tail, trimming to the cap.
func (c *Cache) Append(ctx context.Context, candle model.Candle) error {
	start := time.Now()
	key := tailKey(candle.Symbol)

	pipe := c.client.Pipeline()
	pipe.RPush(ctx, key, candle.JSON())
	pipe.LTrim(ctx, key, int64(-c.tailLen), -1)
	_, err := pipe.Exec(ctx)

	if c.OnWrite != nil {
		c.OnWrite(time.Since(start))
	}
	if err != nil {
		return fmt.Errorf("redis append candle: %w", err)
	}
	return nil
}

// Run reads candles from candleCh and appends them to the cache.
// Blocks until ctx is cancelled or candleCh is closed.
func (c *Cache) Run(ctx context.Context, candleCh <-chan model.Candle) {
	for {
		select {
		case <-ctx.Done():
			return
		case candle, ok := <-candleCh:
			if !ok {
				return
			}
			if err := c.Append(ctx, candle); err != nil {
				log.Printf("[redis] append error: %v", err)
			}
		}
	}
}

// Tail returns up to n of the newest candles for the symbol, oldest first.
func (c *Cache) Tail(ctx context.Context, symbol string, n int) ([]model.Candle, error) {
	if n <= 0 || n > c.tailLen {
		n = c.tailLen
	}
	raw, err := c.client.LRange(ctx, tailKey(symbol), int64(-n), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis tail: %w", err)
	}

	candles := make([]model.Candle, 0, len(raw))
	for _, item := range raw {
		var candle model.Candle
		if err := json.Unmarshal([]byte(item), &candle); err != nil {
			log.Printf("[redis] skipping malformed cached candle: %v", err)
			continue
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
