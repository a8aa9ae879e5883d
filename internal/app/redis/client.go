package redis

import (
	"context"
	"fmt"
	"time"

	"autoservice/internal/app/config"

	"github.com/go-redis/redis/v8"
)

// Client — обёртка над Redis для дедупликации вебхука.
// Telegram повторяет доставку обновлений при таймаутах, поэтому
// обработанные callback query помечаются ключом с TTL.
type Client struct {
	client *redis.Client
}

func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Username:    cfg.User,
		Password:    cfg.Password,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Client{client: client}, nil
}

// FirstDelivery возвращает true, если callback с таким id ещё не
// обрабатывался. SETNX: повторная доставка того же обновления
// возвращает false и обработчик её пропускает.
func (c *Client) FirstDelivery(ctx context.Context, callbackID string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, "tg:callback:"+callbackID, 1, ttl).Result()
}

func (c *Client) Close() error {
	return c.client.Close()
}
