package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"healthconnect/config"
)

// Cache хранит сериализованные в JSON значения в Redis с общим TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(cfg config.RedisConfig) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("не удалось подключиться к Redis: %w", err)
	}

	return &Cache{client: client, ttl: cfg.CacheTTL}, nil
}

// NewWithClient оборачивает готовый клиент, используется в тестах.
func NewWithClient(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get читает значение по ключу в dest; false при промахе.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("ошибка чтения из кеша: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("ошибка десериализации значения кеша: %w", err)
	}

	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("ошибка сериализации значения кеша: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("ошибка записи в кеш: %w", err)
	}

	return nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("ошибка удаления из кеша: %w", err)
	}
	return nil
}

// DeleteByPrefix снимает все ключи с данным префиксом, используется при
// инвалидации результатов поиска после изменения каталога.
func (c *Cache) DeleteByPrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("ошибка удаления из кеша: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("ошибка обхода ключей кеша: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}
