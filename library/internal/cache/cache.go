package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Astemirdum/library-management/library/internal/model"
)

const (
	bookKeyPrefix  = "library:book:"
	DefaultBookTTL = 5 * time.Minute
)

var ErrCacheMiss = errors.New("cache miss")

type Config struct {
	URL string        `yaml:"url" envconfig:"REDIS_URL"`
	TTL time.Duration `yaml:"ttl" envconfig:"BOOK_CACHE_TTL" default:"5m"`
}

// Cache keeps recently read books in redis. Entries are dropped whenever a
// book or its availability changes, so a hit is never staler than the TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(ctx context.Context, cfg Config) (*Cache, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}
	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewWithClient(client, cfg.TTL), nil
}

func NewWithClient(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultBookTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func bookKey(id uuid.UUID) string {
	return bookKeyPrefix + id.String()
}

func (c *Cache) GetBook(ctx context.Context, id uuid.UUID) (model.Book, error) {
	data, err := c.client.Get(ctx, bookKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Book{}, ErrCacheMiss
		}
		return model.Book{}, fmt.Errorf("redis get: %w", err)
	}
	var book model.Book
	if err := json.Unmarshal(data, &book); err != nil {
		return model.Book{}, fmt.Errorf("decode cached book: %w", err)
	}
	return book, nil
}

func (c *Cache) SetBook(ctx context.Context, book model.Book) error {
	data, err := json.Marshal(book)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, bookKey(book.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *Cache) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, bookKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

// Nop is used when no redis is configured; every read is a miss.
type Nop struct{}

func (Nop) GetBook(context.Context, uuid.UUID) (model.Book, error) {
	return model.Book{}, ErrCacheMiss
}

func (Nop) SetBook(context.Context, model.Book) error { return nil }

func (Nop) DeleteBook(context.Context, uuid.UUID) error { return nil }
