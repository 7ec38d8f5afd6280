// ABOUTME: Redis Backend for the chunk store using go-redis/v9
// ABOUTME: Keys are namespaced so several tools can share one Redis database
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/harper/tubescribe/internal/storage"
)

// DefaultNamespace prefixes every key written by tubescribe
const DefaultNamespace = "tubescribe:"

// Config holds Redis connection settings
type Config struct {
	Addr        string
	Password    string
	DB          int
	Namespace   string
	DialTimeout time.Duration
}

// Backend implements storage.Backend on a Redis client
type Backend struct {
	client    *goredis.Client
	namespace string
}

var _ storage.Backend = (*Backend)(nil)

// New connects to Redis and verifies the connection
func New(ctx context.Context, cfg Config) (*Backend, error) {
	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}

	return NewWithClient(client, cfg.Namespace), nil
}

// NewWithClient wraps an existing client
func NewWithClient(client *goredis.Client, namespace string) *Backend {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Backend{client: client, namespace: namespace}
}

func (b *Backend) key(k string) string {
	return b.namespace + k
}

// Get returns the value for key or storage.ErrNotFound
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := b.client.Get(ctx, b.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting %s: %w", key, err)
	}
	return v, nil
}

// Set stores value under key without expiry
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	if err := b.client.Set(ctx, b.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("error setting %s: %w", key, err)
	}
	return nil
}

// Exists reports whether key has a value
func (b *Backend) Exists(ctx context.Context, key string) (bool, error) {
	n, err := b.client.Exists(ctx, b.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("error checking %s: %w", key, err)
	}
	return n > 0, nil
}

// Keys lists keys starting with prefix using SCAN, with the namespace stripped
func (b *Backend) Keys(ctx context.Context, prefix string) ([]string, error) {
	match := escapeGlob(b.key(prefix)) + "*"

	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := b.client.Scan(ctx, cursor, match, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("error scanning %s: %w", prefix, err)
		}
		for _, k := range batch {
			keys = append(keys, strings.TrimPrefix(k, b.namespace))
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	return keys, nil
}

// Delete removes key
func (b *Backend) Delete(ctx context.Context, key string) error {
	return b.client.Del(ctx, b.key(key)).Err()
}

// Close closes the Redis connection
func (b *Backend) Close() error {
	return b.client.Close()
}

// escapeGlob quotes the characters SCAN MATCH treats specially
func escapeGlob(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)
	return r.Replace(s)
}
