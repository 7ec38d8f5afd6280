// ABOUTME: Charm KV backend for cloud-synced transcript and chunk storage
// ABOUTME: Implements storage.Backend with automatic SSH key auth and optional sync after writes
package charm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"

	"github.com/harper/tubescribe/internal/storage"
)

// badger reports absent keys with this message; charm kv does not re-export the sentinel
const keyNotFound = "Key not found"

// Config holds charm client configuration
type Config struct {
	Host     string
	DBName   string
	AutoSync bool
}

// DefaultConfig returns default configuration for charm client
func DefaultConfig() *Config {
	host := os.Getenv("CHARM_HOST")
	if host == "" {
		host = "cloud.charm.sh"
	}
	return &Config{
		Host:     host,
		DBName:   "tubescribe",
		AutoSync: true,
	}
}

// Client wraps charm KV as a storage.Backend
type Client struct {
	kv     *kv.KV
	config *Config
	mu     sync.Mutex
}

var _ storage.Backend = (*Client)(nil)

// NewClient opens the named charm KV database and pulls remote data when AutoSync is on
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.DBName == "" {
		return nil, fmt.Errorf("charm database name is required")
	}

	// charm reads the host from the environment when opening KV
	if cfg.Host != "" {
		if err := os.Setenv("CHARM_HOST", cfg.Host); err != nil {
			return nil, fmt.Errorf("failed to set CHARM_HOST: %w", err)
		}
	}

	db, err := kv.OpenWithDefaults(cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}

	c := &Client{kv: db, config: cfg}
	if cfg.AutoSync {
		_ = db.Sync()
	}
	return c, nil
}

// Close closes the KV database
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv == nil {
		return nil
	}
	err := c.kv.Close()
	c.kv = nil
	return err
}

func (c *Client) syncIfEnabled() {
	if c.config.AutoSync {
		_ = c.kv.Sync()
	}
}

func (c *Client) open() error {
	if c.kv == nil {
		return fmt.Errorf("charm kv is closed")
	}
	return nil
}

// Get returns the value for key or storage.ErrNotFound
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.open(); err != nil {
		return nil, err
	}
	v, err := c.kv.Get([]byte(key))
	if err != nil {
		if isNotFound(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	if v == nil {
		return nil, storage.ErrNotFound
	}
	return v, nil
}

// Set stores a value with the given key
func (c *Client) Set(ctx context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.open(); err != nil {
		return err
	}
	if err := c.kv.Set([]byte(key), value); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

// Exists reports whether key has a value
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a key
func (c *Client) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.open(); err != nil {
		return err
	}
	if err := c.kv.Delete([]byte(key)); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

// Keys returns all keys with the given prefix, sorted
func (c *Client) Keys(ctx context.Context, prefix string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.open(); err != nil {
		return nil, err
	}
	keys, err := c.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return filterPrefix(keys, prefix), nil
}

// Sync manually triggers a sync with the cloud
func (c *Client) Sync() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.open(); err != nil {
		return err
	}
	return c.kv.Sync()
}

// Reset wipes all local data
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.open(); err != nil {
		return err
	}
	return c.kv.Reset()
}

// ID returns the charm user ID
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.ID()
}

// AuthorizedKeys returns the list of linked devices/keys
func (c *Client) AuthorizedKeys() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.AuthorizedKeys()
}

// Host returns the configured charm host
func (c *Client) Host() string {
	return c.config.Host
}

func isNotFound(err error) bool {
	return err != nil && strings.EqualFold(err.Error(), keyNotFound)
}

func filterPrefix(keys [][]byte, prefix string) []string {
	var result []string
	for _, key := range keys {
		k := string(key)
		if strings.HasPrefix(k, prefix) {
			result = append(result, k)
		}
	}
	sort.Strings(result)
	return result
}
