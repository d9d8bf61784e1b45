package valkey

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss = errors.New("cache miss")

// DefaultLocalTTL bounds how long a shape stays in the client-side cache.
const DefaultLocalTTL = time.Minute

// Cache implements ports.CacheService on Valkey. A translated shape never
// changes for a given key, so reads go through valkey-go's client-side cache
// and repeated overlays for one reference point skip the round trip.
type Cache struct {
	client   valkey.Client
	prefix   string
	localTTL time.Duration
}

// Option configures a Cache.
type Option func(*Cache)

// WithPrefix namespaces every key, e.g. per deployment.
func WithPrefix(prefix string) Option {
	return func(c *Cache) { c.prefix = prefix }
}

// WithLocalTTL sets the client-side cache lifetime. Zero disables it.
func WithLocalTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.localTTL = ttl }
}

// New connects to the Valkey server at addr.
func New(addr string, opts ...Option) (*Cache, error) {
	c := &Cache{localTTL: DefaultLocalTTL}
	for _, o := range opts {
		o(c)
	}
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{addr},
		DisableCache: c.localTTL <= 0,
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	c.client = client
	return c, nil
}

// Get returns the cached value for key, or ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	var resp valkey.ValkeyResult
	if c.localTTL > 0 {
		resp = c.client.DoCache(ctx, c.client.B().Get().Key(c.prefix+key).Cache(), c.localTTL)
	} else {
		resp = c.client.Do(ctx, c.client.B().Get().Key(c.prefix+key).Build())
	}
	b, err := resp.AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, ErrCacheMiss
	}
	return b, err
}

// Set stores value under key for ttlSeconds. A non-positive TTL stores the
// key without expiry.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	set := c.client.B().Set().Key(c.prefix + key).Value(valkey.BinaryString(value))
	if ttlSeconds <= 0 {
		return c.client.Do(ctx, set.Build()).Error()
	}
	return c.client.Do(ctx, set.Ex(time.Duration(ttlSeconds)*time.Second).Build()).Error()
}

// Delete removes key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Do(ctx, c.client.B().Del().Key(c.prefix+key).Build()).Error()
}

// Ping checks the server round trip.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}

// Close releases the client.
func (c *Cache) Close() {
	c.client.Close()
}
