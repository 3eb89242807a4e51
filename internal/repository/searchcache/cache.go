// Package searchcache persists serialized search responses in a
// tenant-namespaced key space with TTL.
package searchcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stafflink/staffdex/internal/db"
	"github.com/stafflink/staffdex/internal/domain/search/result"
)

// ErrMiss is returned when no cached response exists for a fingerprint.
var ErrMiss = errors.New("searchcache: miss")

// store is the consumer interface for the cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Cache implements usecase/search.Cache. All operations are best-effort
// from the caller's perspective: errors are returned for logging but must
// never fail a search.
type Cache struct {
	store     store
	keyPrefix string
	ttl       time.Duration
}

// New creates a search response cache.
func New(s store, keyPrefix string, ttl time.Duration) *Cache {
	return &Cache{store: s, keyPrefix: keyPrefix, ttl: ttl}
}

// keyFor builds the cache key. The tenant segment precedes the fingerprint,
// so invalidation patterns are confined to one tenant's partition.
func (c *Cache) keyFor(tenantID, fingerprint string) string {
	return fmt.Sprintf("%scache:%s:%s", c.keyPrefix, tenantID, fingerprint)
}

// Get returns the cached response for a fingerprint, or ErrMiss.
// An entry may disappear between searches at any time; callers must not
// assume presence.
func (c *Cache) Get(ctx context.Context, tenantID, fingerprint string) (result.Response, error) {
	data, err := c.store.Get(ctx, c.keyFor(tenantID, fingerprint))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return result.Response{}, ErrMiss
		}
		return result.Response{}, fmt.Errorf("cache get: %w", err)
	}

	var resp result.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return result.Response{}, fmt.Errorf("cache decode: %w", err)
	}
	return resp, nil
}

// Set stores a response under the query fingerprint with the configured TTL.
func (c *Cache) Set(ctx context.Context, tenantID, fingerprint string, resp result.Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.store.SetWithTTL(ctx, c.keyFor(tenantID, fingerprint), data, c.ttl); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// globEscaper neutralizes MATCH pattern metacharacters. Tenant IDs are
// validated upstream, but the key space must stay partitioned even for a
// caller that skips validation.
var globEscaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`?`, `\?`,
	`[`, `\[`,
	`]`, `\]`,
)

// InvalidateTenant removes every cached response for one tenant.
// Other tenants' entries are untouched: the scan pattern is anchored on the
// escaped tenant segment. Returns the number of evicted entries.
func (c *Cache) InvalidateTenant(ctx context.Context, tenantID string) (int, error) {
	pattern := fmt.Sprintf("%scache:%s:*", c.keyPrefix, globEscaper.Replace(tenantID))

	keys, err := c.store.Scan(ctx, pattern)
	if err != nil {
		return 0, fmt.Errorf("cache scan: %w", err)
	}

	evicted := 0
	for _, key := range keys {
		if err := c.store.Del(ctx, key); err != nil {
			return evicted, fmt.Errorf("cache del %s: %w", key, err)
		}
		evicted++
	}
	return evicted, nil
}
