// Package staffdex is an embeddable employee directory with ranked
// multi-strategy search. The Client wires the same services the HTTP
// server uses, minus the transport.
package staffdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stafflink/staffdex/internal/db"
	dbRedis "github.com/stafflink/staffdex/internal/db/redis"
	employeerepo "github.com/stafflink/staffdex/internal/repository/employee"
	searchrepo "github.com/stafflink/staffdex/internal/repository/search"
	"github.com/stafflink/staffdex/internal/repository/searchcache"
	employeeuc "github.com/stafflink/staffdex/internal/usecase/employee"
	searchuc "github.com/stafflink/staffdex/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "staffdex:"
	defaultCacheTTL         = 5 * time.Minute
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs           []string
	password        string
	keyPrefix       string
	cacheTTL        time.Duration
	strategyTimeout time.Duration
	maxSuggestions  int
}

// WithRedis sets the Redis addresses to connect to.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
	}
}

// WithPassword sets the database password.
func WithPassword(password string) Option {
	return func(c *clientConfig) {
		c.password = password
	}
}

// WithKeyPrefix overrides the key namespace all data lives under.
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithCacheTTL overrides how long search responses stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.cacheTTL = ttl
	}
}

// WithStrategyTimeout bounds each search strategy's execution time.
func WithStrategyTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.strategyTimeout = d
	}
}

// WithMaxSuggestions caps the "did you mean" list length.
func WithMaxSuggestions(n int) Option {
	return func(c *clientConfig) {
		c.maxSuggestions = n
	}
}

// Client is the staffdex SDK entry point.
type Client struct {
	store     db.Store
	empRepo   *employeerepo.Repo
	cache     *searchcache.Cache
	searchSvc *searchuc.Service
	empSvc    *employeeuc.Service
}

// New creates a staffdex Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix: defaultKeyPrefix,
		cacheTTL:  defaultCacheTTL,
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("staffdex: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("staffdex: create redis store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("staffdex: database not ready: %w", err)
	}

	return wireClient(ctx, store, cfg)
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig) (*Client, error) {
	empRepo := employeerepo.New(store, cfg.keyPrefix)
	searchRepo := searchrepo.New(store, cfg.keyPrefix)
	cache := searchcache.New(store, cfg.keyPrefix, cfg.cacheTTL)

	if err := empRepo.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("staffdex: ensure search index: %w", err)
	}

	searchSvc := searchuc.New(searchRepo, cache).
		WithTuning(cfg.strategyTimeout, cfg.maxSuggestions)
	empSvc := employeeuc.New(empRepo, cache)

	return &Client{
		store:     store,
		empRepo:   empRepo,
		cache:     cache,
		searchSvc: searchSvc,
		empSvc:    empSvc,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// InvalidateTenant drops all cached search responses for a tenant and
// returns the number of evicted entries. Employee mutations do this
// automatically; use it after out-of-band data changes.
func (c *Client) InvalidateTenant(ctx context.Context, tenant string) (int, error) {
	evicted, err := c.cache.InvalidateTenant(ctx, tenant)
	if err != nil {
		return 0, fmt.Errorf("invalidate tenant: %w", err)
	}
	return evicted, nil
}

// Employees returns the directory service for a given tenant.
func (c *Client) Employees(tenant string) *EmployeeService {
	return &EmployeeService{tenant: tenant, svc: c.empSvc}
}

// Search returns the search service for a given tenant.
func (c *Client) Search(tenant string) *SearchService {
	return &SearchService{tenant: tenant, svc: c.searchSvc}
}
