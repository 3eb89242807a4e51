// Package search orchestrates the ranked multi-strategy employee search:
// cache lookup, concurrent strategy fan-out, merge, pagination, suggestions.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/stafflink/staffdex/internal/domain"
	"github.com/stafflink/staffdex/internal/domain/search/candidate"
	"github.com/stafflink/staffdex/internal/domain/search/query"
	"github.com/stafflink/staffdex/internal/domain/search/result"
	"github.com/stafflink/staffdex/internal/logger"
	"github.com/stafflink/staffdex/internal/metrics"
	"github.com/stafflink/staffdex/internal/repository/searchcache"
)

// Defaults for per-strategy execution.
const (
	DefaultStrategyTimeout = 2 * time.Second
	DefaultMaxSuggestions  = 5
)

// Service executes ranked multi-strategy searches. Results are best-effort:
// only validation-class errors reach the caller; strategy, cache, and
// suggestion failures degrade the response instead of failing it.
type Service struct {
	repo            Repository
	cache           Cache
	strategyTimeout time.Duration
	maxSuggestions  int
	flight          singleflight.Group
}

// New creates a search service.
func New(repo Repository, cache Cache) *Service {
	return &Service{
		repo:            repo,
		cache:           cache,
		strategyTimeout: DefaultStrategyTimeout,
		maxSuggestions:  DefaultMaxSuggestions,
	}
}

// WithTuning overrides the per-strategy timeout and suggestion cap.
func (s *Service) WithTuning(strategyTimeout time.Duration, maxSuggestions int) *Service {
	if strategyTimeout > 0 {
		s.strategyTimeout = strategyTimeout
	}
	if maxSuggestions > 0 {
		s.maxSuggestions = maxSuggestions
	}
	return s
}

// Search runs one search request for a tenant.
func (s *Service) Search(ctx context.Context, tenantID string, q *query.Query) (result.Response, error) {
	if err := domain.ValidateTenantID(tenantID); err != nil {
		return result.Response{}, err
	}

	start := time.Now()
	defer func() {
		metrics.SearchDuration.Observe(time.Since(start).Seconds())
	}()

	// A query that sanitized to nothing short-circuits before any store access.
	if q.IsEmpty() {
		metrics.SearchCacheTotal.WithLabelValues("bypass").Inc()
		return result.Empty(q.Page(), q.PageSize()), nil
	}

	log := logger.FromContext(ctx)
	fingerprint := q.Fingerprint()

	cached, err := s.cache.Get(ctx, tenantID, fingerprint)
	switch {
	case err == nil:
		metrics.SearchCacheTotal.WithLabelValues("hit").Inc()
		cached.FromCache = true
		cached.ExecutionTimeMs = time.Since(start).Milliseconds()
		return cached, nil
	case errors.Is(err, searchcache.ErrMiss):
		metrics.SearchCacheTotal.WithLabelValues("miss").Inc()
	default:
		// The cache is a performance optimization, never a correctness
		// dependency: proceed as if it were absent.
		metrics.SearchCacheTotal.WithLabelValues("miss").Inc()
		log.Warn("search cache read failed", zap.String("tenant", tenantID), zap.Error(err))
	}

	// Collapse concurrent identical misses into one computation per tenant
	// and fingerprint.
	v, err, _ := s.flight.Do(tenantID+":"+fingerprint, func() (any, error) {
		return s.compute(ctx, tenantID, q, fingerprint), nil
	})
	if err != nil {
		return result.Response{}, fmt.Errorf("search: %w", err)
	}

	resp := v.(result.Response)
	resp.FromCache = false
	resp.ExecutionTimeMs = time.Since(start).Milliseconds()
	return resp, nil
}

// compute runs the strategy fan-out, merges, paginates, decorates with
// suggestions, and writes the cache entry.
func (s *Service) compute(
	ctx context.Context, tenantID string, q *query.Query, fingerprint string,
) result.Response {
	log := logger.FromContext(ctx)

	outcomes := s.runStrategies(ctx, tenantID, q)

	ranked := merge(
		outcomes[candidate.Exact],
		outcomes[candidate.Fuzzy],
		outcomes[candidate.Partial],
		q.Weights(),
	)

	resp := paginate(ranked, q)
	resp.Suggestions = s.suggestions(ctx, tenantID, q)

	if err := s.cache.Set(ctx, tenantID, fingerprint, resp); err != nil {
		log.Warn("search cache write failed", zap.String("tenant", tenantID), zap.Error(err))
	}

	return resp
}

// outcome is the explicit result of one strategy execution. The fail-soft
// contract lives here: an error never escapes the fan-in, it is folded into
// zero candidates.
type outcome struct {
	strategy   candidate.Strategy
	candidates []candidate.Candidate
	err        error
}

// runStrategies executes the three strategies concurrently, each bounded by
// the per-strategy timeout. A slow or failed strategy does not block the
// other two from contributing.
func (s *Service) runStrategies(
	ctx context.Context, tenantID string, q *query.Query,
) map[candidate.Strategy][]candidate.Candidate {
	log := logger.FromContext(ctx)

	type executor func(context.Context, string, *query.Query) ([]candidate.Candidate, error)
	executors := map[candidate.Strategy]executor{
		candidate.Exact:   s.repo.SearchExact,
		candidate.Fuzzy:   s.repo.SearchFuzzy,
		candidate.Partial: s.repo.SearchPartial,
	}

	results := make(chan outcome, len(executors))
	for strategy, run := range executors {
		go func() {
			cctx, cancel := context.WithTimeout(ctx, s.strategyTimeout)
			defer cancel()

			candidates, err := run(cctx, tenantID, q)
			results <- outcome{strategy: strategy, candidates: candidates, err: err}
		}()
	}

	folded := make(map[candidate.Strategy][]candidate.Candidate, len(executors))
	for range executors {
		o := <-results
		if o.err != nil {
			metrics.SearchStrategyFailures.WithLabelValues(string(o.strategy)).Inc()
			log.Warn("strategy failed, contributing zero candidates",
				zap.String("strategy", string(o.strategy)),
				zap.String("tenant", tenantID),
				zap.Error(o.err),
			)
			continue
		}
		folded[o.strategy] = o.candidates
	}
	return folded
}
