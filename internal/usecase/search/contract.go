package search

import (
	"context"

	"github.com/stafflink/staffdex/internal/domain/search/candidate"
	"github.com/stafflink/staffdex/internal/domain/search/query"
	"github.com/stafflink/staffdex/internal/domain/search/result"
)

// Repository defines the storage contract for the matching strategies.
// Every operation is tenant-scoped through the explicit tenantID parameter.
type Repository interface {
	SearchExact(ctx context.Context, tenantID string, q *query.Query) ([]candidate.Candidate, error)
	SearchFuzzy(ctx context.Context, tenantID string, q *query.Query) ([]candidate.Candidate, error)
	SearchPartial(ctx context.Context, tenantID string, q *query.Query) ([]candidate.Candidate, error)
	SuggestTerms(ctx context.Context, tenantID string, q *query.Query) ([]string, error)
}

// Cache defines the tenant-namespaced response cache contract.
// Implementations report errors; callers treat every error as a miss.
type Cache interface {
	Get(ctx context.Context, tenantID, fingerprint string) (result.Response, error)
	Set(ctx context.Context, tenantID, fingerprint string, resp result.Response) error
	InvalidateTenant(ctx context.Context, tenantID string) (int, error)
}
