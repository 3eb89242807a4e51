package search

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/stafflink/staffdex/internal/domain/search/query"
	"github.com/stafflink/staffdex/internal/logger"
)

// minSuggestQueryLength is the minimum sanitized query length for which
// "did you mean" terms are derived.
const minSuggestQueryLength = 2

// suggestions derives near-miss terms for the response. Best-effort
// decoration: any failure yields an empty list, never an error.
func (s *Service) suggestions(ctx context.Context, tenantID string, q *query.Query) []string {
	if len([]rune(q.Text())) < minSuggestQueryLength {
		return nil
	}

	terms, err := s.repo.SuggestTerms(ctx, tenantID, q)
	if err != nil {
		logger.FromContext(ctx).Warn("suggestion lookup failed",
			zap.String("tenant", tenantID), zap.Error(err))
		return nil
	}
	if len(terms) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(terms))
	unique := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}

	sort.Strings(unique)
	if len(unique) > s.maxSuggestions {
		unique = unique[:s.maxSuggestions]
	}
	return unique
}
