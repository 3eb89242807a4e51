package staffdex

import (
	"context"
	"fmt"

	"github.com/stafflink/staffdex/internal/domain/search/query"
	"github.com/stafflink/staffdex/internal/domain/search/result"
	searchuc "github.com/stafflink/staffdex/internal/usecase/search"
)

// SearchService executes ranked searches for a single tenant.
type SearchService struct {
	tenant string
	svc    *searchuc.Service
}

// SearchOptions configures a search query.
type SearchOptions struct {
	Department      string
	Title           string
	Skills          []string
	Active          *bool
	Page            int
	PageSize        int
	FuzzyThreshold  float64
	IncludeInactive bool
}

// SearchResult is one ranked directory entry.
type SearchResult struct {
	EmployeeID    string
	FirstName     string
	LastName      string
	Title         string
	Department    string
	Email         string
	PhotoURL      string
	Skills        []string
	Active        bool
	Rank          float64
	Strategy      string
	MatchedFields []string
}

// SearchPage is one page of ranked results plus response metadata.
type SearchPage struct {
	Results         []SearchResult
	Total           int
	Page            int
	PageSize        int
	HasMore         bool
	Suggestions     []string
	ExecutionTimeMs int64
	FromCache       bool
}

// Query executes a ranked search over the tenant's directory.
func (s *SearchService) Query(
	ctx context.Context, text string, opts *SearchOptions,
) (SearchPage, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}

	filters := query.NewFilters(opts.Department, opts.Title, opts.Skills, opts.Active)
	q, err := query.New(text, filters, opts.Page, opts.PageSize, query.Options{
		FuzzyThreshold:  opts.FuzzyThreshold,
		IncludeInactive: opts.IncludeInactive,
	})
	if err != nil {
		return SearchPage{}, fmt.Errorf("query: %w", err)
	}

	resp, err := s.svc.Search(ctx, s.tenant, &q)
	if err != nil {
		return SearchPage{}, fmt.Errorf("query: %w", err)
	}
	return fromResponse(resp), nil
}

func fromResponse(resp result.Response) SearchPage {
	results := make([]SearchResult, len(resp.Results))
	for i, r := range resp.Results {
		results[i] = SearchResult{
			EmployeeID:    r.EmployeeID,
			FirstName:     r.FirstName,
			LastName:      r.LastName,
			Title:         r.Title,
			Department:    r.Department,
			Email:         r.Email,
			PhotoURL:      r.PhotoURL,
			Skills:        r.Skills,
			Active:        r.Active,
			Rank:          r.WeightedRank,
			Strategy:      string(r.Strategy),
			MatchedFields: r.MatchedFields,
		}
	}
	return SearchPage{
		Results:         results,
		Total:           resp.Total,
		Page:            resp.Page,
		PageSize:        resp.PageSize,
		HasMore:         resp.HasMore,
		Suggestions:     resp.Suggestions,
		ExecutionTimeMs: resp.ExecutionTimeMs,
		FromCache:       resp.FromCache,
	}
}
