package search

import (
	"github.com/stafflink/staffdex/internal/domain/search/query"
	"github.com/stafflink/staffdex/internal/domain/search/result"
)

// paginate slices the ranked list into the requested page and assembles the
// response envelope. A page beyond the end yields an empty result slice
// with the correct total, never an error.
func paginate(ranked []result.Ranked, q *query.Query) result.Response {
	total := len(ranked)
	start := q.Offset()
	end := start + q.PageSize()

	page := []result.Ranked{}
	if start < total {
		if end > total {
			end = total
		}
		page = ranked[start:end]
	}

	return result.Response{
		Results:  page,
		Total:    total,
		Page:     q.Page(),
		PageSize: q.PageSize(),
		HasMore:  q.Offset()+q.PageSize() < total,
		Query:    q.Text(),
	}
}
