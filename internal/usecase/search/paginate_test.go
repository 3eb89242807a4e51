package search

import (
	"testing"

	"github.com/stafflink/staffdex/internal/domain/search/query"
	"github.com/stafflink/staffdex/internal/domain/search/result"
)

func rankedList(n int) []result.Ranked {
	out := make([]result.Ranked, n)
	for i := range out {
		out[i] = result.Ranked{EmployeeID: string(rune('a' + i))}
	}
	return out
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		page, size  int
		wantLen     int
		wantHasMore bool
	}{
		{"first of three pages", 5, 1, 2, 2, true},
		{"middle page", 5, 2, 2, 2, true},
		{"short last page", 5, 3, 2, 1, false},
		{"page beyond end", 5, 9, 2, 0, false},
		{"exact fit", 4, 2, 2, 2, false},
		{"no results", 0, 1, 20, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := query.New("x", query.Filters{}, tt.page, tt.size, query.Options{})
			if err != nil {
				t.Fatalf("query.New: %v", err)
			}

			resp := paginate(rankedList(tt.total), &q)

			if len(resp.Results) != tt.wantLen {
				t.Errorf("len(Results) = %d, want %d", len(resp.Results), tt.wantLen)
			}
			if resp.Total != tt.total {
				t.Errorf("Total = %d, want %d", resp.Total, tt.total)
			}
			if resp.HasMore != tt.wantHasMore {
				t.Errorf("HasMore = %v, want %v", resp.HasMore, tt.wantHasMore)
			}
			if resp.Results == nil {
				t.Error("Results must never be nil")
			}
			if resp.Page != tt.page || resp.PageSize != tt.size {
				t.Errorf("page metadata = %d/%d, want %d/%d",
					resp.Page, resp.PageSize, tt.page, tt.size)
			}
		})
	}
}
