package search

import (
	"sort"

	"github.com/stafflink/staffdex/internal/domain/search/candidate"
	"github.com/stafflink/staffdex/internal/domain/search/query"
	"github.com/stafflink/staffdex/internal/domain/search/result"
)

// merge folds per-strategy candidate lists into one deduplicated ranking.
//
// Each candidate's weighted rank is rawScore * weight(strategy). When an
// employee is matched by more than one strategy, the entry is replaced only
// if the new weighted rank is strictly greater, so the final rank is the
// maximum across strategies and the retained strategy/matchedFields are the
// ones that produced it. Ties sort by employee ID ascending, which makes
// the ordering deterministic for pagination and tests.
func merge(exact, fuzzy, partial []candidate.Candidate, w query.Weights) []result.Ranked {
	byID := make(map[string]result.Ranked)

	fold := func(candidates []candidate.Candidate, weight float64) {
		for _, c := range candidates {
			rank := c.RawScore * weight
			if existing, ok := byID[c.EmployeeID]; ok && existing.WeightedRank >= rank {
				continue
			}
			byID[c.EmployeeID] = result.FromCandidate(c, rank)
		}
	}

	fold(exact, w.Exact)
	fold(fuzzy, w.Fuzzy)
	fold(partial, w.Partial)

	ranked := make([]result.Ranked, 0, len(byID))
	for _, r := range byID {
		ranked = append(ranked, r)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].WeightedRank != ranked[j].WeightedRank {
			return ranked[i].WeightedRank > ranked[j].WeightedRank
		}
		return ranked[i].EmployeeID < ranked[j].EmployeeID
	})

	return ranked
}
