// Package result defines the ranked search result and response envelope.
package result

import "github.com/stafflink/staffdex/internal/domain/search/candidate"

// Ranked is one employee in the final merged ranking. Exactly one Ranked
// exists per employee ID; WeightedRank is the maximum weighted score the
// employee achieved across all strategies, and Strategy/MatchedFields
// correspond to that maximum.
type Ranked struct {
	EmployeeID string   `json:"employee_id"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Title      string   `json:"title,omitempty"`
	Department string   `json:"department,omitempty"`
	Email      string   `json:"email"`
	PhotoURL   string   `json:"photo_url,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Active     bool     `json:"active"`

	WeightedRank  float64            `json:"weighted_rank"`
	Strategy      candidate.Strategy `json:"strategy"`
	MatchedFields []string           `json:"matched_fields,omitempty"`
}

// FromCandidate builds a Ranked entry from a strategy candidate.
func FromCandidate(c candidate.Candidate, weightedRank float64) Ranked {
	return Ranked{
		EmployeeID:    c.EmployeeID,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Title:         c.Title,
		Department:    c.Department,
		Email:         c.Email,
		PhotoURL:      c.PhotoURL,
		Skills:        c.Skills,
		Active:        c.Active,
		WeightedRank:  weightedRank,
		Strategy:      c.Strategy,
		MatchedFields: c.MatchedFields,
	}
}

// Response is the complete search response envelope. It is the unit of
// caching: the serialized form round-trips through the cache store, with
// FromCache and ExecutionTimeMs overwritten per delivery.
type Response struct {
	Results         []Ranked `json:"results"`
	Total           int      `json:"total"`
	Page            int      `json:"page"`
	PageSize        int      `json:"page_size"`
	HasMore         bool     `json:"has_more"`
	Query           string   `json:"query"`
	Suggestions     []string `json:"suggestions,omitempty"`
	ExecutionTimeMs int64    `json:"execution_time_ms"`
	FromCache       bool     `json:"from_cache"`
}

// Empty returns the response for a query that sanitized to nothing.
func Empty(page, pageSize int) Response {
	return Response{
		Results:  []Ranked{},
		Page:     page,
		PageSize: pageSize,
	}
}
