// Package candidate defines raw-scored matches produced by one search strategy.
package candidate

// Strategy identifies one independent matching algorithm.
type Strategy string

// Matching strategies.
const (
	Exact   Strategy = "exact"
	Fuzzy   Strategy = "fuzzy"
	Partial Strategy = "partial"
)

// IsValid reports whether s is a known strategy.
func (s Strategy) IsValid() bool {
	switch s {
	case Exact, Fuzzy, Partial:
		return true
	}
	return false
}

// Candidate is one employee matched by a single strategy, carrying the
// strategy-local raw score. Raw scores are comparable only within one
// strategy; the merger converts them into weighted ranks.
type Candidate struct {
	EmployeeID string   `json:"employee_id"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Title      string   `json:"title,omitempty"`
	Department string   `json:"department,omitempty"`
	Email      string   `json:"email"`
	PhotoURL   string   `json:"photo_url,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Active     bool     `json:"active"`

	RawScore      float64  `json:"raw_score"`
	Strategy      Strategy `json:"strategy"`
	MatchedFields []string `json:"matched_fields,omitempty"`
}
