package db

// MatchMode selects how search tokens are matched against TEXT fields.
type MatchMode string

// Supported match modes.
const (
	// MatchTokens is plain token matching scored by the index (BM25).
	MatchTokens MatchMode = "tokens"
	// MatchFuzzy wraps each token in %..% (Levenshtein expansion).
	MatchFuzzy MatchMode = "fuzzy"
	// MatchWildcard wraps each token in *..* (substring containment).
	MatchWildcard MatchMode = "wildcard"
)

// MatchSpec describes the free-text part of an FT query.
type MatchSpec struct {
	// Fields restricts matching to the named TEXT attributes.
	// Empty means the default field set of the index.
	Fields []string
	// Tokens are pre-sanitized query tokens; they are escaped before being
	// embedded in the query string.
	Tokens []string
	Mode   MatchMode
}

// FilterClauseType selects how a filter clause is rendered.
type FilterClauseType string

// Filter clause types.
const (
	// ClauseTag renders @field:{value} (exact tag match).
	ClauseTag FilterClauseType = "tag"
	// ClauseTextWildcard renders @field:(*value*) (substring on a TEXT field).
	ClauseTextWildcard FilterClauseType = "text_wildcard"
)

// FilterClause is one structured pre-filter applied ahead of text matching.
// All clauses are conjunctive.
type FilterClause struct {
	Field string
	Type  FilterClauseType
	Value string
}

// TextQuery describes one FT.SEARCH invocation.
type TextQuery struct {
	IndexName    string
	Match        MatchSpec
	Filters      []FilterClause
	Offset       int
	Limit        int
	WithScores   bool
	ReturnFields []string
}

// SearchEntry is one row of an FT.SEARCH reply.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// SearchResult is a parsed FT.SEARCH reply.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}
