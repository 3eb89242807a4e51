// Package search executes the exact, fuzzy, and partial matching strategies
// against the employee FT index.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/stafflink/staffdex/internal/db"
	"github.com/stafflink/staffdex/internal/domain/search/candidate"
	"github.com/stafflink/staffdex/internal/domain/search/query"
	repemp "github.com/stafflink/staffdex/internal/repository/employee"
)

// PartialScore is the fixed raw score for substring matches: containment
// carries no intrinsic ranking signal.
const PartialScore = 0.5

// fuzzyFields are the attributes the fuzzy strategy (and the suggestion
// generator) scores against.
var fuzzyFields = []string{repemp.FieldFirstName, repemp.FieldLastName, repemp.FieldTitle}

// partialFields are the attributes the partial strategy checks for
// substring containment.
var partialFields = []string{
	repemp.FieldFirstName, repemp.FieldLastName, repemp.FieldEmail,
	repemp.FieldTitle, repemp.FieldDepartment,
}

// store is the consumer interface for strategy queries (ISP).
type store interface {
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a search repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

func (r *Repo) indexName() string {
	return r.keyPrefix + "emp:idx"
}

func (r *Repo) extractID(tenantID, key string) string {
	return strings.TrimPrefix(key, fmt.Sprintf("%semp:%s:", r.keyPrefix, tenantID))
}

// filterClauses builds the structured pre-filter shared by all three
// strategies. Keeping this in one place guarantees a filter can never apply
// inconsistently across strategies.
func filterClauses(tenantID string, q *query.Query) []db.FilterClause {
	clauses := []db.FilterClause{
		{Field: repemp.FieldTenant, Type: db.ClauseTag, Value: tenantID},
	}

	f := q.Filters()
	if f.Department() != "" {
		clauses = append(clauses, db.FilterClause{
			Field: repemp.FieldDepartment, Type: db.ClauseTag, Value: f.Department(),
		})
	}
	if f.Title() != "" {
		clauses = append(clauses, db.FilterClause{
			Field: repemp.FieldTitle, Type: db.ClauseTextWildcard, Value: f.Title(),
		})
	}
	for _, skill := range f.Skills() {
		clauses = append(clauses, db.FilterClause{
			Field: repemp.FieldSkills, Type: db.ClauseTag, Value: skill,
		})
	}

	switch {
	case f.Active() != nil:
		val := "false"
		if *f.Active() {
			val = "true"
		}
		clauses = append(clauses, db.FilterClause{
			Field: repemp.FieldActive, Type: db.ClauseTag, Value: val,
		})
	case !q.IncludeInactive():
		clauses = append(clauses, db.FilterClause{
			Field: repemp.FieldActive, Type: db.ClauseTag, Value: "true",
		})
	}

	return clauses
}

// SearchExact runs indexed token matching over the denormalized search blob.
// The raw score is the index's native relevance score: opaque, but higher is
// a better match within this strategy.
func (r *Repo) SearchExact(
	ctx context.Context, tenantID string, q *query.Query,
) ([]candidate.Candidate, error) {
	sr, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName: r.indexName(),
		Match: db.MatchSpec{
			Fields: []string{repemp.FieldSearch},
			Tokens: strings.Fields(q.Text()),
			Mode:   db.MatchTokens,
		},
		Filters:      filterClauses(tenantID, q),
		Limit:        q.FetchLimit(),
		WithScores:   true,
		ReturnFields: repemp.ReturnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("exact search: %w", err)
	}

	out := make([]candidate.Candidate, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		c := r.toCandidate(tenantID, entry, candidate.Exact)
		c.RawScore = entry.Score
		c.MatchedFields = containmentFields(entry.Fields, q.Text(), allDisplayFields)
		out = append(out, c)
	}
	return out, nil
}

// SearchFuzzy runs Levenshtein-expanded matching widened by stem prefixes,
// then scores each hit by Jaro-Winkler similarity against first name, last
// name, and title. Hits below the query's similarity floor are excluded.
func (r *Repo) SearchFuzzy(
	ctx context.Context, tenantID string, q *query.Query,
) ([]candidate.Candidate, error) {
	sr, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName: r.indexName(),
		Match: db.MatchSpec{
			Fields: fuzzyFields,
			Tokens: strings.Fields(q.Text()),
			Mode:   db.MatchFuzzy,
		},
		Filters:      filterClauses(tenantID, q),
		Limit:        q.FetchLimit(),
		ReturnFields: repemp.ReturnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("fuzzy search: %w", err)
	}

	floor := q.FuzzyThreshold()
	out := make([]candidate.Candidate, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		best := 0.0
		var matched []string
		for _, field := range fuzzyFields {
			sim := similarity(q.Text(), entry.Fields[field])
			if sim >= floor {
				matched = append(matched, field)
			}
			if sim > best {
				best = sim
			}
		}
		if best < floor {
			continue
		}

		c := r.toCandidate(tenantID, entry, candidate.Fuzzy)
		c.RawScore = best
		c.MatchedFields = matched
		out = append(out, c)
	}
	return out, nil
}

// SearchPartial runs case-insensitive substring containment over name,
// email, title, and department. Every hit gets the same fixed raw score.
func (r *Repo) SearchPartial(
	ctx context.Context, tenantID string, q *query.Query,
) ([]candidate.Candidate, error) {
	sr, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName: r.indexName(),
		Match: db.MatchSpec{
			Fields: []string{repemp.FieldSearch},
			Tokens: strings.Fields(q.Text()),
			Mode:   db.MatchWildcard,
		},
		Filters:      filterClauses(tenantID, q),
		Limit:        q.FetchLimit(),
		ReturnFields: repemp.ReturnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("partial search: %w", err)
	}

	out := make([]candidate.Candidate, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		// The blob also covers skills; re-check the strategy's own field set
		// so a skills-only hit does not slip through.
		matched := containmentFields(entry.Fields, q.Text(), partialFields)
		if len(matched) == 0 {
			continue
		}

		c := r.toCandidate(tenantID, entry, candidate.Partial)
		c.RawScore = PartialScore
		c.MatchedFields = matched
		out = append(out, c)
	}
	return out, nil
}

// SuggestTerms collects near-miss terms from the fuzzy strategy's fields:
// tokens whose similarity to the query clears the floor without being the
// query itself. The caller deduplicates, sorts, and caps the list.
func (r *Repo) SuggestTerms(
	ctx context.Context, tenantID string, q *query.Query,
) ([]string, error) {
	sr, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName: r.indexName(),
		Match: db.MatchSpec{
			Fields: fuzzyFields,
			Tokens: strings.Fields(q.Text()),
			Mode:   db.MatchFuzzy,
		},
		Filters:      filterClauses(tenantID, q),
		Limit:        q.FetchLimit(),
		ReturnFields: repemp.ReturnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("suggest terms: %w", err)
	}

	lowerQuery := strings.ToLower(q.Text())
	floor := q.FuzzyThreshold()

	var terms []string
	for _, entry := range sr.Entries {
		for _, field := range fuzzyFields {
			for _, term := range strings.Fields(strings.ToLower(entry.Fields[field])) {
				if term == lowerQuery {
					continue
				}
				if similarity(lowerQuery, term) > floor {
					terms = append(terms, term)
				}
			}
		}
	}
	return terms, nil
}

// allDisplayFields is the field set the exact strategy reports matches on.
var allDisplayFields = []string{
	repemp.FieldFirstName, repemp.FieldLastName, repemp.FieldTitle,
	repemp.FieldDepartment, repemp.FieldEmail, repemp.FieldSkills,
}

// containmentFields reports which fields contain any query token,
// case-insensitively.
func containmentFields(fields map[string]string, text string, names []string) []string {
	tokens := strings.Fields(strings.ToLower(text))
	var matched []string
	for _, name := range names {
		value := strings.ToLower(fields[name])
		if value == "" {
			continue
		}
		for _, tok := range tokens {
			if strings.Contains(value, tok) {
				matched = append(matched, name)
				break
			}
		}
	}
	return matched
}

func (r *Repo) toCandidate(
	tenantID string, entry db.SearchEntry, strategy candidate.Strategy,
) candidate.Candidate {
	var skills []string
	if raw := entry.Fields[repemp.FieldSkills]; raw != "" {
		skills = strings.Split(raw, ",")
	}
	return candidate.Candidate{
		EmployeeID: r.extractID(tenantID, entry.Key),
		FirstName:  entry.Fields[repemp.FieldFirstName],
		LastName:   entry.Fields[repemp.FieldLastName],
		Title:      entry.Fields[repemp.FieldTitle],
		Department: entry.Fields[repemp.FieldDepartment],
		Email:      entry.Fields[repemp.FieldEmail],
		PhotoURL:   entry.Fields[repemp.FieldPhotoURL],
		Skills:     skills,
		Active:     entry.Fields[repemp.FieldActive] == "true",
		Strategy:   strategy,
	}
}
