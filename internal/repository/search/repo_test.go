package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stafflink/staffdex/internal/db"
	"github.com/stafflink/staffdex/internal/domain/search/candidate"
	"github.com/stafflink/staffdex/internal/domain/search/query"
	repemp "github.com/stafflink/staffdex/internal/repository/employee"
)

// --- Mocks ---

type mockStore struct {
	result  *db.SearchResult
	err     error
	queries []*db.TextQuery
}

func (m *mockStore) SearchText(_ context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	m.queries = append(m.queries, q)
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return &db.SearchResult{}, nil
	}
	return m.result, nil
}

func (m *mockStore) last(t *testing.T) *db.TextQuery {
	t.Helper()
	if len(m.queries) == 0 {
		t.Fatal("no query captured")
	}
	return m.queries[len(m.queries)-1]
}

func entry(key string, score float64, fields map[string]string) db.SearchEntry {
	return db.SearchEntry{Key: key, Score: score, Fields: fields}
}

func smithFields() map[string]string {
	return map[string]string{
		repemp.FieldFirstName:  "John",
		repemp.FieldLastName:   "Smith",
		repemp.FieldTitle:      "Software Engineer",
		repemp.FieldDepartment: "Engineering",
		repemp.FieldEmail:      "john.smith@acme.com",
		repemp.FieldSkills:     "go,redis",
		repemp.FieldActive:     "true",
	}
}

func testQuery(t *testing.T, text string, filters query.Filters, opts query.Options) *query.Query {
	t.Helper()
	q, err := query.New(text, filters, 1, 20, opts)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	return &q
}

func hasClause(clauses []db.FilterClause, field string, ct db.FilterClauseType, value string) bool {
	for _, c := range clauses {
		if c.Field == field && c.Type == ct && c.Value == value {
			return true
		}
	}
	return false
}

// --- Tests ---

func TestSearchExact(t *testing.T) {
	store := &mockStore{result: &db.SearchResult{
		Total:   1,
		Entries: []db.SearchEntry{entry("app:emp:acme:e1", 2.5, smithFields())},
	}}
	repo := New(store, "app:")

	cands, err := repo.SearchExact(context.Background(), "acme", testQuery(t, "john smith", query.Filters{}, query.Options{}))
	if err != nil {
		t.Fatalf("SearchExact: %v", err)
	}

	q := store.last(t)
	if q.IndexName != "app:emp:idx" {
		t.Errorf("IndexName = %q", q.IndexName)
	}
	if q.Match.Mode != db.MatchTokens {
		t.Errorf("Mode = %v, want MatchTokens", q.Match.Mode)
	}
	if !q.WithScores {
		t.Error("exact strategy needs index scores")
	}
	if !hasClause(q.Filters, repemp.FieldTenant, db.ClauseTag, "acme") {
		t.Error("missing tenant clause")
	}

	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	c := cands[0]
	if c.EmployeeID != "e1" {
		t.Errorf("EmployeeID = %q, want key suffix e1", c.EmployeeID)
	}
	if c.RawScore != 2.5 {
		t.Errorf("RawScore = %g, want index score", c.RawScore)
	}
	if c.Strategy != candidate.Exact {
		t.Errorf("Strategy = %q", c.Strategy)
	}
	if len(c.MatchedFields) == 0 {
		t.Error("expected matched fields for a name hit")
	}
}

func TestSearchExact_StoreError(t *testing.T) {
	store := &mockStore{err: errors.New("index gone")}
	repo := New(store, "app:")

	if _, err := repo.SearchExact(context.Background(), "acme", testQuery(t, "john", query.Filters{}, query.Options{})); err == nil {
		t.Fatal("expected error")
	}
}

func TestSearchFuzzy_FiltersByThreshold(t *testing.T) {
	store := &mockStore{result: &db.SearchResult{
		Total: 2,
		Entries: []db.SearchEntry{
			entry("app:emp:acme:e1", 0, smithFields()),
			entry("app:emp:acme:e2", 0, map[string]string{
				repemp.FieldFirstName: "Zelda",
				repemp.FieldLastName:  "Quux",
				repemp.FieldActive:    "true",
			}),
		},
	}}
	repo := New(store, "app:")

	cands, err := repo.SearchFuzzy(context.Background(), "acme", testQuery(t, "johns", query.Filters{}, query.Options{}))
	if err != nil {
		t.Fatalf("SearchFuzzy: %v", err)
	}

	if store.last(t).Match.Mode != db.MatchFuzzy {
		t.Errorf("Mode = %v, want MatchFuzzy", store.last(t).Match.Mode)
	}

	if len(cands) != 1 {
		t.Fatalf("expected only the near-miss hit, got %d", len(cands))
	}
	c := cands[0]
	if c.EmployeeID != "e1" {
		t.Errorf("EmployeeID = %q", c.EmployeeID)
	}
	if c.RawScore <= 0 || c.RawScore > 1 {
		t.Errorf("RawScore = %g, want similarity in (0,1]", c.RawScore)
	}
	if c.Strategy != candidate.Fuzzy {
		t.Errorf("Strategy = %q", c.Strategy)
	}
}

func TestSearchFuzzy_NameElongation(t *testing.T) {
	store := &mockStore{result: &db.SearchResult{
		Total: 2,
		Entries: []db.SearchEntry{
			entry("app:emp:acme:e1", 0, smithFields()),
			entry("app:emp:acme:e2", 0, map[string]string{
				repemp.FieldFirstName: "Jonathan",
				repemp.FieldLastName:  "Doe",
				repemp.FieldActive:    "true",
			}),
		},
	}}
	repo := New(store, "app:")

	cands, err := repo.SearchFuzzy(context.Background(), "acme", testQuery(t, "john", query.Filters{}, query.Options{}))
	if err != nil {
		t.Fatalf("SearchFuzzy: %v", err)
	}

	if len(cands) != 2 {
		t.Fatalf("expected the elongated name to clear the floor, got %d candidates", len(cands))
	}

	scores := map[string]float64{}
	for _, c := range cands {
		scores[c.EmployeeID] = c.RawScore
	}
	if scores["e2"] < 0.3 {
		t.Errorf("Jonathan scored %g, below the default floor", scores["e2"])
	}
	if scores["e2"] >= scores["e1"] {
		t.Errorf("elongated name (%g) must rank below the exact name (%g)", scores["e2"], scores["e1"])
	}
}

func TestSearchPartial_ContainmentRecheck(t *testing.T) {
	store := &mockStore{result: &db.SearchResult{
		Total: 2,
		Entries: []db.SearchEntry{
			entry("app:emp:acme:e1", 0, smithFields()),
			// Skills-only hit: the blob matched but none of the partial
			// strategy's fields contain the token.
			entry("app:emp:acme:e2", 0, map[string]string{
				repemp.FieldFirstName: "Alice",
				repemp.FieldLastName:  "Brown",
				repemp.FieldSkills:    "smithy",
				repemp.FieldActive:    "true",
			}),
		},
	}}
	repo := New(store, "app:")

	cands, err := repo.SearchPartial(context.Background(), "acme", testQuery(t, "smith", query.Filters{}, query.Options{}))
	if err != nil {
		t.Fatalf("SearchPartial: %v", err)
	}

	if store.last(t).Match.Mode != db.MatchWildcard {
		t.Errorf("Mode = %v, want MatchWildcard", store.last(t).Match.Mode)
	}

	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate after re-check, got %d", len(cands))
	}
	c := cands[0]
	if c.EmployeeID != "e1" {
		t.Errorf("EmployeeID = %q", c.EmployeeID)
	}
	if c.RawScore != PartialScore {
		t.Errorf("RawScore = %g, want fixed %g", c.RawScore, PartialScore)
	}
}

func TestFilterClauses(t *testing.T) {
	active := false
	q := testQuery(t, "john",
		query.NewFilters("Engineering", "engineer", []string{"Go", "redis"}, &active),
		query.Options{})

	clauses := filterClauses("acme", q)

	if !hasClause(clauses, repemp.FieldTenant, db.ClauseTag, "acme") {
		t.Error("missing tenant clause")
	}
	if !hasClause(clauses, repemp.FieldDepartment, db.ClauseTag, "Engineering") {
		t.Error("missing department clause")
	}
	if !hasClause(clauses, repemp.FieldTitle, db.ClauseTextWildcard, "engineer") {
		t.Error("missing title clause")
	}
	if !hasClause(clauses, repemp.FieldSkills, db.ClauseTag, "go") {
		t.Error("missing canonicalized skill clause")
	}
	if !hasClause(clauses, repemp.FieldActive, db.ClauseTag, "false") {
		t.Error("explicit active filter must win over the implicit default")
	}
}

func TestFilterClauses_ActiveDefault(t *testing.T) {
	q := testQuery(t, "john", query.Filters{}, query.Options{})
	if !hasClause(filterClauses("acme", q), repemp.FieldActive, db.ClauseTag, "true") {
		t.Error("default search must restrict to active employees")
	}

	q = testQuery(t, "john", query.Filters{}, query.Options{IncludeInactive: true})
	for _, c := range filterClauses("acme", q) {
		if c.Field == repemp.FieldActive {
			t.Error("IncludeInactive must drop the active clause")
		}
	}
}

func TestSuggestTerms(t *testing.T) {
	store := &mockStore{result: &db.SearchResult{
		Total: 1,
		Entries: []db.SearchEntry{
			entry("app:emp:acme:e1", 0, map[string]string{
				repemp.FieldFirstName: "Johnny",
				repemp.FieldLastName:  "Walker",
				repemp.FieldActive:    "true",
			}),
		},
	}}
	repo := New(store, "app:")

	terms, err := repo.SuggestTerms(context.Background(), "acme", testQuery(t, "johny", query.Filters{}, query.Options{}))
	if err != nil {
		t.Fatalf("SuggestTerms: %v", err)
	}

	found := false
	for _, term := range terms {
		if term == "johnny" {
			found = true
		}
		if term == "johny" {
			t.Error("the query itself must never be suggested")
		}
		if term == "walker" {
			t.Error("dissimilar token suggested")
		}
	}
	if !found {
		t.Errorf("expected near-miss johnny in %v", terms)
	}
}
