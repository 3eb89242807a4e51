package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/stafflink/staffdex/internal/db"
)

// SearchText runs a text search via FT.SEARCH.
func (s *Store) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if len(q.Match.Tokens) == 0 {
		return nil, fmt.Errorf("at least one search token is required")
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	queryStr := buildQuery(q.Filters, &q.Match)

	args := []string{q.IndexName, queryStr}

	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}

	if q.WithScores {
		args = append(args, "WITHSCORES")
	}

	args = append(args,
		"LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(q.Limit),
		"DIALECT", "2",
	)

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	if q.WithScores {
		return parseScoredResult(raw)
	}
	return parsePlainResult(raw)
}

// SearchList performs filter-only paginated retrieval via FT.SEARCH.
func (s *Store) SearchList(
	ctx context.Context, index string, filters []db.FilterClause, offset, limit int,
) (*db.SearchResult, error) {
	queryStr := buildQuery(filters, nil)

	args := []string{
		index, queryStr,
		"LIMIT", strconv.Itoa(offset), strconv.Itoa(limit),
		"DIALECT", "2",
	}

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return parsePlainResult(raw)
}

// SearchCount returns the matching document count via FT.SEARCH with LIMIT 0 0.
func (s *Store) SearchCount(ctx context.Context, index string, filters []db.FilterClause) (int, error) {
	queryStr := buildQuery(filters, nil)

	cmd := s.b().Arbitrary("FT.SEARCH").
		Args(index, queryStr, "LIMIT", "0", "0", "DIALECT", "2").Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return 0, &db.Error{Op: db.OpSearch, Err: err}
	}
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return int(total), nil
}

// --- Query building ---

// buildQuery assembles the FT.SEARCH query string from conjunctive filter
// clauses plus an optional free-text match part. All clauses and tokens are
// escaped here; callers pass raw values.
func buildQuery(filters []db.FilterClause, match *db.MatchSpec) string {
	parts := make([]string, 0, len(filters)+1)

	for _, c := range filters {
		if clause := buildClause(c); clause != "" {
			parts = append(parts, clause)
		}
	}

	if match != nil {
		if m := buildMatch(match); m != "" {
			parts = append(parts, m)
		}
	}

	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " ")
}

func buildClause(c db.FilterClause) string {
	switch c.Type {
	case db.ClauseTag:
		return fmt.Sprintf("@%s:{%s}", c.Field, tagEscaper.Replace(c.Value))
	case db.ClauseTextWildcard:
		return fmt.Sprintf("@%s:(*%s*)", c.Field, queryEscaper.Replace(c.Value))
	}
	return ""
}

func buildMatch(m *db.MatchSpec) string {
	if len(m.Tokens) == 0 {
		return ""
	}

	terms := make([]string, 0, len(m.Tokens))
	for _, tok := range m.Tokens {
		escaped := queryEscaper.Replace(tok)
		if escaped == "" {
			continue
		}
		switch m.Mode {
		case db.MatchFuzzy:
			// The %% expansion only reaches edit distance 1, which misses name
			// elongations (jon vs jonathan). A stem prefix widens recall; the
			// caller's similarity floor restores precision.
			terms = append(terms, "%"+escaped+"%")
			if stem := fuzzyStem(tok); stem != "" {
				terms = append(terms, queryEscaper.Replace(stem)+"*")
			}
		case db.MatchWildcard:
			terms = append(terms, "*"+escaped+"*")
		default:
			terms = append(terms, escaped)
		}
	}
	if len(terms) == 0 {
		return ""
	}

	var body string
	switch m.Mode {
	case db.MatchFuzzy, db.MatchWildcard:
		// Any token may match (OR): broad recall, scoring happens client-side.
		body = strings.Join(terms, "|")
	default:
		// All tokens must match (AND): BM25 scores the conjunction.
		body = strings.Join(terms, " ")
	}

	if len(m.Fields) > 0 {
		return fmt.Sprintf("@%s:(%s)", strings.Join(m.Fields, "|"), body)
	}
	return "(" + body + ")"
}

// fuzzyStem returns the leading half of a token (at least two runes) for
// prefix matching. Tokens shorter than two runes get no stem.
func fuzzyStem(tok string) string {
	runes := []rune(tok)
	if len(runes) < 2 {
		return ""
	}
	n := (len(runes) + 1) / 2
	if n < 2 {
		n = 2
	}
	return string(runes[:n])
}

// --- Result parsing ---

// parseScoredResult parses a WITHSCORES reply.
// 3-stride: [total, key1, score1, fields1, key2, score2, fields2, ...]
func parseScoredResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, total)
	for i := 1; i+2 < len(raw); i += 3 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		scoreStr, err := raw[i+1].ToString()
		if err != nil {
			continue
		}
		score, err := strconv.ParseFloat(scoreStr, 64)
		if err != nil {
			continue
		}

		fields, err := raw[i+2].ToArray()
		if err != nil {
			continue
		}

		entries = append(entries, db.SearchEntry{
			Key:    key,
			Score:  score,
			Fields: parseFieldPairs(fields),
		})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

// parsePlainResult parses a reply without scores.
// 2-stride: [total, key1, fields1, key2, fields2, ...]
func parsePlainResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, total)
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}

		entries = append(entries, db.SearchEntry{
			Key:    key,
			Fields: parseFieldPairs(fields),
		})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// --- Escaping ---

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	" ", "\\ ",
)

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
)
