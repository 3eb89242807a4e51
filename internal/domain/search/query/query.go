// Package query defines the validated, normalized search query value object.
package query

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stafflink/staffdex/internal/domain"
	"github.com/stafflink/staffdex/internal/domain/employee"
)

// Search parameter limits and defaults.
const (
	MaxQueryLength  = 100
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	MinFuzzyThreshold     = 0.1
	MaxFuzzyThreshold     = 1.0
	DefaultFuzzyThreshold = 0.3
)

// Default merge-time strategy weights.
const (
	DefaultExactWeight   = 1.0
	DefaultFuzzyWeight   = 0.7
	DefaultPartialWeight = 0.4
)

// sanitizer removes characters that are structural operators in the
// underlying FT.SEARCH query syntax, so user text can never be interpreted
// as query syntax.
var sanitizer = strings.NewReplacer(
	"@", "", "{", "", "}", "", "(", "", ")", "",
	"[", "", "]", "", "|", "", "%", "", "*", "",
	"~", "", "-", "", "=", "", "<", "", ">", "",
	"!", "", "^", "", "$", "", ";", "", ":", "",
	"&", "", "+", "", "#", "", "\"", "", "'", "", "\\", "",
)

// Filters narrows a search to structured employee attributes.
// The zero value matches everything.
type Filters struct {
	department string
	title      string
	skills     []string
	active     *bool
}

// NewFilters canonicalizes structured filters. Skills are lowercased,
// deduplicated, and sorted so that logically equal filter sets fingerprint
// identically.
func NewFilters(department, title string, skills []string, active *bool) Filters {
	return Filters{
		department: strings.TrimSpace(department),
		title:      strings.TrimSpace(title),
		skills:     employee.CanonicalSkills(skills),
		active:     active,
	}
}

// Department returns the exact department filter ("" = any).
func (f Filters) Department() string { return f.department }

// Title returns the title substring filter ("" = any).
func (f Filters) Title() string { return f.title }

// Skills returns the canonical required-skill set.
func (f Filters) Skills() []string { return f.skills }

// Active returns the explicit active-flag filter (nil = unset).
func (f Filters) Active() *bool { return f.active }

// Weights holds per-strategy merge multipliers.
type Weights struct {
	Exact   float64
	Fuzzy   float64
	Partial float64
}

// DefaultWeights returns the canonical merge weights.
func DefaultWeights() Weights {
	return Weights{
		Exact:   DefaultExactWeight,
		Fuzzy:   DefaultFuzzyWeight,
		Partial: DefaultPartialWeight,
	}
}

// Options tunes per-request search behavior.
type Options struct {
	// Weights overrides the default merge weights when any field is > 0.
	Weights Weights
	// FuzzyThreshold is the similarity floor for fuzzy matches.
	// 0 means "use default"; otherwise it must be in [0.1, 1.0].
	FuzzyThreshold float64
	// IncludeInactive disables the implicit active-only restriction.
	IncludeInactive bool
}

// Query is a sanitized, validated search request. Immutable once constructed.
type Query struct {
	text            string
	filters         Filters
	page            int
	pageSize        int
	weights         Weights
	fuzzyThreshold  float64
	includeInactive bool
}

// New sanitizes and validates a raw search query.
//
// The raw text is trimmed, runs of whitespace collapse to one space,
// FT.SEARCH structural operators are stripped, and the result is truncated
// to MaxQueryLength characters. Page and pageSize are clamped (documented
// clamping, not an error); an out-of-range fuzzy threshold is a validation
// error.
func New(rawText string, filters Filters, page, pageSize int, opts Options) (Query, error) {
	text := sanitize(rawText)

	if page < DefaultPage {
		page = DefaultPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	threshold := opts.FuzzyThreshold
	if threshold == 0 {
		threshold = DefaultFuzzyThreshold
	}
	if threshold < MinFuzzyThreshold || threshold > MaxFuzzyThreshold {
		return Query{}, fmt.Errorf(
			"%w: fuzzy threshold must be between %g and %g, got %g",
			domain.ErrValidation, MinFuzzyThreshold, MaxFuzzyThreshold, opts.FuzzyThreshold,
		)
	}

	weights := opts.Weights
	if weights.Exact <= 0 {
		weights.Exact = DefaultExactWeight
	}
	if weights.Fuzzy <= 0 {
		weights.Fuzzy = DefaultFuzzyWeight
	}
	if weights.Partial <= 0 {
		weights.Partial = DefaultPartialWeight
	}

	return Query{
		text:            text,
		filters:         filters,
		page:            page,
		pageSize:        pageSize,
		weights:         weights,
		fuzzyThreshold:  threshold,
		includeInactive: opts.IncludeInactive,
	}, nil
}

func sanitize(raw string) string {
	s := sanitizer.Replace(raw)
	s = strings.Join(strings.Fields(s), " ")
	if runes := []rune(s); len(runes) > MaxQueryLength {
		s = strings.TrimSpace(string(runes[:MaxQueryLength]))
	}
	return s
}

// Text returns the sanitized query text.
func (q *Query) Text() string { return q.text }

// Filters returns the structured filters.
func (q *Query) Filters() Filters { return q.filters }

// Page returns the 1-based page number.
func (q *Query) Page() int { return q.page }

// PageSize returns the page size.
func (q *Query) PageSize() int { return q.pageSize }

// Weights returns the effective merge weights.
func (q *Query) Weights() Weights { return q.weights }

// FuzzyThreshold returns the effective fuzzy similarity floor.
func (q *Query) FuzzyThreshold() float64 { return q.fuzzyThreshold }

// IncludeInactive reports whether inactive employees may match.
func (q *Query) IncludeInactive() bool { return q.includeInactive }

// IsEmpty reports whether sanitization left no searchable text.
func (q *Query) IsEmpty() bool { return q.text == "" }

// Offset returns the number of ranked results preceding the requested page.
func (q *Query) Offset() int { return (q.page - 1) * q.pageSize }

// FetchLimit caps per-strategy candidate retrieval: results past
// offset+pageSize can never appear on the requested page.
func (q *Query) FetchLimit() int { return q.Offset() + q.pageSize }

// fingerprintPayload is the canonical serialized form of a query.
// Field order is fixed and skills are pre-sorted, so identical semantic
// content always serializes identically.
type fingerprintPayload struct {
	Text            string   `json:"text"`
	Department      string   `json:"department,omitempty"`
	Title           string   `json:"title,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	Active          *bool    `json:"active,omitempty"`
	Page            int      `json:"page"`
	PageSize        int      `json:"page_size"`
	ExactWeight     float64  `json:"exact_weight"`
	FuzzyWeight     float64  `json:"fuzzy_weight"`
	PartialWeight   float64  `json:"partial_weight"`
	FuzzyThreshold  float64  `json:"fuzzy_threshold"`
	IncludeInactive bool     `json:"include_inactive"`
}

// Fingerprint returns a stable hash of the canonicalized query, used as the
// tenant-relative cache key segment.
func (q *Query) Fingerprint() string {
	payload := fingerprintPayload{
		Text:            q.text,
		Department:      q.filters.department,
		Title:           q.filters.title,
		Skills:          q.filters.skills,
		Active:          q.filters.active,
		Page:            q.page,
		PageSize:        q.pageSize,
		ExactWeight:     q.weights.Exact,
		FuzzyWeight:     q.weights.Fuzzy,
		PartialWeight:   q.weights.Partial,
		FuzzyThreshold:  q.fuzzyThreshold,
		IncludeInactive: q.includeInactive,
	}
	data, _ := json.Marshal(payload)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
