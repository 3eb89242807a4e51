package query

import (
	"errors"
	"strings"
	"testing"

	"github.com/stafflink/staffdex/internal/domain"
)

func mustQuery(t *testing.T, raw string, filters Filters, page, pageSize int, opts Options) Query {
	t.Helper()
	q, err := New(raw, filters, page, pageSize, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return q
}

func TestNew_SanitizesOperators(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain text", "john smith", "john smith"},
		{"strips tag syntax", "@tenant:{acme}", "tenantacme"},
		{"strips wildcards and fuzzy markers", "*jo%hn*", "john"},
		{"strips negation and grouping", "-(john|jane)", "johnjane"},
		{"collapses whitespace", "  john \t  smith  ", "john smith"},
		{"only operators sanitize to empty", "@{}()|*%", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := mustQuery(t, tt.raw, Filters{}, 1, 20, Options{})
			if q.Text() != tt.want {
				t.Errorf("Text() = %q, want %q", q.Text(), tt.want)
			}
		})
	}
}

func TestNew_TruncatesLongQuery(t *testing.T) {
	raw := strings.Repeat("a", 3*MaxQueryLength)
	q := mustQuery(t, raw, Filters{}, 1, 20, Options{})
	if got := len([]rune(q.Text())); got != MaxQueryLength {
		t.Errorf("len(Text()) = %d, want %d", got, MaxQueryLength)
	}
}

func TestNew_ClampsPagination(t *testing.T) {
	tests := []struct {
		name         string
		page, size   int
		wantPage     int
		wantPageSize int
	}{
		{"zero values get defaults", 0, 0, DefaultPage, DefaultPageSize},
		{"negative page clamps to first", -3, 10, 1, 10},
		{"oversized page size clamps to max", 1, 500, 1, MaxPageSize},
		{"in-range values pass through", 4, 25, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := mustQuery(t, "x", Filters{}, tt.page, tt.size, Options{})
			if q.Page() != tt.wantPage {
				t.Errorf("Page() = %d, want %d", q.Page(), tt.wantPage)
			}
			if q.PageSize() != tt.wantPageSize {
				t.Errorf("PageSize() = %d, want %d", q.PageSize(), tt.wantPageSize)
			}
		})
	}
}

func TestNew_FuzzyThreshold(t *testing.T) {
	q := mustQuery(t, "x", Filters{}, 1, 20, Options{})
	if q.FuzzyThreshold() != DefaultFuzzyThreshold {
		t.Errorf("default threshold = %g, want %g", q.FuzzyThreshold(), DefaultFuzzyThreshold)
	}

	q = mustQuery(t, "x", Filters{}, 1, 20, Options{FuzzyThreshold: 0.8})
	if q.FuzzyThreshold() != 0.8 {
		t.Errorf("threshold = %g, want 0.8", q.FuzzyThreshold())
	}

	for _, bad := range []float64{0.05, 1.5, -1} {
		if _, err := New("x", Filters{}, 1, 20, Options{FuzzyThreshold: bad}); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("threshold %g: expected ErrValidation, got %v", bad, err)
		}
	}
}

func TestNew_DefaultsWeights(t *testing.T) {
	q := mustQuery(t, "x", Filters{}, 1, 20, Options{})
	if q.Weights() != DefaultWeights() {
		t.Errorf("Weights() = %+v, want defaults", q.Weights())
	}

	q = mustQuery(t, "x", Filters{}, 1, 20, Options{
		Weights: Weights{Exact: 2.0, Fuzzy: 0, Partial: 0.1},
	})
	w := q.Weights()
	if w.Exact != 2.0 || w.Fuzzy != DefaultFuzzyWeight || w.Partial != 0.1 {
		t.Errorf("Weights() = %+v, want partial override with defaults", w)
	}
}

func TestQuery_IsEmpty(t *testing.T) {
	if q := mustQuery(t, "   ", Filters{}, 1, 20, Options{}); !q.IsEmpty() {
		t.Error("whitespace-only query should be empty")
	}
	if q := mustQuery(t, "john", Filters{}, 1, 20, Options{}); q.IsEmpty() {
		t.Error("non-empty query reported empty")
	}
}

func TestQuery_OffsetAndFetchLimit(t *testing.T) {
	q := mustQuery(t, "x", Filters{}, 3, 10, Options{})
	if q.Offset() != 20 {
		t.Errorf("Offset() = %d, want 20", q.Offset())
	}
	if q.FetchLimit() != 30 {
		t.Errorf("FetchLimit() = %d, want 30", q.FetchLimit())
	}
}

func TestFingerprint_Stable(t *testing.T) {
	active := true
	a := mustQuery(t, "john", NewFilters("Eng", "", []string{"Go", "redis"}, &active), 1, 20, Options{})
	b := mustQuery(t, "john", NewFilters("Eng", "", []string{"redis", "go"}, &active), 1, 20, Options{})

	// Skills canonicalize, so order must not change the fingerprint.
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("skill order changed the fingerprint")
	}
}

func TestFingerprint_DistinguishesQueries(t *testing.T) {
	base := mustQuery(t, "john", Filters{}, 1, 20, Options{})

	variants := []Query{
		mustQuery(t, "jane", Filters{}, 1, 20, Options{}),
		mustQuery(t, "john", Filters{}, 2, 20, Options{}),
		mustQuery(t, "john", Filters{}, 1, 50, Options{}),
		mustQuery(t, "john", NewFilters("Eng", "", nil, nil), 1, 20, Options{}),
		mustQuery(t, "john", Filters{}, 1, 20, Options{FuzzyThreshold: 0.5}),
		mustQuery(t, "john", Filters{}, 1, 20, Options{IncludeInactive: true}),
	}

	for i, v := range variants {
		if v.Fingerprint() == base.Fingerprint() {
			t.Errorf("variant %d collided with base fingerprint", i)
		}
	}
}
