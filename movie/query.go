package movie

import "strings"

const (
	DefaultLimit = 20
	MaxLimit     = 100
	DefaultSort  = FieldTitle
)

// SearchQuery describes a filtered, sorted and paginated listing of movies.
// Zero values mean "no constraint"; nil Limit and Skip fall back to the
// defaults.
type SearchQuery struct {
	Q         string
	Genre     string
	Year      *int
	MinRating *float64
	MaxRating *float64
	Limit     *int
	Skip      *int
	SortBy    string
	SortOrder string
}

// Text returns the trimmed full-text term.
func (q SearchQuery) Text() string {
	return strings.TrimSpace(q.Q)
}

// GenreTerm returns the trimmed genre substring.
func (q SearchQuery) GenreTerm() string {
	return strings.TrimSpace(q.Genre)
}

// PageLimit returns the limit clamped to [1, MaxLimit].
func (q SearchQuery) PageLimit() int {
	if q.Limit == nil {
		return DefaultLimit
	}
	return clamp(*q.Limit, 1, MaxLimit)
}

// PageSkip returns the skip, never negative.
func (q SearchQuery) PageSkip() int {
	if q.Skip == nil || *q.Skip < 0 {
		return 0
	}
	return *q.Skip
}

// SortField returns the requested sort field. Unknown names are passed
// through untouched.
func (q SearchQuery) SortField() string {
	if strings.TrimSpace(q.SortBy) == "" {
		return DefaultSort
	}
	return q.SortBy
}

func (q SearchQuery) Descending() bool {
	return strings.EqualFold(strings.TrimSpace(q.SortOrder), "desc")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
