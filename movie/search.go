package movie

import (
	"strings"

	"mflix/errs"
)

var ErrNoSearchFields = errs.Errorf(errs.EINVALID, "at least one search parameter must be provided")

// Compound operators accepted by SearchRequest.
const (
	OperatorMust    = "must"
	OperatorShould  = "should"
	OperatorMustNot = "mustNot"
	OperatorFilter  = "filter"
)

// SearchRequest is a multi-field relevance search. Plot fields are matched
// as phrases, people fields with fuzzy text matching.
type SearchRequest struct {
	Plot      string
	FullPlot  string
	Directors string
	Writers   string
	Cast      string
	Limit     *int
	Skip      *int
	Operator  string
}

func (r SearchRequest) Validate() error {
	if !r.HasSearchFields() {
		return ErrNoSearchFields
	}
	switch r.CompoundOperator() {
	case OperatorMust, OperatorShould, OperatorMustNot, OperatorFilter:
		return nil
	default:
		return errs.Errorf(errs.EINVALID,
			"invalid search operator %q: must be one of must, should, mustNot, filter", r.Operator)
	}
}

func (r SearchRequest) HasSearchFields() bool {
	for _, v := range []string{r.Plot, r.FullPlot, r.Directors, r.Writers, r.Cast} {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

func (r SearchRequest) CompoundOperator() string {
	op := strings.TrimSpace(r.Operator)
	if op == "" {
		return OperatorMust
	}
	return op
}

func (r SearchRequest) PageLimit() int {
	return SearchQuery{Limit: r.Limit}.PageLimit()
}

func (r SearchRequest) PageSkip() int {
	return SearchQuery{Skip: r.Skip}.PageSkip()
}
