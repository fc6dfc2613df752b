// Package query normalizes loosely-typed list-query parameters into a
// validated Spec. Compilation never fails: malformed input degrades to
// defaults, since list parameters arrive from a trusted UI or a public
// read-only endpoint.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Direction is the sort direction over the release date field.
type Direction string

const (
	SortAscending  Direction = "asc"
	SortDescending Direction = "desc"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100

	// DefaultSort lists newest releases first.
	DefaultSort = SortDescending
)

// Parameter names on the wire.
const (
	ParamPage   = "page"
	ParamLimit  = "limit"
	ParamSearch = "q"
	ParamSort   = "sort"
)

// FilterKeys are the query parameters that compile into filter constraints.
// Anything else in the raw params is ignored.
var FilterKeys = []string{"genre", "platform"}

// Spec is a normalized list-query request. Invariants: Page >= 1,
// 1 <= Limit <= MaxLimit, Filters never holds empty value sets, and Search
// is either empty or non-empty after trimming.
type Spec struct {
	Page    int
	Limit   int
	Filters map[string][]string
	Search  string
	Sort    Direction
}

// Compile turns raw request parameters into a Spec. It is a total function:
// non-numeric or missing page/limit fall back to defaults, zero or negative
// values clamp to 1, limit is capped at MaxLimit, filter keys present with
// only empty values are dropped, and unknown sort tokens resolve to
// DefaultSort.
func Compile(params url.Values) Spec {
	spec := Spec{
		Page:  parsePositiveInt(params.Get(ParamPage), DefaultPage),
		Limit: parsePositiveInt(params.Get(ParamLimit), DefaultLimit),
		Sort:  parseSort(params.Get(ParamSort)),
	}
	if spec.Limit > MaxLimit {
		spec.Limit = MaxLimit
	}

	spec.Search = strings.TrimSpace(params.Get(ParamSearch))

	for _, key := range FilterKeys {
		values := compactValues(params[key])
		if len(values) == 0 {
			// An omitted filter and a filter with only empty values are the
			// same thing: no constraint.
			continue
		}
		if spec.Filters == nil {
			spec.Filters = map[string][]string{}
		}
		spec.Filters[key] = values
	}

	return spec
}

// Values serializes the spec back into wire parameters. Compiling the result
// yields the same spec, so re-normalizing is a no-op.
func (s Spec) Values() url.Values {
	params := url.Values{}
	params.Set(ParamPage, strconv.Itoa(s.Page))
	params.Set(ParamLimit, strconv.Itoa(s.Limit))
	params.Set(ParamSort, string(s.Sort))
	if s.Search != "" {
		params.Set(ParamSearch, s.Search)
	}
	for key, values := range s.Filters {
		for _, value := range values {
			params.Add(key, value)
		}
	}
	return params
}

// Offset is the number of records to skip for the current page.
func (s Spec) Offset() int {
	return (s.Page - 1) * s.Limit
}

// Equal reports whether two specs describe the same query.
func (s Spec) Equal(other Spec) bool {
	if s.Page != other.Page || s.Limit != other.Limit || s.Search != other.Search || s.Sort != other.Sort {
		return false
	}
	if len(s.Filters) != len(other.Filters) {
		return false
	}
	for key, values := range s.Filters {
		otherValues, ok := other.Filters[key]
		if !ok || len(values) != len(otherValues) {
			return false
		}
		for i, value := range values {
			if value != otherValues[i] {
				return false
			}
		}
	}
	return true
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if n < 1 {
		return 1
	}
	return n
}

func parseSort(raw string) Direction {
	switch Direction(strings.ToLower(strings.TrimSpace(raw))) {
	case SortAscending:
		return SortAscending
	case SortDescending:
		return SortDescending
	}
	return DefaultSort
}

// compactValues trims each value, drops empties, and removes duplicates
// while preserving order.
func compactValues(raw []string) []string {
	var values []string
	seen := map[string]bool{}
	for _, value := range raw {
		value = strings.TrimSpace(value)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		values = append(values, value)
	}
	return values
}
