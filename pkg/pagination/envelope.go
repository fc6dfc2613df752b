// Package pagination assembles list results into the response envelope
// returned by list endpoints and consumed by the client.
package pagination

import (
	"github.com/gamedexapp/gamedex/pkg/query"
)

// Envelope is the body of a successful list response. An empty result is a
// normal envelope with Count 0 and an empty Items slice, never an error.
type Envelope[T any] struct {
	Success    bool `json:"success"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	Count      int  `json:"count"`
	Items      []T  `json:"items"`
}

// NewEnvelope builds the envelope for one evaluation of a spec. TotalPages is
// ceil(total/limit); by contract it is 0 when total is 0.
func NewEnvelope[T any](spec query.Spec, total int, items []T) *Envelope[T] {
	if items == nil {
		items = []T{}
	}
	return &Envelope[T]{
		Success:    true,
		Page:       spec.Page,
		Limit:      spec.Limit,
		Total:      total,
		TotalPages: totalPages(total, spec.Limit),
		Count:      len(items),
		Items:      items,
	}
}

func totalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
