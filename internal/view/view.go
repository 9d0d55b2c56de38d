// Package view projects the destination collection for presentation.
package view

import "github.com/mboehm/travellog/internal/domain"

// Project narrows destinations by status. A nil filter returns a copy of the
// input in the same order; otherwise only matching records are returned,
// relative order preserved. The input slice is never mutated.
func Project(dests []domain.Destination, status *domain.Status) []domain.Destination {
	if status == nil {
		out := make([]domain.Destination, len(dests))
		copy(out, dests)
		return out
	}

	out := make([]domain.Destination, 0, len(dests))
	for _, d := range dests {
		if d.Status == *status {
			out = append(out, d)
		}
	}
	return out
}
