// Package confirm implements the two-phase confirmation gate for destructive
// mutations.
//
// The gate is stateless: the "pending operation" a client holds is just the
// impact report from the first attempt, and the confirming call replays the
// same change with confirmed=true. Nothing is remembered server-side between
// the two requests, so a confirmed retry never re-prompts.
package confirm

import "context"

// Impact reports what a destructive change would remove or invalidate.
type Impact struct {
	AffectedCells int  `json:"affected_cells"`
	RemovedPlants int  `json:"removed_plants"`
	GridResized   bool `json:"grid_resized,omitempty"`
}

// Destructive reports whether applying the change destroys dependent data.
func (i Impact) Destructive() bool {
	return i.RemovedPlants > 0 || i.GridResized
}

// Result is the outcome of a gated attempt. Applied=false with a populated
// Impact means the change was blocked pending confirmation; it is a normal
// first-phase outcome, not an error.
type Result[T any] struct {
	Applied bool
	Value   T
	Impact  Impact
}

// Attempt runs the two-phase protocol:
//
//  1. probe computes the impact from current data, without mutating anything.
//  2. A non-destructive impact is applied unconditionally.
//  3. A destructive impact without confirmation returns Applied=false and the
//     impact report, leaving all state untouched.
//  4. A destructive impact with confirmation is applied.
//
// apply runs to completion or returns its error as-is; the gate never retries.
func Attempt[T any](
	ctx context.Context,
	confirmed bool,
	probe func(ctx context.Context) (Impact, error),
	apply func(ctx context.Context) (T, error),
) (*Result[T], error) {
	impact, err := probe(ctx)
	if err != nil {
		return nil, err
	}

	if impact.Destructive() && !confirmed {
		return &Result[T]{Applied: false, Impact: impact}, nil
	}

	value, err := apply(ctx)
	if err != nil {
		return nil, err
	}
	return &Result[T]{Applied: true, Value: value, Impact: impact}, nil
}
