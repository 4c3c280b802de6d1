package plant

import (
	"context"

	"verdant/internal/domain/grid"
	"verdant/internal/shared/cursor"
)

// Repository defines the interface for plant placement persistence. All
// operations are scoped to a plan whose ownership the caller has re-checked.
type Repository interface {
	// GetAt retrieves the placement at (x, y), or a not found error.
	GetAt(ctx context.Context, planID uint, x, y int) (*Placement, error)

	// Place persists a new placement.
	Place(ctx context.Context, p *Placement) error

	// Update persists changes to an existing placement. Zero affected rows
	// surfaces as a conflict.
	Update(ctx context.Context, p *Placement) error

	// Remove deletes the placement at (x, y). Missing rows surface as not found.
	Remove(ctx context.Context, planID uint, x, y int) error

	// List returns one keyset page of placements ordered by
	// (plant_name, x, y) ascending.
	List(ctx context.Context, planID uint, filter ListFilter, cur *cursor.PlacementCursor, limit int) ([]*Placement, *cursor.PlacementCursor, error)

	// CountInRect counts placements inside the rectangle. Used as the impact
	// probe for area reclassification.
	CountInRect(ctx context.Context, planID uint, rect grid.Rect) (int, error)

	// DeleteInRect removes every placement inside the rectangle, returning the
	// number removed. Called after the covered cells were retyped to non-soil.
	DeleteInRect(ctx context.Context, planID uint, rect grid.Rect) (int, error)

	// CountByPlanID counts all placements of a plan. Used for the grid
	// regeneration impact report.
	CountByPlanID(ctx context.Context, planID uint) (int, error)

	// DeleteByPlanID removes all placements of a plan (grid regeneration).
	DeleteByPlanID(ctx context.Context, planID uint) error
}

// ListFilter defines the optional filters for listing placements.
type ListFilter struct {
	// NamePrefix restricts the listing to plants whose name starts with the
	// term, matched literally: pattern metacharacters in the term are escaped
	// before it reaches the store's LIKE operator.
	NamePrefix string
}
