package grid

import (
	"context"

	"verdant/internal/shared/cursor"
	"verdant/internal/shared/errors"
)

// Repository defines the interface for grid cell persistence. All operations
// are scoped to a plan whose ownership the caller has already re-checked.
type Repository interface {
	// GetAt retrieves the materialized cell at (x, y), or nil when the cell
	// has never been written (implicitly soil).
	GetAt(ctx context.Context, planID uint, x, y int) (*Cell, error)

	// UpsertType materializes or retypes a single cell.
	UpsertType(ctx context.Context, planID uint, x, y int, cellType CellType) error

	// BulkSetTypeInRect materializes every coordinate in the rectangle with
	// the given type, returning the number of cells covered (the rect area).
	BulkSetTypeInRect(ctx context.Context, planID uint, rect Rect, cellType CellType) (int, error)

	// List returns one keyset page of materialized cells ordered by
	// (updated_at, x, y) descending.
	List(ctx context.Context, planID uint, filter ListFilter, cur *cursor.CellCursor, limit int) ([]*Cell, *cursor.CellCursor, error)

	// CountByPlanID counts the materialized cells of a plan. Used for the
	// grid regeneration impact report.
	CountByPlanID(ctx context.Context, planID uint) (int, error)

	// DeleteByPlanID removes all cells of a plan (grid regeneration).
	DeleteByPlanID(ctx context.Context, planID uint) error
}

// ListFilter defines the optional filters for listing cells. The single-point
// filter and the bounding-box filter are mutually exclusive.
type ListFilter struct {
	Type *CellType
	At   *Point
	Box  *Rect
}

// Validate rejects mutually exclusive filter combinations and bad values.
func (f ListFilter) Validate() error {
	if f.At != nil && f.Box != nil {
		return errors.NewInvalidQueryError("point and bounding-box filters are mutually exclusive")
	}
	if f.Type != nil && !f.Type.IsValid() {
		return errors.NewInvalidQueryError("unknown cell type filter: " + string(*f.Type))
	}
	if f.Box != nil && (f.Box.X1 > f.Box.X2 || f.Box.Y1 > f.Box.Y2) {
		return errors.NewInvalidQueryError("bounding box corners are out of order")
	}
	return nil
}
