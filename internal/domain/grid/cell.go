// Package grid provides grid cell entities, cell types, and coordinate rules.
package grid

import (
	"time"

	"verdant/internal/shared/errors"
)

// CellType classifies what occupies a grid cell.
type CellType string

const (
	CellTypeSoil     CellType = "soil"
	CellTypePath     CellType = "path"
	CellTypeWater    CellType = "water"
	CellTypeBuilding CellType = "building"
	CellTypeBlocked  CellType = "blocked"
)

// DefaultCellType is the implicit type of every in-bounds cell that has never
// been written. Cells are materialized in storage on first write only.
const DefaultCellType = CellTypeSoil

// IsValid reports whether the cell type is one of the known constants.
func (t CellType) IsValid() bool {
	switch t {
	case CellTypeSoil, CellTypePath, CellTypeWater, CellTypeBuilding, CellTypeBlocked:
		return true
	}
	return false
}

// Plantable reports whether plants may be placed on cells of this type.
func (t CellType) Plantable() bool {
	return t == CellTypeSoil
}

// Cell represents one materialized grid cell. Its identity is the composite
// (plan, x, y); coordinates are zero-based and strictly inside the plan's
// derived grid dimensions.
type Cell struct {
	planID    uint
	x         int
	y         int
	cellType  CellType
	updatedAt time.Time
}

// NewCell creates a cell with a validated type. Coordinate bounds are checked
// by the caller against the authoritative plan record.
func NewCell(planID uint, x, y int, cellType CellType) (*Cell, error) {
	if planID == 0 {
		return nil, errors.NewValidationError("plan ID is required")
	}
	if !cellType.IsValid() {
		return nil, errors.NewValidationError("invalid cell type: " + string(cellType))
	}
	return &Cell{
		planID:    planID,
		x:         x,
		y:         y,
		cellType:  cellType,
		updatedAt: time.Now().UTC(),
	}, nil
}

// ReconstructCell rebuilds a cell from persisted state.
func ReconstructCell(planID uint, x, y int, cellType CellType, updatedAt time.Time) *Cell {
	return &Cell{
		planID:    planID,
		x:         x,
		y:         y,
		cellType:  cellType,
		updatedAt: updatedAt,
	}
}

func (c *Cell) PlanID() uint         { return c.planID }
func (c *Cell) X() int               { return c.x }
func (c *Cell) Y() int               { return c.y }
func (c *Cell) Type() CellType       { return c.cellType }
func (c *Cell) UpdatedAt() time.Time { return c.updatedAt }
