package usecases

import (
	"context"

	"verdant/internal/domain/grid"
)

// SetCellTypeCommand represents a single-cell type change.
type SetCellTypeCommand struct {
	OwnerID   uint
	SID       string
	X         int
	Y         int
	Type      grid.CellType
	Confirmed bool
}

// SetCellTypeUseCase handles single-cell type changes. A single cell is the
// 1x1 rectangle case of area reclassification and shares its gate, cascade,
// and transaction boundary.
type SetCellTypeUseCase struct {
	reclassify *ReclassifyAreaUseCase
}

// NewSetCellTypeUseCase creates a new SetCellTypeUseCase.
func NewSetCellTypeUseCase(reclassify *ReclassifyAreaUseCase) *SetCellTypeUseCase {
	return &SetCellTypeUseCase{reclassify: reclassify}
}

// Execute retypes one cell, removing any plant on it when the new type is
// not plantable (gated behind confirmation).
func (uc *SetCellTypeUseCase) Execute(ctx context.Context, cmd SetCellTypeCommand) (*ReclassifyAreaResult, error) {
	return uc.reclassify.Execute(ctx, ReclassifyAreaCommand{
		OwnerID:   cmd.OwnerID,
		SID:       cmd.SID,
		Rect:      grid.Rect{X1: cmd.X, Y1: cmd.Y, X2: cmd.X, Y2: cmd.Y},
		Type:      cmd.Type,
		Confirmed: cmd.Confirmed,
	})
}
