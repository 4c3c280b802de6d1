// Package usecases contains the grid cell application operations.
package usecases

import (
	"context"
	"fmt"

	"verdant/internal/domain/grid"
	"verdant/internal/domain/plan"
	"verdant/internal/domain/plant"
	"verdant/internal/shared/confirm"
	"verdant/internal/shared/db"
	"verdant/internal/shared/errors"
	"verdant/internal/shared/logger"
)

// ReclassifyAreaCommand represents a rectangular cell-type change. Retyping
// to a non-plantable type removes every plant inside the rectangle, so such
// requests are gated behind confirmation.
type ReclassifyAreaCommand struct {
	OwnerID   uint
	SID       string
	Rect      grid.Rect
	Type      grid.CellType
	Confirmed bool
}

// ReclassifyAreaResult is the gated outcome. Applied=false carries the impact
// report the client must show before retrying with Confirmed=true.
type ReclassifyAreaResult struct {
	Applied bool
	Impact  confirm.Impact
}

// ReclassifyAreaUseCase handles rectangular cell-type reclassification and
// its plant-removal cascade.
type ReclassifyAreaUseCase struct {
	planRepo  plan.Repository
	cellRepo  grid.Repository
	plantRepo plant.Repository
	txManager *db.TransactionManager
	logger    logger.Interface
}

// NewReclassifyAreaUseCase creates a new ReclassifyAreaUseCase.
func NewReclassifyAreaUseCase(
	planRepo plan.Repository,
	cellRepo grid.Repository,
	plantRepo plant.Repository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *ReclassifyAreaUseCase {
	return &ReclassifyAreaUseCase{
		planRepo:  planRepo,
		cellRepo:  cellRepo,
		plantRepo: plantRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute re-reads the plan, validates the rectangle against the current grid
// bounds, and runs the confirmation gate. Retyping to soil never removes
// plants and is applied unconditionally; retyping to any other type cascades
// the removal of covered plants in the same transaction as the cell writes.
func (uc *ReclassifyAreaUseCase) Execute(ctx context.Context, cmd ReclassifyAreaCommand) (*ReclassifyAreaResult, error) {
	if !cmd.Type.IsValid() {
		return nil, errors.NewValidationError("invalid cell type: " + string(cmd.Type))
	}

	p, err := uc.planRepo.GetBySID(ctx, cmd.OwnerID, cmd.SID)
	if err != nil {
		return nil, err
	}
	if err := cmd.Rect.Validate(p.GridWidth(), p.GridHeight()); err != nil {
		return nil, err
	}

	probe := func(ctx context.Context) (confirm.Impact, error) {
		impact := confirm.Impact{AffectedCells: cmd.Rect.Area()}
		if cmd.Type.Plantable() {
			return impact, nil
		}
		removed, err := uc.plantRepo.CountInRect(ctx, p.ID(), cmd.Rect)
		if err != nil {
			return confirm.Impact{}, fmt.Errorf("failed to count placements in rect: %w", err)
		}
		impact.RemovedPlants = removed
		return impact, nil
	}

	apply := func(ctx context.Context) (int, error) {
		var removed int
		err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
			if _, err := uc.cellRepo.BulkSetTypeInRect(txCtx, p.ID(), cmd.Rect, cmd.Type); err != nil {
				return fmt.Errorf("failed to retype cells: %w", err)
			}
			if !cmd.Type.Plantable() {
				n, err := uc.plantRepo.DeleteInRect(txCtx, p.ID(), cmd.Rect)
				if err != nil {
					return fmt.Errorf("failed to remove covered placements: %w", err)
				}
				removed = n
			}
			return nil
		})
		return removed, err
	}

	result, err := confirm.Attempt(ctx, cmd.Confirmed, probe, apply)
	if err != nil {
		return nil, err
	}

	// an applied result reports the placements the delete actually hit, which
	// can differ from the probe count when another editor wrote in between
	impact := result.Impact
	if result.Applied {
		impact.RemovedPlants = result.Value
		uc.logger.Infow("area reclassified", "sid", p.SID(), "type", cmd.Type,
			"affected_cells", impact.AffectedCells,
			"removed_plants", impact.RemovedPlants)
	}
	return &ReclassifyAreaResult{Applied: result.Applied, Impact: impact}, nil
}
