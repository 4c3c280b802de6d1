package usecases

import (
	"context"
	"fmt"

	"verdant/internal/application/plan/dto"
	"verdant/internal/domain/grid"
	"verdant/internal/domain/plan"
	"verdant/internal/domain/plant"
	"verdant/internal/shared/confirm"
	"verdant/internal/shared/db"
	"verdant/internal/shared/logger"
)

// RegeneratePlanGeometryCommand represents a geometry replacement request.
// When the derived grid dimensions change, every cell and placement of the
// plan is discarded, so the request is gated behind confirmation.
type RegeneratePlanGeometryCommand struct {
	OwnerID    uint
	SID        string
	WidthCM    int
	HeightCM   int
	CellSizeCM int
	Confirmed  bool
}

// RegeneratePlanGeometryResult is the gated outcome. Applied=false carries
// the impact report the client must show before retrying with Confirmed=true.
type RegeneratePlanGeometryResult struct {
	Applied bool
	Plan    *dto.PlanDTO
	Impact  confirm.Impact
}

// RegeneratePlanGeometryUseCase handles geometry changes and the grid
// regeneration they trigger.
type RegeneratePlanGeometryUseCase struct {
	planRepo  plan.Repository
	cellRepo  grid.Repository
	plantRepo plant.Repository
	txManager *db.TransactionManager
	logger    logger.Interface
}

// NewRegeneratePlanGeometryUseCase creates a new RegeneratePlanGeometryUseCase.
func NewRegeneratePlanGeometryUseCase(
	planRepo plan.Repository,
	cellRepo grid.Repository,
	plantRepo plant.Repository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *RegeneratePlanGeometryUseCase {
	return &RegeneratePlanGeometryUseCase{
		planRepo:  planRepo,
		cellRepo:  cellRepo,
		plantRepo: plantRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute validates the requested geometry, then runs the confirmation gate.
// A geometry change that keeps the derived grid dimensions intact is a plain
// field update; a change that resizes the grid discards all cells and
// placements atomically.
func (uc *RegeneratePlanGeometryUseCase) Execute(ctx context.Context, cmd RegeneratePlanGeometryCommand) (*RegeneratePlanGeometryResult, error) {
	if err := plan.ValidateGeometry(cmd.WidthCM, cmd.HeightCM, cmd.CellSizeCM); err != nil {
		return nil, err
	}

	p, err := uc.planRepo.GetBySID(ctx, cmd.OwnerID, cmd.SID)
	if err != nil {
		return nil, err
	}

	newWidth, newHeight := plan.GridDimensions(cmd.WidthCM, cmd.HeightCM, cmd.CellSizeCM)
	resized := newWidth != p.GridWidth() || newHeight != p.GridHeight()

	probe := func(ctx context.Context) (confirm.Impact, error) {
		if !resized {
			return confirm.Impact{}, nil
		}
		cells, err := uc.cellRepo.CountByPlanID(ctx, p.ID())
		if err != nil {
			return confirm.Impact{}, fmt.Errorf("failed to count grid cells: %w", err)
		}
		plants, err := uc.plantRepo.CountByPlanID(ctx, p.ID())
		if err != nil {
			return confirm.Impact{}, fmt.Errorf("failed to count placements: %w", err)
		}
		return confirm.Impact{AffectedCells: cells, RemovedPlants: plants, GridResized: true}, nil
	}

	apply := func(ctx context.Context) (*plan.Plan, error) {
		if err := p.UpdateGeometry(cmd.WidthCM, cmd.HeightCM, cmd.CellSizeCM); err != nil {
			return nil, err
		}
		if !resized {
			if err := uc.planRepo.Update(ctx, p); err != nil {
				return nil, fmt.Errorf("failed to update plan geometry: %w", err)
			}
			return p, nil
		}
		err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
			if err := uc.planRepo.Update(txCtx, p); err != nil {
				return fmt.Errorf("failed to update plan geometry: %w", err)
			}
			if err := uc.cellRepo.DeleteByPlanID(txCtx, p.ID()); err != nil {
				return fmt.Errorf("failed to discard grid cells: %w", err)
			}
			if err := uc.plantRepo.DeleteByPlanID(txCtx, p.ID()); err != nil {
				return fmt.Errorf("failed to discard placements: %w", err)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	result, err := confirm.Attempt(ctx, cmd.Confirmed, probe, apply)
	if err != nil {
		return nil, err
	}

	out := &RegeneratePlanGeometryResult{Applied: result.Applied, Impact: result.Impact}
	if result.Applied {
		out.Plan = dto.ToPlanDTO(result.Value)
		uc.logger.Infow("plan geometry regenerated", "sid", p.SID(),
			"grid_width", p.GridWidth(), "grid_height", p.GridHeight(),
			"removed_plants", result.Impact.RemovedPlants)
	}
	return out, nil
}
