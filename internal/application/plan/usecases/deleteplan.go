package usecases

import (
	"context"
	"fmt"

	"verdant/internal/domain/grid"
	"verdant/internal/domain/plan"
	"verdant/internal/domain/plant"
	"verdant/internal/shared/db"
	"verdant/internal/shared/logger"
)

// DeletePlanCommand represents the input for deleting a plan.
type DeletePlanCommand struct {
	OwnerID uint
	SID     string
}

// DeletePlanUseCase handles plan deletion.
type DeletePlanUseCase struct {
	planRepo  plan.Repository
	cellRepo  grid.Repository
	plantRepo plant.Repository
	txManager *db.TransactionManager
	logger    logger.Interface
}

// NewDeletePlanUseCase creates a new DeletePlanUseCase.
func NewDeletePlanUseCase(
	planRepo plan.Repository,
	cellRepo grid.Repository,
	plantRepo plant.Repository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *DeletePlanUseCase {
	return &DeletePlanUseCase{
		planRepo:  planRepo,
		cellRepo:  cellRepo,
		plantRepo: plantRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute deletes the plan and everything materialized under it.
func (uc *DeletePlanUseCase) Execute(ctx context.Context, cmd DeletePlanCommand) error {
	p, err := uc.planRepo.GetBySID(ctx, cmd.OwnerID, cmd.SID)
	if err != nil {
		return err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.cellRepo.DeleteByPlanID(txCtx, p.ID()); err != nil {
			return fmt.Errorf("failed to delete grid cells: %w", err)
		}
		if err := uc.plantRepo.DeleteByPlanID(txCtx, p.ID()); err != nil {
			return fmt.Errorf("failed to delete placements: %w", err)
		}
		if err := uc.planRepo.Delete(txCtx, cmd.OwnerID, p.ID()); err != nil {
			return fmt.Errorf("failed to delete plan: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.logger.Infow("plan deleted", "sid", cmd.SID, "owner_id", cmd.OwnerID)
	return nil
}
