package usecases

import (
	"context"

	"verdant/internal/domain/grid"
	"verdant/internal/domain/plan"
	"verdant/internal/domain/plant"
	"verdant/internal/shared/logger"
)

// RemovePlantCommand represents removing the plant at a cell.
type RemovePlantCommand struct {
	OwnerID uint
	SID     string
	X       int
	Y       int
}

// RemovePlantUseCase handles removing a single plant placement. Removal never
// needs confirmation: the client points at exactly one plant.
type RemovePlantUseCase struct {
	planRepo  plan.Repository
	plantRepo plant.Repository
	logger    logger.Interface
}

// NewRemovePlantUseCase creates a new RemovePlantUseCase.
func NewRemovePlantUseCase(planRepo plan.Repository, plantRepo plant.Repository, logger logger.Interface) *RemovePlantUseCase {
	return &RemovePlantUseCase{planRepo: planRepo, plantRepo: plantRepo, logger: logger}
}

// Execute removes the placement at (x, y). A missing placement surfaces as
// not found.
func (uc *RemovePlantUseCase) Execute(ctx context.Context, cmd RemovePlantCommand) error {
	p, err := uc.planRepo.GetBySID(ctx, cmd.OwnerID, cmd.SID)
	if err != nil {
		return err
	}
	if err := grid.ValidateCoordinate(cmd.X, cmd.Y, p.GridWidth(), p.GridHeight()); err != nil {
		return err
	}
	if err := uc.plantRepo.Remove(ctx, p.ID(), cmd.X, cmd.Y); err != nil {
		return err
	}
	uc.logger.Infow("plant removed", "sid", p.SID(), "x", cmd.X, "y", cmd.Y)
	return nil
}
