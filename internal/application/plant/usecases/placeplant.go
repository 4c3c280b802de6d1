// Package usecases contains the plant placement application operations.
package usecases

import (
	"context"
	"fmt"

	"verdant/internal/application/plant/dto"
	"verdant/internal/domain/grid"
	"verdant/internal/domain/plan"
	"verdant/internal/domain/plant"
	"verdant/internal/shared/errors"
	"verdant/internal/shared/logger"
)

// PlacePlantCommand represents placing or replacing a plant on a cell.
type PlacePlantCommand struct {
	OwnerID   uint
	SID       string
	X         int
	Y         int
	PlantName string
	Scores    plant.Scores
}

// PlacePlantUseCase handles placing a plant on a soil cell. Placing on an
// occupied cell replaces the plant in place.
type PlacePlantUseCase struct {
	planRepo  plan.Repository
	cellRepo  grid.Repository
	plantRepo plant.Repository
	logger    logger.Interface
}

// NewPlacePlantUseCase creates a new PlacePlantUseCase.
func NewPlacePlantUseCase(
	planRepo plan.Repository,
	cellRepo grid.Repository,
	plantRepo plant.Repository,
	logger logger.Interface,
) *PlacePlantUseCase {
	return &PlacePlantUseCase{
		planRepo:  planRepo,
		cellRepo:  cellRepo,
		plantRepo: plantRepo,
		logger:    logger,
	}
}

// Execute re-reads the plan, checks bounds and the soil precondition against
// current data, then places or replaces the plant at (x, y).
func (uc *PlacePlantUseCase) Execute(ctx context.Context, cmd PlacePlantCommand) (*dto.PlacementDTO, error) {
	p, err := uc.planRepo.GetBySID(ctx, cmd.OwnerID, cmd.SID)
	if err != nil {
		return nil, err
	}
	if err := grid.ValidateCoordinate(cmd.X, cmd.Y, p.GridWidth(), p.GridHeight()); err != nil {
		return nil, err
	}

	// A cell that was never materialized is implicitly soil.
	cell, err := uc.cellRepo.GetAt(ctx, p.ID(), cmd.X, cmd.Y)
	if err != nil {
		return nil, fmt.Errorf("failed to load cell: %w", err)
	}
	if cell != nil && !cell.Type().Plantable() {
		return nil, errors.NewConflictError(
			fmt.Sprintf("plants can only be placed on soil cells, cell (%d, %d) is %s", cmd.X, cmd.Y, cell.Type()))
	}

	existing, err := uc.plantRepo.GetAt(ctx, p.ID(), cmd.X, cmd.Y)
	if err != nil && !errors.IsNotFoundError(err) {
		return nil, err
	}

	if existing != nil {
		if err := existing.Replace(cmd.PlantName, cmd.Scores); err != nil {
			return nil, err
		}
		if err := uc.plantRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to replace placement: %w", err)
		}
		uc.logger.Infow("plant replaced", "sid", p.SID(), "x", cmd.X, "y", cmd.Y, "plant", cmd.PlantName)
		return dto.ToPlacementDTO(existing), nil
	}

	placement, err := plant.NewPlacement(p.ID(), cmd.X, cmd.Y, cmd.PlantName, cmd.Scores)
	if err != nil {
		return nil, err
	}
	if err := uc.plantRepo.Place(ctx, placement); err != nil {
		return nil, fmt.Errorf("failed to place plant: %w", err)
	}
	uc.logger.Infow("plant placed", "sid", p.SID(), "x", cmd.X, "y", cmd.Y, "plant", cmd.PlantName)
	return dto.ToPlacementDTO(placement), nil
}
