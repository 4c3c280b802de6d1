// Package usecases contains the plan application operations.
package usecases

import (
	"context"
	"fmt"

	"verdant/internal/application/plan/dto"
	"verdant/internal/domain/plan"
	"verdant/internal/shared/id"
	"verdant/internal/shared/logger"
)

// CreatePlanCommand represents the input for creating a plan.
type CreatePlanCommand struct {
	OwnerID     uint
	Name        string
	Latitude    *float64
	Longitude   *float64
	Hemisphere  string
	WidthCM     int
	HeightCM    int
	CellSizeCM  int
	Orientation int
}

// CreatePlanUseCase handles plan creation.
type CreatePlanUseCase struct {
	repo   plan.Repository
	logger logger.Interface
}

// NewCreatePlanUseCase creates a new CreatePlanUseCase.
func NewCreatePlanUseCase(repo plan.Repository, logger logger.Interface) *CreatePlanUseCase {
	return &CreatePlanUseCase{repo: repo, logger: logger}
}

// Execute validates the geometry and persists a new plan.
func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*dto.PlanDTO, error) {
	location, err := locationFromParts(cmd.Latitude, cmd.Longitude, cmd.Hemisphere)
	if err != nil {
		return nil, err
	}

	p, err := plan.NewPlan(
		cmd.OwnerID,
		cmd.Name,
		location,
		cmd.WidthCM,
		cmd.HeightCM,
		cmd.CellSizeCM,
		cmd.Orientation,
		id.NewPlanID,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	uc.logger.Infow("plan created", "sid", p.SID(), "owner_id", p.OwnerID(),
		"grid_width", p.GridWidth(), "grid_height", p.GridHeight())
	return dto.ToPlanDTO(p), nil
}
