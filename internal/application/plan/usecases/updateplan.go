package usecases

import (
	"context"
	"fmt"

	"verdant/internal/application/plan/dto"
	"verdant/internal/domain/plan"
	"verdant/internal/shared/logger"
)

// LocationUpdate is a full replacement value for the plan location.
type LocationUpdate struct {
	Latitude   float64
	Longitude  float64
	Hemisphere string
}

// UpdatePlanCommand represents a metadata patch. Nil fields are left
// untouched. Metadata changes never affect the grid, so no confirmation
// is involved.
type UpdatePlanCommand struct {
	OwnerID       uint
	SID           string
	Name          *string
	Orientation   *int
	Location      *LocationUpdate
	ClearLocation bool
}

// UpdatePlanUseCase handles plan metadata updates.
type UpdatePlanUseCase struct {
	repo   plan.Repository
	logger logger.Interface
}

// NewUpdatePlanUseCase creates a new UpdatePlanUseCase.
func NewUpdatePlanUseCase(repo plan.Repository, logger logger.Interface) *UpdatePlanUseCase {
	return &UpdatePlanUseCase{repo: repo, logger: logger}
}

// Execute re-reads the plan and applies the provided metadata fields.
func (uc *UpdatePlanUseCase) Execute(ctx context.Context, cmd UpdatePlanCommand) (*dto.PlanDTO, error) {
	p, err := uc.repo.GetBySID(ctx, cmd.OwnerID, cmd.SID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if err := p.Rename(*cmd.Name); err != nil {
			return nil, err
		}
	}
	if cmd.Orientation != nil {
		if err := p.SetOrientation(*cmd.Orientation); err != nil {
			return nil, err
		}
	}
	if cmd.Location != nil {
		location := &plan.Location{
			Latitude:   cmd.Location.Latitude,
			Longitude:  cmd.Location.Longitude,
			Hemisphere: plan.Hemisphere(cmd.Location.Hemisphere),
		}
		if err := p.SetLocation(location); err != nil {
			return nil, err
		}
	} else if cmd.ClearLocation {
		if err := p.SetLocation(nil); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	uc.logger.Infow("plan updated", "sid", p.SID(), "owner_id", p.OwnerID())
	return dto.ToPlanDTO(p), nil
}
