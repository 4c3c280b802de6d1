package usecases

import (
	"context"

	"verdant/internal/application/plan/dto"
	"verdant/internal/domain/plan"
	"verdant/internal/shared/logger"
)

// GetPlanQuery represents the input for retrieving a plan.
type GetPlanQuery struct {
	OwnerID uint
	SID     string
}

// GetPlanUseCase handles plan retrieval.
type GetPlanUseCase struct {
	repo   plan.Repository
	logger logger.Interface
}

// NewGetPlanUseCase creates a new GetPlanUseCase.
func NewGetPlanUseCase(repo plan.Repository, logger logger.Interface) *GetPlanUseCase {
	return &GetPlanUseCase{repo: repo, logger: logger}
}

// Execute retrieves a plan by public ID, scoped to the owner.
func (uc *GetPlanUseCase) Execute(ctx context.Context, query GetPlanQuery) (*dto.PlanDTO, error) {
	p, err := uc.repo.GetBySID(ctx, query.OwnerID, query.SID)
	if err != nil {
		return nil, err
	}
	return dto.ToPlanDTO(p), nil
}
