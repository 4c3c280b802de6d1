package usecases

import (
	"context"
	"fmt"

	"verdant/internal/application/plant/dto"
	"verdant/internal/domain/plan"
	"verdant/internal/domain/plant"
	"verdant/internal/shared/constants"
	"verdant/internal/shared/cursor"
	"verdant/internal/shared/logger"
	"verdant/internal/shared/mapper"
	"verdant/internal/shared/query"
)

// ListPlantsQuery represents the input for listing a plan's placements.
type ListPlantsQuery struct {
	OwnerID    uint
	SID        string
	NamePrefix string
	Page       query.PageRequest
}

// ListPlantsResult is one keyset page of placements. A nil NextCursor means
// the listing is exhausted.
type ListPlantsResult struct {
	Placements []*dto.PlacementDTO
	NextCursor *string
}

// ListPlantsUseCase handles paginated plant placement listing.
type ListPlantsUseCase struct {
	planRepo  plan.Repository
	plantRepo plant.Repository
	logger    logger.Interface
}

// NewListPlantsUseCase creates a new ListPlantsUseCase.
func NewListPlantsUseCase(planRepo plan.Repository, plantRepo plant.Repository, logger logger.Interface) *ListPlantsUseCase {
	return &ListPlantsUseCase{planRepo: planRepo, plantRepo: plantRepo, logger: logger}
}

// Execute returns one page of placements ordered by (plant_name, x, y)
// ascending.
func (uc *ListPlantsUseCase) Execute(ctx context.Context, q ListPlantsQuery) (*ListPlantsResult, error) {
	p, err := uc.planRepo.GetBySID(ctx, q.OwnerID, q.SID)
	if err != nil {
		return nil, err
	}

	var cur *cursor.PlacementCursor
	if q.Page.Cursor != "" {
		decoded, err := cursor.DecodePlacement(q.Page.Cursor)
		if err != nil {
			return nil, err
		}
		cur = &decoded
	}

	limit := q.Page.ClampedLimit(constants.DefaultPageSize)
	placements, next, err := uc.plantRepo.List(ctx, p.ID(), plant.ListFilter{NamePrefix: q.NamePrefix}, cur, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list placements: %w", err)
	}

	result := &ListPlantsResult{Placements: mapper.MapSlice(placements, dto.ToPlacementDTO)}
	if next != nil {
		token, err := cursor.EncodePlacement(*next)
		if err != nil {
			return nil, err
		}
		result.NextCursor = &token
	}
	return result, nil
}
