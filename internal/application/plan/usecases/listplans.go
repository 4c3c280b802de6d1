package usecases

import (
	"context"
	"fmt"

	"verdant/internal/application/plan/dto"
	"verdant/internal/domain/plan"
	"verdant/internal/shared/constants"
	"verdant/internal/shared/cursor"
	"verdant/internal/shared/logger"
	"verdant/internal/shared/mapper"
	"verdant/internal/shared/query"
)

// ListPlansQuery represents the input for listing an owner's plans.
type ListPlansQuery struct {
	OwnerID uint
	Name    string
	Page    query.PageRequest
}

// ListPlansResult is one keyset page of plans. A nil NextCursor means the
// listing is exhausted.
type ListPlansResult struct {
	Plans      []*dto.PlanDTO
	NextCursor *string
}

// ListPlansUseCase handles paginated plan listing.
type ListPlansUseCase struct {
	repo   plan.Repository
	logger logger.Interface
}

// NewListPlansUseCase creates a new ListPlansUseCase.
func NewListPlansUseCase(repo plan.Repository, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{repo: repo, logger: logger}
}

// Execute returns one page of the owner's plans ordered by
// (updated_at, id) descending.
func (uc *ListPlansUseCase) Execute(ctx context.Context, q ListPlansQuery) (*ListPlansResult, error) {
	var cur *cursor.PlanCursor
	if q.Page.Cursor != "" {
		decoded, err := cursor.DecodePlan(q.Page.Cursor)
		if err != nil {
			return nil, err
		}
		cur = &decoded
	}

	limit := q.Page.ClampedLimit(constants.DefaultPageSize)
	plans, next, err := uc.repo.List(ctx, q.OwnerID, plan.ListFilter{Name: q.Name}, cur, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	result := &ListPlansResult{Plans: mapper.MapSlice(plans, dto.ToPlanDTO)}
	if next != nil {
		token, err := cursor.EncodePlan(*next)
		if err != nil {
			return nil, err
		}
		result.NextCursor = &token
	}
	return result, nil
}
