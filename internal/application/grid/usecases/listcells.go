package usecases

import (
	"context"
	"fmt"

	"verdant/internal/application/grid/dto"
	"verdant/internal/domain/grid"
	"verdant/internal/domain/plan"
	"verdant/internal/shared/constants"
	"verdant/internal/shared/cursor"
	"verdant/internal/shared/logger"
	"verdant/internal/shared/mapper"
	"verdant/internal/shared/query"
)

// ListCellsQuery represents the input for listing a plan's materialized
// cells. Implicitly soil cells are never listed.
type ListCellsQuery struct {
	OwnerID uint
	SID     string
	Filter  grid.ListFilter
	Page    query.PageRequest
}

// ListCellsResult is one keyset page of cells. A nil NextCursor means the
// listing is exhausted.
type ListCellsResult struct {
	Cells      []*dto.CellDTO
	NextCursor *string
}

// ListCellsUseCase handles paginated grid cell listing.
type ListCellsUseCase struct {
	planRepo plan.Repository
	cellRepo grid.Repository
	logger   logger.Interface
}

// NewListCellsUseCase creates a new ListCellsUseCase.
func NewListCellsUseCase(planRepo plan.Repository, cellRepo grid.Repository, logger logger.Interface) *ListCellsUseCase {
	return &ListCellsUseCase{planRepo: planRepo, cellRepo: cellRepo, logger: logger}
}

// Execute returns one page of materialized cells ordered by
// (updated_at, x, y) descending.
func (uc *ListCellsUseCase) Execute(ctx context.Context, q ListCellsQuery) (*ListCellsResult, error) {
	if err := q.Filter.Validate(); err != nil {
		return nil, err
	}

	p, err := uc.planRepo.GetBySID(ctx, q.OwnerID, q.SID)
	if err != nil {
		return nil, err
	}
	if q.Filter.At != nil {
		if err := grid.ValidateCoordinate(q.Filter.At.X, q.Filter.At.Y, p.GridWidth(), p.GridHeight()); err != nil {
			return nil, err
		}
	}
	if q.Filter.Box != nil {
		if err := q.Filter.Box.Validate(p.GridWidth(), p.GridHeight()); err != nil {
			return nil, err
		}
	}

	var cur *cursor.CellCursor
	if q.Page.Cursor != "" {
		decoded, err := cursor.DecodeCell(q.Page.Cursor)
		if err != nil {
			return nil, err
		}
		cur = &decoded
	}

	limit := q.Page.ClampedLimit(constants.DefaultCellPageSize)
	cells, next, err := uc.cellRepo.List(ctx, p.ID(), q.Filter, cur, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list cells: %w", err)
	}

	result := &ListCellsResult{Cells: mapper.MapSlice(cells, dto.ToCellDTO)}
	if next != nil {
		token, err := cursor.EncodeCell(*next)
		if err != nil {
			return nil, err
		}
		result.NextCursor = &token
	}
	return result, nil
}
