package repository

import (
	"context"
	"fmt"

	"verdant/internal/domain/grid"
	"verdant/internal/infrastructure/persistence/models"
	"verdant/internal/shared/cursor"
	"verdant/internal/shared/db"
	"verdant/internal/shared/keyset"
)

// cellKeyColumns is the composite sort key for cell listings. Many cells
// share an updated_at after a bulk reclassification, so the (x, y) tie-break
// is what keeps the order total across pages.
var cellKeyColumns = []string{"updated_at", "x", "y"}

// List retrieves one keyset page of materialized cells, most recently
// modified first.
func (r *GridCellRepositoryImpl) List(
	ctx context.Context,
	planID uint,
	filter grid.ListFilter,
	cur *cursor.CellCursor,
	limit int,
) ([]*grid.Cell, *cursor.CellCursor, error) {
	if err := filter.Validate(); err != nil {
		return nil, nil, err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.GridCellModel{}).Scopes(db.InPlan(planID))

	if filter.Type != nil {
		query = query.Where("cell_type = ?", string(*filter.Type))
	}
	if filter.At != nil {
		query = query.Where("x = ? AND y = ?", filter.At.X, filter.At.Y)
	}
	if filter.Box != nil {
		query = query.Where("x BETWEEN ? AND ? AND y BETWEEN ? AND ?",
			filter.Box.X1, filter.Box.X2, filter.Box.Y1, filter.Box.Y2)
	}

	if cur != nil {
		query = keyset.Continue(query, cellKeyColumns, keyset.Desc, []any{cur.UpdatedAt, cur.X, cur.Y})
	}
	query = keyset.OrderBy(query, cellKeyColumns, keyset.Desc)

	rows, hasMore, err := keyset.Page[models.GridCellModel](query, limit)
	if err != nil {
		r.logger.Errorw("failed to list grid cells", "plan_id", planID, "error", err)
		return nil, nil, fmt.Errorf("failed to list grid cells: %w", err)
	}

	entities := make([]*grid.Cell, len(rows))
	for i := range rows {
		entities[i] = toCellEntity(&rows[i])
	}

	var next *cursor.CellCursor
	if hasMore {
		last := rows[len(rows)-1]
		next = &cursor.CellCursor{UpdatedAt: last.UpdatedAt, X: last.X, Y: last.Y}
	}
	return entities, next, nil
}
