package repository

import (
	"context"
	"fmt"

	"verdant/internal/domain/plant"
	"verdant/internal/infrastructure/persistence/models"
	"verdant/internal/shared/cursor"
	"verdant/internal/shared/db"
	"verdant/internal/shared/keyset"
)

// placementKeyColumns is the composite sort key for placement listings.
// Duplicate plant names are common, so (x, y) breaks ties.
var placementKeyColumns = []string{"plant_name", "x", "y"}

// List retrieves one keyset page of placements in alphabetical plant order.
func (r *PlantPlacementRepositoryImpl) List(
	ctx context.Context,
	planID uint,
	filter plant.ListFilter,
	cur *cursor.PlacementCursor,
	limit int,
) ([]*plant.Placement, *cursor.PlacementCursor, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.PlantPlacementModel{}).Scopes(db.InPlan(planID))

	if filter.NamePrefix != "" {
		query = query.Where("plant_name LIKE ? ESCAPE '"+likeEscapeChar+"'", escapeLike(filter.NamePrefix)+"%")
	}

	if cur != nil {
		query = keyset.Continue(query, placementKeyColumns, keyset.Asc, []any{cur.PlantName, cur.X, cur.Y})
	}
	query = keyset.OrderBy(query, placementKeyColumns, keyset.Asc)

	rows, hasMore, err := keyset.Page[models.PlantPlacementModel](query, limit)
	if err != nil {
		r.logger.Errorw("failed to list placements", "plan_id", planID, "error", err)
		return nil, nil, fmt.Errorf("failed to list placements: %w", err)
	}

	entities := make([]*plant.Placement, len(rows))
	for i := range rows {
		entities[i] = toPlacementEntity(&rows[i])
	}

	var next *cursor.PlacementCursor
	if hasMore {
		last := rows[len(rows)-1]
		next = &cursor.PlacementCursor{PlantName: last.PlantName, X: last.X, Y: last.Y}
	}
	return entities, next, nil
}
