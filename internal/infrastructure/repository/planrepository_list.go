package repository

import (
	"context"
	"fmt"

	"verdant/internal/domain/plan"
	"verdant/internal/infrastructure/persistence/models"
	"verdant/internal/shared/cursor"
	"verdant/internal/shared/db"
	"verdant/internal/shared/keyset"
)

// planKeyColumns is the composite sort key for plan listings. The id column
// breaks ties between plans sharing an updated_at value, making the order
// total so pages never skip or repeat rows.
var planKeyColumns = []string{"updated_at", "id"}

// List retrieves one keyset page of the owner's plans, most recently
// updated first.
func (r *PlanRepositoryImpl) List(
	ctx context.Context,
	ownerID uint,
	filter plan.ListFilter,
	cur *cursor.PlanCursor,
	limit int,
) ([]*plan.Plan, *cursor.PlanCursor, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.PlanModel{}).Scopes(db.OwnedBy(ownerID))

	if filter.Name != "" {
		query = query.Where("name LIKE ? ESCAPE '"+likeEscapeChar+"'", "%"+escapeLike(filter.Name)+"%")
	}

	if cur != nil {
		query = keyset.Continue(query, planKeyColumns, keyset.Desc, []any{cur.UpdatedAt, cur.ID})
	}
	query = keyset.OrderBy(query, planKeyColumns, keyset.Desc)

	rows, hasMore, err := keyset.Page[models.PlanModel](query, limit)
	if err != nil {
		r.logger.Errorw("failed to list plans", "owner_id", ownerID, "error", err)
		return nil, nil, fmt.Errorf("failed to list plans: %w", err)
	}

	entities := make([]*plan.Plan, len(rows))
	for i := range rows {
		entities[i] = toPlanEntity(&rows[i])
	}

	var next *cursor.PlanCursor
	if hasMore {
		last := rows[len(rows)-1]
		next = &cursor.PlanCursor{UpdatedAt: last.UpdatedAt, ID: last.ID}
	}
	return entities, next, nil
}
