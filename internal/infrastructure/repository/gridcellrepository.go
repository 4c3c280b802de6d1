package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"verdant/internal/domain/grid"
	"verdant/internal/infrastructure/persistence/models"
	"verdant/internal/shared/db"
	"verdant/internal/shared/logger"
)

// upsertBatchSize bounds the row count per INSERT when materializing a
// rectangle; a full 200x200 grid takes 80 batches.
const upsertBatchSize = 500

// GridCellRepositoryImpl is the GORM implementation of grid.Repository.
type GridCellRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewGridCellRepository creates a new grid cell repository.
func NewGridCellRepository(database *gorm.DB, logger logger.Interface) *GridCellRepositoryImpl {
	return &GridCellRepositoryImpl{db: database, logger: logger}
}

// GetAt retrieves the materialized cell at (x, y). A nil cell with a nil
// error means the coordinate has never been written and is implicitly soil.
func (r *GridCellRepositoryImpl) GetAt(ctx context.Context, planID uint, x, y int) (*grid.Cell, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.GridCellModel
	err := tx.Scopes(db.InPlan(planID)).Where("x = ? AND y = ?", x, y).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get grid cell", "plan_id", planID, "x", x, "y", y, "error", err)
		return nil, fmt.Errorf("failed to get grid cell: %w", err)
	}
	return toCellEntity(&model), nil
}

// UpsertType materializes or retypes a single cell.
func (r *GridCellRepositoryImpl) UpsertType(ctx context.Context, planID uint, x, y int, cellType grid.CellType) error {
	tx := db.GetTxFromContext(ctx, r.db)

	model := models.GridCellModel{
		PlanID:    planID,
		X:         x,
		Y:         y,
		CellType:  string(cellType),
		UpdatedAt: time.Now().UTC(),
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "plan_id"}, {Name: "x"}, {Name: "y"}},
		DoUpdates: clause.AssignmentColumns([]string{"cell_type", "updated_at"}),
	}).Create(&model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert grid cell", "plan_id", planID, "x", x, "y", y, "error", err)
		return fmt.Errorf("failed to upsert grid cell: %w", err)
	}
	return nil
}

// BulkSetTypeInRect materializes every coordinate in the rectangle with the
// given type. The affected count is the rectangle area: unwritten cells are
// created and existing ones retyped in the same upsert.
func (r *GridCellRepositoryImpl) BulkSetTypeInRect(ctx context.Context, planID uint, rect grid.Rect, cellType grid.CellType) (int, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	now := time.Now().UTC()
	rows := make([]models.GridCellModel, 0, rect.Area())
	for y := rect.Y1; y <= rect.Y2; y++ {
		for x := rect.X1; x <= rect.X2; x++ {
			rows = append(rows, models.GridCellModel{
				PlanID:    planID,
				X:         x,
				Y:         y,
				CellType:  string(cellType),
				UpdatedAt: now,
			})
		}
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "plan_id"}, {Name: "x"}, {Name: "y"}},
		DoUpdates: clause.AssignmentColumns([]string{"cell_type", "updated_at"}),
	}).CreateInBatches(&rows, upsertBatchSize).Error
	if err != nil {
		r.logger.Errorw("failed to bulk set cell type", "plan_id", planID, "error", err)
		return 0, fmt.Errorf("failed to bulk set cell type: %w", err)
	}
	return rect.Area(), nil
}

// CountByPlanID counts the materialized cells of a plan.
func (r *GridCellRepositoryImpl) CountByPlanID(ctx context.Context, planID uint) (int, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	if err := tx.Model(&models.GridCellModel{}).Scopes(db.InPlan(planID)).Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count grid cells", "plan_id", planID, "error", err)
		return 0, fmt.Errorf("failed to count grid cells: %w", err)
	}
	return int(count), nil
}

// DeleteByPlanID removes all cells of a plan during grid regeneration.
func (r *GridCellRepositoryImpl) DeleteByPlanID(ctx context.Context, planID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Scopes(db.InPlan(planID)).Delete(&models.GridCellModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete grid cells", "plan_id", planID, "error", err)
		return fmt.Errorf("failed to delete grid cells: %w", err)
	}
	return nil
}

func toCellEntity(m *models.GridCellModel) *grid.Cell {
	return grid.ReconstructCell(m.PlanID, m.X, m.Y, grid.CellType(m.CellType), m.UpdatedAt)
}
