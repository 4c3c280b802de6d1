package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"verdant/internal/domain/grid"
	"verdant/internal/domain/plant"
	"verdant/internal/infrastructure/persistence/models"
	"verdant/internal/shared/db"
	apperrors "verdant/internal/shared/errors"
	"verdant/internal/shared/logger"
)

// PlantPlacementRepositoryImpl is the GORM implementation of plant.Repository.
type PlantPlacementRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewPlantPlacementRepository creates a new plant placement repository.
func NewPlantPlacementRepository(database *gorm.DB, logger logger.Interface) *PlantPlacementRepositoryImpl {
	return &PlantPlacementRepositoryImpl{db: database, logger: logger}
}

// GetAt retrieves the placement at (x, y).
func (r *PlantPlacementRepositoryImpl) GetAt(ctx context.Context, planID uint, x, y int) (*plant.Placement, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.PlantPlacementModel
	err := tx.Scopes(db.InPlan(planID)).Where("x = ? AND y = ?", x, y).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("no plant at this cell")
		}
		r.logger.Errorw("failed to get placement", "plan_id", planID, "x", x, "y", y, "error", err)
		return nil, fmt.Errorf("failed to get placement: %w", err)
	}
	return toPlacementEntity(&model), nil
}

// Place persists a new placement. A concurrent placement on the same cell
// surfaces as a conflict through the composite unique index.
func (r *PlantPlacementRepositoryImpl) Place(ctx context.Context, p *plant.Placement) error {
	tx := db.GetTxFromContext(ctx, r.db)

	model := toPlacementModel(p)
	if err := tx.Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("a plant already occupies this cell")
		}
		r.logger.Errorw("failed to place plant", "plan_id", p.PlanID(), "x", p.X(), "y", p.Y(), "error", err)
		return fmt.Errorf("failed to place plant: %w", err)
	}
	return nil
}

// Update persists changes to an existing placement via a scoped conditional
// update. Zero affected rows means it was removed concurrently.
func (r *PlantPlacementRepositoryImpl) Update(ctx context.Context, p *plant.Placement) error {
	tx := db.GetTxFromContext(ctx, r.db)

	scores := p.Scores()
	result := tx.Model(&models.PlantPlacementModel{}).
		Where("plan_id = ? AND x = ? AND y = ?", p.PlanID(), p.X(), p.Y()).
		Updates(map[string]any{
			"plant_name":          p.PlantName(),
			"sunlight_score":      scores.Sunlight,
			"humidity_score":      scores.Humidity,
			"precipitation_score": scores.Precipitation,
			"temperature_score":   scores.Temperature,
			"overall_score":       scores.Overall,
			"updated_at":          p.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update placement", "plan_id", p.PlanID(), "x", p.X(), "y", p.Y(), "error", result.Error)
		return fmt.Errorf("failed to update placement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConflictError("placement was removed concurrently")
	}
	return nil
}

// Remove deletes the placement at (x, y).
func (r *PlantPlacementRepositoryImpl) Remove(ctx context.Context, planID uint, x, y int) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Scopes(db.InPlan(planID)).Where("x = ? AND y = ?", x, y).Delete(&models.PlantPlacementModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to remove placement", "plan_id", planID, "x", x, "y", y, "error", result.Error)
		return fmt.Errorf("failed to remove placement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("no plant at this cell")
	}
	return nil
}

// CountInRect counts placements inside the rectangle without reading rows.
// This is the impact probe for area reclassification, so it must not mutate
// anything.
func (r *PlantPlacementRepositoryImpl) CountInRect(ctx context.Context, planID uint, rect grid.Rect) (int, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	err := tx.Model(&models.PlantPlacementModel{}).
		Scopes(db.InPlan(planID)).
		Where("x BETWEEN ? AND ? AND y BETWEEN ? AND ?", rect.X1, rect.X2, rect.Y1, rect.Y2).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count placements in rect", "plan_id", planID, "error", err)
		return 0, fmt.Errorf("failed to count placements: %w", err)
	}
	return int(count), nil
}

// DeleteInRect removes every placement inside the rectangle. It runs after
// the covered cells were retyped, in the same transaction.
func (r *PlantPlacementRepositoryImpl) DeleteInRect(ctx context.Context, planID uint, rect grid.Rect) (int, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Scopes(db.InPlan(planID)).
		Where("x BETWEEN ? AND ? AND y BETWEEN ? AND ?", rect.X1, rect.X2, rect.Y1, rect.Y2).
		Delete(&models.PlantPlacementModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete placements in rect", "plan_id", planID, "error", result.Error)
		return 0, fmt.Errorf("failed to delete placements: %w", result.Error)
	}
	return int(result.RowsAffected), nil
}

// CountByPlanID counts all placements of a plan.
func (r *PlantPlacementRepositoryImpl) CountByPlanID(ctx context.Context, planID uint) (int, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	if err := tx.Model(&models.PlantPlacementModel{}).Scopes(db.InPlan(planID)).Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count placements", "plan_id", planID, "error", err)
		return 0, fmt.Errorf("failed to count placements: %w", err)
	}
	return int(count), nil
}

// DeleteByPlanID removes all placements of a plan during grid regeneration.
func (r *PlantPlacementRepositoryImpl) DeleteByPlanID(ctx context.Context, planID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Scopes(db.InPlan(planID)).Delete(&models.PlantPlacementModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete placements", "plan_id", planID, "error", err)
		return fmt.Errorf("failed to delete placements: %w", err)
	}
	return nil
}

func toPlacementModel(p *plant.Placement) *models.PlantPlacementModel {
	scores := p.Scores()
	return &models.PlantPlacementModel{
		PlanID:             p.PlanID(),
		X:                  p.X(),
		Y:                  p.Y(),
		PlantName:          p.PlantName(),
		SunlightScore:      scores.Sunlight,
		HumidityScore:      scores.Humidity,
		PrecipitationScore: scores.Precipitation,
		TemperatureScore:   scores.Temperature,
		OverallScore:       scores.Overall,
		CreatedAt:          p.CreatedAt(),
		UpdatedAt:          p.UpdatedAt(),
	}
}

func toPlacementEntity(m *models.PlantPlacementModel) *plant.Placement {
	return plant.ReconstructPlacement(
		m.PlanID,
		m.X,
		m.Y,
		m.PlantName,
		plant.Scores{
			Sunlight:      m.SunlightScore,
			Humidity:      m.HumidityScore,
			Precipitation: m.PrecipitationScore,
			Temperature:   m.TemperatureScore,
			Overall:       m.OverallScore,
		},
		m.CreatedAt,
		m.UpdatedAt,
	)
}
