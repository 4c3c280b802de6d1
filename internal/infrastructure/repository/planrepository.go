package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"verdant/internal/domain/plan"
	"verdant/internal/infrastructure/persistence/models"
	"verdant/internal/shared/db"
	apperrors "verdant/internal/shared/errors"
	"verdant/internal/shared/logger"
)

// PlanRepositoryImpl is the GORM implementation of plan.Repository.
type PlanRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewPlanRepository creates a new plan repository.
func NewPlanRepository(database *gorm.DB, logger logger.Interface) *PlanRepositoryImpl {
	return &PlanRepositoryImpl{db: database, logger: logger}
}

// Create persists a new plan and assigns its database identity.
func (r *PlanRepositoryImpl) Create(ctx context.Context, p *plan.Plan) error {
	tx := db.GetTxFromContext(ctx, r.db)
	model := toPlanModel(p)

	if err := tx.Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("a plan with this ID already exists")
		}
		r.logger.Errorw("failed to create plan", "owner_id", p.OwnerID(), "error", err)
		return fmt.Errorf("failed to create plan: %w", err)
	}

	p.SetID(model.ID)
	return nil
}

// GetBySID retrieves a plan by public ID, scoped to the owner. Absent and
// not-owned plans are indistinguishable to the caller.
func (r *PlanRepositoryImpl) GetBySID(ctx context.Context, ownerID uint, sid string) (*plan.Plan, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.PlanModel
	err := tx.Scopes(db.OwnedBy(ownerID)).Where("sid = ?", sid).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("plan not found", sid)
		}
		r.logger.Errorw("failed to get plan", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return toPlanEntity(&model), nil
}

// Update persists the mutable plan fields with an owner-scoped conditional
// update. Zero affected rows means the row changed or vanished concurrently.
func (r *PlanRepositoryImpl) Update(ctx context.Context, p *plan.Plan) error {
	tx := db.GetTxFromContext(ctx, r.db)

	updates := planUpdateColumns(p)
	result := tx.Model(&models.PlanModel{}).
		Where("id = ? AND owner_id = ?", p.ID(), p.OwnerID()).
		Updates(updates)
	if result.Error != nil {
		r.logger.Errorw("failed to update plan", "id", p.ID(), "error", result.Error)
		return fmt.Errorf("failed to update plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConflictError("plan was modified or removed concurrently")
	}
	return nil
}

// Delete removes a plan. The cell and placement cascade is owned by the
// storage layer (foreign keys in SQL migrations, explicit deletes in the
// regeneration transaction).
func (r *PlanRepositoryImpl) Delete(ctx context.Context, ownerID uint, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.PlanModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete plan", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("plan not found")
	}
	return nil
}

func planUpdateColumns(p *plan.Plan) map[string]any {
	var lat, lon *float64
	var hemisphere *string
	if loc := p.Location(); loc != nil {
		lat = &loc.Latitude
		lon = &loc.Longitude
		h := string(loc.Hemisphere)
		hemisphere = &h
	}
	return map[string]any{
		"name":         p.Name(),
		"latitude":     lat,
		"longitude":    lon,
		"hemisphere":   hemisphere,
		"width_cm":     p.WidthCM(),
		"height_cm":    p.HeightCM(),
		"cell_size_cm": p.CellSizeCM(),
		"orientation":  p.Orientation(),
		"updated_at":   p.UpdatedAt(),
	}
}

func toPlanModel(p *plan.Plan) *models.PlanModel {
	model := &models.PlanModel{
		ID:          p.ID(),
		SID:         p.SID(),
		OwnerID:     p.OwnerID(),
		Name:        p.Name(),
		WidthCM:     p.WidthCM(),
		HeightCM:    p.HeightCM(),
		CellSizeCM:  p.CellSizeCM(),
		Orientation: p.Orientation(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
	if loc := p.Location(); loc != nil {
		model.Latitude = &loc.Latitude
		model.Longitude = &loc.Longitude
		h := string(loc.Hemisphere)
		model.Hemisphere = &h
	}
	return model
}

func toPlanEntity(m *models.PlanModel) *plan.Plan {
	var location *plan.Location
	if m.Latitude != nil && m.Longitude != nil && m.Hemisphere != nil {
		location = &plan.Location{
			Latitude:   *m.Latitude,
			Longitude:  *m.Longitude,
			Hemisphere: plan.Hemisphere(*m.Hemisphere),
		}
	}
	return plan.ReconstructPlan(
		m.ID,
		m.SID,
		m.OwnerID,
		m.Name,
		location,
		m.WidthCM,
		m.HeightCM,
		m.CellSizeCM,
		m.Orientation,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
