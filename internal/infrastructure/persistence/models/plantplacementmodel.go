package models

import (
	"time"

	"verdant/internal/shared/constants"
)

// PlantPlacementModel persists plant placements. Scores are nullable because
// the suggestion subsystem may not have rated every placement.
type PlantPlacementModel struct {
	ID                 uint   `gorm:"primarykey"`
	PlanID             uint   `gorm:"uniqueIndex:idx_placement_plan_xy;not null"`
	X                  int    `gorm:"uniqueIndex:idx_placement_plan_xy;not null"`
	Y                  int    `gorm:"uniqueIndex:idx_placement_plan_xy;not null"`
	PlantName          string `gorm:"not null;size:120;index"`
	SunlightScore      *int
	HumidityScore      *int
	PrecipitationScore *int
	TemperatureScore   *int
	OverallScore       *float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the table name for GORM
func (PlantPlacementModel) TableName() string {
	return constants.TablePlantPlacements
}
