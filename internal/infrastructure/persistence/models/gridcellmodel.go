package models

import (
	"time"

	"verdant/internal/shared/constants"
)

// GridCellModel persists materialized grid cells. A cell row exists only once
// something has been written at its coordinate; in-bounds coordinates without
// a row are implicitly soil.
type GridCellModel struct {
	ID        uint      `gorm:"primarykey"`
	PlanID    uint      `gorm:"uniqueIndex:idx_cell_plan_xy;not null"`
	X         int       `gorm:"uniqueIndex:idx_cell_plan_xy;not null"`
	Y         int       `gorm:"uniqueIndex:idx_cell_plan_xy;not null"`
	CellType  string    `gorm:"not null;size:20"`
	UpdatedAt time.Time `gorm:"index"`
}

// TableName specifies the table name for GORM
func (GridCellModel) TableName() string {
	return constants.TableGridCells
}
