// Package models contains the GORM persistence models. They are the
// anti-corruption layer between the domain entities and the database schema.
package models

import (
	"time"

	"gorm.io/gorm"

	"verdant/internal/shared/constants"
)

// PlanModel persists garden plans. Grid dimensions are deliberately absent:
// they are derived from width_cm/height_cm and cell_size_cm on every read.
type PlanModel struct {
	ID          uint           `gorm:"primarykey"`
	SID         string         `gorm:"column:sid;uniqueIndex;not null;size:20"`
	OwnerID     uint           `gorm:"index;not null"`
	Name        string         `gorm:"not null;size:100"`
	Latitude    *float64
	Longitude   *float64
	Hemisphere  *string        `gorm:"size:1"`
	WidthCM     int            `gorm:"not null"`
	HeightCM    int            `gorm:"not null"`
	CellSizeCM  int            `gorm:"not null"`
	Orientation int            `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time      `gorm:"index"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (PlanModel) TableName() string {
	return constants.TablePlans
}
