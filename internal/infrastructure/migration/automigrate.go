package migration

import (
	"verdant/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.PlanModel{},
		&models.GridCellModel{},
		&models.PlantPlacementModel{},
	}
}
