package db

import (
	"gorm.io/gorm"
)

// NotDeleted is a GORM scope that filters out soft-deleted records.
// Use it with Model().Where().Count() patterns that may not apply
// soft delete filtering automatically.
func NotDeleted() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("deleted_at IS NULL")
	}
}

// OwnedBy scopes a query to rows belonging to the given owner. Every plan
// query goes through this scope so ownership is re-checked on each call.
func OwnedBy(ownerID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", ownerID)
	}
}

// InPlan scopes a query to rows belonging to the given plan.
func InPlan(planID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("plan_id = ?", planID)
	}
}
