// Package constants centralizes environment names, pagination limits,
// context keys, and database table names.
package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Keyset pagination limits. Limits outside [MinPageSize, MaxPageSize]
	// are clamped, not rejected.
	MinPageSize         = 1
	MaxPageSize         = 100
	DefaultPageSize     = 20
	DefaultCellPageSize = 50

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"

	// Database table names
	TablePlans           = "plans"
	TableGridCells       = "grid_cells"
	TablePlantPlacements = "plant_placements"
)
