package plan

import (
	"fmt"

	"verdant/internal/shared/errors"
)

// Grid geometry limits. Physical dimensions must divide exactly by the cell
// size and the resulting grid must stay within the editor's renderable range.
const (
	MinGridDimension = 1
	MaxGridDimension = 200
)

// AllowedCellSizes are the supported cell edge lengths in centimeters.
var AllowedCellSizes = []int{10, 25, 50, 100}

// IsAllowedCellSize reports whether cellSizeCM is a supported cell size.
func IsAllowedCellSize(cellSizeCM int) bool {
	for _, s := range AllowedCellSizes {
		if cellSizeCM == s {
			return true
		}
	}
	return false
}

// GridDimensions computes the derived grid size for the given geometry.
// It assumes the geometry has already passed ValidateGeometry.
func GridDimensions(widthCM, heightCM, cellSizeCM int) (gridWidth, gridHeight int) {
	return widthCM / cellSizeCM, heightCM / cellSizeCM
}

// ValidateGeometry checks the plan geometry invariants: supported cell size,
// exact divisibility of both physical dimensions, and derived grid dimensions
// within [MinGridDimension, MaxGridDimension].
func ValidateGeometry(widthCM, heightCM, cellSizeCM int) error {
	if !IsAllowedCellSize(cellSizeCM) {
		return errors.NewInvalidGeometryError(
			fmt.Sprintf("cell size must be one of %v cm, got %d", AllowedCellSizes, cellSizeCM))
	}
	if widthCM <= 0 || heightCM <= 0 {
		return errors.NewInvalidGeometryError("width and height must be positive")
	}
	if widthCM%cellSizeCM != 0 {
		return errors.NewInvalidGeometryError(
			fmt.Sprintf("width %d cm is not divisible by cell size %d cm", widthCM, cellSizeCM))
	}
	if heightCM%cellSizeCM != 0 {
		return errors.NewInvalidGeometryError(
			fmt.Sprintf("height %d cm is not divisible by cell size %d cm", heightCM, cellSizeCM))
	}

	gridWidth, gridHeight := GridDimensions(widthCM, heightCM, cellSizeCM)
	if gridWidth < MinGridDimension || gridWidth > MaxGridDimension {
		return errors.NewInvalidGeometryError(
			fmt.Sprintf("grid width %d is outside [%d,%d]", gridWidth, MinGridDimension, MaxGridDimension))
	}
	if gridHeight < MinGridDimension || gridHeight > MaxGridDimension {
		return errors.NewInvalidGeometryError(
			fmt.Sprintf("grid height %d is outside [%d,%d]", gridHeight, MinGridDimension, MaxGridDimension))
	}
	return nil
}
