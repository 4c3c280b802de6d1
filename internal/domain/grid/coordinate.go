package grid

import (
	"fmt"

	"verdant/internal/shared/errors"
)

// ValidateCoordinate checks that (x, y) lies inside a grid of the given
// dimensions: 0 <= x < gridWidth and 0 <= y < gridHeight. Grid dimensions
// must come from a freshly loaded plan record, never from caller input,
// because bounds can change between requests.
func ValidateCoordinate(x, y, gridWidth, gridHeight int) error {
	if x < 0 || x >= gridWidth {
		return errors.NewOutOfBoundsError(
			fmt.Sprintf("x=%d is outside the grid (width %d)", x, gridWidth))
	}
	if y < 0 || y >= gridHeight {
		return errors.NewOutOfBoundsError(
			fmt.Sprintf("y=%d is outside the grid (height %d)", y, gridHeight))
	}
	return nil
}

// Point is a single grid coordinate.
type Point struct {
	X int
	Y int
}

// Rect is an inclusive rectangle of grid coordinates.
type Rect struct {
	X1 int
	Y1 int
	X2 int
	Y2 int
}

// Validate checks corner ordering and that all four corners are in bounds.
func (r Rect) Validate(gridWidth, gridHeight int) error {
	if r.X1 > r.X2 {
		return errors.NewValidationError(fmt.Sprintf("x1=%d must not exceed x2=%d", r.X1, r.X2))
	}
	if r.Y1 > r.Y2 {
		return errors.NewValidationError(fmt.Sprintf("y1=%d must not exceed y2=%d", r.Y1, r.Y2))
	}
	if err := ValidateCoordinate(r.X1, r.Y1, gridWidth, gridHeight); err != nil {
		return err
	}
	return ValidateCoordinate(r.X2, r.Y2, gridWidth, gridHeight)
}

// Area is the number of cells covered by the rectangle.
func (r Rect) Area() int {
	return (r.X2 - r.X1 + 1) * (r.Y2 - r.Y1 + 1)
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}
