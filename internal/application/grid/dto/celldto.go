// Package dto contains the grid cell data transfer objects.
package dto

import (
	"time"

	"verdant/internal/domain/grid"
)

// CellDTO is the API representation of a materialized grid cell.
type CellDTO struct {
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Type      string    `json:"type"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCellDTO maps a cell entity to its API representation.
func ToCellDTO(c *grid.Cell) *CellDTO {
	return &CellDTO{
		X:         c.X(),
		Y:         c.Y(),
		Type:      string(c.Type()),
		UpdatedAt: c.UpdatedAt(),
	}
}
