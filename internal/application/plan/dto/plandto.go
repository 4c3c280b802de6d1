// Package dto contains the plan data transfer objects returned by usecases.
package dto

import (
	"time"

	"verdant/internal/domain/plan"
)

// LocationDTO is the optional geographic anchor of a plan.
type LocationDTO struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Hemisphere string  `json:"hemisphere"`
}

// PlanDTO is the API representation of a plan. GridWidth and GridHeight are
// derived from the geometry on every read.
type PlanDTO struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Location    *LocationDTO `json:"location"`
	WidthCM     int          `json:"width_cm"`
	HeightCM    int          `json:"height_cm"`
	CellSizeCM  int          `json:"cell_size_cm"`
	Orientation int          `json:"orientation"`
	GridWidth   int          `json:"grid_width"`
	GridHeight  int          `json:"grid_height"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ToPlanDTO maps a plan entity to its API representation.
func ToPlanDTO(p *plan.Plan) *PlanDTO {
	var location *LocationDTO
	if loc := p.Location(); loc != nil {
		location = &LocationDTO{
			Latitude:   loc.Latitude,
			Longitude:  loc.Longitude,
			Hemisphere: string(loc.Hemisphere),
		}
	}
	return &PlanDTO{
		ID:          p.SID(),
		Name:        p.Name(),
		Location:    location,
		WidthCM:     p.WidthCM(),
		HeightCM:    p.HeightCM(),
		CellSizeCM:  p.CellSizeCM(),
		Orientation: p.Orientation(),
		GridWidth:   p.GridWidth(),
		GridHeight:  p.GridHeight(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}
