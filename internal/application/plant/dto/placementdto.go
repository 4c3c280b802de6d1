// Package dto contains the plant placement data transfer objects.
package dto

import (
	"time"

	"verdant/internal/domain/plant"
)

// ScoresDTO carries the nullable fit scores supplied by the suggestion
// subsystem. The editor stores them verbatim.
type ScoresDTO struct {
	Sunlight      *int     `json:"sunlight"`
	Humidity      *int     `json:"humidity"`
	Precipitation *int     `json:"precipitation"`
	Temperature   *int     `json:"temperature"`
	Overall       *float64 `json:"overall"`
}

// PlacementDTO is the API representation of a plant placement.
type PlacementDTO struct {
	X         int       `json:"x"`
	Y         int       `json:"y"`
	PlantName string    `json:"plant_name"`
	Scores    ScoresDTO `json:"scores"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToPlacementDTO maps a placement entity to its API representation.
func ToPlacementDTO(p *plant.Placement) *PlacementDTO {
	scores := p.Scores()
	return &PlacementDTO{
		X:         p.X(),
		Y:         p.Y(),
		PlantName: p.PlantName(),
		Scores: ScoresDTO{
			Sunlight:      scores.Sunlight,
			Humidity:      scores.Humidity,
			Precipitation: scores.Precipitation,
			Temperature:   scores.Temperature,
			Overall:       scores.Overall,
		},
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}
