// Package plant provides plant placement entities and fit scores.
package plant

import (
	"time"

	"verdant/internal/shared/errors"
)

// Scores holds the nullable 1-5 fit sub-scores and the overall score computed
// by the suggestion subsystem. The editor core stores them verbatim and never
// computes them.
type Scores struct {
	Sunlight      *int
	Humidity      *int
	Precipitation *int
	Temperature   *int
	Overall       *float64
}

// Validate checks that every present sub-score is within 1-5.
func (s Scores) Validate() error {
	for name, v := range map[string]*int{
		"sunlight":      s.Sunlight,
		"humidity":      s.Humidity,
		"precipitation": s.Precipitation,
		"temperature":   s.Temperature,
	} {
		if v != nil && (*v < 1 || *v > 5) {
			return errors.NewValidationError(name + " score must be between 1 and 5")
		}
	}
	return nil
}

// Placement represents a plant placed on a grid cell. Its identity is the
// composite (plan, x, y); at most one plant occupies a cell, and placements
// may only exist on soil cells (enforced by the caller layer).
type Placement struct {
	planID    uint
	x         int
	y         int
	plantName string
	scores    Scores
	createdAt time.Time
	updatedAt time.Time
}

// NewPlacement creates a placement with validated name and scores. Coordinate
// bounds and the soil-cell precondition are checked by the caller against the
// authoritative plan record.
func NewPlacement(planID uint, x, y int, plantName string, scores Scores) (*Placement, error) {
	if planID == 0 {
		return nil, errors.NewValidationError("plan ID is required")
	}
	if plantName == "" {
		return nil, errors.NewValidationError("plant name is required")
	}
	if err := scores.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Placement{
		planID:    planID,
		x:         x,
		y:         y,
		plantName: plantName,
		scores:    scores,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructPlacement rebuilds a placement from persisted state.
func ReconstructPlacement(planID uint, x, y int, plantName string, scores Scores, createdAt, updatedAt time.Time) *Placement {
	return &Placement{
		planID:    planID,
		x:         x,
		y:         y,
		plantName: plantName,
		scores:    scores,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (p *Placement) PlanID() uint         { return p.planID }
func (p *Placement) X() int               { return p.x }
func (p *Placement) Y() int               { return p.y }
func (p *Placement) PlantName() string    { return p.plantName }
func (p *Placement) Scores() Scores       { return p.scores }
func (p *Placement) CreatedAt() time.Time { return p.createdAt }
func (p *Placement) UpdatedAt() time.Time { return p.updatedAt }

// Replace swaps the plant and its scores in place, keeping the identity.
func (p *Placement) Replace(plantName string, scores Scores) error {
	if plantName == "" {
		return errors.NewValidationError("plant name is required")
	}
	if err := scores.Validate(); err != nil {
		return err
	}
	p.plantName = plantName
	p.scores = scores
	p.updatedAt = time.Now().UTC()
	return nil
}
