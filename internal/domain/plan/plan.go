// Package plan provides the garden plan aggregate and its geometry rules.
package plan

import (
	"time"

	"verdant/internal/shared/errors"
)

// Hemisphere indicates which half of the globe a plan's location is in.
type Hemisphere string

const (
	HemisphereNorth Hemisphere = "N"
	HemisphereSouth Hemisphere = "S"
)

// IsValid reports whether the hemisphere value is one of the known constants.
func (h Hemisphere) IsValid() bool {
	return h == HemisphereNorth || h == HemisphereSouth
}

// Location is an optional geographic anchor for a plan.
type Location struct {
	Latitude   float64
	Longitude  float64
	Hemisphere Hemisphere
}

// Validate checks the coordinate ranges and hemisphere value.
func (l Location) Validate() error {
	if l.Latitude < -90 || l.Latitude > 90 {
		return errors.NewValidationError("latitude must be between -90 and 90")
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return errors.NewValidationError("longitude must be between -180 and 180")
	}
	if !l.Hemisphere.IsValid() {
		return errors.NewValidationError("hemisphere must be N or S")
	}
	return nil
}

// Plan represents the garden plan aggregate root. Its grid dimensions are
// derived from the physical size and cell size on every read and are never
// stored, so they cannot drift from the geometry fields.
type Plan struct {
	id          uint
	sid         string // public Stripe-style ID (pl_xxx)
	ownerID     uint
	name        string
	location    *Location
	widthCM     int
	heightCM    int
	cellSizeCM  int
	orientation int // degrees clockwise from north, [0,359]
	createdAt   time.Time
	updatedAt   time.Time
}

// NewPlan creates a plan, validating its geometry and metadata.
// sidGenerator supplies the public plan ID.
func NewPlan(
	ownerID uint,
	name string,
	location *Location,
	widthCM, heightCM, cellSizeCM int,
	orientation int,
	sidGenerator func() (string, error),
) (*Plan, error) {
	if ownerID == 0 {
		return nil, errors.NewValidationError("owner ID is required")
	}
	if name == "" {
		return nil, errors.NewValidationError("plan name is required")
	}
	if orientation < 0 || orientation > 359 {
		return nil, errors.NewValidationError("orientation must be between 0 and 359 degrees")
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
	}
	if err := ValidateGeometry(widthCM, heightCM, cellSizeCM); err != nil {
		return nil, err
	}

	sid, err := sidGenerator()
	if err != nil {
		return nil, errors.NewInternalError("failed to generate plan ID", err.Error())
	}

	now := time.Now().UTC()
	return &Plan{
		sid:         sid,
		ownerID:     ownerID,
		name:        name,
		location:    location,
		widthCM:     widthCM,
		heightCM:    heightCM,
		cellSizeCM:  cellSizeCM,
		orientation: orientation,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructPlan rebuilds a plan from persisted state. It performs no
// validation; the row was validated when it was written.
func ReconstructPlan(
	id uint,
	sid string,
	ownerID uint,
	name string,
	location *Location,
	widthCM, heightCM, cellSizeCM int,
	orientation int,
	createdAt, updatedAt time.Time,
) *Plan {
	return &Plan{
		id:          id,
		sid:         sid,
		ownerID:     ownerID,
		name:        name,
		location:    location,
		widthCM:     widthCM,
		heightCM:    heightCM,
		cellSizeCM:  cellSizeCM,
		orientation: orientation,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (p *Plan) ID() uint             { return p.id }
func (p *Plan) SID() string          { return p.sid }
func (p *Plan) OwnerID() uint        { return p.ownerID }
func (p *Plan) Name() string         { return p.name }
func (p *Plan) Location() *Location  { return p.location }
func (p *Plan) WidthCM() int         { return p.widthCM }
func (p *Plan) HeightCM() int        { return p.heightCM }
func (p *Plan) CellSizeCM() int      { return p.cellSizeCM }
func (p *Plan) Orientation() int     { return p.orientation }
func (p *Plan) CreatedAt() time.Time { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time { return p.updatedAt }

// GridWidth is the derived number of grid columns.
func (p *Plan) GridWidth() int { return p.widthCM / p.cellSizeCM }

// GridHeight is the derived number of grid rows.
func (p *Plan) GridHeight() int { return p.heightCM / p.cellSizeCM }

// SetID assigns the database identity after persistence.
func (p *Plan) SetID(id uint) { p.id = id }

// Rename changes the plan name. Never destructive.
func (p *Plan) Rename(name string) error {
	if name == "" {
		return errors.NewValidationError("plan name is required")
	}
	p.name = name
	p.touch()
	return nil
}

// SetLocation replaces the optional geographic location. Never destructive.
func (p *Plan) SetLocation(location *Location) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}
	p.location = location
	p.touch()
	return nil
}

// SetOrientation changes the plan orientation. Never destructive.
func (p *Plan) SetOrientation(degrees int) error {
	if degrees < 0 || degrees > 359 {
		return errors.NewValidationError("orientation must be between 0 and 359 degrees")
	}
	p.orientation = degrees
	p.touch()
	return nil
}

// UpdateGeometry replaces the physical size and cell size. The caller is
// responsible for gating this behind confirmation when the resulting grid
// dimensions change, because regeneration discards all cells and placements.
func (p *Plan) UpdateGeometry(widthCM, heightCM, cellSizeCM int) error {
	if err := ValidateGeometry(widthCM, heightCM, cellSizeCM); err != nil {
		return err
	}
	p.widthCM = widthCM
	p.heightCM = heightCM
	p.cellSizeCM = cellSizeCM
	p.touch()
	return nil
}

func (p *Plan) touch() {
	p.updatedAt = time.Now().UTC()
}
