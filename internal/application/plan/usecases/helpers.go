package usecases

import (
	"verdant/internal/domain/plan"
	"verdant/internal/shared/errors"
)

// locationFromParts assembles the optional location value object. All three
// parts must be present together or absent together.
func locationFromParts(lat, lon *float64, hemisphere string) (*plan.Location, error) {
	if lat == nil && lon == nil && hemisphere == "" {
		return nil, nil
	}
	if lat == nil || lon == nil || hemisphere == "" {
		return nil, errors.NewValidationError("latitude, longitude, and hemisphere must be provided together")
	}
	location := &plan.Location{
		Latitude:   *lat,
		Longitude:  *lon,
		Hemisphere: plan.Hemisphere(hemisphere),
	}
	if err := location.Validate(); err != nil {
		return nil, err
	}
	return location, nil
}
