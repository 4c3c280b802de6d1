// Package query holds caller-facing pagination inputs shared by the list
// usecases.
package query

import "verdant/internal/shared/constants"

// PageRequest carries the pagination inputs of a keyset listing: an optional
// opaque cursor token and the requested page size.
type PageRequest struct {
	Cursor string
	Limit  int
}

// ClampedLimit normalizes the requested page size. Zero or negative means the
// caller did not ask for a size and gets def; anything above the maximum is
// clamped rather than rejected.
func (r PageRequest) ClampedLimit(def int) int {
	if r.Limit <= 0 {
		return def
	}
	if r.Limit > constants.MaxPageSize {
		return constants.MaxPageSize
	}
	if r.Limit < constants.MinPageSize {
		return constants.MinPageSize
	}
	return r.Limit
}
