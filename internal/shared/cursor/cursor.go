// Package cursor encodes and decodes opaque keyset pagination cursors.
//
// A cursor is the composite sort key of the last row of a page, serialized to
// JSON and wrapped in unpadded URL-safe base64 so it survives being embedded
// in a query parameter. Cursors are computed per page and never stored.
//
// Decoding is tolerant of unknown extra fields so the payloads can grow
// without breaking older clients, but strict about everything else: missing
// fields, wrong primitive types, and unparseable timestamps all fail with an
// invalid_cursor error.
package cursor

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"time"

	"verdant/internal/shared/errors"
)

// PlanCursor marks the continuation boundary in a plan listing,
// ordered by (updated_at, id).
type PlanCursor struct {
	UpdatedAt time.Time `json:"updated_at"`
	ID        uint      `json:"id"`
}

// CellCursor marks the continuation boundary in a grid cell listing,
// ordered by (updated_at, x, y).
type CellCursor struct {
	UpdatedAt time.Time `json:"updated_at"`
	X         int       `json:"x"`
	Y         int       `json:"y"`
}

// PlacementCursor marks the continuation boundary in a plant placement
// listing, ordered by (plant_name, x, y).
type PlacementCursor struct {
	PlantName string `json:"plant_name"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

// EncodePlan encodes a plan cursor to an opaque token.
func EncodePlan(c PlanCursor) (string, error) {
	return encode(c)
}

// EncodeCell encodes a grid cell cursor to an opaque token.
func EncodeCell(c CellCursor) (string, error) {
	return encode(c)
}

// EncodePlacement encodes a plant placement cursor to an opaque token.
func EncodePlacement(c PlacementCursor) (string, error) {
	return encode(c)
}

// DecodePlan decodes a plan cursor token.
func DecodePlan(token string) (PlanCursor, error) {
	var c PlanCursor
	fields, err := decodeToken(token)
	if err != nil {
		return c, err
	}
	if err := extract(fields, "updated_at", &c.UpdatedAt); err != nil {
		return PlanCursor{}, err
	}
	if err := extract(fields, "id", &c.ID); err != nil {
		return PlanCursor{}, err
	}
	return c, nil
}

// DecodeCell decodes a grid cell cursor token.
func DecodeCell(token string) (CellCursor, error) {
	var c CellCursor
	fields, err := decodeToken(token)
	if err != nil {
		return c, err
	}
	if err := extract(fields, "updated_at", &c.UpdatedAt); err != nil {
		return CellCursor{}, err
	}
	if err := extract(fields, "x", &c.X); err != nil {
		return CellCursor{}, err
	}
	if err := extract(fields, "y", &c.Y); err != nil {
		return CellCursor{}, err
	}
	return c, nil
}

// DecodePlacement decodes a plant placement cursor token.
func DecodePlacement(token string) (PlacementCursor, error) {
	var c PlacementCursor
	fields, err := decodeToken(token)
	if err != nil {
		return c, err
	}
	if err := extract(fields, "plant_name", &c.PlantName); err != nil {
		return PlacementCursor{}, err
	}
	if err := extract(fields, "x", &c.X); err != nil {
		return PlacementCursor{}, err
	}
	if err := extract(fields, "y", &c.Y); err != nil {
		return PlacementCursor{}, err
	}
	return c, nil
}

func encode(payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", errors.NewInternalError("failed to encode cursor", err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// decodeToken unwraps the transport encoding and the JSON envelope. The field
// map keeps unknown keys around but only the named fields are ever extracted.
func decodeToken(token string) (map[string]json.RawMessage, error) {
	if token == "" {
		return nil, errors.NewInvalidCursorError("cursor must not be empty")
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, errors.NewInvalidCursorError("cursor is not valid base64url")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, errors.NewInvalidCursorError("cursor payload is not a JSON object")
	}
	return fields, nil
}

// extract reads one named field into out. A missing field, a JSON null, a
// wrong primitive type, and an unparseable timestamp are all invalid_cursor
// failures; extra fields in the payload are deliberately ignored.
func extract(fields map[string]json.RawMessage, name string, out any) error {
	raw, ok := fields[name]
	if !ok {
		return errors.NewInvalidCursorError("cursor is missing a required field", name)
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return errors.NewInvalidCursorError("cursor field must not be null", name)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.NewInvalidCursorError("cursor field has the wrong type", name)
	}
	return nil
}
