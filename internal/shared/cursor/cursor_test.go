package cursor

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verdant/internal/shared/errors"
)

func TestPlanCursorRoundTrip(t *testing.T) {
	original := PlanCursor{
		UpdatedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		ID:        42,
	}

	token, err := EncodePlan(original)
	require.NoError(t, err)
	assert.NotContains(t, token, "=", "token must be unpadded")

	decoded, err := DecodePlan(token)
	require.NoError(t, err)
	assert.True(t, original.UpdatedAt.Equal(decoded.UpdatedAt))
	assert.Equal(t, original.ID, decoded.ID)
}

func TestCellCursorRoundTrip(t *testing.T) {
	original := CellCursor{
		UpdatedAt: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
		X:         7,
		Y:         0,
	}

	token, err := EncodeCell(original)
	require.NoError(t, err)

	decoded, err := DecodeCell(token)
	require.NoError(t, err)
	assert.True(t, original.UpdatedAt.Equal(decoded.UpdatedAt))
	assert.Equal(t, original.X, decoded.X)
	assert.Equal(t, original.Y, decoded.Y)
}

func TestPlacementCursorRoundTrip(t *testing.T) {
	original := PlacementCursor{PlantName: "Tomato 'San Marzano'", X: 3, Y: 12}

	token, err := EncodePlacement(original)
	require.NoError(t, err)

	decoded, err := DecodePlacement(token)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func encodeRaw(t *testing.T, payload string) string {
	t.Helper()
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

func TestDecodePlanRejectsMalformedTokens(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "not base64url",
			token: "!!not-base64!!",
		},
		{
			name:  "payload is not json",
			token: encodeRaw(t, "not json at all"),
		},
		{
			name:  "payload is a json array",
			token: encodeRaw(t, `["updated_at","id"]`),
		},
		{
			name:  "payload is json null",
			token: encodeRaw(t, `null`),
		},
		{
			name:  "missing id field",
			token: encodeRaw(t, `{"updated_at":"2026-03-14T09:26:53Z"}`),
		},
		{
			name:  "missing updated_at field",
			token: encodeRaw(t, `{"id":42}`),
		},
		{
			name:  "null id",
			token: encodeRaw(t, `{"updated_at":"2026-03-14T09:26:53Z","id":null}`),
		},
		{
			name:  "id has wrong type",
			token: encodeRaw(t, `{"updated_at":"2026-03-14T09:26:53Z","id":"42"}`),
		},
		{
			name:  "negative id",
			token: encodeRaw(t, `{"updated_at":"2026-03-14T09:26:53Z","id":-1}`),
		},
		{
			name:  "unparseable timestamp",
			token: encodeRaw(t, `{"updated_at":"last tuesday","id":42}`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePlan(tt.token)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidCursorError(err), "want invalid_cursor, got %v", err)
		})
	}
}

func TestDecodePlanIgnoresUnknownFields(t *testing.T) {
	token := encodeRaw(t, `{"updated_at":"2026-03-14T09:26:53Z","id":42,"future_field":"whatever"}`)

	decoded, err := DecodePlan(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), decoded.ID)
}

func TestDecodeCellRejectsFractionalCoordinate(t *testing.T) {
	token := encodeRaw(t, `{"updated_at":"2026-03-14T09:26:53Z","x":1.5,"y":0}`)

	_, err := DecodeCell(token)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidCursorError(err))
}

func TestDecodePlacementRejectsMissingName(t *testing.T) {
	token := encodeRaw(t, `{"x":3,"y":12}`)

	_, err := DecodePlacement(token)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidCursorError(err))
}

func TestCursorsAreNotInterchangeable(t *testing.T) {
	token, err := EncodePlacement(PlacementCursor{PlantName: "Basil", X: 1, Y: 2})
	require.NoError(t, err)

	_, err = DecodePlan(token)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidCursorError(err))
}
