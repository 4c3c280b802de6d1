package confirm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImpactDestructive(t *testing.T) {
	tests := []struct {
		name   string
		impact Impact
		want   bool
	}{
		{
			name:   "empty impact is not destructive",
			impact: Impact{},
			want:   false,
		},
		{
			name:   "affected cells alone are not destructive",
			impact: Impact{AffectedCells: 100},
			want:   false,
		},
		{
			name:   "removed plants are destructive",
			impact: Impact{AffectedCells: 4, RemovedPlants: 1},
			want:   true,
		},
		{
			name:   "grid resize is destructive even with no plants",
			impact: Impact{GridResized: true},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.impact.Destructive())
		})
	}
}

func TestAttemptAppliesNonDestructiveChange(t *testing.T) {
	applied := false

	result, err := Attempt(context.Background(), false,
		func(ctx context.Context) (Impact, error) {
			return Impact{AffectedCells: 6}, nil
		},
		func(ctx context.Context) (string, error) {
			applied = true
			return "done", nil
		},
	)

	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.True(t, applied)
	assert.Equal(t, "done", result.Value)
	assert.Equal(t, 6, result.Impact.AffectedCells)
}

func TestAttemptBlocksDestructiveChangeWithoutConfirmation(t *testing.T) {
	applied := false

	result, err := Attempt(context.Background(), false,
		func(ctx context.Context) (Impact, error) {
			return Impact{AffectedCells: 6, RemovedPlants: 2}, nil
		},
		func(ctx context.Context) (string, error) {
			applied = true
			return "done", nil
		},
	)

	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.False(t, applied, "apply must not run when blocked")
	assert.Equal(t, 2, result.Impact.RemovedPlants)
}

func TestAttemptAppliesDestructiveChangeWhenConfirmed(t *testing.T) {
	result, err := Attempt(context.Background(), true,
		func(ctx context.Context) (Impact, error) {
			return Impact{RemovedPlants: 3, GridResized: true}, nil
		},
		func(ctx context.Context) (int, error) {
			return 7, nil
		},
	)

	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, 7, result.Value)
	assert.True(t, result.Impact.GridResized)
}

func TestAttemptPropagatesProbeError(t *testing.T) {
	probeErr := errors.New("probe failed")

	result, err := Attempt(context.Background(), true,
		func(ctx context.Context) (Impact, error) {
			return Impact{}, probeErr
		},
		func(ctx context.Context) (string, error) {
			t.Fatal("apply must not run when probe fails")
			return "", nil
		},
	)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, probeErr)
}

func TestAttemptPropagatesApplyError(t *testing.T) {
	applyErr := errors.New("apply failed")

	result, err := Attempt(context.Background(), false,
		func(ctx context.Context) (Impact, error) {
			return Impact{AffectedCells: 1}, nil
		},
		func(ctx context.Context) (string, error) {
			return "", applyErr
		},
	)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, applyErr)
}
