package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verdant/internal/domain/grid"
	"verdant/internal/domain/plant"
	"verdant/internal/shared/cursor"
	"verdant/internal/shared/errors"
)

func placePlant(t *testing.T, repo *PlantPlacementRepositoryImpl, planID uint, x, y int, name string) *plant.Placement {
	t.Helper()

	p, err := plant.NewPlacement(planID, x, y, name, plant.Scores{})
	require.NoError(t, err)
	require.NoError(t, repo.Place(context.Background(), p))
	return p
}

func TestPlantPlacementRepositoryPlaceAndGetAt(t *testing.T) {
	database := openTestDB(t)
	planRepo := NewPlanRepository(database, testLogger())
	plantRepo := NewPlantPlacementRepository(database, testLogger())
	ctx := context.Background()

	p := createTestPlan(t, planRepo, 1, "backyard")
	placePlant(t, plantRepo, p.ID(), 3, 4, "Tomato")

	got, err := plantRepo.GetAt(ctx, p.ID(), 3, 4)
	require.NoError(t, err)
	assert.Equal(t, "Tomato", got.PlantName())

	_, err = plantRepo.GetAt(ctx, p.ID(), 0, 0)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestPlantPlacementRepositoryPlaceOnOccupiedCellIsConflict(t *testing.T) {
	database := openTestDB(t)
	planRepo := NewPlanRepository(database, testLogger())
	plantRepo := NewPlantPlacementRepository(database, testLogger())

	p := createTestPlan(t, planRepo, 1, "backyard")
	placePlant(t, plantRepo, p.ID(), 3, 4, "Tomato")

	dup, err := plant.NewPlacement(p.ID(), 3, 4, "Basil", plant.Scores{})
	require.NoError(t, err)
	err = plantRepo.Place(context.Background(), dup)
	assert.True(t, errors.IsConflictError(err))
}

func TestPlantPlacementRepositoryUpdate(t *testing.T) {
	database := openTestDB(t)
	planRepo := NewPlanRepository(database, testLogger())
	plantRepo := NewPlantPlacementRepository(database, testLogger())
	ctx := context.Background()

	p := createTestPlan(t, planRepo, 1, "backyard")
	placed := placePlant(t, plantRepo, p.ID(), 3, 4, "Tomato")

	sun := 4
	require.NoError(t, placed.Replace("Basil", plant.Scores{Sunlight: &sun}))
	require.NoError(t, plantRepo.Update(ctx, placed))

	got, err := plantRepo.GetAt(ctx, p.ID(), 3, 4)
	require.NoError(t, err)
	assert.Equal(t, "Basil", got.PlantName())
	require.NotNil(t, got.Scores().Sunlight)
	assert.Equal(t, 4, *got.Scores().Sunlight)
}

func TestPlantPlacementRepositoryRemove(t *testing.T) {
	database := openTestDB(t)
	planRepo := NewPlanRepository(database, testLogger())
	plantRepo := NewPlantPlacementRepository(database, testLogger())
	ctx := context.Background()

	p := createTestPlan(t, planRepo, 1, "backyard")
	placePlant(t, plantRepo, p.ID(), 3, 4, "Tomato")

	require.NoError(t, plantRepo.Remove(ctx, p.ID(), 3, 4))

	err := plantRepo.Remove(ctx, p.ID(), 3, 4)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestPlantPlacementRepositoryRectOperations(t *testing.T) {
	database := openTestDB(t)
	planRepo := NewPlanRepository(database, testLogger())
	plantRepo := NewPlantPlacementRepository(database, testLogger())
	ctx := context.Background()

	p := createTestPlan(t, planRepo, 1, "backyard")
	placePlant(t, plantRepo, p.ID(), 1, 1, "Tomato")
	placePlant(t, plantRepo, p.ID(), 2, 2, "Basil")
	placePlant(t, plantRepo, p.ID(), 9, 9, "Sage")

	rect := grid.Rect{X1: 0, Y1: 0, X2: 3, Y2: 3}

	count, err := plantRepo.CountInRect(ctx, p.ID(), rect)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	removed, err := plantRepo.DeleteInRect(ctx, p.ID(), rect)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	total, err := plantRepo.CountByPlanID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, total, "placements outside the rect survive")
}

func TestPlantPlacementRepositoryListOrdersByNameThenCoordinates(t *testing.T) {
	database := openTestDB(t)
	planRepo := NewPlanRepository(database, testLogger())
	plantRepo := NewPlantPlacementRepository(database, testLogger())
	ctx := context.Background()

	p := createTestPlan(t, planRepo, 1, "backyard")
	placePlant(t, plantRepo, p.ID(), 5, 0, "Basil")
	placePlant(t, plantRepo, p.ID(), 0, 3, "Basil")
	placePlant(t, plantRepo, p.ID(), 1, 1, "Aster")

	placements, next, err := plantRepo.List(ctx, p.ID(), plant.ListFilter{}, nil, 10)
	require.NoError(t, err)
	assert.Nil(t, next)
	require.Len(t, placements, 3)
	assert.Equal(t, "Aster", placements[0].PlantName())
	assert.Equal(t, 0, placements[1].X(), "ties on plant name order by x")
	assert.Equal(t, 5, placements[2].X())
}

func TestPlantPlacementRepositoryListWalksAllPages(t *testing.T) {
	database := openTestDB(t)
	planRepo := NewPlanRepository(database, testLogger())
	plantRepo := NewPlantPlacementRepository(database, testLogger())
	ctx := context.Background()

	p := createTestPlan(t, planRepo, 1, "backyard")
	// duplicate names across cells force the (x, y) tie-break
	for x := 0; x < 7; x++ {
		placePlant(t, plantRepo, p.ID(), x, 0, "Tomato")
	}

	seen := make(map[[2]int]bool)
	var cur *cursor.PlacementCursor

	for page := 0; ; page++ {
		require.Less(t, page, 10, "walk did not terminate")

		placements, next, err := plantRepo.List(ctx, p.ID(), plant.ListFilter{}, cur, 3)
		require.NoError(t, err)

		for _, pl := range placements {
			key := [2]int{pl.X(), pl.Y()}
			assert.False(t, seen[key], "placement (%d,%d) returned twice", pl.X(), pl.Y())
			seen[key] = true
		}

		if next == nil {
			break
		}
		cur = next
	}

	assert.Len(t, seen, 7, "walk must visit every placement exactly once")
}

func TestPlantPlacementRepositoryListMatchesPrefixLiterally(t *testing.T) {
	database := openTestDB(t)
	planRepo := NewPlanRepository(database, testLogger())
	plantRepo := NewPlantPlacementRepository(database, testLogger())
	ctx := context.Background()

	p := createTestPlan(t, planRepo, 1, "backyard")
	placePlant(t, plantRepo, p.ID(), 0, 0, "100% Heirloom Tomato")
	placePlant(t, plantRepo, p.ID(), 1, 0, "100x Heirloom Tomato")
	placePlant(t, plantRepo, p.ID(), 2, 0, "Basil")

	placements, _, err := plantRepo.List(ctx, p.ID(), plant.ListFilter{NamePrefix: "100%"}, nil, 10)
	require.NoError(t, err)
	require.Len(t, placements, 1)
	assert.Equal(t, "100% Heirloom Tomato", placements[0].PlantName())

	// prefix match, not substring
	placements, _, err = plantRepo.List(ctx, p.ID(), plant.ListFilter{NamePrefix: "Heirloom"}, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, placements)
}
