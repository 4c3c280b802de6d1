package usecases

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"verdant/internal/domain/grid"
	"verdant/internal/domain/plan"
	"verdant/internal/domain/plant"
	"verdant/internal/infrastructure/persistence/models"
	"verdant/internal/infrastructure/repository"
	"verdant/internal/shared/errors"
	"verdant/internal/shared/logger"
	"verdant/internal/shared/query"
)

type plantFixture struct {
	place     *PlacePlantUseCase
	remove    *RemovePlantUseCase
	list      *ListPlantsUseCase
	cellRepo  *repository.GridCellRepositoryImpl
	plantRepo *repository.PlantPlacementRepositoryImpl
	plan      *plan.Plan
}

// newPlantFixture seeds a 20x16 plan (500x400 cm, 25 cm cells).
func newPlantFixture(t *testing.T) *plantFixture {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(
		&models.PlanModel{}, &models.GridCellModel{}, &models.PlantPlacementModel{},
	))

	log := logger.NewLogger()
	planRepo := repository.NewPlanRepository(database, log)
	cellRepo := repository.NewGridCellRepository(database, log)
	plantRepo := repository.NewPlantPlacementRepository(database, log)

	p, err := plan.NewPlan(1, "backyard", nil, 500, 400, 25, 0, func() (string, error) {
		return "pl_plants000001", nil
	})
	require.NoError(t, err)
	require.NoError(t, planRepo.Create(context.Background(), p))

	return &plantFixture{
		place:     NewPlacePlantUseCase(planRepo, cellRepo, plantRepo, log),
		remove:    NewRemovePlantUseCase(planRepo, plantRepo, log),
		list:      NewListPlantsUseCase(planRepo, plantRepo, log),
		cellRepo:  cellRepo,
		plantRepo: plantRepo,
		plan:      p,
	}
}

func TestPlacePlantOnImplicitSoilCell(t *testing.T) {
	f := newPlantFixture(t)

	// (3, 4) was never materialized; it is implicitly soil
	result, err := f.place.Execute(context.Background(), PlacePlantCommand{
		OwnerID: 1, SID: f.plan.SID(), X: 3, Y: 4, PlantName: "Tomato",
	})
	require.NoError(t, err)
	assert.Equal(t, "Tomato", result.PlantName)
	assert.Equal(t, 3, result.X)
	assert.Equal(t, 4, result.Y)
}

func TestPlacePlantOnMaterializedSoilCell(t *testing.T) {
	f := newPlantFixture(t)
	ctx := context.Background()

	require.NoError(t, f.cellRepo.UpsertType(ctx, f.plan.ID(), 3, 4, grid.CellTypeSoil))

	_, err := f.place.Execute(ctx, PlacePlantCommand{
		OwnerID: 1, SID: f.plan.SID(), X: 3, Y: 4, PlantName: "Tomato",
	})
	assert.NoError(t, err)
}

func TestPlacePlantOnNonSoilCellIsConflict(t *testing.T) {
	f := newPlantFixture(t)
	ctx := context.Background()

	require.NoError(t, f.cellRepo.UpsertType(ctx, f.plan.ID(), 3, 4, grid.CellTypeWater))

	_, err := f.place.Execute(ctx, PlacePlantCommand{
		OwnerID: 1, SID: f.plan.SID(), X: 3, Y: 4, PlantName: "Tomato",
	})
	assert.True(t, errors.IsConflictError(err))
}

func TestPlacePlantOnOccupiedCellReplacesInPlace(t *testing.T) {
	f := newPlantFixture(t)
	ctx := context.Background()

	_, err := f.place.Execute(ctx, PlacePlantCommand{
		OwnerID: 1, SID: f.plan.SID(), X: 3, Y: 4, PlantName: "Tomato",
	})
	require.NoError(t, err)

	sun := 5
	result, err := f.place.Execute(ctx, PlacePlantCommand{
		OwnerID: 1, SID: f.plan.SID(), X: 3, Y: 4,
		PlantName: "Basil", Scores: plant.Scores{Sunlight: &sun},
	})
	require.NoError(t, err)
	assert.Equal(t, "Basil", result.PlantName)

	count, err := f.plantRepo.CountByPlanID(ctx, f.plan.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, count, "replacement keeps a single placement on the cell")
}

func TestPlacePlantOutOfBounds(t *testing.T) {
	f := newPlantFixture(t)

	_, err := f.place.Execute(context.Background(), PlacePlantCommand{
		OwnerID: 1, SID: f.plan.SID(), X: 20, Y: 0, PlantName: "Tomato",
	})
	assert.True(t, errors.IsOutOfBoundsError(err))
}

func TestPlacePlantRejectsBadScores(t *testing.T) {
	f := newPlantFixture(t)

	bad := 6
	_, err := f.place.Execute(context.Background(), PlacePlantCommand{
		OwnerID: 1, SID: f.plan.SID(), X: 3, Y: 4,
		PlantName: "Tomato", Scores: plant.Scores{Humidity: &bad},
	})
	assert.True(t, errors.IsValidationError(err))
}

func TestRemovePlant(t *testing.T) {
	f := newPlantFixture(t)
	ctx := context.Background()

	_, err := f.place.Execute(ctx, PlacePlantCommand{
		OwnerID: 1, SID: f.plan.SID(), X: 3, Y: 4, PlantName: "Tomato",
	})
	require.NoError(t, err)

	require.NoError(t, f.remove.Execute(ctx, RemovePlantCommand{
		OwnerID: 1, SID: f.plan.SID(), X: 3, Y: 4,
	}))

	err = f.remove.Execute(ctx, RemovePlantCommand{
		OwnerID: 1, SID: f.plan.SID(), X: 3, Y: 4,
	})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestListPlantsFiltersByPrefix(t *testing.T) {
	f := newPlantFixture(t)
	ctx := context.Background()

	for i, name := range []string{"Tomato", "Thyme", "Basil"} {
		_, err := f.place.Execute(ctx, PlacePlantCommand{
			OwnerID: 1, SID: f.plan.SID(), X: i, Y: 0, PlantName: name,
		})
		require.NoError(t, err)
	}

	result, err := f.list.Execute(ctx, ListPlantsQuery{
		OwnerID: 1, SID: f.plan.SID(), NamePrefix: "T",
		Page: query.PageRequest{Limit: 10},
	})
	require.NoError(t, err)
	assert.Nil(t, result.NextCursor)
	require.Len(t, result.Placements, 2)
	assert.Equal(t, "Thyme", result.Placements[0].PlantName, "placements come back in name order")
	assert.Equal(t, "Tomato", result.Placements[1].PlantName)
}
