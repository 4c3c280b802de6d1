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
	"verdant/internal/shared/db"
	"verdant/internal/shared/errors"
	"verdant/internal/shared/logger"
)

type reclassifyFixture struct {
	uc        *ReclassifyAreaUseCase
	planRepo  *repository.PlanRepositoryImpl
	cellRepo  *repository.GridCellRepositoryImpl
	plantRepo *repository.PlantPlacementRepositoryImpl
	tx        *db.TransactionManager
	plan      *plan.Plan
}

func newReclassifyFixture(t *testing.T) *reclassifyFixture {
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
		return "pl_reclassify01", nil
	})
	require.NoError(t, err)
	require.NoError(t, planRepo.Create(context.Background(), p))

	txManager := db.NewTransactionManager(database)
	return &reclassifyFixture{
		uc:        NewReclassifyAreaUseCase(planRepo, cellRepo, plantRepo, txManager, log),
		planRepo:  planRepo,
		cellRepo:  cellRepo,
		plantRepo: plantRepo,
		tx:        txManager,
		plan:      p,
	}
}

func (f *reclassifyFixture) placePlant(t *testing.T, x, y int, name string) {
	t.Helper()
	p, err := plant.NewPlacement(f.plan.ID(), x, y, name, plant.Scores{})
	require.NoError(t, err)
	require.NoError(t, f.plantRepo.Place(context.Background(), p))
}

func TestReclassifyAreaAppliesNonDestructiveChange(t *testing.T) {
	f := newReclassifyFixture(t)
	ctx := context.Background()

	// no plants in the rect, so retyping to path is not destructive
	result, err := f.uc.Execute(ctx, ReclassifyAreaCommand{
		OwnerID: 1,
		SID:     f.plan.SID(),
		Rect:    grid.Rect{X1: 0, Y1: 0, X2: 2, Y2: 1},
		Type:    grid.CellTypePath,
	})
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, 6, result.Impact.AffectedCells)
	assert.Zero(t, result.Impact.RemovedPlants)

	count, err := f.cellRepo.CountByPlanID(ctx, f.plan.ID())
	require.NoError(t, err)
	assert.Equal(t, 6, count)
}

func TestReclassifyAreaBlocksWhenPlantsWouldBeRemoved(t *testing.T) {
	f := newReclassifyFixture(t)
	ctx := context.Background()

	f.placePlant(t, 1, 1, "Tomato")
	f.placePlant(t, 2, 2, "Basil")
	f.placePlant(t, 9, 9, "Sage")

	result, err := f.uc.Execute(ctx, ReclassifyAreaCommand{
		OwnerID: 1,
		SID:     f.plan.SID(),
		Rect:    grid.Rect{X1: 0, Y1: 0, X2: 3, Y2: 3},
		Type:    grid.CellTypeWater,
	})
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Equal(t, 16, result.Impact.AffectedCells)
	assert.Equal(t, 2, result.Impact.RemovedPlants)

	// nothing was written
	count, err := f.cellRepo.CountByPlanID(ctx, f.plan.ID())
	require.NoError(t, err)
	assert.Zero(t, count)
	plants, err := f.plantRepo.CountByPlanID(ctx, f.plan.ID())
	require.NoError(t, err)
	assert.Equal(t, 3, plants)
}

func TestReclassifyAreaConfirmedRetryAppliesAndCascades(t *testing.T) {
	f := newReclassifyFixture(t)
	ctx := context.Background()

	f.placePlant(t, 1, 1, "Tomato")
	f.placePlant(t, 2, 2, "Basil")
	f.placePlant(t, 9, 9, "Sage")

	result, err := f.uc.Execute(ctx, ReclassifyAreaCommand{
		OwnerID:   1,
		SID:       f.plan.SID(),
		Rect:      grid.Rect{X1: 0, Y1: 0, X2: 3, Y2: 3},
		Type:      grid.CellTypeWater,
		Confirmed: true,
	})
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, 2, result.Impact.RemovedPlants)

	count, err := f.cellRepo.CountByPlanID(ctx, f.plan.ID())
	require.NoError(t, err)
	assert.Equal(t, 16, count)

	plants, err := f.plantRepo.CountByPlanID(ctx, f.plan.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, plants, "only the plant outside the rect survives")
}

// racingPlantRepo lets another placement land right after the impact probe,
// standing in for a concurrent editor writing between probe and apply.
type racingPlantRepo struct {
	plant.Repository
	fixture *reclassifyFixture
	t       *testing.T
	raced   bool
}

func (r *racingPlantRepo) CountInRect(ctx context.Context, planID uint, rect grid.Rect) (int, error) {
	n, err := r.Repository.CountInRect(ctx, planID, rect)
	if err == nil && !r.raced {
		r.raced = true
		r.fixture.placePlant(r.t, 0, 0, "Clover")
	}
	return n, err
}

func TestReclassifyAreaReportsActuallyRemovedPlants(t *testing.T) {
	f := newReclassifyFixture(t)
	ctx := context.Background()

	f.placePlant(t, 1, 1, "Tomato")

	racing := &racingPlantRepo{Repository: f.plantRepo, fixture: f, t: t}
	uc := NewReclassifyAreaUseCase(f.planRepo, f.cellRepo, racing, f.tx, logger.NewLogger())

	result, err := uc.Execute(ctx, ReclassifyAreaCommand{
		OwnerID:   1,
		SID:       f.plan.SID(),
		Rect:      grid.Rect{X1: 0, Y1: 0, X2: 3, Y2: 3},
		Type:      grid.CellTypeWater,
		Confirmed: true,
	})
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, 2, result.Impact.RemovedPlants, "impact counts the rows the delete actually hit")

	plants, err := f.plantRepo.CountByPlanID(ctx, f.plan.ID())
	require.NoError(t, err)
	assert.Zero(t, plants)
}

func TestReclassifyAreaToSoilNeverRequiresConfirmation(t *testing.T) {
	f := newReclassifyFixture(t)
	ctx := context.Background()

	f.placePlant(t, 1, 1, "Tomato")

	result, err := f.uc.Execute(ctx, ReclassifyAreaCommand{
		OwnerID: 1,
		SID:     f.plan.SID(),
		Rect:    grid.Rect{X1: 0, Y1: 0, X2: 3, Y2: 3},
		Type:    grid.CellTypeSoil,
	})
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Zero(t, result.Impact.RemovedPlants)

	plants, err := f.plantRepo.CountByPlanID(ctx, f.plan.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, plants, "retyping to soil keeps plants")
}

func TestReclassifyAreaRejectsInvalidInput(t *testing.T) {
	f := newReclassifyFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, ReclassifyAreaCommand{
		OwnerID: 1, SID: f.plan.SID(),
		Rect: grid.Rect{X1: 0, Y1: 0, X2: 1, Y2: 1},
		Type: "lava",
	})
	assert.True(t, errors.IsValidationError(err))

	// rect out of the 20x16 grid
	_, err = f.uc.Execute(ctx, ReclassifyAreaCommand{
		OwnerID: 1, SID: f.plan.SID(),
		Rect: grid.Rect{X1: 0, Y1: 0, X2: 20, Y2: 0},
		Type: grid.CellTypePath,
	})
	assert.True(t, errors.IsOutOfBoundsError(err))

	// unknown plan
	_, err = f.uc.Execute(ctx, ReclassifyAreaCommand{
		OwnerID: 1, SID: "pl_missing",
		Rect: grid.Rect{X1: 0, Y1: 0, X2: 1, Y2: 1},
		Type: grid.CellTypePath,
	})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestSetCellTypeDelegatesToReclassify(t *testing.T) {
	f := newReclassifyFixture(t)
	ctx := context.Background()
	uc := NewSetCellTypeUseCase(f.uc)

	f.placePlant(t, 3, 4, "Tomato")

	// destructive single-cell change is blocked first
	result, err := uc.Execute(ctx, SetCellTypeCommand{
		OwnerID: 1, SID: f.plan.SID(), X: 3, Y: 4, Type: grid.CellTypeBuilding,
	})
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Equal(t, 1, result.Impact.AffectedCells)
	assert.Equal(t, 1, result.Impact.RemovedPlants)

	// confirmed retry applies
	result, err = uc.Execute(ctx, SetCellTypeCommand{
		OwnerID: 1, SID: f.plan.SID(), X: 3, Y: 4, Type: grid.CellTypeBuilding, Confirmed: true,
	})
	require.NoError(t, err)
	assert.True(t, result.Applied)

	cell, err := f.cellRepo.GetAt(ctx, f.plan.ID(), 3, 4)
	require.NoError(t, err)
	require.NotNil(t, cell)
	assert.Equal(t, grid.CellTypeBuilding, cell.Type())

	plants, err := f.plantRepo.CountByPlanID(ctx, f.plan.ID())
	require.NoError(t, err)
	assert.Zero(t, plants)
}
