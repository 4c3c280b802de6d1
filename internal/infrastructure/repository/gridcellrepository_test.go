package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verdant/internal/domain/grid"
	"verdant/internal/shared/cursor"
)

func TestGridCellRepositoryGetAtReturnsNilForUnmaterializedCell(t *testing.T) {
	database := openTestDB(t)
	planRepo := NewPlanRepository(database, testLogger())
	cellRepo := NewGridCellRepository(database, testLogger())
	ctx := context.Background()

	p := createTestPlan(t, planRepo, 1, "backyard")

	cell, err := cellRepo.GetAt(ctx, p.ID(), 3, 4)
	require.NoError(t, err)
	assert.Nil(t, cell, "unwritten cell is implicitly soil, not an error")
}

func TestGridCellRepositoryUpsertType(t *testing.T) {
	database := openTestDB(t)
	planRepo := NewPlanRepository(database, testLogger())
	cellRepo := NewGridCellRepository(database, testLogger())
	ctx := context.Background()

	p := createTestPlan(t, planRepo, 1, "backyard")

	require.NoError(t, cellRepo.UpsertType(ctx, p.ID(), 3, 4, grid.CellTypePath))

	cell, err := cellRepo.GetAt(ctx, p.ID(), 3, 4)
	require.NoError(t, err)
	require.NotNil(t, cell)
	assert.Equal(t, grid.CellTypePath, cell.Type())

	// retyping the same coordinate must not create a second row
	require.NoError(t, cellRepo.UpsertType(ctx, p.ID(), 3, 4, grid.CellTypeWater))

	cell, err = cellRepo.GetAt(ctx, p.ID(), 3, 4)
	require.NoError(t, err)
	assert.Equal(t, grid.CellTypeWater, cell.Type())

	count, err := cellRepo.CountByPlanID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGridCellRepositoryBulkSetTypeInRect(t *testing.T) {
	database := openTestDB(t)
	planRepo := NewPlanRepository(database, testLogger())
	cellRepo := NewGridCellRepository(database, testLogger())
	ctx := context.Background()

	p := createTestPlan(t, planRepo, 1, "backyard")

	// pre-materialize one cell inside the rect to exercise the upsert path
	require.NoError(t, cellRepo.UpsertType(ctx, p.ID(), 1, 1, grid.CellTypeWater))

	rect := grid.Rect{X1: 0, Y1: 0, X2: 3, Y2: 2}
	affected, err := cellRepo.BulkSetTypeInRect(ctx, p.ID(), rect, grid.CellTypePath)
	require.NoError(t, err)
	assert.Equal(t, 12, affected)

	count, err := cellRepo.CountByPlanID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, 12, count, "existing cell is retyped, not duplicated")

	cell, err := cellRepo.GetAt(ctx, p.ID(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, grid.CellTypePath, cell.Type())
}

func TestGridCellRepositoryListFilters(t *testing.T) {
	database := openTestDB(t)
	planRepo := NewPlanRepository(database, testLogger())
	cellRepo := NewGridCellRepository(database, testLogger())
	ctx := context.Background()

	p := createTestPlan(t, planRepo, 1, "backyard")

	require.NoError(t, cellRepo.UpsertType(ctx, p.ID(), 0, 0, grid.CellTypePath))
	require.NoError(t, cellRepo.UpsertType(ctx, p.ID(), 1, 0, grid.CellTypeWater))
	require.NoError(t, cellRepo.UpsertType(ctx, p.ID(), 5, 5, grid.CellTypePath))

	pathType := grid.CellTypePath
	cells, next, err := cellRepo.List(ctx, p.ID(), grid.ListFilter{Type: &pathType}, nil, 10)
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Len(t, cells, 2)

	cells, _, err = cellRepo.List(ctx, p.ID(), grid.ListFilter{At: &grid.Point{X: 1, Y: 0}}, nil, 10)
	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.Equal(t, grid.CellTypeWater, cells[0].Type())

	cells, _, err = cellRepo.List(ctx, p.ID(), grid.ListFilter{Box: &grid.Rect{X1: 0, Y1: 0, X2: 1, Y2: 1}}, nil, 10)
	require.NoError(t, err)
	assert.Len(t, cells, 2)
}

func TestGridCellRepositoryListRejectsConflictingFilters(t *testing.T) {
	database := openTestDB(t)
	cellRepo := NewGridCellRepository(database, testLogger())

	_, _, err := cellRepo.List(context.Background(), 1, grid.ListFilter{
		At:  &grid.Point{X: 0, Y: 0},
		Box: &grid.Rect{X1: 0, Y1: 0, X2: 1, Y2: 1},
	}, nil, 10)
	assert.Error(t, err)
}

func TestGridCellRepositoryListWalksAllPages(t *testing.T) {
	database := openTestDB(t)
	planRepo := NewPlanRepository(database, testLogger())
	cellRepo := NewGridCellRepository(database, testLogger())
	ctx := context.Background()

	p := createTestPlan(t, planRepo, 1, "backyard")

	// one bulk write gives every cell the same updated_at, so the (x, y)
	// tie-break carries the whole walk
	rect := grid.Rect{X1: 0, Y1: 0, X2: 4, Y2: 2}
	_, err := cellRepo.BulkSetTypeInRect(ctx, p.ID(), rect, grid.CellTypeBlocked)
	require.NoError(t, err)

	seen := make(map[[2]int]bool)
	var cur *cursor.CellCursor

	for page := 0; ; page++ {
		require.Less(t, page, 10, "walk did not terminate")

		cells, next, err := cellRepo.List(ctx, p.ID(), grid.ListFilter{}, cur, 4)
		require.NoError(t, err)

		for _, c := range cells {
			key := [2]int{c.X(), c.Y()}
			assert.False(t, seen[key], "cell (%d,%d) returned twice", c.X(), c.Y())
			seen[key] = true
		}

		if next == nil {
			break
		}
		cur = next
	}

	assert.Len(t, seen, 15, "walk must visit every cell exactly once")
}

func TestGridCellRepositoryDeleteByPlanID(t *testing.T) {
	database := openTestDB(t)
	planRepo := NewPlanRepository(database, testLogger())
	cellRepo := NewGridCellRepository(database, testLogger())
	ctx := context.Background()

	p := createTestPlan(t, planRepo, 1, "backyard")
	other := createTestPlan(t, planRepo, 1, "other")

	require.NoError(t, cellRepo.UpsertType(ctx, p.ID(), 0, 0, grid.CellTypePath))
	require.NoError(t, cellRepo.UpsertType(ctx, other.ID(), 0, 0, grid.CellTypePath))

	require.NoError(t, cellRepo.DeleteByPlanID(ctx, p.ID()))

	count, err := cellRepo.CountByPlanID(ctx, p.ID())
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = cellRepo.CountByPlanID(ctx, other.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, count, "other plans keep their cells")
}
