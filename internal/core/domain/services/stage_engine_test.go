package services_test

import (
	"testing"
	"time"

	"cropflow/internal/core/domain/model/crop"
	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/recipe"
	"cropflow/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var plantedAt = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func newRecipe(t *testing.T, seedVariety string, soak, germination, blackout, light float64) *recipe.Recipe {
	t.Helper()

	mk := func(days float64) kernel.GrowDuration {
		d, err := kernel.NewGrowDuration(days)
		require.NoError(t, err)
		return d
	}

	r, err := recipe.NewRecipe(
		kernel.NewUUID(), seedVariety,
		mk(soak), mk(germination), mk(blackout), mk(light),
		350, 0,
	)
	require.NoError(t, err)
	return r
}

func newUnit(t *testing.T, r *recipe.Recipe) *crop.CropUnit {
	t.Helper()

	unit, err := crop.NewCropUnit(kernel.NewUUID(), kernel.NewUUID(), r, plantedAt)
	require.NoError(t, err)
	return unit
}

func days(n float64) time.Duration {
	return time.Duration(n * 24 * float64(time.Hour))
}

func TestStageEngine_ScheduleNext(t *testing.T) {
	engine := services.NewStageEngine()

	t.Run("schedules blackout after germination", func(t *testing.T) {
		unit := newUnit(t, newRecipe(t, "Pea", 0, 3, 2, 5))

		next, dueAt, err := engine.ScheduleNext(unit)

		require.NoError(t, err)
		assert.Equal(t, crop.Blackout, next)
		assert.Equal(t, plantedAt.Add(days(3)), dueAt)
	})

	t.Run("measures the next due from the actual stage entry", func(t *testing.T) {
		unit := newUnit(t, newRecipe(t, "Pea", 0, 3, 2, 5))
		enteredBlackout := plantedAt.Add(days(3)).Add(4 * time.Hour) // ran late
		require.NoError(t, unit.Advance(crop.Blackout, enteredBlackout))

		next, dueAt, err := engine.ScheduleNext(unit)

		require.NoError(t, err)
		assert.Equal(t, crop.Light, next)
		assert.Equal(t, enteredBlackout.Add(days(2)), dueAt)
	})

	t.Run("skips blackout for zero-blackout recipes", func(t *testing.T) {
		unit := newUnit(t, newRecipe(t, "Sunflower", 0, 3, 0, 5))

		next, dueAt, err := engine.ScheduleNext(unit)

		require.NoError(t, err)
		assert.Equal(t, crop.Light, next)
		assert.Equal(t, plantedAt.Add(days(3)), dueAt)
	})

	t.Run("soaking recipe starts with germination next", func(t *testing.T) {
		unit := newUnit(t, newRecipe(t, "Wheatgrass", 0.5, 2, 0, 6))

		next, dueAt, err := engine.ScheduleNext(unit)

		require.NoError(t, err)
		assert.Equal(t, crop.Germination, next)
		assert.Equal(t, plantedAt.Add(days(0.5)), dueAt)
	})

	t.Run("schedules harvest after light", func(t *testing.T) {
		unit := newUnit(t, newRecipe(t, "Pea", 0, 3, 2, 5))
		require.NoError(t, unit.Advance(crop.Blackout, plantedAt.Add(days(3))))
		require.NoError(t, unit.Advance(crop.Light, plantedAt.Add(days(5))))

		next, dueAt, err := engine.ScheduleNext(unit)

		require.NoError(t, err)
		assert.Equal(t, crop.Harvested, next)
		assert.Equal(t, plantedAt.Add(days(10)), dueAt)
	})

	t.Run("harvested unit has nothing to schedule", func(t *testing.T) {
		unit := newUnit(t, newRecipe(t, "Pea", 0, 3, 2, 5))
		require.NoError(t, unit.Advance(crop.Blackout, plantedAt.Add(days(3))))
		require.NoError(t, unit.Advance(crop.Light, plantedAt.Add(days(5))))
		require.NoError(t, unit.Advance(crop.Harvested, plantedAt.Add(days(10))))

		_, _, err := engine.ScheduleNext(unit)

		require.ErrorIs(t, err, services.ErrNothingToSchedule)
	})

	t.Run("rejects an unconstructed unit", func(t *testing.T) {
		var unit *crop.CropUnit

		_, _, err := engine.ScheduleNext(unit)

		require.ErrorIs(t, err, crop.ErrCropUnitIsNotConstructed)
	})
}
