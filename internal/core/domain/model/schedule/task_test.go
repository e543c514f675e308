package schedule_test

import (
	"testing"
	"time"

	"cropflow/internal/core/domain/model/crop"
	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dueAt = time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC)

func TestNewAdvanceStageTask(t *testing.T) {
	id := kernel.NewUUID()
	cropID := kernel.NewUUID()

	t.Run("creates an active task", func(t *testing.T) {
		task, err := schedule.NewAdvanceStageTask(id, cropID, crop.Blackout, "Sunflower", dueAt)

		require.NoError(t, err)
		require.NoError(t, task.Validate())
		assert.True(t, task.IsActive())
		assert.Equal(t, dueAt, task.DueAt())
		assert.Nil(t, task.LastRunAt())

		cond, ok := task.AdvanceCondition()
		require.True(t, ok)
		assert.Equal(t, crop.Blackout, cond.Target)
		assert.Equal(t, "Sunflower", cond.SeedVariety)
		assert.Equal(t, schedule.KindAdvanceStage, cond.Kind())
	})

	t.Run("fails with invalid target stage", func(t *testing.T) {
		_, err := schedule.NewAdvanceStageTask(id, cropID, crop.Unknown, "Sunflower", dueAt)

		require.Error(t, err)
	})

	t.Run("fails with empty seed variety", func(t *testing.T) {
		_, err := schedule.NewAdvanceStageTask(id, cropID, crop.Blackout, "", dueAt)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "seedVariety")
	})

	t.Run("fails with zero due time", func(t *testing.T) {
		_, err := schedule.NewAdvanceStageTask(id, cropID, crop.Blackout, "Sunflower", time.Time{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "dueAt")
	})

	t.Run("fails with invalid ids", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := schedule.NewAdvanceStageTask(invalid, cropID, crop.Blackout, "Sunflower", dueAt)
		require.Error(t, err)

		_, err = schedule.NewAdvanceStageTask(id, invalid, crop.Blackout, "Sunflower", dueAt)
		require.Error(t, err)
	})
}

func TestScheduledTask_IsDue(t *testing.T) {
	task, _ := schedule.NewAdvanceStageTask(kernel.NewUUID(), kernel.NewUUID(), crop.Light, "Pea", dueAt)

	assert.False(t, task.IsDue(dueAt.Add(-time.Second)))
	assert.True(t, task.IsDue(dueAt))
	assert.True(t, task.IsDue(dueAt.Add(time.Hour)))

	task.Deactivate()
	assert.False(t, task.IsDue(dueAt.Add(time.Hour)))
}

func TestScheduledTask_MarkRun(t *testing.T) {
	t.Run("records execution time and consumes the task", func(t *testing.T) {
		task, _ := schedule.NewAdvanceStageTask(kernel.NewUUID(), kernel.NewUUID(), crop.Light, "Pea", dueAt)
		ranAt := dueAt.Add(3 * time.Minute)

		require.NoError(t, task.MarkRun(ranAt))

		assert.False(t, task.IsActive())
		require.NotNil(t, task.LastRunAt())
		assert.Equal(t, ranAt, *task.LastRunAt())
	})

	t.Run("fails on an already consumed task", func(t *testing.T) {
		task, _ := schedule.NewAdvanceStageTask(kernel.NewUUID(), kernel.NewUUID(), crop.Light, "Pea", dueAt)
		require.NoError(t, task.MarkRun(dueAt))

		err := task.MarkRun(dueAt.Add(time.Minute))

		require.ErrorIs(t, err, schedule.ErrTaskIsInactive)
	})

	t.Run("fails on an unconstructed task", func(t *testing.T) {
		var task schedule.ScheduledTask

		err := task.MarkRun(dueAt)

		require.ErrorIs(t, err, schedule.ErrTaskIsNotConstructed)
	})
}

func TestRestoreTask(t *testing.T) {
	id := kernel.NewUUID()
	cropID := kernel.NewUUID()

	t.Run("restores an inactive task with run history", func(t *testing.T) {
		ranAt := dueAt.Add(time.Minute)
		cond := schedule.AdvanceStageCondition{Target: crop.Harvested, SeedVariety: "Radish"}

		task, err := schedule.RestoreTask(id, cropID, cond, dueAt, false, &ranAt)

		require.NoError(t, err)
		assert.False(t, task.IsActive())
		require.NotNil(t, task.LastRunAt())
		assert.Equal(t, ranAt, *task.LastRunAt())
	})

	t.Run("rejects a nil condition", func(t *testing.T) {
		_, err := schedule.RestoreTask(id, cropID, nil, dueAt, true, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "condition")
	})
}
