package order_test

import (
	"testing"

	"cropflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustStatus(
	t *testing.T,
	code string,
	bucket order.StageBucket,
	isFinal, allowsMods, requiresCrops bool,
	next ...string,
) order.Status {
	t.Helper()
	s, err := order.NewStatus(code, bucket, isFinal, allowsMods, requiresCrops, next)
	require.NoError(t, err)
	return s
}

func TestNewStatus(t *testing.T) {
	t.Run("creates a valid node", func(t *testing.T) {
		s, err := order.NewStatus("draft", order.BucketPreProduction, false, true, false, []string{"confirmed"})

		require.NoError(t, err)
		assert.Equal(t, "draft", s.Code())
		assert.Equal(t, order.BucketPreProduction, s.Bucket())
		assert.False(t, s.IsFinal())
		assert.True(t, s.AllowsModifications())
		assert.False(t, s.RequiresCrops())
		assert.Equal(t, []string{"confirmed"}, s.Next())
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := order.NewStatus("", order.BucketPreProduction, false, true, false, nil)

		require.Error(t, err)
	})

	t.Run("rejects invalid bucket", func(t *testing.T) {
		_, err := order.NewStatus("draft", order.BucketUnknown, false, true, false, nil)

		require.Error(t, err)
	})

	t.Run("rejects final node with outgoing edges", func(t *testing.T) {
		_, err := order.NewStatus("done", order.BucketFinal, true, false, false, []string{"draft"})

		require.Error(t, err)
	})
}

func TestNewTransitionGraph(t *testing.T) {
	t.Run("builds a valid graph", func(t *testing.T) {
		g, err := order.NewTransitionGraph([]order.Status{
			mustStatus(t, "draft", order.BucketPreProduction, false, true, false, "done"),
			mustStatus(t, "done", order.BucketFinal, true, false, false),
		})

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"draft", "done"}, g.Codes())
	})

	t.Run("rejects duplicate codes", func(t *testing.T) {
		_, err := order.NewTransitionGraph([]order.Status{
			mustStatus(t, "draft", order.BucketPreProduction, false, true, false),
			mustStatus(t, "draft", order.BucketPreProduction, false, true, false),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "defined twice")
	})

	t.Run("rejects edges to unknown statuses", func(t *testing.T) {
		_, err := order.NewTransitionGraph([]order.Status{
			mustStatus(t, "draft", order.BucketPreProduction, false, true, false, "missing"),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown status")
	})
}

func TestTransitionGraph_IsValidTransition(t *testing.T) {
	// draft -> confirmed -> harvesting -> delivered(final)
	g, err := order.NewTransitionGraph([]order.Status{
		mustStatus(t, "draft", order.BucketPreProduction, false, true, false, "confirmed"),
		mustStatus(t, "confirmed", order.BucketPreProduction, false, true, false, "harvesting"),
		mustStatus(t, "harvesting", order.BucketProduction, false, false, true, "delivered"),
		mustStatus(t, "delivered", order.BucketFinal, true, false, false),
	})
	require.NoError(t, err)

	t.Run("adjacent edges are valid", func(t *testing.T) {
		assert.True(t, g.IsValidTransition("draft", "confirmed"))
		assert.True(t, g.IsValidTransition("confirmed", "harvesting"))
		assert.True(t, g.IsValidTransition("harvesting", "delivered"))
	})

	t.Run("skipping ahead is invalid", func(t *testing.T) {
		assert.False(t, g.IsValidTransition("draft", "delivered"))
		assert.False(t, g.IsValidTransition("draft", "harvesting"))
	})

	t.Run("no transition leaves a final status", func(t *testing.T) {
		for _, to := range g.Codes() {
			assert.False(t, g.IsValidTransition("delivered", to), "delivered -> %s must be invalid", to)
		}
	})

	t.Run("unknown codes are invalid", func(t *testing.T) {
		assert.False(t, g.IsValidTransition("nope", "confirmed"))
		assert.False(t, g.IsValidTransition("draft", "nope"))
	})
}

func TestTransitionGraph_Status(t *testing.T) {
	g := order.DefaultTransitionGraph()

	t.Run("known code", func(t *testing.T) {
		s, err := g.Status(order.StatusGrowing)

		require.NoError(t, err)
		assert.Equal(t, order.BucketProduction, s.Bucket())
		assert.True(t, s.RequiresCrops())
		assert.False(t, s.AllowsModifications())
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := g.Status("nope")

		require.ErrorIs(t, err, order.ErrUnknownStatus)
	})
}

func TestDefaultTransitionGraph(t *testing.T) {
	g := order.DefaultTransitionGraph()

	t.Run("full lifecycle path is reachable", func(t *testing.T) {
		path := []string{
			order.StatusDraft, order.StatusConfirmed, order.StatusPlanting, order.StatusGrowing,
			order.StatusHarvesting, order.StatusPacked, order.StatusDelivered, order.StatusInvoiced,
		}
		for i := 0; i < len(path)-1; i++ {
			assert.True(t, g.IsValidTransition(path[i], path[i+1]), "%s -> %s", path[i], path[i+1])
		}
	})

	t.Run("final statuses have no exits", func(t *testing.T) {
		for _, final := range []string{order.StatusInvoiced, order.StatusCancelled} {
			for _, to := range g.Codes() {
				assert.False(t, g.IsValidTransition(final, to))
			}
		}
	})

	t.Run("cancellation stops being possible once growing", func(t *testing.T) {
		assert.True(t, g.IsValidTransition(order.StatusPlanting, order.StatusCancelled))
		assert.False(t, g.IsValidTransition(order.StatusGrowing, order.StatusCancelled))
	})
}

func TestStageBucket(t *testing.T) {
	assert.Equal(t, "pre_production", order.BucketPreProduction.String())
	assert.Equal(t, "production", order.BucketProduction.String())
	assert.Equal(t, "fulfillment", order.BucketFulfillment.String())
	assert.Equal(t, "final", order.BucketFinal.String())
	assert.Equal(t, "unknown", order.StageBucket(42).String())

	require.NoError(t, order.BucketFinal.Validate())
	require.Error(t, order.BucketUnknown.Validate())
	require.Error(t, order.StageBucket(42).Validate())
}
