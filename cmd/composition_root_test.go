package cmd_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"cropflow/cmd"
	"cropflow/internal/core/application/usecases/commands"
	"cropflow/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The composition root is the only place every handler constructor is called
// with real dependencies, so building each one here keeps the wiring honest.
func TestCompositionRoot_CreatesEveryHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	root := cmd.NewCompositionRoot(cmd.Config{}, nil, logger)

	var (
		_ commands.CreateOrderCommandHandler             = root.CreateCreateOrderCommandHandler()
		_ commands.TransitionOrderCommandHandler         = root.CreateTransitionOrderCommandHandler()
		_ commands.BulkTransitionOrdersCommandHandler    = root.CreateBulkTransitionOrdersCommandHandler()
		_ commands.ConvertOrderToTemplateCommandHandler  = root.CreateConvertOrderToTemplateCommandHandler()
		_ commands.PlantCropCommandHandler               = root.CreatePlantCropCommandHandler()
		_ commands.AdvanceCropCommandHandler             = root.CreateAdvanceCropCommandHandler()
		_ commands.ProcessDueTasksCommandHandler         = root.CreateProcessDueTasksCommandHandler()
		_ commands.GenerateRecurringOrdersCommandHandler = root.CreateGenerateRecurringOrdersCommandHandler()
		_ commands.PlanOrderCommandHandler               = root.CreatePlanOrderCommandHandler()
		_ queries.GetActiveCropsQueryHandler             = root.CreateGetActiveCropsQueryHandler()
		_ queries.GetPendingTasksQueryHandler            = root.CreateGetPendingTasksQueryHandler()
	)
}

func TestCompositionRoot_BulkTransitionHandlerValidatesCommands(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	root := cmd.NewCompositionRoot(cmd.Config{}, nil, logger)

	handler := root.CreateBulkTransitionOrdersCommandHandler()

	result, err := handler.Handle(context.Background(), commands.BulkTransitionOrdersCommand{})

	require.ErrorIs(t, err, commands.ErrBulkTransitionOrdersCommandIsNotConstructed)
	assert.Empty(t, result.Succeeded)
	assert.Empty(t, result.Failed)
}
