package commands

import (
	"errors"
	"time"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/pkg/guard"
)

var (
	ErrPlantCropCommandIsNotConstructed = errors.New(
		"PlantCropCommand must be created via NewPlantCropCommand constructor",
	)
	ErrPlantedAtIsRequired = errors.New("plantedAt is required")
)

// PlantCropCommand represents the physical planting of one tray batch for an
// order: a crop unit enters its first lifecycle stage and its first stage
// transition gets scheduled.
//
// Example:
//
//	cmd, err := NewPlantCropCommand(cropID, orderID, recipeID, time.Now())
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to plant crop: %w", err)
//	}
type PlantCropCommand struct { //nolint:recvcheck //using for validation
	cropID    kernel.UUID
	orderID   kernel.UUID
	recipeID  kernel.UUID
	plantedAt time.Time

	guard guard.ConstructorGuard
}

// NewPlantCropCommand creates a command to plant a crop unit for an order.
func NewPlantCropCommand(cropID, orderID, recipeID kernel.UUID, plantedAt time.Time) (PlantCropCommand, error) {
	cmd := PlantCropCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCropID(cropID),
		cmd.setOrderID(orderID),
		cmd.setRecipeID(recipeID),
		cmd.setPlantedAt(plantedAt),
	); err != nil {
		return PlantCropCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlantCropCommandIsNotConstructed if validation fails.
func (c PlantCropCommand) Validate() error {
	return c.guard.Validate(ErrPlantCropCommandIsNotConstructed)
}

// CropID returns the identifier for the new crop unit.
func (c PlantCropCommand) CropID() kernel.UUID {
	return c.cropID
}

// OrderID returns the order this crop is grown for.
func (c PlantCropCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RecipeID returns the recipe the crop follows.
func (c PlantCropCommand) RecipeID() kernel.UUID {
	return c.recipeID
}

// PlantedAt returns the planting instant.
func (c PlantCropCommand) PlantedAt() time.Time {
	return c.plantedAt
}

func (c *PlantCropCommand) setCropID(cropID kernel.UUID) error {
	if err := cropID.Validate(); err != nil {
		return err
	}

	c.cropID = cropID
	return nil
}

func (c *PlantCropCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlantCropCommand) setRecipeID(recipeID kernel.UUID) error {
	if err := recipeID.Validate(); err != nil {
		return err
	}

	c.recipeID = recipeID
	return nil
}

func (c *PlantCropCommand) setPlantedAt(plantedAt time.Time) error {
	if plantedAt.IsZero() {
		return ErrPlantedAtIsRequired
	}

	c.plantedAt = plantedAt
	return nil
}
