// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order domain aggregate, handling the conversion between domain entities and
// database representations: the order row, its item rows, and the flattened
// recurrence settings for templates.
package orderrepo

import (
	"fmt"
	"time"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Recurrence settings are embedded with a column prefix; a template is a row
// whose recurrence frequency column is non-empty.
type OrderDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status string    `gorm:"index"`

	DeliveryDate time.Time
	HarvestDate  time.Time

	ParentTemplateID *uuid.UUID `gorm:"type:uuid;index"`
	BillingAccount   string
	Notes            string

	Recurrence RecurrenceDTO  `gorm:"embedded;embeddedPrefix:recurrence_"`
	Items      []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// RecurrenceDTO represents the embedded recurrence settings within the order
// table. An empty Frequency means the order is not a template.
type RecurrenceDTO struct {
	Frequency      string
	Interval       int
	StartDate      *time.Time
	EndDate        *time.Time
	NextGeneration *time.Time `gorm:"index"`
	Active         bool       `gorm:"index"`
}

// OrderItemDTO represents one order line in the order_items table.
type OrderItemDTO struct {
	ID            uint      `gorm:"primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	RecipeID      uuid.UUID `gorm:"type:uuid"`
	RequiredGrams float64
}

// TableName specifies the database table name for order items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	var parentID *uuid.UUID
	if id := o.ParentTemplateID(); id != nil {
		raw := id.Bytes()
		parentID = &raw
	}

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:       o.ID().Bytes(),
			RecipeID:      item.RecipeID().Bytes(),
			RequiredGrams: item.RequiredGrams(),
		})
	}

	return OrderDTO{
		ID:               o.ID().Bytes(),
		Status:           o.Status(),
		DeliveryDate:     o.DeliveryDate(),
		HarvestDate:      o.HarvestDate(),
		ParentTemplateID: parentID,
		BillingAccount:   o.BillingAccount(),
		Notes:            o.Notes(),
		Recurrence:       recurrenceFromDomain(o.Recurrence()),
		Items:            items,
	}
}

func recurrenceFromDomain(settings *order.RecurrenceSettings) RecurrenceDTO {
	if settings == nil {
		return RecurrenceDTO{}
	}

	start := settings.StartDate()
	next := settings.NextGenerationDate()
	return RecurrenceDTO{
		Frequency:      settings.Frequency().String(),
		Interval:       settings.Interval(),
		StartDate:      &start,
		EndDate:        settings.EndDate(),
		NextGeneration: &next,
		Active:         settings.IsActive(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// The DTO's Items association must be loaded.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var parentID *kernel.UUID
	if dto.ParentTemplateID != nil {
		pID, parentErr := kernel.UUIDFromBytes((*dto.ParentTemplateID)[:])
		if parentErr != nil {
			return nil, parentErr
		}
		parentID = &pID
	}

	items := make([]order.OrderItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		recipeID, itemErr := kernel.UUIDFromBytes(itemDTO.RecipeID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewOrderItem(recipeID, itemDTO.RequiredGrams)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	recurrence, err := recurrenceToDomain(dto.Recurrence)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, dto.Status, dto.DeliveryDate, dto.HarvestDate,
		items, recurrence, parentID, dto.BillingAccount, dto.Notes)
}

func recurrenceToDomain(dto RecurrenceDTO) (*order.RecurrenceSettings, error) {
	if dto.Frequency == "" {
		return nil, nil
	}

	frequency, err := parseFrequency(dto.Frequency)
	if err != nil {
		return nil, err
	}

	var start, next time.Time
	if dto.StartDate != nil {
		start = *dto.StartDate
	}
	if dto.NextGeneration != nil {
		next = *dto.NextGeneration
	}

	settings, err := order.RestoreRecurrenceSettings(frequency, dto.Interval,
		start, dto.EndDate, next, dto.Active)
	if err != nil {
		return nil, err
	}

	return &settings, nil
}

// parseFrequency resolves a persisted frequency name back to its Frequency value.
func parseFrequency(name string) (order.Frequency, error) {
	for _, f := range []order.Frequency{order.Weekly, order.Biweekly, order.Monthly} {
		if f.String() == name {
			return f, nil
		}
	}
	return order.FrequencyUnknown, fmt.Errorf("unknown recurrence frequency %q", name)
}
