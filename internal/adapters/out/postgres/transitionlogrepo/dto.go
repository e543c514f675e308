// Package transitionlogrepo persists the order status audit log. The log is
// append-only: rows are inserted on every accepted transition and never
// updated or deleted.
package transitionlogrepo

import (
	"fmt"
	"time"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// TransitionDTO represents one row of the order_transitions audit table.
type TransitionDTO struct {
	ID      uint      `gorm:"primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`

	FromCode string
	ToCode   string
	Bucket   string

	Actor string
	At    time.Time
	Notes string
}

// TableName specifies the database table name for transition records.
func (TransitionDTO) TableName() string {
	return "order_transitions"
}

// fromDomain converts a transition record to its database representation.
func fromDomain(record order.TransitionRecord) TransitionDTO {
	return TransitionDTO{
		OrderID:  record.OrderID().Bytes(),
		FromCode: record.FromCode(),
		ToCode:   record.ToCode(),
		Bucket:   record.Bucket().String(),
		Actor:    record.Actor(),
		At:       record.At(),
		Notes:    record.Notes(),
	}
}

// toDomain converts a database DTO to a transition record.
func toDomain(dto TransitionDTO) (order.TransitionRecord, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.TransitionRecord{}, err
	}

	bucket, err := parseBucket(dto.Bucket)
	if err != nil {
		return order.TransitionRecord{}, err
	}

	return order.NewTransitionRecord(orderID, dto.FromCode, dto.ToCode,
		bucket, dto.Actor, dto.At, dto.Notes)
}

// parseBucket resolves a persisted bucket name back to its StageBucket value.
func parseBucket(name string) (order.StageBucket, error) {
	for _, b := range []order.StageBucket{
		order.BucketPreProduction, order.BucketProduction, order.BucketFulfillment, order.BucketFinal,
	} {
		if b.String() == name {
			return b, nil
		}
	}
	return order.BucketUnknown, fmt.Errorf("unknown stage bucket %q", name)
}
