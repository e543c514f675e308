package transitionlogrepo

import (
	"context"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormTransitionLogRepository implements TransitionLogRepository using GORM.
type GormTransitionLogRepository struct {
	db *gorm.DB
}

// NewGormTransitionLogRepository creates a new GORM transition log repository.
func NewGormTransitionLogRepository(db *gorm.DB) *GormTransitionLogRepository {
	return &GormTransitionLogRepository{db: db}
}

// Append persists one transition record.
func (r *GormTransitionLogRepository) Append(ctx context.Context, record order.TransitionRecord) error {
	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByOrder retrieves the full transition history for an order, oldest first.
func (r *GormTransitionLogRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]order.TransitionRecord, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TransitionDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("id ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]order.TransitionRecord, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
