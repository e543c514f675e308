package services

import (
	"time"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/order"
)

// RecurringOrderGenerator is a domain service that spawns concrete orders
// from recurring templates.
//
// Key responsibilities:
//   - Deciding whether a template is due for generation
//   - Spawning the concrete child order for the scheduled occurrence
//   - Advancing the template's cadence afterwards
//
// Business rules:
//   - The child order is dated at the scheduled occurrence, not at now,
//     so a late run never drifts the cadence
//   - A template whose next occurrence falls past its end date is
//     deactivated instead of generating
//   - Generated orders start in the draft status and never inherit the
//     template's recurrence settings
type RecurringOrderGenerator struct{}

// NewRecurringOrderGenerator creates a new RecurringOrderGenerator instance.
func NewRecurringOrderGenerator() RecurringOrderGenerator {
	return RecurringOrderGenerator{}
}

// GenerateNext spawns at most one order from the given template.
//
// Parameters:
//   - template: the recurring template to generate from (must be a valid template)
//   - newID: identifier for the child order, if one is generated
//   - now: the current time
//
// Returns:
//   - *order.Order: the generated child, or nil when nothing was due
//   - error: order.ErrNotATemplate for non-templates, or validation errors
//
// A (nil, nil) return is the normal quiet outcome: the template is not due
// yet, is inactive, or has run past its end date. The caller must persist
// the template after a successful generation because its cadence advances.
func (g RecurringOrderGenerator) GenerateNext(template *order.Order, newID kernel.UUID, now time.Time) (*order.Order, error) {
	if err := template.Validate(); err != nil {
		return nil, err
	}

	recurrence := template.Recurrence()
	if recurrence == nil {
		return nil, order.ErrNotATemplate
	}

	if !recurrence.IsActive() {
		return nil, nil
	}

	if end := recurrence.EndDate(); end != nil && recurrence.NextGenerationDate().After(*end) {
		if err := template.StopRecurrence(); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if !recurrence.IsDue(now) {
		return nil, nil
	}

	occurrence := recurrence.NextGenerationDate()

	child, err := template.SpawnOccurrence(newID, occurrence, order.StatusDraft)
	if err != nil {
		return nil, err
	}

	if err := template.MarkGenerated(); err != nil {
		return nil, err
	}

	return child, nil
}
