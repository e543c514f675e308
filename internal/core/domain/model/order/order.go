package order

import (
	"errors"
	"fmt"
	"math"
	"time"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrNestedRecurrence is returned when converting a generated order into a
	// template. Generated orders always keep a link to their parent template
	// and cannot themselves become templates.
	ErrNestedRecurrence = errors.New("a generated order cannot become a recurring template")

	// ErrNotATemplate is returned when a recurring-template operation is invoked
	// on an order without active recurrence settings.
	ErrNotATemplate = errors.New("order is not a recurring template")
)

// OrderItem is one line of an order: a recipe and the grams of produce required.
type OrderItem struct {
	recipeID      kernel.UUID
	requiredGrams float64
}

// NewOrderItem creates a validated order item.
func NewOrderItem(recipeID kernel.UUID, requiredGrams float64) (OrderItem, error) {
	if err := recipeID.Validate(); err != nil {
		return OrderItem{}, err
	}

	if requiredGrams <= 0 || math.IsNaN(requiredGrams) || math.IsInf(requiredGrams, 0) {
		return OrderItem{}, errs.NewValueIsInvalidErrorWithCause("requiredGrams",
			fmt.Errorf("%v is not greater than 0", requiredGrams))
	}

	return OrderItem{recipeID: recipeID, requiredGrams: requiredGrams}, nil
}

// RecipeID returns the recipe this item maps to.
func (i OrderItem) RecipeID() kernel.UUID { return i.recipeID }

// RequiredGrams returns the grams of produce this item requires.
func (i OrderItem) RequiredGrams() float64 { return i.requiredGrams }

// Order is the aggregate root for a customer order. It carries the status
// code gated by the TransitionGraph, the delivery and harvest dates that
// drive crop planning, the item composition, and (for templates) the
// recurrence settings that generate future instances.
//
// Order invariants:
//   - Status changes only through ChangeStatus, validated against the graph
//   - A non-template order has nil recurrence settings
//   - A generated order always carries its parent template id and is not
//     itself a template unless explicitly re-converted
type Order struct {
	id               kernel.UUID
	status           string
	deliveryDate     time.Time
	harvestDate      time.Time
	items            []OrderItem
	recurrence       *RecurrenceSettings
	parentTemplateID *kernel.UUID
	billingAccount   string
	notes            string

	isConstructed bool
}

// NewOrder creates a new concrete order in the draft status.
// The harvest date defaults to the delivery date; planning may override it.
//
// Parameters:
//   - id: unique identifier
//   - deliveryDate: the promised delivery date (must be set)
//   - items: at least one item
func NewOrder(id kernel.UUID, deliveryDate time.Time, items []OrderItem) (*Order, error) {
	o := &Order{
		status:        StatusDraft,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDeliveryDate(deliveryDate),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.harvestDate = o.deliveryDate
	return o, nil
}

// RestoreOrder reconstructs an order from persistence.
func RestoreOrder(
	id kernel.UUID,
	status string,
	deliveryDate time.Time,
	harvestDate time.Time,
	items []OrderItem,
	recurrence *RecurrenceSettings,
	parentTemplateID *kernel.UUID,
	billingAccount string,
	notes string,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setDeliveryDate(deliveryDate),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if status == "" {
		return nil, errs.NewValueIsRequiredError("status")
	}

	if recurrence != nil {
		if err := recurrence.Validate(); err != nil {
			return nil, err
		}
		settings := *recurrence
		o.recurrence = &settings
	}

	if parentTemplateID != nil {
		if err := parentTemplateID.Validate(); err != nil {
			return nil, err
		}
		pid := *parentTemplateID
		o.parentTemplateID = &pid
	}

	o.status = status
	o.harvestDate = harvestDate
	if o.harvestDate.IsZero() {
		o.harvestDate = deliveryDate
	}
	o.billingAccount = billingAccount
	o.notes = notes
	return o, nil
}

// Validate ensures the Order was constructed through a factory method.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Status returns the order's current status code.
func (o *Order) Status() string { return o.status }

// DeliveryDate returns the promised delivery date.
func (o *Order) DeliveryDate() time.Time { return o.deliveryDate }

// HarvestDate returns the planned harvest date.
func (o *Order) HarvestDate() time.Time { return o.harvestDate }

// Items returns the order's item composition.
func (o *Order) Items() []OrderItem {
	return append([]OrderItem(nil), o.items...)
}

// Recurrence returns the template's recurrence settings, or nil for
// concrete orders.
func (o *Order) Recurrence() *RecurrenceSettings {
	if o.recurrence == nil {
		return nil
	}
	settings := *o.recurrence
	return &settings
}

// ParentTemplateID returns the id of the template that generated this order,
// or nil for hand-created orders and templates.
func (o *Order) ParentTemplateID() *kernel.UUID {
	if o.parentTemplateID == nil {
		return nil
	}
	pid := *o.parentTemplateID
	return &pid
}

// BillingAccount returns the billing account reference.
func (o *Order) BillingAccount() string { return o.billingAccount }

// Notes returns free-form operator notes.
func (o *Order) Notes() string { return o.notes }

// IsRecurringTemplate reports whether this order actively generates instances.
func (o *Order) IsRecurringTemplate() bool {
	return o.recurrence != nil && o.recurrence.IsActive()
}

// IsGenerated reports whether this order was produced by a template.
func (o *Order) IsGenerated() bool {
	return o.parentTemplateID != nil
}

// OverrideHarvestDate replaces the derived harvest date.
func (o *Order) OverrideHarvestDate(harvestDate time.Time) error {
	if harvestDate.IsZero() {
		return errs.NewValueIsRequiredError("harvestDate")
	}
	o.harvestDate = harvestDate
	return nil
}

// AssignBillingAccount sets the billing account reference.
func (o *Order) AssignBillingAccount(account string) {
	o.billingAccount = account
}

// AttachNotes replaces the free-form operator notes.
func (o *Order) AttachNotes(notes string) {
	o.notes = notes
}

// ChangeStatus moves the order to the given status code, validated against
// the graph.
//
// Fails with:
//   - ErrUnknownStatus when either code is not in the graph
//   - ErrInvalidTransition when the edge does not exist or the current
//     status is final
//   - ErrOrderLocked when the current status forbids modifications and the
//     change is operator-initiated (systemInitiated=false)
func (o *Order) ChangeStatus(toCode string, graph *TransitionGraph, systemInitiated bool) error {
	if err := o.Validate(); err != nil {
		return err
	}

	from, err := graph.Status(o.status)
	if err != nil {
		return err
	}

	if _, err = graph.Status(toCode); err != nil {
		return err
	}

	if !graph.IsValidTransition(o.status, toCode) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, toCode)
	}

	if !from.AllowsModifications() && !systemInitiated {
		return fmt.Errorf("%w: %s", ErrOrderLocked, o.status)
	}

	o.status = toCode
	return nil
}

// ConvertToTemplate turns the order into a recurring template in place.
//
// Fails with ErrNestedRecurrence when the order was itself generated by a
// template, and with ErrOrderLocked when the order's current status no
// longer allows modifications (production or later).
func (o *Order) ConvertToTemplate(settings RecurrenceSettings, graph *TransitionGraph) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if err := settings.Validate(); err != nil {
		return err
	}

	if o.parentTemplateID != nil {
		return ErrNestedRecurrence
	}

	current, err := graph.Status(o.status)
	if err != nil {
		return err
	}

	if !current.AllowsModifications() {
		return fmt.Errorf("%w: %s", ErrOrderLocked, o.status)
	}

	o.recurrence = &settings
	return nil
}

// MarkGenerated advances the template's next generation date by exactly one
// period from its scheduled value. The cadence is computed from the schedule
// alone; a late invocation does not shift future occurrences.
func (o *Order) MarkGenerated() error {
	if err := o.Validate(); err != nil {
		return err
	}

	if o.recurrence == nil {
		return ErrNotATemplate
	}

	advanced := o.recurrence.Advanced()
	o.recurrence = &advanced
	return nil
}

// StopRecurrence deactivates the template without discarding its settings.
func (o *Order) StopRecurrence() error {
	if err := o.Validate(); err != nil {
		return err
	}

	if o.recurrence == nil {
		return ErrNotATemplate
	}

	stopped := o.recurrence.Deactivated()
	o.recurrence = &stopped
	return nil
}

// SpawnOccurrence materializes the concrete order for one occurrence of this
// template: same item composition, delivery and harvest dates at the
// occurrence instant, parent link back to the template, and no recurrence of
// its own.
func (o *Order) SpawnOccurrence(newID kernel.UUID, occurrence time.Time, initialStatus string) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	if o.recurrence == nil {
		return nil, ErrNotATemplate
	}

	if initialStatus == "" {
		return nil, errs.NewValueIsRequiredError("initialStatus")
	}

	child, err := NewOrder(newID, occurrence, o.Items())
	if err != nil {
		return nil, err
	}

	child.status = initialStatus
	child.harvestDate = occurrence
	child.billingAccount = o.billingAccount
	templateID := o.id
	child.parentTemplateID = &templateID
	return child, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setDeliveryDate(deliveryDate time.Time) error {
	if deliveryDate.IsZero() {
		return errs.NewValueIsRequiredError("deliveryDate")
	}
	o.deliveryDate = deliveryDate
	return nil
}

func (o *Order) setItems(items []OrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.recipeID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("items", err)
		}
	}

	o.items = append([]OrderItem(nil), items...)
	return nil
}
