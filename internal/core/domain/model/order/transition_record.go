package order

import (
	"errors"
	"time"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/pkg/errs"
)

// TransitionRecord is one immutable row of the order status audit log:
// which order moved, from and to which codes, into which stage bucket,
// who initiated it, and when. Records are append-only; nothing updates or
// deletes them.
type TransitionRecord struct {
	orderID  kernel.UUID
	fromCode string
	toCode   string
	bucket   StageBucket
	actor    string
	at       time.Time
	notes    string
}

// NewTransitionRecord creates a validated audit record.
func NewTransitionRecord(
	orderID kernel.UUID,
	fromCode string,
	toCode string,
	bucket StageBucket,
	actor string,
	at time.Time,
	notes string,
) (TransitionRecord, error) {
	if err := errors.Join(orderID.Validate(), bucket.Validate()); err != nil {
		return TransitionRecord{}, err
	}

	if fromCode == "" {
		return TransitionRecord{}, errs.NewValueIsRequiredError("fromCode")
	}

	if toCode == "" {
		return TransitionRecord{}, errs.NewValueIsRequiredError("toCode")
	}

	if actor == "" {
		return TransitionRecord{}, errs.NewValueIsRequiredError("actor")
	}

	if at.IsZero() {
		return TransitionRecord{}, errs.NewValueIsRequiredError("at")
	}

	return TransitionRecord{
		orderID:  orderID,
		fromCode: fromCode,
		toCode:   toCode,
		bucket:   bucket,
		actor:    actor,
		at:       at,
		notes:    notes,
	}, nil
}

// OrderID returns the order the record belongs to.
func (r TransitionRecord) OrderID() kernel.UUID { return r.orderID }

// FromCode returns the status code the order left.
func (r TransitionRecord) FromCode() string { return r.fromCode }

// ToCode returns the status code the order entered.
func (r TransitionRecord) ToCode() string { return r.toCode }

// Bucket returns the stage bucket of the entered status.
func (r TransitionRecord) Bucket() StageBucket { return r.bucket }

// Actor returns who initiated the transition ("system" for automation).
func (r TransitionRecord) Actor() string { return r.actor }

// At returns when the transition was applied.
func (r TransitionRecord) At() time.Time { return r.at }

// Notes returns optional free-form context.
func (r TransitionRecord) Notes() string { return r.notes }
