package order

import (
	"errors"
	"fmt"

	"cropflow/internal/pkg/errs"
)

var (
	// ErrInvalidTransition is returned when a status change is not reachable
	// from the order's current status. Non-retryable caller error.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrOrderLocked is returned when the order's current status forbids
	// modifications and the change was not initiated by the system.
	ErrOrderLocked = errors.New("order is locked by its current status")

	// ErrUnknownStatus is returned when a status code is not part of the graph.
	ErrUnknownStatus = errors.New("unknown order status")
)

// StageBucket is the coarse grouping an order status belongs to. Buckets are
// ordered: pre-production statuses precede production, which precede
// fulfillment, which precede final.
type StageBucket int

const (
	// BucketUnknown represents an invalid or undefined bucket.
	BucketUnknown StageBucket = iota

	// BucketPreProduction groups statuses before any crops are started.
	BucketPreProduction

	// BucketProduction groups statuses while crops are growing.
	BucketProduction

	// BucketFulfillment groups statuses between harvest and handover.
	BucketFulfillment

	// BucketFinal groups terminal statuses.
	BucketFinal
)

// getBucketStrings returns a map of StageBucket values to their persisted names.
func getBucketStrings() map[StageBucket]string {
	return map[StageBucket]string{
		BucketUnknown:       "unknown",
		BucketPreProduction: "pre_production",
		BucketProduction:    "production",
		BucketFulfillment:   "fulfillment",
		BucketFinal:         "final",
	}
}

// Validate checks if the StageBucket value is valid.
func (b StageBucket) Validate() error {
	if b <= BucketUnknown || b > BucketFinal {
		return errs.NewValueIsInvalidErrorWithCause("stage bucket is invalid",
			fmt.Errorf("%d is not a valid stage bucket", b))
	}
	return nil
}

// String returns the persisted name of the bucket.
func (b StageBucket) String() string {
	if s, ok := getBucketStrings()[b]; ok {
		return s
	}
	return "unknown"
}

// Default status codes of the order lifecycle graph.
const (
	StatusDraft      = "draft"
	StatusConfirmed  = "confirmed"
	StatusPlanting   = "planting"
	StatusGrowing    = "growing"
	StatusHarvesting = "harvesting"
	StatusPacked     = "packed"
	StatusDelivered  = "delivered"
	StatusInvoiced   = "invoiced"
	StatusCancelled  = "cancelled"
)

// Status is one node of the order status graph: reference data describing a
// status code, its stage bucket, its lock/finality flags, and the codes an
// order may move to next. Statuses are immutable once the graph is built.
type Status struct {
	code                string
	bucket              StageBucket
	isFinal             bool
	allowsModifications bool
	requiresCrops       bool
	next                []string
}

// NewStatus creates a validated graph node.
//
// Parameters:
//   - code: unique status code
//   - bucket: the stage bucket the status belongs to
//   - isFinal: terminal statuses have no outgoing edges
//   - allowsModifications: whether operators may modify orders in this status
//   - requiresCrops: informational flag that crop production underpins this
//     status; the state machine itself never blocks on it
//   - next: codes of allowed successor statuses (must be empty when isFinal)
func NewStatus(
	code string,
	bucket StageBucket,
	isFinal bool,
	allowsModifications bool,
	requiresCrops bool,
	next []string,
) (Status, error) {
	if code == "" {
		return Status{}, errs.NewValueIsRequiredError("code")
	}

	if err := bucket.Validate(); err != nil {
		return Status{}, err
	}

	if isFinal && len(next) > 0 {
		return Status{}, errs.NewValueIsInvalidErrorWithCause("next",
			fmt.Errorf("final status %q must not have outgoing transitions", code))
	}

	return Status{
		code:                code,
		bucket:              bucket,
		isFinal:             isFinal,
		allowsModifications: allowsModifications,
		requiresCrops:       requiresCrops,
		next:                append([]string(nil), next...),
	}, nil
}

// Code returns the status code.
func (s Status) Code() string { return s.code }

// Bucket returns the stage bucket the status belongs to.
func (s Status) Bucket() StageBucket { return s.bucket }

// IsFinal reports whether the status is terminal.
func (s Status) IsFinal() bool { return s.isFinal }

// AllowsModifications reports whether operators may modify orders in this status.
func (s Status) AllowsModifications() bool { return s.allowsModifications }

// RequiresCrops reports whether crop production underpins this status.
// Informational only; callers decide whether to consult crop state.
func (s Status) RequiresCrops() bool { return s.requiresCrops }

// Next returns the codes the status may transition to.
func (s Status) Next() []string {
	return append([]string(nil), s.next...)
}

// allowsNext reports whether to is in the adjacency list.
func (s Status) allowsNext(to string) bool {
	for _, code := range s.next {
		if code == to {
			return true
		}
	}
	return false
}

// TransitionGraph is the validated, immutable directed graph of order
// statuses. Built once at startup from reference data and shared read-only.
type TransitionGraph struct {
	statuses map[string]Status
}

// NewTransitionGraph builds a graph from the given statuses.
//
// Fails when a code appears twice, when an edge points at an unknown code,
// or when a final status carries outgoing edges.
func NewTransitionGraph(statuses []Status) (*TransitionGraph, error) {
	byCode := make(map[string]Status, len(statuses))
	for _, s := range statuses {
		if s.code == "" {
			return nil, errs.NewValueIsRequiredError("code")
		}
		if _, dup := byCode[s.code]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("statuses",
				fmt.Errorf("status %q is defined twice", s.code))
		}
		byCode[s.code] = s
	}

	for _, s := range byCode {
		if s.isFinal && len(s.next) > 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("statuses",
				fmt.Errorf("final status %q has outgoing transitions", s.code))
		}
		for _, to := range s.next {
			if _, ok := byCode[to]; !ok {
				return nil, errs.NewValueIsInvalidErrorWithCause("statuses",
					fmt.Errorf("status %q points at unknown status %q", s.code, to))
			}
		}
	}

	return &TransitionGraph{statuses: byCode}, nil
}

// MustTransitionGraph builds a graph and panics on invalid reference data.
// Intended for the compiled-in default graph only.
func MustTransitionGraph(statuses []Status) *TransitionGraph {
	g, err := NewTransitionGraph(statuses)
	if err != nil {
		panic(err)
	}
	return g
}

// Status looks up a node by code. Returns ErrUnknownStatus for unknown codes.
func (g *TransitionGraph) Status(code string) (Status, error) {
	s, ok := g.statuses[code]
	if !ok {
		return Status{}, fmt.Errorf("%w: %q", ErrUnknownStatus, code)
	}
	return s, nil
}

// IsValidTransition reports whether from may move to to: the edge must exist
// and from must not be final. Unknown codes are never valid.
func (g *TransitionGraph) IsValidTransition(from, to string) bool {
	fromStatus, ok := g.statuses[from]
	if !ok || fromStatus.isFinal {
		return false
	}
	if _, ok := g.statuses[to]; !ok {
		return false
	}
	return fromStatus.allowsNext(to)
}

// Codes returns all status codes in the graph.
func (g *TransitionGraph) Codes() []string {
	codes := make([]string, 0, len(g.statuses))
	for code := range g.statuses {
		codes = append(codes, code)
	}
	return codes
}

// DefaultTransitionGraph returns the built-in order lifecycle:
//
//	draft -> confirmed -> planting -> growing -> harvesting -> packed -> delivered -> invoiced
//
// with cancellation edges from draft, confirmed, and planting to cancelled.
// invoiced and cancelled are final. Orders stop accepting operator
// modifications once production starts (planting and later).
func DefaultTransitionGraph() *TransitionGraph {
	mustStatus := func(code string, bucket StageBucket, isFinal, allowsMods, requiresCrops bool, next ...string) Status {
		s, err := NewStatus(code, bucket, isFinal, allowsMods, requiresCrops, next)
		if err != nil {
			panic(err)
		}
		return s
	}

	return MustTransitionGraph([]Status{
		mustStatus(StatusDraft, BucketPreProduction, false, true, false, StatusConfirmed, StatusCancelled),
		mustStatus(StatusConfirmed, BucketPreProduction, false, true, false, StatusPlanting, StatusCancelled),
		mustStatus(StatusPlanting, BucketProduction, false, false, true, StatusGrowing, StatusCancelled),
		mustStatus(StatusGrowing, BucketProduction, false, false, true, StatusHarvesting),
		mustStatus(StatusHarvesting, BucketProduction, false, false, true, StatusPacked),
		mustStatus(StatusPacked, BucketFulfillment, false, false, true, StatusDelivered),
		mustStatus(StatusDelivered, BucketFulfillment, false, false, true, StatusInvoiced),
		mustStatus(StatusInvoiced, BucketFinal, true, false, false),
		mustStatus(StatusCancelled, BucketFinal, true, false, false),
	})
}
