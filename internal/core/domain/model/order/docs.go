// Package order contains the Order aggregate and its status reference data.
//
// Order status changes are gated by a TransitionGraph: an immutable directed
// graph of Status nodes loaded once as reference data. Each node carries its
// stage bucket (pre_production, production, fulfillment, final) and the
// lock/finality flags the state machine enforces; final statuses never have
// outgoing edges.
//
// Recurring templates are ordinary orders with RecurrenceSettings attached.
// A template spawns concrete occurrences (SpawnOccurrence) and advances its
// next generation date purely from the schedule (MarkGenerated), so a late
// generator run never shifts the cadence.
//
// Every applied transition is captured as an append-only TransitionRecord.
package order
