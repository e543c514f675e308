// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the production system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - StageEngine: Decides the next growth stage transition for a crop unit
//   - OrderPlanner: Converts an order into concrete crop plans with planting deadlines
//   - RecurringOrderGenerator: Spawns concrete orders from recurring templates
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
