// Package recipe contains the Recipe reference aggregate: per-variety stage
// durations, expected tray yield, and the planning safety buffer.
//
// Recipes are immutable reference data. They are read by the crop stage
// engine to compute stage-transition due times and by the order planner to
// work backward from delivery dates to planting dates. Nothing in this core
// ever mutates a recipe.
package recipe
