package services

import (
	"fmt"
	"sort"
	"time"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/order"
	"cropflow/internal/core/domain/model/recipe"
)

// IssueKind classifies a planning problem found while expanding an order.
type IssueKind int

const (
	// IssueUnknown represents an invalid or undefined issue kind.
	IssueUnknown IssueKind = iota

	// IssueMissingRecipe means an order item references a recipe that could
	// not be resolved.
	IssueMissingRecipe

	// IssueInsufficientLeadTime means the computed planting deadline is
	// already in the past.
	IssueInsufficientLeadTime
)

// String returns the human readable name of the issue kind.
func (k IssueKind) String() string {
	switch k {
	case IssueMissingRecipe:
		return "missing_recipe"
	case IssueInsufficientLeadTime:
		return "insufficient_lead_time"
	default:
		return "unknown"
	}
}

// PlanningIssue describes one non-fatal problem discovered during planning.
// Issues are reported as values so a single bad item never aborts planning
// of the remaining items.
type PlanningIssue struct {
	Kind     IssueKind
	RecipeID kernel.UUID
	Detail   string
}

// CropPlan is one planting instruction produced by the planner: how many
// trays of which recipe must be planted, and by when, to meet the order's
// harvest date.
type CropPlan struct {
	RecipeID    kernel.UUID
	SeedVariety string
	Trays       int
	PlantBy     time.Time
}

// PlanningResult carries the complete outcome of planning one order. Plans
// and Issues are independent: an order may yield both.
type PlanningResult struct {
	Plans  []CropPlan
	Issues []PlanningIssue
}

// HasIssues reports whether planning found any problems.
func (r PlanningResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// OrderPlanner is a domain service that expands an order into concrete crop
// plans with planting deadlines.
//
// Key responsibilities:
//   - Resolving order items to recipes
//   - Computing tray counts from required grams and expected yield
//   - Computing planting deadlines by counting the grow cycle back from
//     the harvest date
//
// Business rules:
//   - The grow cycle includes the recipe's buffer percentage
//   - Items sharing a recipe are merged into a single plan
//   - Unresolvable items and missed deadlines become issues, never errors:
//     the planner always produces as much of the plan as it can
type OrderPlanner struct{}

// NewOrderPlanner creates a new OrderPlanner instance.
func NewOrderPlanner() OrderPlanner {
	return OrderPlanner{}
}

// Plan expands the given order into crop plans.
//
// Parameters:
//   - o: the order to plan (must be valid)
//   - recipes: resolved recipes keyed by their identifier; items whose
//     recipe is absent produce an IssueMissingRecipe issue
//   - now: the current time, used for lead-time checks
//
// Returns:
//   - PlanningResult: the plans and issues; plans are ordered by planting
//     deadline, earliest first
//   - error: validation errors on the order itself
func (p OrderPlanner) Plan(o *order.Order, recipes map[kernel.UUID]*recipe.Recipe, now time.Time) (PlanningResult, error) {
	if err := o.Validate(); err != nil {
		return PlanningResult{}, err
	}

	var result PlanningResult

	grams := make(map[kernel.UUID]float64)
	for _, item := range o.Items() {
		grams[item.RecipeID()] += item.RequiredGrams()
	}

	for recipeID, requiredGrams := range grams {
		r, ok := recipes[recipeID]
		if !ok {
			result.Issues = append(result.Issues, PlanningIssue{
				Kind:     IssueMissingRecipe,
				RecipeID: recipeID,
				Detail:   fmt.Sprintf("recipe %s is not resolved", recipeID),
			})
			continue
		}

		plantBy := o.HarvestDate().Add(-r.TotalGrowCycle().ToDuration())
		if plantBy.Before(now) {
			result.Issues = append(result.Issues, PlanningIssue{
				Kind:     IssueInsufficientLeadTime,
				RecipeID: recipeID,
				Detail: fmt.Sprintf("%s must be planted by %s to harvest on %s",
					r.SeedVariety(), plantBy.Format(time.DateOnly), o.HarvestDate().Format(time.DateOnly)),
			})
		}

		result.Plans = append(result.Plans, CropPlan{
			RecipeID:    recipeID,
			SeedVariety: r.SeedVariety(),
			Trays:       r.TraysFor(requiredGrams),
			PlantBy:     plantBy,
		})
	}

	sort.Slice(result.Plans, func(i, j int) bool {
		if result.Plans[i].PlantBy.Equal(result.Plans[j].PlantBy) {
			return result.Plans[i].SeedVariety < result.Plans[j].SeedVariety
		}
		return result.Plans[i].PlantBy.Before(result.Plans[j].PlantBy)
	})

	return result, nil
}
