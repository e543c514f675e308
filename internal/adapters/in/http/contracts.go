package http

import (
	"time"

	"github.com/google/uuid"
)

// Request and response contracts for the HTTP API. Kept as plain structs so
// the wire format never leaks domain types.

// Error is the uniform error envelope returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderItem is one requested line of a new order.
type NewOrderItem struct {
	RecipeID      uuid.UUID `json:"recipe_id"`
	RequiredGrams float64   `json:"required_grams"`
}

// NewOrder is the request body for creating an order.
type NewOrder struct {
	DeliveryDate   time.Time      `json:"delivery_date"`
	Items          []NewOrderItem `json:"items"`
	BillingAccount string         `json:"billing_account,omitempty"`
	Notes          string         `json:"notes,omitempty"`
}

// CreatedOrder is the response body after creating an order.
type CreatedOrder struct {
	ID uuid.UUID `json:"id"`
}

// TransitionRequest is the request body for moving an order to a new status.
type TransitionRequest struct {
	TargetStatus string `json:"target_status"`
	Actor        string `json:"actor"`
	Notes        string `json:"notes,omitempty"`
}

// BulkTransitionRequest is the request body for moving a batch of orders.
type BulkTransitionRequest struct {
	OrderIDs     []uuid.UUID `json:"order_ids"`
	TargetStatus string      `json:"target_status"`
	Actor        string      `json:"actor"`
}

// BulkTransitionResponse partitions the batch into moved and rejected orders.
type BulkTransitionResponse struct {
	Succeeded []uuid.UUID             `json:"succeeded"`
	Failed    []BulkTransitionFailed  `json:"failed"`
}

// BulkTransitionFailed describes one rejected order of a batch.
type BulkTransitionFailed struct {
	OrderID uuid.UUID `json:"order_id"`
	Reason  string    `json:"reason"`
}

// ConvertToTemplateRequest is the request body for converting an order into
// a recurring template.
type ConvertToTemplateRequest struct {
	Frequency string     `json:"frequency"`
	Interval  int        `json:"interval,omitempty"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// AdvanceCropRequest is the request body for a manual stage override.
type AdvanceCropRequest struct {
	TargetStage string `json:"target_stage"`
}

// PlantCropRequest is the request body for planting a crop unit.
type PlantCropRequest struct {
	OrderID   uuid.UUID `json:"order_id"`
	RecipeID  uuid.UUID `json:"recipe_id"`
	PlantedAt time.Time `json:"planted_at"`
}

// PlantedCrop is the response body after planting a crop unit.
type PlantedCrop struct {
	ID uuid.UUID `json:"id"`
}

// CropPlanResponse is one planting instruction produced by planning.
type CropPlanResponse struct {
	RecipeID    uuid.UUID `json:"recipe_id"`
	SeedVariety string    `json:"seed_variety"`
	Trays       int       `json:"trays"`
	PlantBy     time.Time `json:"plant_by"`
}

// PlanningIssueResponse is one non-fatal problem found during planning.
type PlanningIssueResponse struct {
	Kind     string    `json:"kind"`
	RecipeID uuid.UUID `json:"recipe_id"`
	Detail   string    `json:"detail"`
}

// PlanResponse carries the complete outcome of planning one order.
type PlanResponse struct {
	Plans  []CropPlanResponse      `json:"plans"`
	Issues []PlanningIssueResponse `json:"issues"`
}

// ActiveCrop is one growing crop unit in the read model.
type ActiveCrop struct {
	ID             uuid.UUID `json:"id"`
	OrderID        uuid.UUID `json:"order_id"`
	SeedVariety    string    `json:"seed_variety"`
	Stage          string    `json:"stage"`
	StageEnteredAt time.Time `json:"stage_entered_at"`
}

// PendingTask is one pending scheduled task in the read model.
type PendingTask struct {
	ID          uuid.UUID `json:"id"`
	CropID      uuid.UUID `json:"crop_id"`
	TargetStage string    `json:"target_stage"`
	SeedVariety string    `json:"seed_variety"`
	DueAt       time.Time `json:"due_at"`
}
