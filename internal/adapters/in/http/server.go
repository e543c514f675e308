package http

import (
	"errors"
	"net/http"
	"time"

	"cropflow/internal/core/application/usecases/commands"
	"cropflow/internal/core/application/usecases/queries"
	"cropflow/internal/core/domain/model/crop"
	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/order"
	"cropflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests for the production API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	transitionOrderHandler   commands.TransitionOrderCommandHandler
	bulkTransitionHandler    commands.BulkTransitionOrdersCommandHandler
	convertToTemplateHandler commands.ConvertOrderToTemplateCommandHandler
	plantCropHandler         commands.PlantCropCommandHandler
	advanceCropHandler       commands.AdvanceCropCommandHandler
	planOrderHandler         commands.PlanOrderCommandHandler

	// Query handlers
	getActiveCropsHandler  queries.GetActiveCropsQueryHandler
	getPendingTasksHandler queries.GetPendingTasksQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	bulkTransitionHandler commands.BulkTransitionOrdersCommandHandler,
	convertToTemplateHandler commands.ConvertOrderToTemplateCommandHandler,
	plantCropHandler commands.PlantCropCommandHandler,
	advanceCropHandler commands.AdvanceCropCommandHandler,
	planOrderHandler commands.PlanOrderCommandHandler,
	getActiveCropsHandler queries.GetActiveCropsQueryHandler,
	getPendingTasksHandler queries.GetPendingTasksQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		transitionOrderHandler:   transitionOrderHandler,
		bulkTransitionHandler:    bulkTransitionHandler,
		convertToTemplateHandler: convertToTemplateHandler,
		plantCropHandler:         plantCropHandler,
		advanceCropHandler:       advanceCropHandler,
		planOrderHandler:         planOrderHandler,
		getActiveCropsHandler:    getActiveCropsHandler,
		getPendingTasksHandler:   getPendingTasksHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/transitions", s.BulkTransitionOrders)
	api.POST("/orders/:id/transitions", s.TransitionOrder)
	api.POST("/orders/:id/template", s.ConvertOrderToTemplate)
	api.POST("/orders/:id/plan", s.PlanOrder)
	api.POST("/crops", s.PlantCrop)
	api.POST("/crops/:id/advance", s.AdvanceCrop)
	api.GET("/crops", s.GetActiveCrops)
	api.GET("/tasks", s.GetPendingTasks)
}

// CreateOrder handles POST /api/v1/orders - registers a new customer order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]commands.OrderItemInput, 0, len(body.Items))
	for _, item := range body.Items {
		recipeID, err := kernel.UUIDFromBytes(item.RecipeID[:])
		if err != nil {
			return badRequest(ctx, "Invalid recipe id: "+err.Error())
		}
		items = append(items, commands.OrderItemInput{
			RecipeID:      recipeID,
			RequiredGrams: item.RequiredGrams,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, body.DeliveryDate, items, body.BillingAccount, body.Notes)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return internalError(ctx, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, CreatedOrder{ID: orderID.Bytes()})
}

// TransitionOrder handles POST /api/v1/orders/:id/transitions - moves one
// order to a new status.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body TransitionRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewTransitionOrderCommand(
		orderID, body.TargetStatus, body.Actor, body.Notes, false, time.Now())
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	if handleErr := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return transitionError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// BulkTransitionOrders handles POST /api/v1/orders/transitions - applies the
// same transition to a batch of orders. Rejected orders are reported, not
// rolled back.
func (s *Server) BulkTransitionOrders(ctx echo.Context) error {
	var body BulkTransitionRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderIDs := make([]kernel.UUID, 0, len(body.OrderIDs))
	for _, raw := range body.OrderIDs {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return badRequest(ctx, "Invalid order id: "+err.Error())
		}
		orderIDs = append(orderIDs, id)
	}

	cmd, err := commands.NewBulkTransitionOrdersCommand(orderIDs, body.TargetStatus, body.Actor, time.Now())
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	result, err := s.bulkTransitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return internalError(ctx, "Failed to transition orders")
	}

	response := BulkTransitionResponse{
		Succeeded: make([]uuid.UUID, 0, len(result.Succeeded)),
		Failed:    make([]BulkTransitionFailed, 0, len(result.Failed)),
	}
	for _, id := range result.Succeeded {
		response.Succeeded = append(response.Succeeded, id.Bytes())
	}
	for _, failure := range result.Failed {
		response.Failed = append(response.Failed, BulkTransitionFailed{
			OrderID: failure.OrderID.Bytes(),
			Reason:  failure.Err.Error(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// ConvertOrderToTemplate handles POST /api/v1/orders/:id/template - converts
// an order into a recurring template.
func (s *Server) ConvertOrderToTemplate(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body ConvertToTemplateRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	frequency, err := parseFrequency(body.Frequency)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewConvertOrderToTemplateCommand(orderID, frequency, body.Interval, body.StartDate, body.EndDate)
	if err != nil {
		return badRequest(ctx, "Invalid template data: "+err.Error())
	}

	if handleErr := s.convertToTemplateHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return transitionError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PlantCrop handles POST /api/v1/crops - starts one crop unit for an order
// and schedules its first stage advancement.
func (s *Server) PlantCrop(ctx echo.Context) error {
	var body PlantCropRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, orderErr := kernel.UUIDFromBytes(body.OrderID[:])
	recipeID, recipeErr := kernel.UUIDFromBytes(body.RecipeID[:])
	if err := errors.Join(orderErr, recipeErr); err != nil {
		return badRequest(ctx, "Invalid identifier: "+err.Error())
	}

	plantedAt := body.PlantedAt
	if plantedAt.IsZero() {
		plantedAt = time.Now()
	}

	cropID := kernel.NewUUID()
	cmd, err := commands.NewPlantCropCommand(cropID, orderID, recipeID, plantedAt)
	if err != nil {
		return badRequest(ctx, "Invalid planting data: "+err.Error())
	}

	if handleErr := s.plantCropHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, errs.ErrObjectNotFound) {
			return notFound(ctx, "Order or recipe not found")
		}
		return internalError(ctx, "Failed to plant crop")
	}

	return ctx.JSON(http.StatusCreated, PlantedCrop{ID: cropID.Bytes()})
}

// AdvanceCrop handles POST /api/v1/crops/:id/advance - manually advances a
// crop unit, overriding its schedule. Pending tasks for the unit are
// cancelled and rescheduled from the new stage.
func (s *Server) AdvanceCrop(ctx echo.Context) error {
	cropID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid crop id")
	}

	var body AdvanceCropRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := parseStage(body.TargetStage)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAdvanceCropCommand(cropID, target, time.Now())
	if err != nil {
		return badRequest(ctx, "Invalid advancement data: "+err.Error())
	}

	if handleErr := s.advanceCropHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		switch {
		case errors.Is(handleErr, errs.ErrObjectNotFound):
			return notFound(ctx, "Crop unit not found")
		case errors.Is(handleErr, crop.ErrInvalidStageTransition):
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: handleErr.Error(),
			})
		default:
			return internalError(ctx, "Failed to advance crop")
		}
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PlanOrder handles POST /api/v1/orders/:id/plan - expands an order into
// planting instructions.
func (s *Server) PlanOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewPlanOrderCommand(orderID, time.Now())
	if err != nil {
		return badRequest(ctx, "Invalid planning request: "+err.Error())
	}

	result, err := s.planOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, "Order not found")
		}
		return internalError(ctx, "Failed to plan order")
	}

	response := PlanResponse{
		Plans:  make([]CropPlanResponse, 0, len(result.Plans)),
		Issues: make([]PlanningIssueResponse, 0, len(result.Issues)),
	}
	for _, plan := range result.Plans {
		response.Plans = append(response.Plans, CropPlanResponse{
			RecipeID:    plan.RecipeID.Bytes(),
			SeedVariety: plan.SeedVariety,
			Trays:       plan.Trays,
			PlantBy:     plan.PlantBy,
		})
	}
	for _, issue := range result.Issues {
		response.Issues = append(response.Issues, PlanningIssueResponse{
			Kind:     issue.Kind.String(),
			RecipeID: issue.RecipeID.Bytes(),
			Detail:   issue.Detail,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveCrops handles GET /api/v1/crops - retrieves all growing crop units.
func (s *Server) GetActiveCrops(ctx echo.Context) error {
	query := queries.NewGetActiveCropsQuery()

	crops, err := s.getActiveCropsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve crops")
	}

	response := make([]ActiveCrop, len(crops))
	for i, c := range crops {
		response[i] = ActiveCrop{
			ID:             c.ID.Bytes(),
			OrderID:        c.OrderID.Bytes(),
			SeedVariety:    c.SeedVariety,
			Stage:          c.Stage,
			StageEnteredAt: c.StageEnteredAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetPendingTasks handles GET /api/v1/tasks - retrieves all pending
// scheduled tasks, soonest first.
func (s *Server) GetPendingTasks(ctx echo.Context) error {
	query := queries.NewGetPendingTasksQuery()

	tasks, err := s.getPendingTasksHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve tasks")
	}

	response := make([]PendingTask, len(tasks))
	for i, t := range tasks {
		response[i] = PendingTask{
			ID:          t.ID.Bytes(),
			CropID:      t.CropID.Bytes(),
			TargetStage: t.TargetStage,
			SeedVariety: t.SeedVariety,
			DueAt:       t.DueAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// transitionError maps order lifecycle errors to HTTP statuses: unknown
// orders are 404, rejected transitions and locked orders are 409.
func transitionError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return notFound(ctx, "Order not found")
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrOrderLocked),
		errors.Is(err, order.ErrNestedRecurrence):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrUnknownStatus):
		return badRequest(ctx, err.Error())
	default:
		return internalError(ctx, "Failed to process order")
	}
}

func parseStage(name string) (crop.Stage, error) {
	for _, s := range []crop.Stage{crop.Soaking, crop.Germination, crop.Blackout, crop.Light, crop.Harvested} {
		if s.String() == name {
			return s, nil
		}
	}
	return crop.Unknown, errors.New("unknown stage: " + name)
}

func parseFrequency(name string) (order.Frequency, error) {
	for _, f := range []order.Frequency{order.Weekly, order.Biweekly, order.Monthly} {
		if f.String() == name {
			return f, nil
		}
	}
	return order.FrequencyUnknown, errors.New("unknown frequency: " + name)
}

func pathUUID(ctx echo.Context, param string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(param))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func notFound(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Message: message})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{Code: http.StatusInternalServerError, Message: message})
}
