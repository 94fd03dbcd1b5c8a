// Package http provides the inbound HTTP adapter. Handlers translate echo
// requests into commands and queries and map domain errors onto status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
	"procurement/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Actor headers identify who is driving a state-changing request.
const (
	HeaderActorRole = "X-Actor-Role"
	HeaderActorID   = "X-Actor-Id"
)

// Server implements the HTTP handlers for the procurement API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler
	aggregateOrdersHandler   commands.AggregateOrdersCommandHandler
	materializeHandler       commands.MaterializeSupplierOrdersCommandHandler
	runRecurringHandler      commands.RunRecurringOrdersCommandHandler

	// Query handlers
	getOrdersHandler         queries.GetOrdersByDeliveryDateQueryHandler
	getSupplierOrdersHandler queries.GetSupplierOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	aggregateOrdersHandler commands.AggregateOrdersCommandHandler,
	materializeHandler commands.MaterializeSupplierOrdersCommandHandler,
	runRecurringHandler commands.RunRecurringOrdersCommandHandler,
	getOrdersHandler queries.GetOrdersByDeliveryDateQueryHandler,
	getSupplierOrdersHandler queries.GetSupplierOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		aggregateOrdersHandler:   aggregateOrdersHandler,
		materializeHandler:       materializeHandler,
		runRecurringHandler:      runRecurringHandler,
		getOrdersHandler:         getOrdersHandler,
		getSupplierOrdersHandler: getSupplierOrdersHandler,
	}
}

// RegisterRoutes wires the API endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.GetOrders)
	v1.POST("/orders/:id/status", s.ChangeOrderStatus)
	v1.POST("/aggregations", s.AggregateOrders)
	v1.POST("/supplier-orders", s.MaterializeSupplierOrders)
	v1.GET("/supplier-orders", s.GetSupplierOrders)
	v1.POST("/recurring-orders/run", s.RunRecurringOrders)
}

// Error is the JSON error envelope of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// OrderLineRequest is one line of an order creation request.
type OrderLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  string `json:"quantity"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	ShopID       string             `json:"shopId"`
	DeliveryDate string             `json:"deliveryDate,omitempty"`
	Lines        []OrderLineRequest `json:"lines"`
}

// CreateOrderResponse returns the identifier of the created order.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// CreateOrder handles POST /api/v1/orders - registers a new shop order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	shopID, err := kernel.UUIDFromString(request.ShopID)
	if err != nil {
		return badRequest(ctx, "Invalid shop identifier: "+err.Error())
	}

	var deliveryDate *time.Time
	if request.DeliveryDate != "" {
		parsed, parseErr := time.ParseInLocation(time.DateOnly, request.DeliveryDate, time.UTC)
		if parseErr != nil {
			return badRequest(ctx, "Invalid delivery date, expected YYYY-MM-DD")
		}
		deliveryDate = &parsed
	}

	lines := make([]commands.CreateOrderLine, 0, len(request.Lines))
	for _, line := range request.Lines {
		productID, lineErr := kernel.UUIDFromString(line.ProductID)
		if lineErr != nil {
			return badRequest(ctx, "Invalid product identifier: "+lineErr.Error())
		}

		quantity, lineErr := decimal.NewFromString(line.Quantity)
		if lineErr != nil {
			return badRequest(ctx, "Invalid quantity: "+lineErr.Error())
		}

		lines = append(lines, commands.CreateOrderLine{ProductID: productID, Quantity: quantity})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, shopID, lines, deliveryDate, nil)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// ChangeOrderStatusRequest is the body of POST /api/v1/orders/:id/status.
type ChangeOrderStatusRequest struct {
	Status string `json:"status"`
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status - moves an order
// along its lifecycle on behalf of the actor named in the request headers.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order identifier: "+err.Error())
	}

	var request ChangeOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid target status: "+err.Error())
	}

	actorRole, actorID, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, actorRole, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	if handleErr := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AggregateOrdersRequest is the body of POST /api/v1/aggregations.
type AggregateOrdersRequest struct {
	DeliveryDate string `json:"deliveryDate"`
}

// AggregatedDemandResponse is one merged product demand of an aggregation run.
type AggregatedDemandResponse struct {
	ProductID     string `json:"productId"`
	ProductName   string `json:"productName"`
	TotalQuantity string `json:"totalQuantity"`
	ShopCount     int    `json:"shopCount"`
}

// AggregateOrdersResponse is the summary of an aggregation run.
type AggregateOrdersResponse struct {
	OrdersAggregated int                        `json:"ordersAggregated"`
	Demands          []AggregatedDemandResponse `json:"demands"`
	Unassigned       []AggregatedDemandResponse `json:"unassigned"`
}

// AggregateOrders handles POST /api/v1/aggregations - merges one delivery
// day's NEW orders into per-product demand.
func (s *Server) AggregateOrders(ctx echo.Context) error {
	var request AggregateOrdersRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	deliveryDate, err := time.ParseInLocation(time.DateOnly, request.DeliveryDate, time.UTC)
	if err != nil {
		return badRequest(ctx, "Invalid delivery date, expected YYYY-MM-DD")
	}

	actorRole, actorID, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAggregateOrdersCommand(deliveryDate, actorRole, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid aggregation request: "+err.Error())
	}

	result, err := s.aggregateOrdersHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AggregateOrdersResponse{
		OrdersAggregated: result.OrdersAggregated,
		Demands:          demandResponses(result.Demands),
		Unassigned:       demandResponses(result.Unassigned),
	})
}

// MaterializeSupplierOrdersRequest is the body of POST /api/v1/supplier-orders.
// An empty SupplierID materializes every supplier bucket of the date.
type MaterializeSupplierOrdersRequest struct {
	SupplierID   string `json:"supplierId,omitempty"`
	DeliveryDate string `json:"deliveryDate"`
}

// MaterializeSupplierOrdersResponse is the summary of a materialization run.
type MaterializeSupplierOrdersResponse struct {
	SupplierOrderIDs     []string                   `json:"supplierOrderIds"`
	SupplierOrderNumbers []string                   `json:"supplierOrderNumbers"`
	OrdersCovered        int                        `json:"ordersCovered"`
	Unassigned           []AggregatedDemandResponse `json:"unassigned"`
}

// MaterializeSupplierOrders handles POST /api/v1/supplier-orders - turns one
// delivery day's aggregated demand into supplier purchase orders.
func (s *Server) MaterializeSupplierOrders(ctx echo.Context) error {
	var request MaterializeSupplierOrdersRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	deliveryDate, err := time.ParseInLocation(time.DateOnly, request.DeliveryDate, time.UTC)
	if err != nil {
		return badRequest(ctx, "Invalid delivery date, expected YYYY-MM-DD")
	}

	var supplierID *kernel.UUID
	if request.SupplierID != "" {
		parsed, parseErr := kernel.UUIDFromString(request.SupplierID)
		if parseErr != nil {
			return badRequest(ctx, "Invalid supplier id")
		}
		supplierID = &parsed
	}

	actorRole, actorID, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewMaterializeSupplierOrdersCommand(deliveryDate, supplierID, actorRole, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid materialization request: "+err.Error())
	}

	result, err := s.materializeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	ids := make([]string, 0, len(result.SupplierOrderIDs))
	for _, id := range result.SupplierOrderIDs {
		ids = append(ids, id.String())
	}

	return ctx.JSON(http.StatusCreated, MaterializeSupplierOrdersResponse{
		SupplierOrderIDs:     ids,
		SupplierOrderNumbers: result.SupplierOrderNumbers,
		OrdersCovered:        result.OrdersCovered,
		Unassigned:           demandResponses(result.Unassigned),
	})
}

// RunRecurringOrdersResponse is the summary of a recurring order run.
type RunRecurringOrdersResponse struct {
	Succeeded         int      `json:"succeeded"`
	Failed            int      `json:"failed"`
	OrdersCreated     int      `json:"ordersCreated"`
	FailedTemplateIDs []string `json:"failedTemplateIds,omitempty"`
}

// RunRecurringOrders handles POST /api/v1/recurring-orders/run - executes
// every due recurring order template immediately. The scheduler runs the
// same command on its own clock; this endpoint exists for operators.
func (s *Server) RunRecurringOrders(ctx echo.Context) error {
	cmd, err := commands.NewRunRecurringOrdersCommand(time.Now().UTC())
	if err != nil {
		return badRequest(ctx, "Invalid run request: "+err.Error())
	}

	result, err := s.runRecurringHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	failedIDs := make([]string, 0, len(result.FailedTemplateIDs))
	for _, id := range result.FailedTemplateIDs {
		failedIDs = append(failedIDs, id.String())
	}

	return ctx.JSON(http.StatusOK, RunRecurringOrdersResponse{
		Succeeded:         result.Succeeded,
		Failed:            result.Failed,
		OrdersCreated:     result.OrdersCreated,
		FailedTemplateIDs: failedIDs,
	})
}

// OrderResponse is one shop order row of GET /api/v1/orders.
type OrderResponse struct {
	ID           string `json:"id"`
	OrderNumber  string `json:"orderNumber"`
	ShopID       string `json:"shopId"`
	Status       string `json:"status"`
	DeliveryDate string `json:"deliveryDate"`
	TotalHT      string `json:"totalHt"`
	TotalTVA     string `json:"totalTva"`
	TotalTTC     string `json:"totalTtc"`
}

// GetOrders handles GET /api/v1/orders - lists the orders of one delivery
// day, optionally narrowed by ?status=.
func (s *Server) GetOrders(ctx echo.Context) error {
	deliveryDate, err := time.ParseInLocation(time.DateOnly, ctx.QueryParam("deliveryDate"), time.UTC)
	if err != nil {
		return badRequest(ctx, "Invalid delivery date, expected YYYY-MM-DD")
	}

	var status *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, parseErr := order.StatusFromString(raw)
		if parseErr != nil {
			return badRequest(ctx, "Invalid status filter: "+parseErr.Error())
		}
		status = &parsed
	}

	query, err := queries.NewGetOrdersByDeliveryDateQuery(deliveryDate, status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, OrderResponse{
			ID:           o.ID.String(),
			OrderNumber:  o.OrderNumber,
			ShopID:       o.ShopID.String(),
			Status:       o.Status,
			DeliveryDate: o.DeliveryDate.Format(time.DateOnly),
			TotalHT:      o.TotalHT.StringFixed(2),
			TotalTVA:     o.TotalTVA.StringFixed(2),
			TotalTTC:     o.TotalTTC.StringFixed(2),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// SupplierOrderResponse is one purchase order row of GET /api/v1/supplier-orders.
type SupplierOrderResponse struct {
	ID           string `json:"id"`
	OrderNumber  string `json:"orderNumber"`
	SupplierID   string `json:"supplierId"`
	Status       string `json:"status"`
	DeliveryDate string `json:"deliveryDate"`
	LineCount    int    `json:"lineCount"`
	TotalHT      string `json:"totalHt"`
	TotalTTC     string `json:"totalTtc"`
}

// GetSupplierOrders handles GET /api/v1/supplier-orders - lists supplier
// purchase orders, optionally narrowed by ?deliveryDate=.
func (s *Server) GetSupplierOrders(ctx echo.Context) error {
	var deliveryDate *time.Time
	if raw := ctx.QueryParam("deliveryDate"); raw != "" {
		parsed, parseErr := time.ParseInLocation(time.DateOnly, raw, time.UTC)
		if parseErr != nil {
			return badRequest(ctx, "Invalid delivery date, expected YYYY-MM-DD")
		}
		deliveryDate = &parsed
	}

	query := queries.NewGetSupplierOrdersQuery(deliveryDate)

	supplierOrders, err := s.getSupplierOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]SupplierOrderResponse, 0, len(supplierOrders))
	for _, so := range supplierOrders {
		response = append(response, SupplierOrderResponse{
			ID:           so.ID.String(),
			OrderNumber:  so.OrderNumber,
			SupplierID:   so.SupplierID.String(),
			Status:       so.Status,
			DeliveryDate: so.DeliveryDate.Format(time.DateOnly),
			LineCount:    so.LineCount,
			TotalHT:      so.TotalHT.StringFixed(2),
			TotalTTC:     so.TotalTTC.StringFixed(2),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// actorFromHeaders resolves the acting role and identifier from the
// X-Actor-Role and X-Actor-Id request headers.
func actorFromHeaders(ctx echo.Context) (order.Role, kernel.UUID, error) {
	role, err := order.RoleFromString(ctx.Request().Header.Get(HeaderActorRole))
	if err != nil {
		return order.RoleUnknown, kernel.UUID{}, errors.New("invalid or missing " + HeaderActorRole + " header")
	}

	actorID, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderActorID))
	if err != nil {
		return order.RoleUnknown, kernel.UUID{}, errors.New("invalid or missing " + HeaderActorID + " header")
	}

	return role, actorID, nil
}

// demandResponses maps aggregated demands to their JSON shape.
func demandResponses(demands []services.AggregatedDemand) []AggregatedDemandResponse {
	response := make([]AggregatedDemandResponse, 0, len(demands))
	for _, demand := range demands {
		response = append(response, AggregatedDemandResponse{
			ProductID:     demand.ProductID.String(),
			ProductName:   demand.ProductName,
			TotalQuantity: demand.TotalQuantity.String(),
			ShopCount:     demand.ShopCount(),
		})
	}
	return response
}

// badRequest writes a 400 error envelope.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps domain errors onto HTTP status codes.
func domainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrStateTransition),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
