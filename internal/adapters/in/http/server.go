// Package http exposes the order lifecycle over a REST API built on echo.
// Handlers translate between HTTP and the application's commands and
// queries; all business rules live behind those handlers.
package http

import (
	"errors"
	"net/http"

	"ecommerce/internal/core/application/usecases/commands"
	"ecommerce/internal/core/application/usecases/queries"
	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler        commands.CreateOrderCommandHandler
	processPaymentHandler     commands.ProcessPaymentCommandHandler
	processAllPaymentsHandler commands.ProcessAllPaymentsCommandHandler
	deliverOrderHandler       commands.DeliverOrderCommandHandler
	cancelOrderHandler        commands.CancelOrderCommandHandler
	removeOrderHandler        commands.RemoveOrderCommandHandler

	// Query handlers
	getUserOrdersHandler  queries.GetUserOrdersQueryHandler
	getOrderStatusHandler queries.GetOrderStatusQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	processPaymentHandler commands.ProcessPaymentCommandHandler,
	processAllPaymentsHandler commands.ProcessAllPaymentsCommandHandler,
	deliverOrderHandler commands.DeliverOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	removeOrderHandler commands.RemoveOrderCommandHandler,
	getUserOrdersHandler queries.GetUserOrdersQueryHandler,
	getOrderStatusHandler queries.GetOrderStatusQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		processPaymentHandler:     processPaymentHandler,
		processAllPaymentsHandler: processAllPaymentsHandler,
		deliverOrderHandler:       deliverOrderHandler,
		cancelOrderHandler:        cancelOrderHandler,
		removeOrderHandler:        removeOrderHandler,
		getUserOrdersHandler:      getUserOrdersHandler,
		getOrderStatusHandler:     getOrderStatusHandler,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
	api.DELETE("/orders/:orderId", s.RemoveOrder)

	api.POST("/payments/process/:orderId", s.ProcessPayment)
	api.POST("/payments/process-all", s.ProcessAllPayments)
	api.POST("/payments/mark-delivered/:orderId", s.MarkDelivered)
	api.GET("/payments/status/:orderId", s.GetOrderStatus)
}

// ErrorResponse is the JSON error body returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderItem is one requested product line in an order creation request.
type NewOrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// NewOrderRequest is the body of POST /orders.
type NewOrderRequest struct {
	UserID string         `json:"userId"`
	Items  []NewOrderItem `json:"items"`
}

// OrderResponse describes one order in API responses.
type OrderResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Total     string `json:"total"`
	ItemCount int    `json:"itemCount,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	userID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return badRequest(ctx, "Invalid user ID")
	}

	items := make([]commands.RequestedItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, idErr := kernel.UUIDFromString(item.ProductID)
		if idErr != nil {
			return badRequest(ctx, "Invalid product ID: "+item.ProductID)
		}
		items = append(items, commands.RequestedItem{ProductID: productID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), userID, items)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderResponse{
		ID:     created.ID().String(),
		Status: created.Status().String(),
		Total:  created.Total().String(),
	})
}

// OrdersResponse is the body of GET /orders: the user's order history plus
// the sum of all order totals.
type OrdersResponse struct {
	Orders           []OrderResponse `json:"orders"`
	TotalOfAllOrders string          `json:"totalOfAllOrders"`
}

// GetOrders handles GET /api/v1/orders?userId=.
func (s *Server) GetOrders(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.QueryParam("userId"))
	if err != nil {
		return badRequest(ctx, "Invalid user ID")
	}

	query, err := queries.NewGetUserOrdersQuery(userID)
	if err != nil {
		return badRequest(ctx, "Invalid user ID")
	}

	history, err := s.getUserOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := OrdersResponse{
		Orders:           make([]OrderResponse, len(history.Orders)),
		TotalOfAllOrders: history.TotalOfAllOrders.StringFixed(2),
	}
	for i, o := range history.Orders {
		response.Orders[i] = OrderResponse{
			ID:        o.ID.String(),
			Status:    o.Status,
			Total:     o.Total.StringFixed(2),
			ItemCount: o.ItemCount,
			CreatedAt: o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ProcessPayment handles POST /api/v1/payments/process/:orderId.
func (s *Server) ProcessPayment(ctx echo.Context) error {
	orderID, userID, err := orderAndUserIDs(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewProcessPaymentCommand(orderID, userID, ctx.QueryParam("paymentMethodId"))
	if err != nil {
		return badRequest(ctx, "Invalid payment data: "+err.Error())
	}

	paid, err := s.processPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:     paid.ID().String(),
		Status: paid.Status().String(),
		Total:  paid.Total().String(),
	})
}

// ProcessAllPaymentsResponse summarizes a batch payment run.
type ProcessAllPaymentsResponse struct {
	Paid     []OrderResponse  `json:"paid"`
	Failures []PaymentFailure `json:"failures"`
}

// PaymentFailure reports one order that could not be charged.
type PaymentFailure struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}

// ProcessAllPayments handles POST /api/v1/payments/process-all?userId=.
func (s *Server) ProcessAllPayments(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.QueryParam("userId"))
	if err != nil {
		return badRequest(ctx, "Invalid user ID")
	}

	cmd, err := commands.NewProcessAllPaymentsCommand(userID, ctx.QueryParam("paymentMethodId"))
	if err != nil {
		return badRequest(ctx, "Invalid payment data: "+err.Error())
	}

	result, err := s.processAllPaymentsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := ProcessAllPaymentsResponse{
		Paid:     make([]OrderResponse, 0, len(result.Paid)),
		Failures: make([]PaymentFailure, 0, len(result.Failures)),
	}
	for _, o := range result.Paid {
		response.Paid = append(response.Paid, OrderResponse{
			ID:     o.ID().String(),
			Status: o.Status().String(),
			Total:  o.Total().String(),
		})
	}
	for _, f := range result.Failures {
		response.Failures = append(response.Failures, PaymentFailure{
			OrderID: f.OrderID.String(),
			Reason:  f.Err.Error(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// MarkDelivered handles POST /api/v1/payments/mark-delivered/:orderId.
// Runs the full fulfilment flow: ship to the optional addressId, then
// confirm delivery. A shipping failure cancels the order.
func (s *Server) MarkDelivered(ctx echo.Context) error {
	orderID, userID, err := orderAndUserIDs(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var addressID *kernel.UUID
	if raw := ctx.QueryParam("addressId"); raw != "" {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return badRequest(ctx, "Invalid address ID")
		}
		addressID = &id
	}

	cmd, err := commands.NewDeliverOrderCommand(orderID, userID, addressID)
	if err != nil {
		return badRequest(ctx, "Invalid delivery data: "+err.Error())
	}

	delivered, err := s.deliverOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:     delivered.ID().String(),
		Status: delivered.Status().String(),
		Total:  delivered.Total().String(),
	})
}

// GetOrderStatus handles GET /api/v1/payments/status/:orderId?userId=.
func (s *Server) GetOrderStatus(ctx echo.Context) error {
	orderID, userID, err := orderAndUserIDs(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetOrderStatusQuery(orderID, userID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	status, err := s.getOrderStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:     status.ID.String(),
		Status: status.Status,
	})
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel?userId=.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, userID, err := orderAndUserIDs(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, userID)
	if err != nil {
		return badRequest(ctx, "Invalid cancellation: "+err.Error())
	}

	cancelled, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:     cancelled.ID().String(),
		Status: cancelled.Status().String(),
	})
}

// RemoveOrder handles DELETE /api/v1/orders/:orderId?userId=.
func (s *Server) RemoveOrder(ctx echo.Context) error {
	orderID, userID, err := orderAndUserIDs(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewRemoveOrderCommand(orderID, userID)
	if err != nil {
		return badRequest(ctx, "Invalid removal: "+err.Error())
	}

	if err = s.removeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func orderAndUserIDs(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("Invalid order ID")
	}

	userID, err := kernel.UUIDFromString(ctx.QueryParam("userId"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("Invalid user ID")
	}

	return orderID, userID, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps an application error to its HTTP status. The mapping
// distinguishes retryable gateway unavailability (502) from a terminal
// decline (402), and state conflicts (409) from missing objects (404).
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrUnauthorized):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidState), errors.Is(err, errs.ErrInsufficientStock):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrGatewayDeclined):
		code = http.StatusPaymentRequired
	case errors.Is(err, errs.ErrGatewayUnavailable):
		code = http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
