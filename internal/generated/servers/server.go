// Package servers holds the HTTP contract of the orders API: request and
// response types, the ServerInterface implemented by the echo adapter and the
// embedded OpenAPI document. Types follow oapi-codegen's echo output.
package servers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Defines values for OrderStatus.
const (
	CANCELLED      OrderStatus = "CANCELLED"
	CONFIRMED      OrderStatus = "CONFIRMED"
	DELIVERED      OrderStatus = "DELIVERED"
	OUTFORDELIVERY OrderStatus = "OUT_FOR_DELIVERY"
	PENDING        OrderStatus = "PENDING"
	PREPARING      OrderStatus = "PREPARING"
	READY          OrderStatus = "READY"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	Items []OrderItem `json:"items" validate:"required,min=1,dive"`
}

// Order defines model for Order.
type Order struct {
	CreatedAt time.Time          `json:"createdAt"`
	Items     []OrderItem        `json:"items"`
	OrderId   openapi_types.UUID `json:"orderId"`
	Status    OrderStatus        `json:"status"`
	Total     decimal.Decimal    `json:"total"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	ItemId   string          `json:"itemId" validate:"required"`
	ItemName string          `json:"itemName" validate:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" validate:"gt=0"`
}

// OrderStatus defines model for OrderStatus.
type OrderStatus string

// ProgressionReport defines model for ProgressionReport.
type ProgressionReport struct {
	Message            string                `json:"message"`
	StepResults        map[string]StepResult `json:"stepResults"`
	Success            bool                  `json:"success"`
	Timestamp          time.Time             `json:"timestamp"`
	TotalOrdersUpdated int                   `json:"totalOrdersUpdated"`
}

// StepResult defines model for StepResult.
type StepResult struct {
	FailedCount  int         `json:"failedCount"`
	FromStatus   OrderStatus `json:"fromStatus"`
	Message      string      `json:"message"`
	SkippedCount int         `json:"skippedCount"`
	Success      bool        `json:"success"`
	ToStatus     OrderStatus `json:"toStatus"`
	TotalFound   int         `json:"totalFound"`
	UpdatedCount int         `json:"updatedCount"`
}

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// TransitionOrdersParams defines parameters for TransitionOrders.
type TransitionOrdersParams struct {
	FromStatus OrderStatus `form:"fromStatus" json:"fromStatus"`
	ToStatus   OrderStatus `form:"toStatus" json:"toStatus"`
}

// UpdateOrderStatusParams defines parameters for UpdateOrderStatus.
type UpdateOrderStatusParams struct {
	Status OrderStatus `form:"status" json:"status"`
}

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Create an order in PENDING
	// (POST /api/orders)
	CreateOrder(ctx echo.Context) error
	// List all orders, oldest first
	// (GET /api/orders)
	GetOrders(ctx echo.Context) error
	// Move every order in fromStatus to toStatus
	// (POST /api/orders/bulk-status-transition)
	TransitionOrders(ctx echo.Context, params TransitionOrdersParams) error
	// Advance every in-flight order one step
	// (POST /api/orders/bulk-status-update)
	ProgressOrders(ctx echo.Context) error
	// Orders API health
	// (GET /api/orders/health)
	GetOrdersHealth(ctx echo.Context) error
	// Get an order
	// (GET /api/orders/{orderId})
	GetOrder(ctx echo.Context, orderId OrderId) error
	// Advance an order one step along the happy path
	// (POST /api/orders/{orderId}/simulate-progression)
	SimulateOrderProgression(ctx echo.Context, orderId OrderId) error
	// Change the status of an order
	// (PUT /api/orders/{orderId}/status)
	UpdateOrderStatus(ctx echo.Context, orderId OrderId, params UpdateOrderStatusParams) error
	// Liveness probe
	// (GET /health)
	GetHealth(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// GetOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrders(ctx echo.Context) error {
	return w.Handler.GetOrders(ctx)
}

// TransitionOrders converts echo context to params.
func (w *ServerInterfaceWrapper) TransitionOrders(ctx echo.Context) error {
	var err error

	var params TransitionOrdersParams

	err = runtime.BindQueryParameter("form", true, true, "fromStatus", ctx.QueryParams(), &params.FromStatus)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter fromStatus: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, true, "toStatus", ctx.QueryParams(), &params.ToStatus)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter toStatus: %s", err))
	}

	return w.Handler.TransitionOrders(ctx, params)
}

// ProgressOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ProgressOrders(ctx echo.Context) error {
	return w.Handler.ProgressOrders(ctx)
}

// GetOrdersHealth converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrdersHealth(ctx echo.Context) error {
	return w.Handler.GetOrdersHealth(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	return w.Handler.GetOrder(ctx, orderId)
}

// SimulateOrderProgression converts echo context to params.
func (w *ServerInterfaceWrapper) SimulateOrderProgression(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	return w.Handler.SimulateOrderProgression(ctx, orderId)
}

// UpdateOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	var params UpdateOrderStatusParams

	err = runtime.BindQueryParameter("form", true, true, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	return w.Handler.UpdateOrderStatus(ctx, orderId, params)
}

// GetHealth converts echo context to params.
func (w *ServerInterfaceWrapper) GetHealth(ctx echo.Context) error {
	return w.Handler.GetHealth(ctx)
}

func bindOrderID(ctx echo.Context) (OrderId, error) {
	var orderId OrderId

	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return orderId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	return orderId, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the
// paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/orders", wrapper.GetOrders)
	router.POST(baseURL+"/api/orders/bulk-status-transition", wrapper.TransitionOrders)
	router.POST(baseURL+"/api/orders/bulk-status-update", wrapper.ProgressOrders)
	router.GET(baseURL+"/api/orders/health", wrapper.GetOrdersHealth)
	router.GET(baseURL+"/api/orders/:orderId", wrapper.GetOrder)
	router.POST(baseURL+"/api/orders/:orderId/simulate-progression", wrapper.SimulateOrderProgression)
	router.PUT(baseURL+"/api/orders/:orderId/status", wrapper.UpdateOrderStatus)
	router.GET(baseURL+"/health", wrapper.GetHealth)
}
