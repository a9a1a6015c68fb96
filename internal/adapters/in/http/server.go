package http

import (
	"errors"
	"net/http"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/generated/servers"
	"orders/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const ordersHealthyMessage = "Orders service is healthy"

// Server implements servers.ServerInterface on top of the order use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler
	advanceOrderHandler      commands.AdvanceOrderCommandHandler
	progressOrdersHandler    commands.ProgressOrdersCommandHandler
	transitionOrdersHandler  commands.TransitionOrdersCommandHandler

	// Query handlers
	getOrderHandler     queries.GetOrderQueryHandler
	getAllOrdersHandler queries.GetAllOrdersQueryHandler
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	advanceOrderHandler commands.AdvanceOrderCommandHandler,
	progressOrdersHandler commands.ProgressOrdersCommandHandler,
	transitionOrdersHandler commands.TransitionOrdersCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		advanceOrderHandler:      advanceOrderHandler,
		progressOrdersHandler:    progressOrdersHandler,
		transitionOrdersHandler:  transitionOrdersHandler,
		getOrderHandler:          getOrderHandler,
		getAllOrdersHandler:      getAllOrdersHandler,
	}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetOrdersHealth handles GET /api/orders/health.
func (s *Server) GetOrdersHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, ordersHealthyMessage)
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder servers.NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}
	if err := ctx.Validate(&newOrder); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	lines := make([]commands.OrderLine, 0, len(newOrder.Items))
	for _, item := range newOrder.Items {
		lines = append(lines, commands.OrderLine{
			ItemID:   item.ItemId,
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), lines)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return handleError(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, toOrder(queries.NewOrderResponse(created)))
}

// GetOrders handles GET /api/orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	orders, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return handleError(ctx, err, "Failed to retrieve orders")
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = toOrder(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, err := kernel.UUIDFromString(orderId.String())
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return handleError(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, toOrder(o))
}

// UpdateOrderStatus handles PUT /api/orders/{orderId}/status.
func (s *Server) UpdateOrderStatus(
	ctx echo.Context,
	orderId servers.OrderId,
	params servers.UpdateOrderStatusParams,
) error {
	id, err := kernel.UUIDFromString(orderId.String())
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	status, err := order.ParseStatus(string(params.Status))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid status: "+string(params.Status))
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, status)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	updated, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return handleError(ctx, err, "Failed to update order status")
	}

	return ctx.JSON(http.StatusOK, toOrder(queries.NewOrderResponse(updated)))
}

// SimulateOrderProgression handles POST /api/orders/{orderId}/simulate-progression.
func (s *Server) SimulateOrderProgression(ctx echo.Context, orderId servers.OrderId) error {
	id, err := kernel.UUIDFromString(orderId.String())
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	cmd, err := commands.NewAdvanceOrderCommand(id)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	updated, err := s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return handleError(ctx, err, "Failed to advance order")
	}

	return ctx.JSON(http.StatusOK, toOrder(queries.NewOrderResponse(updated)))
}

// ProgressOrders handles POST /api/orders/bulk-status-update.
func (s *Server) ProgressOrders(ctx echo.Context) error {
	report, err := s.progressOrdersHandler.Handle(ctx.Request().Context(), commands.NewProgressOrdersCommand())
	if err != nil {
		return handleError(ctx, err, "Failed to process order status progressions")
	}

	return ctx.JSON(http.StatusOK, toProgressionReport(report))
}

// TransitionOrders handles POST /api/orders/bulk-status-transition.
func (s *Server) TransitionOrders(ctx echo.Context, params servers.TransitionOrdersParams) error {
	from, fromErr := order.ParseStatus(string(params.FromStatus))
	to, toErr := order.ParseStatus(string(params.ToStatus))
	if err := errors.Join(fromErr, toErr); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewTransitionOrdersCommand(from, to)
	if err != nil {
		return handleError(ctx, err, "Invalid transition")
	}

	result, err := s.transitionOrdersHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return handleError(ctx, err, "Failed to transition orders")
	}

	return ctx.JSON(http.StatusOK, toStepResult(result))
}

// handleError maps domain errors onto HTTP status codes. Anything unexpected
// is reported as 500 with fallback as the message.
func handleError(ctx echo.Context, err error, fallback string) error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorResponse(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrTransitionIsInvalid):
		return errorResponse(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.As(err, &validationErrs):
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		ctx.Logger().Error(err)
		return errorResponse(ctx, http.StatusInternalServerError, fallback)
	}
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, servers.Error{
		Code:    code,
		Message: message,
	})
}
