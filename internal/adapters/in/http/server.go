package http

import (
	"log/slog"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler    commands.PlaceOrderCommandHandler
	takeOrderHandler     commands.TakeOrderCommandHandler
	completeOrderHandler commands.CompleteOrderCommandHandler
	cancelOrderHandler   commands.CancelOrderCommandHandler

	// Query handlers
	getOrderHandler      queries.GetOrderQueryHandler
	getOrderStatsHandler queries.GetOrderStatsQueryHandler

	logger *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	takeOrderHandler commands.TakeOrderCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrderStatsHandler queries.GetOrderStatsQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		placeOrderHandler:    placeOrderHandler,
		takeOrderHandler:     takeOrderHandler,
		completeOrderHandler: completeOrderHandler,
		cancelOrderHandler:   cancelOrderHandler,
		getOrderHandler:      getOrderHandler,
		getOrderStatsHandler: getOrderStatsHandler,
		logger:               logger.With("component", "http"),
	}
}

// PlaceOrder handles POST /v1/orders - places a new order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var newOrder servers.NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	stops := make([]commands.Stop, 0, len(newOrder.Stops))
	for _, stop := range newOrder.Stops {
		stops = append(stops, commands.Stop{Lat: stop.Lat, Lng: stop.Lng})
	}

	cmd, err := commands.NewPlaceOrderCommand(
		newOrder.Id,
		newOrder.OrderAt,
		newOrder.Fare.Amount,
		newOrder.Fare.Currency,
		newOrder.DrivingDistancesInMeters,
		stops,
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	placed, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(placed))
}

// GetOrder handles GET /v1/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id servers.OrderID) error {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// TakeOrder handles PUT /v1/orders/{id}/take.
func (s *Server) TakeOrder(ctx echo.Context, id servers.OrderID) error {
	cmd, err := commands.NewTakeOrderCommand(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	o, err := s.takeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// CompleteOrder handles PUT /v1/orders/{id}/complete.
func (s *Server) CompleteOrder(ctx echo.Context, id servers.OrderID) error {
	cmd, err := commands.NewCompleteOrderCommand(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	o, err := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// CancelOrder handles PUT /v1/orders/{id}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, id servers.OrderID) error {
	cmd, err := commands.NewCancelOrderCommand(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	o, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// GetOrderStats handles GET /v1/stats/orders.
func (s *Server) GetOrderStats(ctx echo.Context) error {
	stats, err := s.getOrderStatsHandler.Handle(ctx.Request().Context(), queries.NewGetOrderStatsQuery())
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.OrderStats{
		ASSIGNING: stats.Counts[order.Assigning],
		ONGOING:   stats.Counts[order.Ongoing],
		COMPLETED: stats.Counts[order.Completed],
		CANCELLED: stats.Counts[order.Cancelled],
		Total:     stats.Total,
	})
}

func toOrderResponse(o *order.Order) servers.Order {
	stops := make([]servers.Stop, 0, len(o.Stops()))
	for _, stop := range o.Stops() {
		stops = append(stops, servers.Stop{Lat: stop.Lat(), Lng: stop.Lng()})
	}

	return servers.Order{
		Id:      o.ID(),
		OrderAt: o.OrderedAt(),
		Fare: servers.Fare{
			Amount:   o.Fare().AmountString(),
			Currency: o.Fare().Currency(),
		},
		DrivingDistancesInMeters: o.Distances(),
		Stops:                    stops,
		Status:                   servers.OrderStatus(o.Status().String()),
	}
}
