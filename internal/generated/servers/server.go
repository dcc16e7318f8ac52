package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Place an order. It always starts in ASSIGNING.
	// (POST /v1/orders)
	PlaceOrder(ctx echo.Context) error

	// (GET /v1/orders/{id})
	GetOrder(ctx echo.Context, id OrderID) error

	// (PUT /v1/orders/{id}/cancel)
	CancelOrder(ctx echo.Context, id OrderID) error

	// (PUT /v1/orders/{id}/complete)
	CompleteOrder(ctx echo.Context, id OrderID) error

	// A driver takes an ASSIGNING order.
	// (PUT /v1/orders/{id}/take)
	TakeOrder(ctx echo.Context, id OrderID) error

	// (GET /v1/stats/orders)
	GetOrderStats(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// PlaceOrder converts echo context to params.
func (w *ServerInterfaceWrapper) PlaceOrder(ctx echo.Context) error {
	return w.Handler.PlaceOrder(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, id)
}

// CancelOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CancelOrder(ctx, id)
}

// CompleteOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CompleteOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CompleteOrder(ctx, id)
}

// TakeOrder converts echo context to params.
func (w *ServerInterfaceWrapper) TakeOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.TakeOrder(ctx, id)
}

// GetOrderStats converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderStats(ctx echo.Context) error {
	return w.Handler.GetOrderStats(ctx)
}

func bindOrderID(ctx echo.Context) (OrderID, error) {
	var id OrderID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// EchoRouter is an interface that wraps the methods of echo.Echo and
// echo.Group used to register routes.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers, and prepends baseURL
// to the paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/v1/orders", wrapper.PlaceOrder)
	router.GET(baseURL+"/v1/orders/:id", wrapper.GetOrder)
	router.PUT(baseURL+"/v1/orders/:id/cancel", wrapper.CancelOrder)
	router.PUT(baseURL+"/v1/orders/:id/complete", wrapper.CompleteOrder)
	router.PUT(baseURL+"/v1/orders/:id/take", wrapper.TakeOrder)
	router.GET(baseURL+"/v1/stats/orders", wrapper.GetOrderStats)
}
