package router

import (
	"net/http"

	"github.com/deppfellow/capacity-api/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerCapacityRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/capacity", handler.Handle(
		h.Capacity.Handler,
		h.Capacity.GetCapacity,
		http.StatusOK,
		handler.NewGetCapacityRequest,
	))
}
