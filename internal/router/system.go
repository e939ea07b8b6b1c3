package router

import (
	"github.com/deppfellow/capacity-api/internal/handler"
	"github.com/deppfellow/capacity-api/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the capacity API itself:
//  1. liveness (/health) and readiness (/status)
//  2. docs UI (/docs)
//  3. static assets for the docs (/static)
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/health", h.Health.Health)

	if s.Config.Observability.HealthChecks.Enabled {
		r.GET("/status", h.Health.CheckReadiness)
	}

	r.Static("/static", s.Config.Server.StaticDir)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
