package handler

import (
	"path/filepath"

	"github.com/deppfellow/capacity-api/internal/server"
	"github.com/deppfellow/capacity-api/internal/service"
)

// Handlers groups all HTTP handlers so the router receives a single value.
type Handlers struct {
	Capacity *CapacityHandler // Capacity serves GET /capacity.
	Health   *HealthHandler   // Health serves liveness and readiness.
	OpenAPI  *OpenAPIHandler  // OpenAPI serves the API docs page.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Capacity: NewCapacityHandler(s, services.Capacity),
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s, filepath.Join(s.Config.Server.StaticDir, "openapi.html")),
	}
}
