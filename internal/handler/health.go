package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/capacity-api/internal/middleware"
	"github.com/deppfellow/capacity-api/internal/server"
	"github.com/deppfellow/capacity-api/internal/sqlerr"
	"github.com/labstack/echo/v4"
)

// HealthHandler serves the liveness and readiness endpoints.
//
// Liveness (/health) never touches dependencies. Readiness (/status) checks
// that PostgreSQL accepts connections.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler with access to shared app dependencies.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// Health always answers 200 {"status": "ok"} while the process is serving.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CheckReadiness returns dependency checks.
//
// Response includes:
// - overall status (healthy/unhealthy)
// - timestamp (UTC)
// - environment (from config)
// - checks map (database)
//
// It returns:
// - 200 OK if all checks pass
// - 503 Service Unavailable if any check fails
func (h *HealthHandler) CheckReadiness(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "readiness_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true

	// ---------------- Database connectivity check ----------------------------
	timeout := h.server.Config.Observability.HealthChecks.Timeout
	ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
	defer cancel()

	dbStart := time.Now()

	if err := h.server.DB.Ping(ctx); err != nil {
		checks["database"] = map[string]interface{}{
			"status":        "unhealthy",
			"response_time": time.Since(dbStart).String(),
			"error":         err.Error(),
		}

		isHealthy = false

		sqlerr.LogFields(logger.Error().Err(err), err).
			Dur("response_time", time.Since(dbStart)).
			Msg("database readiness check failed")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent(
				"HealthCheckError",
				map[string]interface{}{
					"check_type":       "database",
					"operation":        "readiness_check",
					"error_type":       string(sqlerr.Classify(err)),
					"response_time_ms": time.Since(dbStart).Milliseconds(),
					"error_message":    err.Error(),
				},
			)
		}
	} else {
		checks["database"] = map[string]interface{}{
			"status":        "healthy",
			"response_time": time.Since(dbStart).String(),
		}

		logger.Debug().
			Dur("response_time", time.Since(dbStart)).
			Msg("database readiness check passed")
	}

	// Query segments for the ping are captured by the nrpgx5 tracer.

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("readiness check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
