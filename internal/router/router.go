// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API routes,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/capacity-api/internal/handler"
	"github.com/deppfellow/capacity-api/internal/middleware"
	"github.com/deppfellow/capacity-api/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with the global middleware chain and all routes.
//
// Middleware order matters:
//  1. RequestID, so every later layer can read it
//  2. New Relic transaction, then custom attributes
//  3. ContextEnhancer, which needs both of the above for the request logger
//  4. RequestLogger, which reads the request logger
//  5. CORS, Secure, Recover
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	mw := middleware.NewMiddlewares(s)

	r := echo.New()
	r.HideBanner = true
	r.HidePort = true
	r.HTTPErrorHandler = mw.Global.GlobalErrorHandler
	r.JSONSerializer = jsonSerializer{}

	r.Use(
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.Global.CORS(),
		mw.Global.Secure(),
		mw.Global.Recover(),
	)

	registerSystemRoutes(r, s, h)
	registerCapacityRoutes(r, h)

	return r
}
