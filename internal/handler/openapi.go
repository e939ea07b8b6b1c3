package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/deppfellow/capacity-api/internal/server"
	"github.com/labstack/echo/v4"
)

// DefaultOpenAPIUIPath is where the docs page is read from, relative to the working directory.
const DefaultOpenAPIUIPath = "static/openapi.html"

// OpenAPIHandler serves the API docs page.
//
// The page loads static/openapi.json, served by the /static route.
type OpenAPIHandler struct {
	Handler
	uiPath string
}

// NewOpenAPIHandler constructs an OpenAPIHandler reading the page from uiPath,
// or DefaultOpenAPIUIPath when uiPath is empty.
func NewOpenAPIHandler(s *server.Server, uiPath string) *OpenAPIHandler {
	if uiPath == "" {
		uiPath = DefaultOpenAPIUIPath
	}
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		uiPath:  uiPath,
	}
}

// ServeOpenAPIUI serves the docs page with caching disabled, so edits to
// the document show up on reload.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := os.ReadFile(h.uiPath)

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTMLBlob(http.StatusOK, page); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
