// Package http provides the HTTP server implementation for the docqa service.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/leiwang08/docqa/internal/service"
	"github.com/leiwang08/docqa/internal/transport/http/api"
)

// NewServer creates and configures the HTTP server.
func NewServer(svc *service.Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	h := api.NewHandler(svc)
	h.RegisterRoutes(e)

	return e
}
