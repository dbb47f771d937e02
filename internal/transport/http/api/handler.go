// Package api provides the HTTP handlers for the docqa service.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/leiwang08/docqa/internal/service"
)

// Version is reported by the banner and health endpoints.
const Version = "1.0.0"

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/api/health", h.Health)
	e.GET("/api/models", h.ListModels)
	e.GET("/api/stats", h.Stats)

	// Batch question answering
	e.POST("/aibattle", h.AnswerQuestions)

	// Chat API
	e.POST("/api/chat", h.Chat)
	e.POST("/api/chat/pdf", h.ChatWithPDF)
	e.GET("/api/chat/history/:session_id", h.GetChatHistory)
	e.DELETE("/api/chat/session/:session_id", h.ClearChatSession)
}

// Root returns service information.
// GET /
func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "AI PDF Question Answering System",
		"version": Version,
		"endpoints": map[string]string{
			"POST /aibattle":               "Submit PDF URL and questions",
			"POST /api/chat":               "Chat with the assistant",
			"POST /api/chat/pdf":           "Chat with a PDF as context",
			"GET /api/chat/history/:id":    "Get conversation history",
			"DELETE /api/chat/session/:id": "Clear a chat session",
			"GET /api/health":              "Check system health",
		},
	})
}
