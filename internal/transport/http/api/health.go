package api

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health returns system health, degraded when the configured model is not
// available in Ollama.
// GET /api/health
func (h *Handler) Health(c echo.Context) error {
	ctx := c.Request().Context()

	modelAvailable := h.service.VerifyModel(ctx)
	status := "healthy"
	message := "System operational"
	if !modelAvailable {
		status = "degraded"
		message = "Configured model not found in Ollama"
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":           status,
		"ollama_connected": modelAvailable,
		"model":            h.service.ModelName(),
		"model_available":  modelAvailable,
		"message":          message,
	})
}

// ListModels lists available Ollama models.
// GET /api/models
func (h *Handler) ListModels(c echo.Context) error {
	ctx := c.Request().Context()

	models, err := h.service.ListModels(ctx)
	if err != nil {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
			"message": "Failed to connect to Ollama",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":       true,
		"models":        models,
		"current_model": h.service.ModelName(),
	})
}

// Stats returns request-audit totals.
// GET /api/stats
func (h *Handler) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	stats, err := h.service.Stats(ctx)
	if err != nil {
		log.Printf("ERROR: failed to load stats: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load stats"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"requests": stats,
		"sessions": h.service.SessionCount(),
	})
}
