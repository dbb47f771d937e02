package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/leiwang08/docqa/internal/adapter/document"
	"github.com/leiwang08/docqa/internal/domain"
)

// Chat handles a general chat turn. A bound document is used as context when
// the session has one.
// POST /api/chat
func (h *Handler) Chat(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error:     "invalid request body",
			ErrorType: "InputError",
		})
	}
	if req.SessionID == "" {
		req.SessionID = domain.DefaultSessionID
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error:     "message is required",
			ErrorType: "InputError",
		})
	}

	result := h.service.Chat(ctx, req.SessionID, req.Message, true)
	return c.JSON(http.StatusOK, result)
}

// ChatWithPDF loads a PDF as session context if needed, then handles the turn.
// POST /api/chat/pdf
func (h *Handler) ChatWithPDF(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.ChatPDFRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error:     "invalid request body",
			ErrorType: "InputError",
		})
	}
	if req.SessionID == "" {
		req.SessionID = domain.DefaultSessionID
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error:     "message is required",
			ErrorType: "InputError",
		})
	}
	if err := domain.ValidatePDFURL(req.PDFURL); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error:     err.Error(),
			ErrorType: "InputError",
		})
	}

	if err := h.service.CheckRequestPolicy(ctx, req.PDFURL, 0); err != nil {
		return c.JSON(http.StatusForbidden, domain.ErrorResponse{
			Error:     err.Error(),
			ErrorType: "PolicyError",
		})
	}

	result, err := h.service.ChatWithDocument(ctx, req.SessionID, req.PDFURL, req.Message)
	if err != nil {
		var fetchErr *document.FetchError
		if errors.As(err, &fetchErr) {
			return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
				Error:     fetchErr.Error(),
				ErrorType: "PDFProcessingError",
			})
		}
		log.Printf("ERROR: chat with PDF failed: %v", err)
		return c.JSON(http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Chat processing failed",
			Details: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, result)
}

// GetChatHistory returns the conversation history for a session.
// GET /api/chat/history/:session_id
func (h *Handler) GetChatHistory(c echo.Context) error {
	sessionID := c.Param("session_id")

	messages, ok := h.service.GetHistory(sessionID)
	if !ok {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":    false,
			"error":      "Session not found",
			"session_id": sessionID,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":       true,
		"session_id":    sessionID,
		"messages":      messages,
		"message_count": len(messages),
	})
}

// ClearChatSession removes a chat session.
// DELETE /api/chat/session/:session_id
func (h *Handler) ClearChatSession(c echo.Context) error {
	sessionID := c.Param("session_id")

	existed := h.service.ClearSession(sessionID)
	message := "Session cleared"
	if !existed {
		message = "Session not found"
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    existed,
		"session_id": sessionID,
		"message":    message,
	})
}
