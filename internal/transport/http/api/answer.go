package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/leiwang08/docqa/internal/adapter/document"
	"github.com/leiwang08/docqa/internal/domain"
)

// AnswerQuestions processes a PDF and answers questions about it.
// POST /aibattle
func (h *Handler) AnswerQuestions(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.QuestionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error:     "invalid request body",
			ErrorType: "InputError",
		})
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error:     err.Error(),
			ErrorType: "InputError",
		})
	}

	if err := h.service.CheckRequestPolicy(ctx, req.PDFURL, len(req.Questions)); err != nil {
		return c.JSON(http.StatusForbidden, domain.ErrorResponse{
			Error:     err.Error(),
			ErrorType: "PolicyError",
		})
	}

	log.Printf("processing PDF from URL: %s (%d questions)", req.PDFURL, len(req.Questions))

	if !h.service.VerifyModel(ctx) {
		log.Printf("WARN: model verification failed - attempting to proceed anyway")
	}

	answers, err := h.service.AnswerQuestions(ctx, req.PDFURL, req.Questions)
	if err != nil {
		var fetchErr *document.FetchError
		if errors.As(err, &fetchErr) {
			return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
				Error:     fetchErr.Error(),
				ErrorType: "PDFProcessingError",
			})
		}
		log.Printf("ERROR: failed to generate answers: %v", err)
		return c.JSON(http.StatusInternalServerError, domain.ErrorResponse{
			Error:     "Failed to generate answers",
			ErrorType: "AIProcessingError",
			Details:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, domain.AnswerResponse{Answers: answers})
}
