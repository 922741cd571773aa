package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xiaot623/gogo/studybuddy/internal/domain"
)

// Explain explains a concept.
// POST /v1/explain
func (h *Handler) Explain(c echo.Context) error {
	var req domain.ExplainRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	result, err := h.service.Explain(c.Request().Context(), req)
	return respond(c, result, err)
}

// Summarize summarizes pasted notes.
// POST /v1/summarize
func (h *Handler) Summarize(c echo.Context) error {
	var req domain.SummarizeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	result, err := h.service.Summarize(c.Request().Context(), req)
	return respond(c, result, err)
}

// Quiz generates a quiz. The response also carries the parsed question stems.
// POST /v1/quiz
func (h *Handler) Quiz(c echo.Context) error {
	var req domain.QuizRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	result, err := h.service.Quiz(c.Request().Context(), req)
	return respond(c, result, err)
}

// Flashcards generates flashcards. The response also carries the parsed cards.
// POST /v1/flashcards
func (h *Handler) Flashcards(c echo.Context) error {
	var req domain.FlashcardsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	result, err := h.service.Flashcards(c.Request().Context(), req)
	return respond(c, result, err)
}

// respond maps a feature outcome to a response. Upstream failures are already
// folded into the session content and come back as 200.
func respond(c echo.Context, result *domain.FeatureResult, err error) error {
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusUnprocessableEntity, domain.WarningResponse{
				Warning:  verr.Warning(),
				Warnings: verr.Warnings,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}
