package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/xiaot623/gogo/studybuddy/internal/domain"
	"github.com/xiaot623/gogo/studybuddy/internal/repository"
)

// ListHistory lists the sessions, most recent first.
// GET /v1/history
func (h *Handler) ListHistory(c echo.Context) error {
	sessions, err := h.service.History(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, domain.HistoryResponse{
		Sessions: sessions,
		Count:    len(sessions),
	})
}

// GetHistorySession gets one session by its append index.
// GET /v1/history/:index
func (h *Handler) GetHistorySession(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "index must be an integer"})
	}

	session, err := h.service.Session(c.Request().Context(), index)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, session)
}
