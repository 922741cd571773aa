// Package v1 provides the JSON API for the study service.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xiaot623/gogo/studybuddy/internal/service"
)

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

// RegisterRoutes registers the JSON API routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Feature API
	e.POST("/v1/explain", h.Explain)
	e.POST("/v1/summarize", h.Summarize)
	e.POST("/v1/quiz", h.Quiz)
	e.POST("/v1/flashcards", h.Flashcards)

	// History API
	e.GET("/v1/history", h.ListHistory)
	e.GET("/v1/history/:index", h.GetHistorySession)

	e.GET("/v1/status", h.Status)
	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// Status reports how the running session is configured.
// GET /v1/status
func (h *Handler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Status())
}
