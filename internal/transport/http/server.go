// Package http provides the HTTP server implementation for the study service.
package http

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/xiaot623/gogo/studybuddy/internal/service"
	v1 "github.com/xiaot623/gogo/studybuddy/internal/transport/http/v1"
	"github.com/xiaot623/gogo/studybuddy/internal/transport/http/web"
	"github.com/xiaot623/gogo/studybuddy/internal/transport/ws"
)

// NewServer creates and configures the HTTP server. It serves the study
// page, the JSON API and the WebSocket endpoint.
func NewServer(svc *service.Service, wsServer *ws.Server, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return "req_" + uuid.New().String()[:8]
		},
	}))
	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig(logger)))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Renderer = web.NewRenderer()

	// Handlers
	v1Handler := v1.NewHandler(svc)
	webHandler := web.NewHandler(svc)

	// Register Routes
	v1Handler.RegisterRoutes(e)
	webHandler.RegisterRoutes(e)
	wsServer.RegisterRoutes(e)

	return e
}

func requestLoggerConfig(logger *slog.Logger) middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	}
}
