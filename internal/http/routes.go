package http

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	middleware "shiftboard.com/shiftboard/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int, logger *zap.SugaredLogger) {
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.RateLimiter(rateLimitPerMinute))

	e.GET("/shifts/available", h.ListAvailable)
	e.GET("/shifts/filter-options/search", h.SearchFilterOptions)
	e.GET("/shifts", h.ListShifts)
	e.GET("/shifts/:id", h.GetShift)
	e.POST("/shifts/:id/claim", h.Claim)
	e.POST("/shifts/:id/cancel", h.Cancel)
	e.POST("/shifts/:id/keep", h.Keep)

	e.GET("/workers/:id/claims", h.BookedShifts)
	e.GET("/workplaces/top", h.TopWorkplaces)
}
