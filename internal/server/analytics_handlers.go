package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// GetAnalyticsOverview handles GET /api/analytics/overview
// @Summary Analytics overview
// @Description Total clicks, active days, and per-link counts for a time window. Recomputed from the click log on every call.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param window query string false "Window: 24h, 7d, 30d or all" default(7d)
// @Success 200 {object} service.Overview
// @Failure 400 {object} models.ErrorResponse
// @Router /analytics/overview [get]
func (s *Server) GetAnalyticsOverview(c *fiber.Ctx) error {
	window := c.Query("window", "7d")

	ctx, cancel := context.WithTimeout(c.Context(), publicReadTimeout)
	defer cancel()

	overview, err := s.analyticsService.ComputeOverview(ctx, currentUserID(c), window)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(overview)
}
