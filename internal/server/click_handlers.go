package server

import (
	"linksea/internal/models"
	"linksea/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RecordClick handles POST /api/p/:username/links/:id/click
// @Summary Record a link click
// @Description Append one click event. Recording is best-effort: the endpoint reports accepted even when the store write fails, so the visitor's navigation is never blocked.
// @Tags clicks
// @Accept json
// @Produce json
// @Param username path string true "Profile username"
// @Param id path int true "Link ID"
// @Param request body object{referrer=string} false "Optional click context"
// @Success 202 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /p/{username}/links/{id}/click [post]
func (s *Server) RecordClick(c *fiber.Ctx) error {
	username := c.Params("username")
	linkID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.profileRepo.GetByUsername(c.Context(), username)
	if err != nil {
		return mapServiceError(c, err)
	}
	if profile.IsDisabled {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Profile", username))
	}

	link, err := s.linkRepo.GetByID(c.Context(), linkID)
	if err != nil {
		return mapServiceError(c, err)
	}
	if link.UserID != profile.ID {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Link", linkID))
	}

	var req struct {
		Referrer string `json:"referrer"`
	}
	// Body is optional; a bare POST still counts.
	_ = c.BodyParser(&req)
	if req.Referrer == "" {
		req.Referrer = c.Get("Referer")
	}

	s.clickService.Record(c.Context(), service.RecordClickInput{
		LinkID:      link.ID,
		OwnerUserID: profile.ID,
		Referrer:    req.Referrer,
		UserAgent:   c.Get("User-Agent"),
	})

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "Click accepted"})
}
