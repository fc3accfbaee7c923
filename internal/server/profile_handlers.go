package server

import (
	"context"
	"time"

	"linksea/internal/models"
	"linksea/internal/service"

	"github.com/gofiber/fiber/v2"
)

// publicReadTimeout caps visitor-facing reads so a slow database cannot pin
// page loads.
const publicReadTimeout = 5 * time.Second

// GetPublicProfile handles GET /api/p/:username
// @Summary Public profile page
// @Description Resolve a public profile and its ordered links. Disabled profiles read as missing.
// @Tags profiles
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} service.PublicProfile
// @Failure 404 {object} models.ErrorResponse
// @Router /p/{username} [get]
func (s *Server) GetPublicProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}

	ctx, cancel := context.WithTimeout(c.Context(), publicReadTimeout)
	defer cancel()

	page, err := s.profileService.GetPublicProfile(ctx, username)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(page)
}

// GetMyProfile handles GET /api/users/me
// @Summary Get own profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Profile
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetOwnProfile(c.Context(), currentUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(profile)
}

// UpdateMyProfile handles PUT /api/users/me
// @Summary Update own profile
// @Description Partially update username, bio, and avatar URL
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{username=string,bio=string,avatar_url=string} true "Fields to change"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Username  *string `json:"username"`
		Bio       *string `json:"bio"`
		AvatarURL *string `json:"avatar_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:    currentUserID(c),
		Username:  req.Username,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(profile)
}

// SetProfileVisibility handles PUT /api/users/me/visibility
// @Summary Toggle profile visibility
// @Description Disable or re-enable the public page without deleting anything
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{is_disabled=bool} true "Desired visibility"
// @Success 200 {object} models.Profile
// @Router /users/me/visibility [put]
func (s *Server) SetProfileVisibility(c *fiber.Ctx) error {
	var req struct {
		IsDisabled *bool `json:"is_disabled"`
	}
	if err := c.BodyParser(&req); err != nil || req.IsDisabled == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("is_disabled is required"))
	}

	profile, err := s.profileService.SetDisabled(c.Context(), currentUserID(c), *req.IsDisabled)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(profile)
}

// CheckUsername handles GET /api/users/check-username
// @Summary Username availability
// @Description Report whether a username is valid and unclaimed
// @Tags profiles
// @Produce json
// @Param username query string true "Username to check"
// @Success 200 {object} object{username=string,available=bool}
// @Failure 400 {object} models.ErrorResponse
// @Router /users/check-username [get]
func (s *Server) CheckUsername(c *fiber.Ctx) error {
	username := c.Query("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("username query parameter is required"))
	}

	available, err := s.profileService.UsernameAvailable(c.Context(), username)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"username":  username,
		"available": available,
	})
}
