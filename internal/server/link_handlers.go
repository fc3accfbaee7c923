package server

import (
	"linksea/internal/models"
	"linksea/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetLinks handles GET /api/links
// @Summary List own links
// @Description Get the authenticated user's links ordered by position
// @Tags links
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Link
// @Router /links [get]
func (s *Server) GetLinks(c *fiber.Ctx) error {
	links, err := s.linkService.ListLinks(c.Context(), currentUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(links)
}

// CreateLink handles POST /api/links
// @Summary Create link
// @Description Create a link appended at the end of the user's list
// @Tags links
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{title=string,url=string,description=string,icon=string} true "Link fields"
// @Success 201 {object} models.Link
// @Failure 400 {object} models.ErrorResponse
// @Router /links [post]
func (s *Server) CreateLink(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	link, err := s.linkService.CreateLink(c.Context(), service.CreateLinkInput{
		UserID:      currentUserID(c),
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(link)
}

// UpdateLink handles PUT /api/links/:id
// @Summary Update link
// @Description Partially update a link's title/url/description/icon. Position never changes here.
// @Tags links
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Link ID"
// @Param request body object{title=string,url=string,description=string,icon=string} true "Fields to change"
// @Success 200 {object} models.Link
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /links/{id} [put]
func (s *Server) UpdateLink(c *fiber.Ctx) error {
	linkID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       *string `json:"title"`
		URL         *string `json:"url"`
		Description *string `json:"description"`
		Icon        *string `json:"icon"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	link, err := s.linkService.UpdateLink(c.Context(), service.UpdateLinkInput{
		UserID:      currentUserID(c),
		LinkID:      linkID,
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(link)
}

// DeleteLink handles DELETE /api/links/:id
// @Summary Delete link
// @Description Hard-delete a link. Its click history survives under a sentinel title.
// @Tags links
// @Produce json
// @Security BearerAuth
// @Param id path int true "Link ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /links/{id} [delete]
func (s *Server) DeleteLink(c *fiber.Ctx) error {
	linkID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.linkService.DeleteLink(c.Context(), currentUserID(c), linkID); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Link deleted"})
}

// ReorderLinks handles PUT /api/links/reorder
// @Summary Reorder links
// @Description Replace the ordering wholesale. The id set must exactly equal the current link set. Returns the fresh authoritative list so clients replace local state.
// @Tags links
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{link_ids=[]int} true "Links in desired order"
// @Success 200 {array} models.Link
// @Failure 400 {object} models.ErrorResponse
// @Router /links/reorder [put]
func (s *Server) ReorderLinks(c *fiber.Ctx) error {
	var req struct {
		LinkIDs []uint `json:"link_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.LinkIDs == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("link_ids is required"))
	}

	links, err := s.linkService.Reorder(c.Context(), currentUserID(c), req.LinkIDs)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(links)
}
