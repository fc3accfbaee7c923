package server

import (
	"github.com/gofiber/fiber/v2"
)

// DeleteMyAccount handles DELETE /api/users/me
// @Summary Delete own account
// @Description Erase the account and everything it owns: links, click history, profile, credentials. Irreversible.
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /users/me [delete]
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	if err := s.accountService.DeleteAccount(c.Context(), currentUserID(c)); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Account deleted"})
}
