package server

import (
	"log/slog"
	"time"

	"linksea/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// wsTicketTTL bounds the window between ticket issuance and the upgrade
// request. Tickets are single-use; the TTL only covers loss.
const wsTicketTTL = 30 * time.Second

// clickFeedFlag gates the live click feed, including ticket issuance.
const clickFeedFlag = "click_feed"

// IssueWSTicket handles POST /api/ws/ticket
// @Summary Issue a WebSocket ticket
// @Description Issue a short-lived single-use ticket for authenticating a WebSocket upgrade. Browsers can't set Authorization headers on WS connections.
// @Tags websocket
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{ticket=string,expires_in=int}
// @Failure 503 {object} models.ErrorResponse
// @Router /ws/ticket [post]
func (s *Server) IssueWSTicket(c *fiber.Ctx) error {
	if s.redis == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewTransientError(nil))
	}

	userID := currentUserID(c)
	if !s.flags.Enabled(clickFeedFlag, userID) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Feature", clickFeedFlag))
	}
	ticket := uuid.New().String()
	key := "ws_ticket:" + ticket

	if err := s.redis.Set(c.Context(), key, userID, wsTicketTTL).Err(); err != nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewTransientError(err))
	}

	return c.JSON(fiber.Map{
		"ticket":     ticket,
		"expires_in": int(wsTicketTTL.Seconds()),
	})
}

// ClickFeedHandler handles GET /api/ws/clicks, upgraded to a WebSocket that
// delivers click_recorded events for the authenticated user's links. Events
// only signal that something happened; the dashboard re-fetches analytics.
func (s *Server) ClickFeedHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		if !s.flags.Enabled(clickFeedFlag, userID) {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"feed unavailable"}`))
			_ = conn.Close()
			return
		}

		if s.clickHub == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"feed unavailable"}`))
			_ = conn.Close()
			return
		}

		client, err := s.clickHub.Register(userID, conn)
		if err != nil {
			slog.Warn("click feed registration refused", "user_id", userID, "err", err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		go client.WritePump()

		// Read pump runs in the handler goroutine and returns on disconnect.
		client.ReadPump()
	})
}
