package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	wsAdapter "github.com/aniket045123/craftmyresume/internal/adapter/websocket"
)

// LiveFeedHandler upgrades authenticated admins onto the intake event feed.
type LiveFeedHandler struct {
	hub *wsAdapter.Hub
}

func NewLiveFeedHandler(hub *wsAdapter.Hub) *LiveFeedHandler {
	return &LiveFeedHandler{hub: hub}
}

// RegisterRoutes mounts GET <router>/admin. Run AuthRequired first.
func (h *LiveFeedHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/admin", h.upgrade, websocket.New(func(c *websocket.Conn) {
		userID, _ := c.Locals("user_id").(string)
		h.hub.Serve(c, userID)
	}))
}

func (h *LiveFeedHandler) upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}
