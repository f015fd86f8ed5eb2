package realtime

import (
	"encoding/json"
	"log"
	"time"

	"dsamentor/backend/config"
	"dsamentor/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const lessonCompleteMessage = "Outstanding work! You're one step closer to DSA mastery."

// UpgradeMiddleware gates the websocket upgrade on a valid session token
// supplied in the `token` query parameter. An invalid token ends the
// connection attempt here; the client must reconnect with a fresh one.
func UpgradeMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		userID, err := utils.ParseToken(c.Query("token"), cfg)
		if err != nil {
			return utils.Unauthorized(c, "Invalid or expired token")
		}
		c.Locals("userID", userID)
		return c.Next()
	}
}

// Handler runs one connection: join the user's broadcast group, relay
// inbound events until the socket closes, then leave.
func Handler(hub *Hub, logger *log.Logger) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, ok := conn.Locals("userID").(uint)
		if !ok {
			return
		}

		hub.Join(userID, conn)
		defer hub.Leave(userID, conn)
		logger.Printf("websocket: user %d connected", userID)

		for {
			var event InboundEvent
			if err := conn.ReadJSON(&event); err != nil {
				break
			}

			dispatch(hub, userID, conn, event)
		}

		logger.Printf("websocket: user %d disconnected", userID)
	})
}

// dispatch translates one inbound event into its outbound form and fans it
// out. A progress update goes only to the user's other connections; a lesson
// completion goes to all of them, the sender included.
func dispatch(hub *Hub, userID uint, sender Conn, event InboundEvent) {
	switch event.Event {
	case "progress_update":
		hub.BroadcastToOthers(userID, sender, OutboundEvent{
			Event: "progress_sync",
			Data:  event.Data,
		})
	case "lesson_complete":
		var payload struct {
			Day int `json:"day"`
		}
		_ = json.Unmarshal(event.Data, &payload)
		hub.BroadcastToAll(userID, OutboundEvent{
			Event: "lesson_completed",
			Data: fiber.Map{
				"day":       payload.Day,
				"timestamp": time.Now(),
				"message":   lessonCompleteMessage,
			},
		})
	}
}
