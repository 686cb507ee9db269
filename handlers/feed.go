// handlers/feed.go - Live session feed over websocket
package handlers

import (
	"strings"

	"pickleball/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// FeedUpgrade gates /ws routes to websocket upgrade requests.
func FeedUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// SessionFeedSocket streams participant_joined and session_closed events for
// a session identified by join code. Public, like the REST session reads.
// GET /ws/sessions/:code
var SessionFeedSocket = websocket.New(func(conn *websocket.Conn) {
	code := normalizeCode(conn.Params("code"))

	if _, err := sessionService.GetByCode(code); err != nil {
		_ = conn.WriteJSON(services.FeedEvent{Type: "error", Payload: "Session not found"})
		_ = conn.Close()
		return
	}

	id, events := sessionFeed.Subscribe(code)
	defer sessionFeed.Unsubscribe(code, id)

	// Reader goroutine only watches for client disconnect; inbound
	// messages are ignored.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
			if event.Type == services.FeedSessionClosed {
				return
			}
		case <-done:
			return
		}
	}
})

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
