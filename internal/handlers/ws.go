package handlers

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"gigflow/internal/realtime"
)

type WSHandler struct {
	Hub *realtime.Hub
}

func NewWSHandler(hub *realtime.Hub) *WSHandler {
	return &WSHandler{Hub: hub}
}

// Notifications is the websocket endpoint a signed-in user keeps open to
// receive pushes. The auth middleware has already validated the session
// cookie; the user id arrives through locals.
func (h *WSHandler) Notifications(c *websocket.Conn) {
	raw, _ := c.Locals("userId").(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		logrus.WithField("user_id", raw).Warn("websocket: invalid user id")
		c.Close()
		return
	}

	client := realtime.NewClient(userID)
	h.Hub.Subscribe(client)
	defer h.Hub.Unsubscribe(client)

	logrus.WithField("user_id", userID).Debug("websocket connected")

	// writer: one goroutine per connection drains the send channel, so the
	// hub never blocks on a network write
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range client.Send {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				logrus.WithError(err).Debug("websocket write error")
				return
			}
		}
	}()

	// reader: keeps the connection alive and detects the close
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}

	h.Hub.Unsubscribe(client)
	<-done
	logrus.WithField("user_id", userID).Debug("websocket disconnected")
}
