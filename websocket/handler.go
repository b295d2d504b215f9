package websocket

import (
	"log"
	"net/http"

	"civichub/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin is enforced by the CORS layer
	},
}

// Handler upgrades an authenticated request to a WebSocket connection and
// keeps it subscribed to gamification events until it closes
func Handler(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		ID:     uuid.NewString(),
		UserID: userID.Hex(),
		Conn:   conn,
	}
	RegisterClient(client)

	go readLoop(client)
}

// readLoop drains inbound frames so pings are answered, tearing the
// client down on the first read error
func readLoop(client *Client) {
	defer func() {
		UnregisterClient(client)
		client.Conn.Close()
	}()

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
