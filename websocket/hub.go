package websocket

import (
	"log"
	"sync"

	"civichub/models"

	"github.com/gorilla/websocket"
)

// Client is one connected WebSocket subscriber
type Client struct {
	ID      string
	UserID  string
	Conn    *websocket.Conn
	writeMu sync.Mutex
}

// SafeWriteJSON serializes writes on the underlying connection
func (c *Client) SafeWriteJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(v)
}

var (
	clients   = make(map[*Client]bool)
	clientsMu sync.RWMutex
)

// RegisterClient adds a client to the hub
func RegisterClient(client *Client) {
	clientsMu.Lock()
	defer clientsMu.Unlock()
	clients[client] = true
	log.Printf("WebSocket client registered. Total clients: %d", len(clients))
}

// UnregisterClient removes a client from the hub
func UnregisterClient(client *Client) {
	clientsMu.Lock()
	defer clientsMu.Unlock()
	delete(clients, client)
	log.Printf("WebSocket client unregistered. Total clients: %d", len(clients))
}

// BroadcastEvent sends an event to every connected client
func BroadcastEvent(event models.GamificationEvent) {
	clientsMu.RLock()
	defer clientsMu.RUnlock()

	for client := range clients {
		if err := client.SafeWriteJSON(event); err != nil {
			log.Printf("Failed to send event to client %s: %v", client.ID, err)
		}
	}
}

// SendToUser sends an event to every connection belonging to one user
func SendToUser(userID string, event models.GamificationEvent) {
	clientsMu.RLock()
	defer clientsMu.RUnlock()

	for client := range clients {
		if client.UserID != userID {
			continue
		}
		if err := client.SafeWriteJSON(event); err != nil {
			log.Printf("Failed to send event to client %s: %v", client.ID, err)
		}
	}
}
