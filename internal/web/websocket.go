package web

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocket upgrader with reasonable settings
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans game updates out to the websocket clients watching each game.
type Hub struct {
	// Registered clients by game ID
	gameClients map[string]map[*Client]bool

	broadcast  chan GameUpdate
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex
}

// Client represents a WebSocket connection. send is never closed; the hub
// closes done when it drops the client and both pumps stop on it.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	gameID string
}

func newClient(hub *Hub, conn *websocket.Conn, gameID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		done:   make(chan struct{}),
		gameID: gameID,
	}
}

// GameUpdate represents an update to broadcast
type GameUpdate struct {
	GameID string      `json:"gameId"`
	Type   string      `json:"type"` // "move", "spectator_count"
	Data   interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		gameClients: make(map[string]map[*Client]bool),
		broadcast:   make(chan GameUpdate, 256),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
	}
}

// Run starts the hub's main event loop. It returns when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.gameClients[client.gameID] == nil {
				h.gameClients[client.gameID] = make(map[*Client]bool)
			}
			h.gameClients[client.gameID][client] = true
			h.mu.Unlock()

			log.Info().Str("gameID", client.gameID).Msg("Client connected to game")

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()

			log.Info().Str("gameID", client.gameID).Msg("Client disconnected from game")

		case update := <-h.broadcast:
			message, err := json.Marshal(update)
			if err != nil {
				log.Error().Err(err).Msg("Failed to marshal game update")
				continue
			}

			h.mu.Lock()
			for client := range h.gameClients[update.GameID] {
				select {
				case client.send <- message:
				default:
					// Client's send channel is full, drop it
					h.removeLocked(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.gameClients[client.gameID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.done)

	// Clean up empty game rooms
	if len(clients) == 0 {
		delete(h.gameClients, client.gameID)
	}
}

// BroadcastGameUpdate queues an update for everyone watching update.GameID.
func (h *Hub) BroadcastGameUpdate(update GameUpdate) {
	select {
	case h.broadcast <- update:
	default:
		log.Warn().Str("gameID", update.GameID).Msg("Broadcast channel full, dropping update")
	}
}

// SpectatorCount is the number of clients connected to gameID.
func (h *Hub) SpectatorCount(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.gameClients[gameID])
}

// WebSocketHandler handles WebSocket upgrade requests
func (s *Service) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("gameId")
	if gameID == "" {
		http.Error(w, "Missing gameId parameter", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	client := newClient(s.hub, conn, gameID)

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump handles incoming messages from the WebSocket
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Msg("WebSocket error")
			}
			break
		}

		var msg map[string]interface{}
		if err := json.Unmarshal(message, &msg); err == nil && msg["type"] == "ping" {
			if data, err := json.Marshal(map[string]string{"type": "pong"}); err == nil {
				c.trySend(data)
			}
		}
	}
}

// trySend queues data without blocking. It reports false when the queue is
// full or the hub has already dropped the client.
func (c *Client) trySend(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// writePump handles sending messages to the WebSocket
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
