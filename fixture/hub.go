package fixture

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ligaregional/league-system/models"
)

const (
	EventMatchUpdated     = "MATCH_UPDATED"
	EventFixtureCommitted = "FIXTURE_COMMITTED"
)

// Event is the JSON envelope pushed to websocket subscribers of a
// division room.
type Event struct {
	Type     string          `json:"type"`
	Division models.Division `json:"division"`
	Payload  interface{}     `json:"payload"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	Division models.Division

	mu     sync.Mutex
	closed bool
}

// Hub fans division-scoped events out to connected websocket clients.
// One room per division; empty rooms are dropped.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	mu    sync.RWMutex
	rooms map[models.Division]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[models.Division]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.Division]; !ok {
				h.rooms[client.Division] = make(map[*Client]bool)
			}
			h.rooms[client.Division][client] = true
			log.Printf("client registered to division %s room (%d connected)", client.Division, len(h.rooms[client.Division]))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.Division]; ok {
				if _, okClient := room[client]; okClient {
					client.mu.Lock()
					if !client.closed {
						close(client.Send)
						client.closed = true
					}
					client.mu.Unlock()
					delete(room, client)
					if len(room) == 0 {
						delete(h.rooms, client.Division)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToDivision sends an event to every client subscribed to the
// division. Clients with a full send buffer are skipped, not blocked on.
func (h *Hub) BroadcastToDivision(division models.Division, eventType string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[division]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(Event{Type: eventType, Division: division, Payload: payload})
	if err != nil {
		log.Printf("error marshalling %s event for division %s: %v", eventType, division, err)
		return
	}

	for client := range room {
		client.mu.Lock()
		if client.closed {
			client.mu.Unlock()
			continue
		}
		select {
		case client.Send <- messageBytes:
		default:
			log.Printf("send buffer full for a client in division %s, dropping event", division)
		}
		client.mu.Unlock()
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		// Clients are listen-only; inbound frames keep the connection
		// alive but their content is discarded.
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket client in division %s: %v", c.Division, err)
			}
			break
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
