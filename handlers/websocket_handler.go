package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/ligaregional/league-system/fixture"
	"github.com/ligaregional/league-system/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the association frontend origin before exposing publicly.
		return true
	},
}

type WebSocketHandler struct {
	hub *fixture.Hub
}

func NewWebSocketHandler(hub *fixture.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
	}
}

// ServeWs subscribes a client to live updates for one division.
// Clients connect to /ws/divisions/{division}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	division, err := models.ParseDivision(chi.URLParam(r, "division"))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		log.Printf("failed to upgrade websocket for division %s: %v", division, err)
		return
	}

	client := &fixture.Client{
		Hub:      h.hub,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		Division: division,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
