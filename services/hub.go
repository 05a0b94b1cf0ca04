package services

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub fans vote-result updates out to websocket subscribers. Each
// client follows a single question.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

type Client struct {
	hub        *Hub
	socket     *websocket.Conn
	send       chan []byte
	questionID uint
}

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Results client registered for question %d - Total clients: %d", client.questionID, len(h.clients))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Results client unregistered for question %d - Total clients: %d", client.questionID, len(h.clients))
			}
			h.mutex.Unlock()
		}
	}
}

// BroadcastResults pushes the current vote totals to every subscriber
// of the question.
func (h *Hub) BroadcastResults(questionID uint, results map[uint]int) {
	message := Message{
		Type: "vote_update",
		Payload: map[string]interface{}{
			"question_id": questionID,
			"results":     results,
		},
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling results message: %v", err)
		return
	}

	h.mutex.Lock()
	for client := range h.clients {
		if client.questionID != questionID {
			continue
		}
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
	h.mutex.Unlock()
}

func (h *Hub) RegisterClient(conn *websocket.Conn, questionID uint) *Client {
	client := &Client{
		hub:        h,
		socket:     conn,
		send:       make(chan []byte, 256),
		questionID: questionID,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()

	return client
}

func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

func (c *Client) readPump() {
	defer func() {
		c.hub.UnregisterClient(c)
		c.socket.Close()
	}()

	for {
		_, message, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		// Subscribers only listen; ping is the one accepted request.
		if msg.Type == "ping" {
			response := Message{Type: "pong", Payload: "pong"}
			data, _ := json.Marshal(response)
			c.send <- data
		}
	}
}

func (c *Client) writePump() {
	defer func() {
		c.socket.Close()
	}()

	for message := range c.send {
		w, err := c.socket.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}
	c.socket.WriteMessage(websocket.CloseMessage, []byte{})
}
