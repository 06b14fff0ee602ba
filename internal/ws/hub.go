// Package ws pushes task change events to the owner's open sockets.
// It is a notification feed only; clients re-fetch the list through
// the API rather than patching state from these events.
package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/shaik1234567/TaskFlow-AI/internal/models"
	"github.com/shaik1234567/TaskFlow-AI/pkg/logger"
)

const (
	EventTaskCreated = "task_created"
	EventTaskUpdated = "task_updated"
	EventTaskDeleted = "task_deleted"
)

// Event is one task change. Task is set for creates and updates,
// TaskID for deletes.
type Event struct {
	Type   string       `json:"type"`
	Task   *models.Task `json:"task,omitempty"`
	TaskID string       `json:"taskId,omitempty"`
}

// Client is one websocket connection bound to an authenticated owner.
type Client struct {
	OwnerID string
	Conn    *websocket.Conn
	mu      sync.Mutex
}

func (c *Client) write(message []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(websocket.TextMessage, message)
}

type ownerMessage struct {
	ownerID string
	payload []byte
}

// Hub fans task events out to the owner's connections.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	clients map[*Client]bool
	events  chan ownerMessage
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		events:     make(chan ownerMessage, 16),
	}
}

// Publish queues an event for every open socket of this owner. Safe to
// call from any goroutine; never blocks a request handler on a slow
// socket for long since writes happen on the hub loop.
func (h *Hub) Publish(ownerID string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.ErrorLogger.Error("Error encoding task event", zap.Error(err))
		return
	}
	h.events <- ownerMessage{ownerID: ownerID, payload: payload}
}

// Run owns the client set; start it once in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Conn.Close()
			}
		case msg := <-h.events:
			for client := range h.clients {
				if client.OwnerID != msg.ownerID {
					continue
				}
				if err := client.write(msg.payload); err != nil {
					delete(h.clients, client)
					client.Conn.Close()
				}
			}
		}
	}
}
