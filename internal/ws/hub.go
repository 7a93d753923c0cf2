// Package ws pushes engagement events to connected clients over WebSocket.
// Clients register under their external user id so likes and matches can be
// delivered to exactly the user they concern.
package ws

import (
	"log"
	"sync"

	"geostud-api/internal/metrics"
)

type Hub struct {
	clients    map[*Client]bool
	byUser     map[int64]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		byUser:     make(map[int64]map[*Client]struct{}),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			if h.byUser[client.externalID] == nil {
				h.byUser[client.externalID] = make(map[*Client]struct{})
			}
			h.byUser[client.externalID][client] = struct{}{}
			total := len(h.clients)
			h.mutex.Unlock()

			metrics.WSConnections.Set(float64(total))
			if h.logger != nil {
				h.logger.Printf("[WS] connected | user=%d total_clients=%d", client.externalID, total)
			}

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				if peers := h.byUser[client.externalID]; peers != nil {
					delete(peers, client)
					if len(peers) == 0 {
						delete(h.byUser, client.externalID)
					}
				}
				close(client.send)
			}
			total := len(h.clients)
			h.mutex.Unlock()

			metrics.WSConnections.Set(float64(total))
			if h.logger != nil {
				h.logger.Printf("[WS] disconnected | user=%d total_clients=%d", client.externalID, total)
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// SendToUser delivers a message to every connection the user currently holds.
// A client whose send buffer is full is dropped rather than blocked on.
func (h *Hub) SendToUser(externalID int64, message []byte) {
	if h == nil {
		return
	}

	h.mutex.RLock()
	snapshot := make([]*Client, 0, len(h.byUser[externalID]))
	for c := range h.byUser[externalID] {
		snapshot = append(snapshot, c)
	}
	h.mutex.RUnlock()

	for _, client := range snapshot {
		select {
		case client.send <- message:
		default:
			h.unregister <- client
		}
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
