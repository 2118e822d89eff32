// handlers/boardfeed.go - live poster board status feed
//
// Clients on the map screen hold a websocket open and receive every
// board status change as it commits, so pins update without polling.
package handlers

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"actionboard/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// BoardStatusEvent is one feed message.
type BoardStatusEvent struct {
	BoardID        uint               `json:"board_id"`
	Prefecture     string             `json:"prefecture"`
	PreviousStatus models.BoardStatus `json:"previous_status"`
	NewStatus      models.BoardStatus `json:"new_status"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

type boardFeedHub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]chan []byte
}

var feedHub = &boardFeedHub{
	clients: make(map[*websocket.Conn]chan []byte),
}

func (h *boardFeedHub) register(conn *websocket.Conn) chan []byte {
	ch := make(chan []byte, 16)
	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()
	return ch
}

func (h *boardFeedHub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	if ch, ok := h.clients[conn]; ok {
		close(ch)
		delete(h.clients, conn)
	}
	h.mu.Unlock()
}

// broadcast fans the event out without blocking on slow clients. A
// client whose buffer is full just misses the event; the map refetches
// on reconnect anyway.
func (h *boardFeedHub) broadcast(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.clients {
		select {
		case ch <- payload:
		default:
		}
	}
}

// BroadcastBoardStatus publishes a committed status change to all feed
// subscribers.
func BroadcastBoardStatus(event BoardStatusEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to encode board event: %v", err)
		return
	}
	feedHub.broadcast(payload)
}

// BoardFeedUpgrade gates the websocket upgrade.
func BoardFeedUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// BoardFeedSocket streams board status events to one client.
func BoardFeedSocket(conn *websocket.Conn) {
	ch := feedHub.register(conn)
	defer func() {
		feedHub.unregister(conn)
		conn.Close()
	}()

	// Reader goroutine: we ignore client messages but must drain the
	// connection to notice disconnects.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case payload, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
