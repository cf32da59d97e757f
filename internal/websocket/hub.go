package websocket

import (
	"encoding/json"
	"sync"

	"github.com/arteliving/arteliving-backend/internal/app/model"
	"github.com/arteliving/arteliving-backend/pkg/logger"
)

// Event is the envelope pushed to connected back-office clients.
type Event struct {
	Type  string      `json:"type"`
	Order interface{} `json:"order,omitempty"`
}

const EventNewOrder = "new_order"

// Hub fans order events out to every connected admin session. Clients are
// read-only; there is no client-to-server protocol beyond pings.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan []byte, 256),
	}
}

// Run processes register, unregister and broadcast events. Call in its own
// goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			sessions := len(h.clients)
			h.mu.Unlock()
			logger.Info("Admin feed client connected", map[string]interface{}{
				"user_id":  client.UserID,
				"sessions": sessions,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			sessions := len(h.clients)
			h.mu.Unlock()
			logger.Info("Admin feed client disconnected", map[string]interface{}{
				"user_id":  client.UserID,
				"sessions": sessions,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Send buffer full, drop the slow client.
					go h.Unregister(client)
					logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
						"user_id": client.UserID,
					})
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// NotifyNewOrder pushes a freshly placed order to every admin session. It
// satisfies the order service's notifier interface; a full broadcast channel
// drops the event rather than blocking checkout.
func (h *Hub) NotifyNewOrder(order *model.Order) {
	data, err := json.Marshal(Event{Type: EventNewOrder, Order: order})
	if err != nil {
		logger.Error("Failed to marshal order event", err, nil)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warn("Broadcast channel full, order event dropped", map[string]interface{}{
			"order_id": order.ID,
		})
	}
}

// ClientCount reports the number of connected sessions.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
