package feed

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub maintains the set of subscribed clients and fans out change events
type Hub struct {
	// Registered clients map: SubscriberID -> Client
	clients map[string]*Client

	// Register requests
	register chan *Client

	// Unregister requests
	unregister chan *Client

	// Row-change events awaiting fan-out
	events chan Event

	// Mutex for thread-safe access to clients map
	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan Event, 64),
		clients:    make(map[string]*Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if old, ok := h.clients[client.ID]; ok {
				close(old.send)
			}
			h.clients[client.ID] = client
			h.mu.Unlock()
			log.Printf("📡 Feed subscriber connected: %s", client.ID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("📴 Feed subscriber disconnected: %s", client.ID)

		case ev := <-h.events:
			h.fanOut(ev)
		}
	}
}

// Publish queues a change event for delivery to subscribers. Never blocks
// the caller: if the hub is saturated the event is dropped with a log line
// (clients recover via full re-fetch on reconnect).
func (h *Hub) Publish(table string, typ EventType, newRow, oldRow interface{}) {
	ev := NewEvent(table, typ, newRow, oldRow)
	select {
	case h.events <- ev:
	default:
		log.Printf("⚠️  Feed: event queue full, dropping %s %s", typ, table)
	}
}

func (h *Hub) fanOut(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("⚠️  Feed: failed to marshal event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if !client.subscribedTo(ev.Table) {
			continue
		}
		select {
		case client.send <- data:
		default:
			// Buffer full or client dead, skip
		}
	}
}

// SubscriberCount returns the number of connected feed clients
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
