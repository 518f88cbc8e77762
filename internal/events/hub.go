package events

import "sync"

const subscriberBuffer = 16

// Hub is an in-memory broadcast of serialised events.
type Hub struct {
	mu      sync.Mutex
	clients map[chan string]struct{}
	closed  bool
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[chan string]struct{})}
}

// Subscribe registers a new client channel. After Close the returned
// channel is already closed.
func (h *Hub) Subscribe() chan string {
	ch := make(chan string, subscriberBuffer)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch
	}
	h.clients[ch] = struct{}{}
	return ch
}

// Unsubscribe removes and closes ch.
func (h *Hub) Unsubscribe(ch chan string) {
	h.mu.Lock()
	_, ok := h.clients[ch]
	delete(h.clients, ch)
	h.mu.Unlock()
	if ok {
		close(ch)
	}
}

// Close closes every client channel and refuses new subscribers.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for ch := range h.clients {
		delete(h.clients, ch)
		close(ch)
	}
}

// Publish sends evt to every client. Slow clients miss the event.
func (h *Hub) Publish(evt string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- evt:
		default:
		}
	}
}

// Subscribers returns the number of connected clients.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
