// Package relay broadcasts chat messages between connected WebSocket peers
package relay

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/ismail-dev-code/career-linker-server/internal/metrics"
)

// EventChatMessage is the only event the relay forwards
const EventChatMessage = "chat message"

// Envelope is the JSON frame exchanged with peers
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	sender  *Client
	payload []byte
}

// Hub owns the set of connected peers. Only the Run goroutine touches the set.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan outbound
	done       chan struct{}

	clients map[*Client]struct{}
	peers   atomic.Int64

	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewHub creates a hub. m may be nil. Call Run before accepting peers.
func NewHub(logger zerolog.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan outbound, 64),
		done:       make(chan struct{}),
		clients:    make(map[*Client]struct{}),
		logger:     logger.With().Str("component", "relay").Logger(),
		metrics:    m,
	}
}

// Peers returns the number of connected peers
func (h *Hub) Peers() int {
	return int(h.peers.Load())
}

// Run serves register, unregister and broadcast requests until ctx is done,
// then disconnects every peer
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	h.logger.Info().Msg("relay hub started")

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.remove(client)
			}
			h.logger.Info().Msg("relay hub stopped")
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.setPeers()
			h.logger.Info().Str("peer", client.id).Int("peers", len(h.clients)).Msg("peer connected")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.remove(client)
				h.logger.Info().Str("peer", client.id).Int("peers", len(h.clients)).Msg("peer disconnected")
			}

		case msg := <-h.broadcast:
			if _, ok := h.clients[msg.sender]; !ok {
				continue
			}
			if h.metrics != nil {
				h.metrics.RelayMessagesTotal.Inc()
			}
			for client := range h.clients {
				if client == msg.sender {
					continue
				}
				select {
				case client.send <- msg.payload:
				default:
					h.remove(client)
					if h.metrics != nil {
						h.metrics.RelayDroppedPeersTotal.Inc()
					}
					h.logger.Warn().Str("peer", client.id).Msg("peer send queue full, dropping")
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	delete(h.clients, client)
	close(client.send)
	h.setPeers()
}

func (h *Hub) setPeers() {
	h.peers.Store(int64(len(h.clients)))
	if h.metrics != nil {
		h.metrics.RelayPeers.Set(float64(len(h.clients)))
	}
}

// enqueue hands a frame to the hub, returning false once the hub stopped
func (h *Hub) enqueue(msg outbound) bool {
	select {
	case h.broadcast <- msg:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
