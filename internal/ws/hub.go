package ws

import (
	"encoding/json"
	"sync"

	"arena_webapp/internal/domain"
	"arena_webapp/internal/logger"
)

// Hub tracks connected clients by user and fans out post-commit
// snapshots. It sits entirely outside the settlement path: pushes are
// queued on buffered channels and dropped for slow consumers.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64][]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64][]*Client),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c.UserID] = append(h.clients[c.UserID], c)
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.clients[c.UserID]
	for i, other := range conns {
		if other == c {
			h.clients[c.UserID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.clients[c.UserID]) == 0 {
		delete(h.clients, c.UserID)
	}
}

// WalletUpdated pushes a fresh wallet snapshot to the owner's connections
func (h *Hub) WalletUpdated(userID int64, w *domain.Wallet) {
	msg, err := json.Marshal(Envelope{Type: TypeWallet, Payload: WalletPayload{Wallet: w}})
	if err != nil {
		logger.Error("ws: marshal wallet payload", "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients[userID] {
		c.enqueue(msg)
	}
}

// TournamentUpdated broadcasts a tournament change to every connection
func (h *Hub) TournamentUpdated(t *domain.Tournament, filledSlots int) {
	// room credentials never travel over the broadcast channel
	masked := *t
	masked.RoomID = ""
	masked.RoomPass = ""

	msg, err := json.Marshal(Envelope{Type: TypeTournament, Payload: TournamentPayload{Tournament: &masked, FilledSlots: filledSlots}})
	if err != nil {
		logger.Error("ws: marshal tournament payload", "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conns := range h.clients {
		for _, c := range conns {
			c.enqueue(msg)
		}
	}
}

// ConnCount returns the number of live connections, for health reporting
func (h *Hub) ConnCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, conns := range h.clients {
		n += len(conns)
	}
	return n
}
