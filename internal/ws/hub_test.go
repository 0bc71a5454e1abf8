package ws

import (
	"encoding/json"
	"testing"
	"time"

	"arena_webapp/internal/domain"
)

func newTestClient(hub *Hub, userID int64, buffer int) *Client {
	return &Client{
		UserID: userID,
		Send:   make(chan []byte, buffer),
		hub:    hub,
	}
}

func TestHubWalletUpdatedTargetsOwner(t *testing.T) {
	hub := NewHub()

	owner := newTestClient(hub, 1, 4)
	other := newTestClient(hub, 2, 4)
	hub.register(owner)
	hub.register(other)

	hub.WalletUpdated(1, &domain.Wallet{UserID: 1, Pools: domain.Pools{Deposit: 5}})

	select {
	case msg := <-owner.Send:
		var env Envelope
		if err := json.Unmarshal(msg, &env); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if env.Type != TypeWallet {
			t.Fatalf("type = %q, want %q", env.Type, TypeWallet)
		}
	case <-time.After(time.Second):
		t.Fatal("owner did not receive wallet snapshot")
	}

	select {
	case msg := <-other.Send:
		t.Fatalf("unexpected message for other user: %s", msg)
	default:
	}
}

func TestHubTournamentUpdatedBroadcastsMasked(t *testing.T) {
	hub := NewHub()

	a := newTestClient(hub, 1, 4)
	b := newTestClient(hub, 2, 4)
	hub.register(a)
	hub.register(b)

	tournament := &domain.Tournament{
		ID:       9,
		Title:    "Night Cup",
		RoomID:   "room-42",
		RoomPass: "hunter2",
	}
	hub.TournamentUpdated(tournament, 12)

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Send:
			var env struct {
				Type    string            `json:"type"`
				Payload TournamentPayload `json:"payload"`
			}
			if err := json.Unmarshal(msg, &env); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if env.Type != TypeTournament {
				t.Fatalf("type = %q", env.Type)
			}
			if env.Payload.Tournament.RoomID != "" || env.Payload.Tournament.RoomPass != "" {
				t.Fatal("room credentials leaked over broadcast")
			}
			if env.Payload.FilledSlots != 12 {
				t.Fatalf("filled_slots = %d, want 12", env.Payload.FilledSlots)
			}
		case <-time.After(time.Second):
			t.Fatalf("client %d did not receive broadcast", c.UserID)
		}
	}

	// the source struct stays intact
	if tournament.RoomID != "room-42" {
		t.Fatal("broadcast mutated the source tournament")
	}
}

func TestHubDropsForSlowClient(t *testing.T) {
	hub := NewHub()

	slow := newTestClient(hub, 1, 1)
	hub.register(slow)

	w := &domain.Wallet{UserID: 1}
	hub.WalletUpdated(1, w)
	// buffer full now; this push must not block
	done := make(chan struct{})
	go func() {
		hub.WalletUpdated(1, w)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("push blocked on slow client")
	}
}

// Clients wait for this exact frame after connecting.
func TestReadyEnvelopeWireShape(t *testing.T) {
	msg, err := json.Marshal(Envelope{Type: TypeReady})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(msg) != `{"type":"ready"}` {
		t.Fatalf("ready frame = %s", msg)
	}
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub()

	c := newTestClient(hub, 1, 1)
	hub.register(c)
	if hub.ConnCount() != 1 {
		t.Fatalf("ConnCount = %d, want 1", hub.ConnCount())
	}

	hub.unregister(c)
	if hub.ConnCount() != 0 {
		t.Fatalf("ConnCount = %d, want 0", hub.ConnCount())
	}

	hub.WalletUpdated(1, &domain.Wallet{UserID: 1})
	select {
	case msg := <-c.Send:
		t.Fatalf("unexpected message after unregister: %s", msg)
	default:
	}
}
