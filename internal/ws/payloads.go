package ws

import "arena_webapp/internal/domain"

// Envelope is the wire frame for every pushed message.
type Envelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

const (
	TypeReady      = "ready"
	TypeWallet     = "wallet"
	TypeTournament = "tournament"
)

// WalletPayload is the post-commit wallet snapshot pushed to its owner.
type WalletPayload struct {
	Wallet *domain.Wallet `json:"wallet"`
}

// TournamentPayload is broadcast when a tournament changes.
type TournamentPayload struct {
	Tournament  *domain.Tournament `json:"tournament"`
	FilledSlots int                `json:"filled_slots"`
}
