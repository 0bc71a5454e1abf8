package service

import "arena_webapp/internal/domain"

// Notifier receives post-commit wallet and tournament updates. Delivery
// is best effort; a slow or absent consumer never blocks settlement.
type Notifier interface {
	WalletUpdated(userID int64, w *domain.Wallet)
	TournamentUpdated(t *domain.Tournament, filledSlots int)
}

// NopNotifier satisfies Notifier and drops everything. Used in tests and
// when the websocket hub is not wired.
type NopNotifier struct{}

func (NopNotifier) WalletUpdated(int64, *domain.Wallet)       {}
func (NopNotifier) TournamentUpdated(*domain.Tournament, int) {}
