package domain

import "time"

// TournamentStatus is the admin-driven lifecycle state.
type TournamentStatus string

const (
	TournamentOpen      TournamentStatus = "Open"
	TournamentLive      TournamentStatus = "Live"
	TournamentCompleted TournamentStatus = "Completed"
	TournamentFull      TournamentStatus = "Full"
)

// Joinable reports whether a user may still enter the tournament.
func (s TournamentStatus) Joinable() bool {
	return s == TournamentOpen || s == TournamentLive
}

// Tournament is a scheduled event, owned by the admin backend.
type Tournament struct {
	ID         int64            `db:"id" json:"id"`
	Title      string           `db:"title" json:"title"`
	BannerURL  string           `db:"banner_url" json:"banner_url,omitempty"`
	Status     TournamentStatus `db:"status" json:"status"`
	PrizePool  int64            `db:"prize_pool" json:"prize_pool"`
	TopWinners int              `db:"top_winners" json:"top_winners"`
	MaxSlots   int              `db:"max_slots" json:"max_slots"`
	Booyah     int64            `db:"booyah" json:"booyah"`
	PerKill    int64            `db:"per_kill" json:"per_kill"`
	EntryFee   int64            `db:"entry_fee" json:"entry_fee"`
	StartTime  time.Time        `db:"start_time" json:"start_time"`
	Map        string           `db:"map" json:"map,omitempty"`
	// Room credentials are populated by the admin before start and are
	// only exposed to registered participants.
	RoomID    string    `db:"room_id" json:"room_id,omitempty"`
	RoomPass  string    `db:"room_pass" json:"room_pass,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Registration records one user's entry into one tournament.
// Written only by entry settlement, exactly once per (tournament, user).
type Registration struct {
	TournamentID int64     `db:"tournament_id" json:"tournament_id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	IGN          string    `db:"ign" json:"ign"`
	JoinedAt     time.Time `db:"joined_at" json:"joined_at"`
}
