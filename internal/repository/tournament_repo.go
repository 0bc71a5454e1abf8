package repository

import (
	"context"

	"arena_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TournamentRepository struct {
	db *pgxpool.Pool
}

func NewTournamentRepository(db *pgxpool.Pool) *TournamentRepository {
	return &TournamentRepository{db: db}
}

const tournamentColumns = `id, title, banner_url, status, prize_pool, top_winners, max_slots, booyah, per_kill, entry_fee, start_time, map, room_id, room_pass, created_at`

// GetByID retrieves a tournament by ID
func (r *TournamentRepository) GetByID(ctx context.Context, id int64) (*domain.Tournament, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+tournamentColumns+`
		FROM tournaments
		WHERE id = $1
	`, id)
	return scanTournament(row)
}

// GetByIDTx retrieves a tournament inside the given transaction
func (r *TournamentRepository) GetByIDTx(ctx context.Context, dbTx pgx.Tx, id int64) (*domain.Tournament, error) {
	row := dbTx.QueryRow(ctx, `
		SELECT `+tournamentColumns+`
		FROM tournaments
		WHERE id = $1
	`, id)
	return scanTournament(row)
}

// List returns tournaments newest first
func (r *TournamentRepository) List(ctx context.Context, limit int) ([]*domain.Tournament, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+tournamentColumns+`
		FROM tournaments
		ORDER BY start_time DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTournaments(rows)
}

// ListByStatus returns tournaments with the given status, soonest first
func (r *TournamentRepository) ListByStatus(ctx context.Context, status domain.TournamentStatus) ([]*domain.Tournament, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+tournamentColumns+`
		FROM tournaments
		WHERE status = $1
		ORDER BY start_time ASC
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTournaments(rows)
}

// Create inserts a new tournament
func (r *TournamentRepository) Create(ctx context.Context, t *domain.Tournament) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO tournaments (title, banner_url, status, prize_pool, top_winners, max_slots, booyah, per_kill, entry_fee, start_time, map, room_id, room_pass)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`, t.Title, t.BannerURL, t.Status, t.PrizePool, t.TopWinners, t.MaxSlots,
		t.Booyah, t.PerKill, t.EntryFee, t.StartTime, t.Map, t.RoomID, t.RoomPass,
	).Scan(&t.ID, &t.CreatedAt)
}

// SetStatus updates the lifecycle status
func (r *TournamentRepository) SetStatus(ctx context.Context, id int64, status domain.TournamentStatus) error {
	_, err := r.db.Exec(ctx, `UPDATE tournaments SET status = $2 WHERE id = $1`, id, status)
	return err
}

// SetRoomCredentials stores the match room ID and password
func (r *TournamentRepository) SetRoomCredentials(ctx context.Context, id int64, roomID, roomPass string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE tournaments SET room_id = $2, room_pass = $3 WHERE id = $1
	`, id, roomID, roomPass)
	return err
}

func scanTournament(row pgx.Row) (*domain.Tournament, error) {
	var t domain.Tournament
	var roomID, roomPass *string

	if err := row.Scan(
		&t.ID, &t.Title, &t.BannerURL, &t.Status, &t.PrizePool, &t.TopWinners,
		&t.MaxSlots, &t.Booyah, &t.PerKill, &t.EntryFee, &t.StartTime, &t.Map,
		&roomID, &roomPass, &t.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if roomID != nil {
		t.RoomID = *roomID
	}
	if roomPass != nil {
		t.RoomPass = *roomPass
	}

	return &t, nil
}

func scanTournaments(rows pgx.Rows) ([]*domain.Tournament, error) {
	var out []*domain.Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
