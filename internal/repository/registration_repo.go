package repository

import (
	"context"

	"arena_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RegistrationRepository struct {
	db *pgxpool.Pool
}

func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Exists checks whether the user is already registered for the tournament
func (r *RegistrationRepository) Exists(ctx context.Context, tournamentID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM registrations WHERE tournament_id = $1 AND user_id = $2)
	`, tournamentID, userID).Scan(&exists)
	return exists, err
}

// ExistsTx checks registration inside the given transaction
func (r *RegistrationRepository) ExistsTx(ctx context.Context, dbTx pgx.Tx, tournamentID, userID int64) (bool, error) {
	var exists bool
	err := dbTx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM registrations WHERE tournament_id = $1 AND user_id = $2)
	`, tournamentID, userID).Scan(&exists)
	return exists, err
}

// CountTx counts filled slots inside the given transaction
func (r *RegistrationRepository) CountTx(ctx context.Context, dbTx pgx.Tx, tournamentID int64) (int, error) {
	var n int
	err := dbTx.QueryRow(ctx, `
		SELECT COUNT(*) FROM registrations WHERE tournament_id = $1
	`, tournamentID).Scan(&n)
	return n, err
}

// Count counts filled slots
func (r *RegistrationRepository) Count(ctx context.Context, tournamentID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM registrations WHERE tournament_id = $1
	`, tournamentID).Scan(&n)
	return n, err
}

// CreateTx inserts a registration inside the given transaction. The table
// carries UNIQUE(tournament_id, user_id), so a concurrent duplicate join
// surfaces here as a unique violation.
func (r *RegistrationRepository) CreateTx(ctx context.Context, dbTx pgx.Tx, reg *domain.Registration) error {
	return dbTx.QueryRow(ctx, `
		INSERT INTO registrations (tournament_id, user_id, ign)
		VALUES ($1, $2, $3)
		RETURNING joined_at
	`, reg.TournamentID, reg.UserID, reg.IGN).Scan(&reg.JoinedAt)
}

// ListByUser returns the tournament IDs the user has joined
func (r *RegistrationRepository) ListByUser(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT tournament_id FROM registrations WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListByTournament returns all registrations for a tournament, oldest first
func (r *RegistrationRepository) ListByTournament(ctx context.Context, tournamentID int64) ([]*domain.Registration, error) {
	rows, err := r.db.Query(ctx, `
		SELECT tournament_id, user_id, ign, joined_at
		FROM registrations
		WHERE tournament_id = $1
		ORDER BY joined_at ASC
	`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Registration
	for rows.Next() {
		var reg domain.Registration
		if err := rows.Scan(&reg.TournamentID, &reg.UserID, &reg.IGN, &reg.JoinedAt); err != nil {
			return nil, err
		}
		out = append(out, &reg)
	}
	return out, rows.Err()
}
