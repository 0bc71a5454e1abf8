package repository

import (
	"context"

	"arena_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WalletRepository struct {
	db *pgxpool.Pool
}

func NewWalletRepository(db *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{db: db}
}

const walletColumns = `user_id, deposit_bal, winning_bal, bonus_bal, total_matches, total_won, lifetime_earnings, updated_at`

// GetByUserID retrieves a wallet by user ID
func (r *WalletRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Wallet, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+walletColumns+`
		FROM wallets
		WHERE user_id = $1
	`, userID)
	return scanWallet(row)
}

// GetForUpdateTx locks the wallet row inside the given transaction so the
// balance cannot change until the transaction finishes.
func (r *WalletRepository) GetForUpdateTx(ctx context.Context, dbTx pgx.Tx, userID int64) (*domain.Wallet, error) {
	row := dbTx.QueryRow(ctx, `
		SELECT `+walletColumns+`
		FROM wallets
		WHERE user_id = $1
		FOR UPDATE
	`, userID)
	return scanWallet(row)
}

// CreateTx inserts a zero-balance wallet inside the given transaction
func (r *WalletRepository) CreateTx(ctx context.Context, dbTx pgx.Tx, userID int64) error {
	_, err := dbTx.Exec(ctx, `
		INSERT INTO wallets (user_id) VALUES ($1)
	`, userID)
	return err
}

// UpdatePoolsTx writes the wallet pool balances inside the given transaction
func (r *WalletRepository) UpdatePoolsTx(ctx context.Context, dbTx pgx.Tx, userID int64, p domain.Pools) error {
	_, err := dbTx.Exec(ctx, `
		UPDATE wallets
		SET deposit_bal = $2, winning_bal = $3, bonus_bal = $4, updated_at = now()
		WHERE user_id = $1
	`, userID, p.Deposit, p.Winning, p.Bonus)
	return err
}

// IncrementMatchesTx bumps the lifetime match counter inside the given transaction
func (r *WalletRepository) IncrementMatchesTx(ctx context.Context, dbTx pgx.Tx, userID int64) error {
	_, err := dbTx.Exec(ctx, `
		UPDATE wallets
		SET total_matches = total_matches + 1, updated_at = now()
		WHERE user_id = $1
	`, userID)
	return err
}

// RecordWinTx adds a payout to the lifetime stats inside the given transaction
func (r *WalletRepository) RecordWinTx(ctx context.Context, dbTx pgx.Tx, userID, amount int64) error {
	_, err := dbTx.Exec(ctx, `
		UPDATE wallets
		SET total_won = total_won + 1, lifetime_earnings = lifetime_earnings + $2, updated_at = now()
		WHERE user_id = $1
	`, userID, amount)
	return err
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet

	if err := row.Scan(
		&w.UserID, &w.Pools.Deposit, &w.Pools.Winning, &w.Pools.Bonus,
		&w.TotalMatches, &w.TotalWon, &w.LifetimeEarnings, &w.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &w, nil
}
