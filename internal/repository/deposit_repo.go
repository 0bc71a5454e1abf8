package repository

import (
	"context"

	"arena_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DepositRepository struct {
	db *pgxpool.Pool
}

func NewDepositRepository(db *pgxpool.Pool) *DepositRepository {
	return &DepositRepository{db: db}
}

// Create inserts a pending top-up order
func (r *DepositRepository) Create(ctx context.Context, d *domain.Deposit) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO deposits (order_ref, user_id, amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, d.OrderRef, d.UserID, d.Amount, d.Status).Scan(&d.ID, &d.CreatedAt)
}

// GetByOrderRefTx retrieves a deposit by order reference inside the given
// transaction, locking it so a webhook retry cannot double-credit.
func (r *DepositRepository) GetByOrderRefTx(ctx context.Context, dbTx pgx.Tx, orderRef string) (*domain.Deposit, error) {
	var d domain.Deposit
	var gatewayTxn *string

	err := dbTx.QueryRow(ctx, `
		SELECT id, order_ref, user_id, amount, status, gateway_txn, created_at, confirmed_at
		FROM deposits
		WHERE order_ref = $1
		FOR UPDATE
	`, orderRef).Scan(
		&d.ID, &d.OrderRef, &d.UserID, &d.Amount, &d.Status, &gatewayTxn, &d.CreatedAt, &d.ConfirmedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if gatewayTxn != nil {
		d.GatewayTxn = *gatewayTxn
	}

	return &d, nil
}

// ConfirmTx marks the order confirmed inside the given transaction
func (r *DepositRepository) ConfirmTx(ctx context.Context, dbTx pgx.Tx, id int64, gatewayTxn string) error {
	_, err := dbTx.Exec(ctx, `
		UPDATE deposits
		SET status = $2, gateway_txn = $3, confirmed_at = now()
		WHERE id = $1
	`, id, domain.DepositConfirmed, gatewayTxn)
	return err
}

// FailTx marks the order failed inside the given transaction
func (r *DepositRepository) FailTx(ctx context.Context, dbTx pgx.Tx, id int64) error {
	_, err := dbTx.Exec(ctx, `
		UPDATE deposits SET status = $2 WHERE id = $1
	`, id, domain.DepositFailed)
	return err
}
