package repository

import (
	"context"

	"arena_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WithdrawalRepository struct {
	db *pgxpool.Pool
}

func NewWithdrawalRepository(db *pgxpool.Pool) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

const withdrawalColumns = `id, reference, user_id, name, amount, method, details, status, transaction_id, created_at, resolved_at`

// CreateTx inserts a withdrawal request inside the given transaction
func (r *WithdrawalRepository) CreateTx(ctx context.Context, dbTx pgx.Tx, wr *domain.WithdrawalRequest) error {
	return dbTx.QueryRow(ctx, `
		INSERT INTO withdrawal_requests (reference, user_id, name, amount, method, details, status, transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, wr.Reference, wr.UserID, wr.Name, wr.Amount, wr.Method, wr.Details, wr.Status, wr.TransactionID,
	).Scan(&wr.ID, &wr.CreatedAt)
}

// GetByID retrieves a withdrawal request by ID
func (r *WithdrawalRepository) GetByID(ctx context.Context, id int64) (*domain.WithdrawalRequest, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+withdrawalColumns+`
		FROM withdrawal_requests
		WHERE id = $1
	`, id)
	return scanWithdrawal(row)
}

// GetByIDTx retrieves a withdrawal request inside the given transaction,
// locking the row against a concurrent resolution.
func (r *WithdrawalRepository) GetByIDTx(ctx context.Context, dbTx pgx.Tx, id int64) (*domain.WithdrawalRequest, error) {
	row := dbTx.QueryRow(ctx, `
		SELECT `+withdrawalColumns+`
		FROM withdrawal_requests
		WHERE id = $1
		FOR UPDATE
	`, id)
	return scanWithdrawal(row)
}

// ListByUser returns the user's withdrawal requests, most recent first
func (r *WithdrawalRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.WithdrawalRequest, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+withdrawalColumns+`
		FROM withdrawal_requests
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWithdrawals(rows)
}

// ListPending returns unresolved requests, oldest first
func (r *WithdrawalRepository) ListPending(ctx context.Context) ([]*domain.WithdrawalRequest, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+withdrawalColumns+`
		FROM withdrawal_requests
		WHERE status = $1
		ORDER BY created_at ASC
	`, domain.WithdrawalPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWithdrawals(rows)
}

// ResolveTx marks a request resolved inside the given transaction
func (r *WithdrawalRepository) ResolveTx(ctx context.Context, dbTx pgx.Tx, id int64, status domain.WithdrawalStatus) error {
	_, err := dbTx.Exec(ctx, `
		UPDATE withdrawal_requests
		SET status = $2, resolved_at = now()
		WHERE id = $1
	`, id, status)
	return err
}

func scanWithdrawal(row pgx.Row) (*domain.WithdrawalRequest, error) {
	var wr domain.WithdrawalRequest

	if err := row.Scan(
		&wr.ID, &wr.Reference, &wr.UserID, &wr.Name, &wr.Amount, &wr.Method,
		&wr.Details, &wr.Status, &wr.TransactionID, &wr.CreatedAt, &wr.ResolvedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &wr, nil
}

func scanWithdrawals(rows pgx.Rows) ([]*domain.WithdrawalRequest, error) {
	var out []*domain.WithdrawalRequest
	for rows.Next() {
		wr, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, wr)
	}
	return out, rows.Err()
}
