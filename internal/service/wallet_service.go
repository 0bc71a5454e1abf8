package service

import (
	"context"

	"arena_webapp/internal/domain"
	"arena_webapp/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxTypeWithdrawalRequest is the ledger label for a payout request.
const TxTypeWithdrawalRequest = "Withdrawal Request"

// TxTypeWithdrawalRefund is the ledger label for a rejected payout refund.
const TxTypeWithdrawalRefund = "Withdrawal Refund"

// WalletService handles balance reads, transaction history and the
// withdrawal flow.
type WalletService struct {
	db              *pgxpool.Pool
	walletRepo      *repository.WalletRepository
	transactionRepo *repository.TransactionRepository
	withdrawalRepo  *repository.WithdrawalRepository
	userRepo        *repository.UserRepository
	notifier        Notifier

	minWithdraw int64
}

// NewWalletService creates a new wallet service
func NewWalletService(db *pgxpool.Pool, notifier Notifier, minWithdraw int64) *WalletService {
	return &WalletService{
		db:              db,
		walletRepo:      repository.NewWalletRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
		withdrawalRepo:  repository.NewWithdrawalRepository(db),
		userRepo:        repository.NewUserRepository(db),
		notifier:        notifier,
		minWithdraw:     minWithdraw,
	}
}

// GetWallet returns the user's wallet
func (s *WalletService) GetWallet(ctx context.Context, userID int64) (*domain.Wallet, error) {
	w, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, ErrUserNotFound
	}
	return w, nil
}

// GetTransactionHistory returns the user's transactions, most recent first
func (s *WalletService) GetTransactionHistory(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	return s.transactionRepo.GetByUserID(ctx, userID, limit)
}

// ListWithdrawals returns the user's withdrawal requests
func (s *WalletService) ListWithdrawals(ctx context.Context, userID int64) ([]*domain.WithdrawalRequest, error) {
	return s.withdrawalRepo.ListByUser(ctx, userID)
}

// MinWithdrawAmount returns the configured withdrawal floor
func (s *WalletService) MinWithdrawAmount() int64 {
	return s.minWithdraw
}

// RequestWithdrawal debits the winnings pool and atomically records a
// pending withdrawal request plus a pending ledger entry. Deposit and
// bonus balances never fund a withdrawal.
func (s *WalletService) RequestWithdrawal(ctx context.Context, userID int64, body domain.WithdrawRequestBody) (*domain.WithdrawalRequest, error) {
	if body.Amount < s.minWithdraw {
		return nil, ErrInvalidAmount
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	wallet, err := s.walletRepo.GetForUpdateTx(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, ErrUserNotFound
	}

	if wallet.Pools.Winning < body.Amount {
		return nil, ErrInsufficientFunds
	}

	wallet.Pools.Winning -= body.Amount
	if err := s.walletRepo.UpdatePoolsTx(ctx, tx, userID, wallet.Pools); err != nil {
		return nil, wrapWrite(err)
	}

	ledgerTx := &domain.Transaction{
		UserID: userID,
		Type:   TxTypeWithdrawalRequest,
		Amount: body.Amount,
		Status: domain.TxPending,
	}
	if err := s.transactionRepo.CreateTx(ctx, tx, ledgerTx); err != nil {
		return nil, wrapWrite(err)
	}

	wr := &domain.WithdrawalRequest{
		Reference:     uuid.NewString(),
		UserID:        userID,
		Name:          user.Name,
		Amount:        body.Amount,
		Method:        body.Method,
		Details:       body.Details,
		Status:        domain.WithdrawalPending,
		TransactionID: ledgerTx.ID,
	}
	if err := s.withdrawalRepo.CreateTx(ctx, tx, wr); err != nil {
		return nil, wrapWrite(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, wrapWrite(err)
	}

	s.notifier.WalletUpdated(userID, wallet)

	return wr, nil
}
