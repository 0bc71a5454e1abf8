package service

import (
	"context"
	"fmt"

	"arena_webapp/internal/domain"
	"arena_webapp/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxTypeDeposit is the ledger label for a confirmed top-up.
const TxTypeDeposit = "Deposit"

// PaymentService manages gateway top-up orders. Order creation is cheap
// and pending; the wallet is credited only when the gateway webhook
// confirms payment.
type PaymentService struct {
	db              *pgxpool.Pool
	depositRepo     *repository.DepositRepository
	walletRepo      *repository.WalletRepository
	transactionRepo *repository.TransactionRepository
	notifier        Notifier

	minDeposit     int64
	gatewayBaseURL string
}

// NewPaymentService creates a new payment service
func NewPaymentService(db *pgxpool.Pool, notifier Notifier, minDeposit int64, gatewayBaseURL string) *PaymentService {
	return &PaymentService{
		db:              db,
		depositRepo:     repository.NewDepositRepository(db),
		walletRepo:      repository.NewWalletRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
		notifier:        notifier,
		minDeposit:      minDeposit,
		gatewayBaseURL:  gatewayBaseURL,
	}
}

// CreateOrder registers a pending top-up and returns the gateway
// redirect for the client to complete payment.
func (s *PaymentService) CreateOrder(ctx context.Context, userID, amount int64) (*domain.DepositOrder, error) {
	if amount < s.minDeposit {
		return nil, ErrInvalidAmount
	}

	d := &domain.Deposit{
		OrderRef: uuid.NewString(),
		UserID:   userID,
		Amount:   amount,
		Status:   domain.DepositPending,
	}
	if err := s.depositRepo.Create(ctx, d); err != nil {
		return nil, wrapWrite(err)
	}

	return &domain.DepositOrder{
		OrderRef:    d.OrderRef,
		Amount:      d.Amount,
		RedirectURL: fmt.Sprintf("%s/pay/%s", s.gatewayBaseURL, d.OrderRef),
	}, nil
}

// ConfirmDeposit applies a gateway webhook. On success the deposit pool
// is credited and a ledger entry recorded, all in one transaction. A
// replayed webhook for an already-resolved order is a no-op.
func (s *PaymentService) ConfirmDeposit(ctx context.Context, orderRef, gatewayTxn string, success bool) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	d, err := s.depositRepo.GetByOrderRefTx(ctx, tx, orderRef)
	if err != nil {
		return err
	}
	if d == nil {
		return ErrDepositNotFound
	}
	if d.Status != domain.DepositPending {
		return nil
	}

	if !success {
		if err := s.depositRepo.FailTx(ctx, tx, d.ID); err != nil {
			return wrapWrite(err)
		}
		failedTx := &domain.Transaction{
			UserID: d.UserID,
			Type:   TxTypeDeposit,
			Amount: d.Amount,
			Status: domain.TxFailed,
		}
		if err := s.transactionRepo.CreateTx(ctx, tx, failedTx); err != nil {
			return wrapWrite(err)
		}
		return tx.Commit(ctx)
	}

	wallet, err := s.walletRepo.GetForUpdateTx(ctx, tx, d.UserID)
	if err != nil {
		return err
	}
	if wallet == nil {
		return ErrUserNotFound
	}

	wallet.Pools, err = CreditPool(wallet.Pools, domain.PoolDeposit, d.Amount)
	if err != nil {
		return err
	}
	if err := s.walletRepo.UpdatePoolsTx(ctx, tx, d.UserID, wallet.Pools); err != nil {
		return wrapWrite(err)
	}

	if err := s.depositRepo.ConfirmTx(ctx, tx, d.ID, gatewayTxn); err != nil {
		return wrapWrite(err)
	}

	ledgerTx := &domain.Transaction{
		UserID: d.UserID,
		Type:   TxTypeDeposit,
		Amount: d.Amount,
		Status: domain.TxSuccess,
	}
	if err := s.transactionRepo.CreateTx(ctx, tx, ledgerTx); err != nil {
		return wrapWrite(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return wrapWrite(err)
	}

	s.notifier.WalletUpdated(d.UserID, wallet)

	return nil
}
