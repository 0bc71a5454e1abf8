package service

import (
	"context"

	"arena_webapp/internal/domain"
	"arena_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminService covers the backoffice surface: withdrawal resolution,
// payout crediting and tournament management.
type AdminService struct {
	db               *pgxpool.Pool
	withdrawalRepo   *repository.WithdrawalRepository
	walletRepo       *repository.WalletRepository
	transactionRepo  *repository.TransactionRepository
	tournamentRepo   *repository.TournamentRepository
	registrationRepo *repository.RegistrationRepository
	userRepo         *repository.UserRepository
	notifier         Notifier
}

// NewAdminService creates a new admin service
func NewAdminService(db *pgxpool.Pool, notifier Notifier) *AdminService {
	return &AdminService{
		db:               db,
		withdrawalRepo:   repository.NewWithdrawalRepository(db),
		walletRepo:       repository.NewWalletRepository(db),
		transactionRepo:  repository.NewTransactionRepository(db),
		tournamentRepo:   repository.NewTournamentRepository(db),
		registrationRepo: repository.NewRegistrationRepository(db),
		userRepo:         repository.NewUserRepository(db),
		notifier:         notifier,
	}
}

// ListPendingWithdrawals returns unresolved payout requests, oldest first
func (s *AdminService) ListPendingWithdrawals(ctx context.Context) ([]*domain.WithdrawalRequest, error) {
	return s.withdrawalRepo.ListPending(ctx)
}

// ApproveWithdrawal marks the request paid out. The winnings were
// already debited at request time, so only the statuses flip.
func (s *AdminService) ApproveWithdrawal(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	wr, err := s.withdrawalRepo.GetByIDTx(ctx, tx, id)
	if err != nil {
		return err
	}
	if wr == nil {
		return ErrWithdrawalNotFound
	}
	if wr.Status != domain.WithdrawalPending {
		return ErrWithdrawalResolved
	}

	if err := s.withdrawalRepo.ResolveTx(ctx, tx, id, domain.WithdrawalSuccess); err != nil {
		return wrapWrite(err)
	}
	if err := s.transactionRepo.SetStatusTx(ctx, tx, wr.TransactionID, domain.TxSuccess); err != nil {
		return wrapWrite(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return wrapWrite(err)
	}

	return nil
}

// RejectWithdrawal fails the request and returns the held amount to the
// winnings pool, with a refund ledger entry.
func (s *AdminService) RejectWithdrawal(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	wr, err := s.withdrawalRepo.GetByIDTx(ctx, tx, id)
	if err != nil {
		return err
	}
	if wr == nil {
		return ErrWithdrawalNotFound
	}
	if wr.Status != domain.WithdrawalPending {
		return ErrWithdrawalResolved
	}

	wallet, err := s.walletRepo.GetForUpdateTx(ctx, tx, wr.UserID)
	if err != nil {
		return err
	}
	if wallet == nil {
		return ErrUserNotFound
	}

	wallet.Pools, err = CreditPool(wallet.Pools, domain.PoolWinning, wr.Amount)
	if err != nil {
		return err
	}
	if err := s.walletRepo.UpdatePoolsTx(ctx, tx, wr.UserID, wallet.Pools); err != nil {
		return wrapWrite(err)
	}

	if err := s.withdrawalRepo.ResolveTx(ctx, tx, id, domain.WithdrawalFailed); err != nil {
		return wrapWrite(err)
	}
	if err := s.transactionRepo.SetStatusTx(ctx, tx, wr.TransactionID, domain.TxFailed); err != nil {
		return wrapWrite(err)
	}

	refundTx := &domain.Transaction{
		UserID: wr.UserID,
		Type:   TxTypeWithdrawalRefund,
		Amount: wr.Amount,
		Status: domain.TxSuccess,
	}
	if err := s.transactionRepo.CreateTx(ctx, tx, refundTx); err != nil {
		return wrapWrite(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return wrapWrite(err)
	}

	s.notifier.WalletUpdated(wr.UserID, wallet)

	return nil
}

// RecordPayout credits tournament winnings to a player and updates the
// lifetime stats, atomically with the ledger entry.
func (s *AdminService) RecordPayout(ctx context.Context, tournamentID, userID, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	t, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTournamentNotFound
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	wallet, err := s.walletRepo.GetForUpdateTx(ctx, tx, userID)
	if err != nil {
		return err
	}
	if wallet == nil {
		return ErrUserNotFound
	}

	wallet.Pools, err = CreditPool(wallet.Pools, domain.PoolWinning, amount)
	if err != nil {
		return err
	}
	if err := s.walletRepo.UpdatePoolsTx(ctx, tx, userID, wallet.Pools); err != nil {
		return wrapWrite(err)
	}
	if err := s.walletRepo.RecordWinTx(ctx, tx, userID, amount); err != nil {
		return wrapWrite(err)
	}
	wallet.TotalWon++
	wallet.LifetimeEarnings += amount

	payoutTx := &domain.Transaction{
		UserID: userID,
		Type:   "Winnings: " + t.Title,
		Amount: amount,
		Status: domain.TxSuccess,
	}
	if err := s.transactionRepo.CreateTx(ctx, tx, payoutTx); err != nil {
		return wrapWrite(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return wrapWrite(err)
	}

	s.notifier.WalletUpdated(userID, wallet)

	return nil
}

// CreateTournament inserts a new catalog entry
func (s *AdminService) CreateTournament(ctx context.Context, t *domain.Tournament) error {
	if t.Status == "" {
		t.Status = domain.TournamentOpen
	}
	return s.tournamentRepo.Create(ctx, t)
}

// SetTournamentStatus moves a tournament through its lifecycle
func (s *AdminService) SetTournamentStatus(ctx context.Context, id int64, status domain.TournamentStatus) error {
	return s.tournamentRepo.SetStatus(ctx, id, status)
}

// SetRoomCredentials publishes the match room to joined players
func (s *AdminService) SetRoomCredentials(ctx context.Context, id int64, roomID, roomPass string) error {
	return s.tournamentRepo.SetRoomCredentials(ctx, id, roomID, roomPass)
}

// ListRegistrations returns a tournament's participants, oldest first
func (s *AdminService) ListRegistrations(ctx context.Context, tournamentID int64) ([]*domain.Registration, error) {
	t, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTournamentNotFound
	}
	return s.registrationRepo.ListByTournament(ctx, tournamentID)
}

// SetUserStatus updates an account's status, e.g. to ban a player
func (s *AdminService) SetUserStatus(ctx context.Context, userID int64, status string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.userRepo.SetStatus(ctx, userID, status)
}
