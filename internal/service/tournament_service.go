package service

import (
	"context"
	"errors"

	"arena_webapp/internal/domain"
	"arena_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TournamentService handles the catalog and entry settlement.
type TournamentService struct {
	db               *pgxpool.Pool
	tournamentRepo   *repository.TournamentRepository
	registrationRepo *repository.RegistrationRepository
	walletRepo       *repository.WalletRepository
	transactionRepo  *repository.TransactionRepository
	notifier         Notifier
}

// NewTournamentService creates a new tournament service
func NewTournamentService(db *pgxpool.Pool, notifier Notifier) *TournamentService {
	return &TournamentService{
		db:               db,
		tournamentRepo:   repository.NewTournamentRepository(db),
		registrationRepo: repository.NewRegistrationRepository(db),
		walletRepo:       repository.NewWalletRepository(db),
		transactionRepo:  repository.NewTransactionRepository(db),
		notifier:         notifier,
	}
}

// TournamentView is a catalog entry enriched with per-user state. Room
// credentials are present only for joined players.
type TournamentView struct {
	*domain.Tournament
	FilledSlots int  `json:"filled_slots"`
	Joined      bool `json:"joined"`
}

// List returns the catalog with slot counts and the caller's join
// state, optionally filtered to one lifecycle status.
func (s *TournamentService) List(ctx context.Context, userID int64, limit int, status domain.TournamentStatus) ([]*TournamentView, error) {
	var tournaments []*domain.Tournament
	var err error
	if status != "" {
		tournaments, err = s.tournamentRepo.ListByStatus(ctx, status)
	} else {
		tournaments, err = s.tournamentRepo.List(ctx, limit)
	}
	if err != nil {
		return nil, err
	}

	joinedIDs, err := s.registrationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	joined := make(map[int64]bool, len(joinedIDs))
	for _, id := range joinedIDs {
		joined[id] = true
	}

	views := make([]*TournamentView, 0, len(tournaments))
	for _, t := range tournaments {
		filled, err := s.registrationRepo.Count(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		if !joined[t.ID] {
			t.RoomID = ""
			t.RoomPass = ""
		}
		views = append(views, &TournamentView{Tournament: t, FilledSlots: filled, Joined: joined[t.ID]})
	}

	return views, nil
}

// Get returns a single tournament with the caller's join state
func (s *TournamentService) Get(ctx context.Context, userID, tournamentID int64) (*TournamentView, error) {
	t, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTournamentNotFound
	}

	joined, err := s.registrationRepo.Exists(ctx, tournamentID, userID)
	if err != nil {
		return nil, err
	}
	filled, err := s.registrationRepo.Count(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	if !joined {
		t.RoomID = ""
		t.RoomPass = ""
	}

	return &TournamentView{Tournament: t, FilledSlots: filled, Joined: joined}, nil
}

// Join settles a tournament entry. The wallet debit, the registration
// and the ledger entry commit together or not at all. The wallet row is
// locked for the duration, so concurrent joins by the same user settle
// one after another against the latest balance.
func (s *TournamentService) Join(ctx context.Context, tournamentID, userID int64, ign string) (*domain.Wallet, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	t, err := s.tournamentRepo.GetByIDTx(ctx, tx, tournamentID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTournamentNotFound
	}

	exists, err := s.registrationRepo.ExistsTx(ctx, tx, tournamentID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyJoined
	}

	wallet, err := s.walletRepo.GetForUpdateTx(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, ErrUserNotFound
	}

	newPools, err := TieredDebit(wallet.Pools, t.EntryFee)
	if err != nil {
		return nil, err
	}

	if !t.Status.Joinable() {
		return nil, ErrTournamentUnavailable
	}

	filled, err := s.registrationRepo.CountTx(ctx, tx, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.MaxSlots > 0 && filled >= t.MaxSlots {
		return nil, ErrTournamentFull
	}

	wallet.Pools = newPools

	if err := s.walletRepo.UpdatePoolsTx(ctx, tx, userID, newPools); err != nil {
		return nil, wrapWrite(err)
	}
	if err := s.walletRepo.IncrementMatchesTx(ctx, tx, userID); err != nil {
		return nil, wrapWrite(err)
	}
	wallet.TotalMatches++

	reg := &domain.Registration{TournamentID: tournamentID, UserID: userID, IGN: ign}
	if err := s.registrationRepo.CreateTx(ctx, tx, reg); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyJoined
		}
		return nil, wrapWrite(err)
	}

	ledgerTx := &domain.Transaction{
		UserID: userID,
		Type:   "Entry Fee: " + t.Title,
		Amount: t.EntryFee,
		Status: domain.TxSuccess,
	}
	if err := s.transactionRepo.CreateTx(ctx, tx, ledgerTx); err != nil {
		return nil, wrapWrite(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, wrapWrite(err)
	}

	s.notifier.WalletUpdated(userID, wallet)
	s.notifier.TournamentUpdated(t, filled+1)

	return wallet, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
