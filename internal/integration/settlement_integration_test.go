package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"arena_webapp/internal/domain"
	"arena_webapp/internal/repository"
	"arena_webapp/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func connectDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)
	service.InitJWT("integration-test-secret")
	return db
}

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func createUser(t *testing.T, db *pgxpool.Pool, pools domain.Pools) *domain.User {
	t.Helper()
	auth := service.NewAuthService(db)

	email := "player-" + uuid.NewString() + "@example.com"
	user, _, err := auth.Signup(context.Background(), "Player", email, "", "password123")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	_, err = db.Exec(context.Background(), `
		UPDATE wallets SET deposit_bal = $2, winning_bal = $3, bonus_bal = $4 WHERE user_id = $1
	`, user.ID, pools.Deposit, pools.Winning, pools.Bonus)
	if err != nil {
		t.Fatalf("seed wallet: %v", err)
	}

	return user
}

func createTournament(t *testing.T, db *pgxpool.Pool, fee int64, maxSlots int, status domain.TournamentStatus) *domain.Tournament {
	t.Helper()
	repo := repository.NewTournamentRepository(db)

	tournament := &domain.Tournament{
		Title:     "Cup " + uuid.NewString()[:8],
		Status:    status,
		EntryFee:  fee,
		MaxSlots:  maxSlots,
		StartTime: time.Now().Add(time.Hour),
	}
	if err := repo.Create(context.Background(), tournament); err != nil {
		t.Fatalf("create tournament: %v", err)
	}
	return tournament
}

func getWallet(t *testing.T, db *pgxpool.Pool, userID int64) *domain.Wallet {
	t.Helper()
	w, err := repository.NewWalletRepository(db).GetByUserID(context.Background(), userID)
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if w == nil {
		t.Fatalf("wallet missing for user %d", userID)
	}
	return w
}

func countRows(t *testing.T, db *pgxpool.Pool, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestJoin_SettlesAllThreeWrites(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	user := createUser(t, db, domain.Pools{Deposit: 50, Winning: 30, Bonus: 0})
	tournament := createTournament(t, db, 70, 48, domain.TournamentOpen)

	svc := service.NewTournamentService(db, service.NopNotifier{})
	wallet, err := svc.Join(ctx, tournament.ID, user.ID, "SniperX")
	if err != nil {
		t.Fatalf("join: %v", err)
	}

	// fee spills from deposit into winnings
	if wallet.Pools.Deposit != 0 || wallet.Pools.Winning != 10 || wallet.Pools.Bonus != 0 {
		t.Fatalf("pools after join = %+v", wallet.Pools)
	}
	if wallet.TotalMatches != 1 {
		t.Fatalf("total_matches = %d, want 1", wallet.TotalMatches)
	}

	stored := getWallet(t, db, user.ID)
	if stored.Pools != wallet.Pools {
		t.Fatalf("stored pools %+v differ from returned %+v", stored.Pools, wallet.Pools)
	}

	if n := countRows(t, db, `SELECT COUNT(*) FROM registrations WHERE tournament_id = $1 AND user_id = $2`, tournament.ID, user.ID); n != 1 {
		t.Fatalf("registrations = %d, want 1", n)
	}

	txs, err := repository.NewTransactionRepository(db).GetByUserID(ctx, user.ID, 10)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("transactions = %d, want 1", len(txs))
	}
	if txs[0].Type != "Entry Fee: "+tournament.Title {
		t.Fatalf("tx type = %q", txs[0].Type)
	}
	if txs[0].Amount != 70 || txs[0].Status != domain.TxSuccess {
		t.Fatalf("tx = %+v", txs[0])
	}
}

func TestJoin_SecondAttemptRejected(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	user := createUser(t, db, domain.Pools{Deposit: 100})
	tournament := createTournament(t, db, 10, 48, domain.TournamentOpen)

	svc := service.NewTournamentService(db, service.NopNotifier{})
	if _, err := svc.Join(ctx, tournament.ID, user.ID, "SniperX"); err != nil {
		t.Fatalf("first join: %v", err)
	}

	_, err := svc.Join(ctx, tournament.ID, user.ID, "SniperX")
	if err != service.ErrAlreadyJoined {
		t.Fatalf("second join err = %v, want ErrAlreadyJoined", err)
	}

	// only the first join settled
	w := getWallet(t, db, user.ID)
	if w.Pools.Deposit != 90 {
		t.Fatalf("deposit = %d, want 90", w.Pools.Deposit)
	}
	if w.TotalMatches != 1 {
		t.Fatalf("total_matches = %d, want 1", w.TotalMatches)
	}
}

func TestJoin_InsufficientBalanceLeavesNoTrace(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	user := createUser(t, db, domain.Pools{Deposit: 5, Winning: 5, Bonus: 5})
	tournament := createTournament(t, db, 16, 48, domain.TournamentOpen)

	svc := service.NewTournamentService(db, service.NopNotifier{})
	_, err := svc.Join(ctx, tournament.ID, user.ID, "SniperX")
	if err != service.ErrInsufficientBalance {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}

	w := getWallet(t, db, user.ID)
	if w.Pools != (domain.Pools{Deposit: 5, Winning: 5, Bonus: 5}) {
		t.Fatalf("pools changed: %+v", w.Pools)
	}
	if w.TotalMatches != 0 {
		t.Fatalf("total_matches = %d, want 0", w.TotalMatches)
	}
	if n := countRows(t, db, `SELECT COUNT(*) FROM registrations WHERE user_id = $1`, user.ID); n != 0 {
		t.Fatalf("registrations = %d, want 0", n)
	}
	if n := countRows(t, db, `SELECT COUNT(*) FROM transactions WHERE user_id = $1`, user.ID); n != 0 {
		t.Fatalf("transactions = %d, want 0", n)
	}
}

func TestJoin_FailedLedgerWriteRollsBackEverything(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	user := createUser(t, db, domain.Pools{Deposit: 100})
	tournament := createTournament(t, db, 40, 48, domain.TournamentOpen)

	// make the ledger insert fail after the wallet debit and the
	// registration insert have gone through inside the transaction
	if _, err := db.Exec(ctx, `
		CREATE OR REPLACE FUNCTION reject_ledger_insert() RETURNS trigger AS $$
		BEGIN
			RAISE EXCEPTION 'ledger unavailable';
		END;
		$$ LANGUAGE plpgsql
	`); err != nil {
		t.Fatalf("create function: %v", err)
	}
	if _, err := db.Exec(ctx, `
		CREATE TRIGGER ledger_unavailable BEFORE INSERT ON transactions
		FOR EACH ROW EXECUTE FUNCTION reject_ledger_insert()
	`); err != nil {
		t.Fatalf("create trigger: %v", err)
	}
	defer func() {
		_, _ = db.Exec(ctx, `DROP TRIGGER IF EXISTS ledger_unavailable ON transactions`)
		_, _ = db.Exec(ctx, `DROP FUNCTION IF EXISTS reject_ledger_insert`)
	}()

	svc := service.NewTournamentService(db, service.NopNotifier{})
	_, err := svc.Join(ctx, tournament.ID, user.ID, "SniperX")
	if !errors.Is(err, service.ErrWriteFailed) {
		t.Fatalf("err = %v, want ErrWriteFailed", err)
	}

	// all three writes rolled back together
	w := getWallet(t, db, user.ID)
	if w.Pools != (domain.Pools{Deposit: 100}) {
		t.Fatalf("wallet changed after failed commit: %+v", w.Pools)
	}
	if w.TotalMatches != 0 {
		t.Fatalf("total_matches = %d, want 0", w.TotalMatches)
	}
	if n := countRows(t, db, `SELECT COUNT(*) FROM registrations WHERE tournament_id = $1`, tournament.ID); n != 0 {
		t.Fatalf("registrations = %d, want 0", n)
	}
	if n := countRows(t, db, `SELECT COUNT(*) FROM transactions WHERE user_id = $1`, user.ID); n != 0 {
		t.Fatalf("transactions = %d, want 0", n)
	}
}

func TestJoin_ClosedAndFullTournaments(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	user := createUser(t, db, domain.Pools{Deposit: 100})
	svc := service.NewTournamentService(db, service.NopNotifier{})

	completed := createTournament(t, db, 10, 48, domain.TournamentCompleted)
	if _, err := svc.Join(ctx, completed.ID, user.ID, "SniperX"); err != service.ErrTournamentUnavailable {
		t.Fatalf("completed join err = %v, want ErrTournamentUnavailable", err)
	}

	tiny := createTournament(t, db, 10, 1, domain.TournamentOpen)
	other := createUser(t, db, domain.Pools{Deposit: 100})
	if _, err := svc.Join(ctx, tiny.ID, other.ID, "FirstIn"); err != nil {
		t.Fatalf("fill slot: %v", err)
	}
	if _, err := svc.Join(ctx, tiny.ID, user.ID, "SniperX"); err != service.ErrTournamentFull {
		t.Fatalf("full join err = %v, want ErrTournamentFull", err)
	}
}

func TestWithdrawal_RequestAndApprove(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	user := createUser(t, db, domain.Pools{Deposit: 500, Winning: 100, Bonus: 50})

	walletSvc := service.NewWalletService(db, service.NopNotifier{}, 22)

	// deposit and bonus never fund a withdrawal
	_, err := walletSvc.RequestWithdrawal(ctx, user.ID, domain.WithdrawRequestBody{
		Amount: 200, Method: "upi", Details: "user@bank",
	})
	if err != service.ErrInsufficientFunds {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}

	wr, err := walletSvc.RequestWithdrawal(ctx, user.ID, domain.WithdrawRequestBody{
		Amount: 40, Method: "upi", Details: "user@bank",
	})
	if err != nil {
		t.Fatalf("request withdrawal: %v", err)
	}
	if wr.Status != domain.WithdrawalPending || wr.Reference == "" {
		t.Fatalf("request = %+v", wr)
	}

	w := getWallet(t, db, user.ID)
	if w.Pools != (domain.Pools{Deposit: 500, Winning: 60, Bonus: 50}) {
		t.Fatalf("pools after request = %+v", w.Pools)
	}

	txRepo := repository.NewTransactionRepository(db)
	pending, err := txRepo.GetByID(ctx, wr.TransactionID)
	if err != nil || pending == nil {
		t.Fatalf("pending tx: %v %v", pending, err)
	}
	if pending.Status != domain.TxPending || pending.Amount != 40 {
		t.Fatalf("pending tx = %+v", pending)
	}

	adminSvc := service.NewAdminService(db, service.NopNotifier{})
	if err := adminSvc.ApproveWithdrawal(ctx, wr.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	resolved, err := txRepo.GetByID(ctx, wr.TransactionID)
	if err != nil {
		t.Fatalf("resolved tx: %v", err)
	}
	if resolved.Status != domain.TxSuccess {
		t.Fatalf("resolved tx status = %q", resolved.Status)
	}

	// balance stays debited after approval
	w = getWallet(t, db, user.ID)
	if w.Pools.Winning != 60 {
		t.Fatalf("winning = %d, want 60", w.Pools.Winning)
	}

	// second resolution attempt is rejected
	if err := adminSvc.ApproveWithdrawal(ctx, wr.ID); err != service.ErrWithdrawalResolved {
		t.Fatalf("re-approve err = %v, want ErrWithdrawalResolved", err)
	}
}

func TestWithdrawal_RejectRefundsWinnings(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	user := createUser(t, db, domain.Pools{Winning: 100})

	walletSvc := service.NewWalletService(db, service.NopNotifier{}, 22)
	wr, err := walletSvc.RequestWithdrawal(ctx, user.ID, domain.WithdrawRequestBody{
		Amount: 30, Method: "upi", Details: "user@bank",
	})
	if err != nil {
		t.Fatalf("request withdrawal: %v", err)
	}

	adminSvc := service.NewAdminService(db, service.NopNotifier{})
	if err := adminSvc.RejectWithdrawal(ctx, wr.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	w := getWallet(t, db, user.ID)
	if w.Pools.Winning != 100 {
		t.Fatalf("winning = %d, want 100 after refund", w.Pools.Winning)
	}

	// held ledger entry failed, refund entry recorded
	txRepo := repository.NewTransactionRepository(db)
	held, err := txRepo.GetByID(ctx, wr.TransactionID)
	if err != nil {
		t.Fatalf("held tx: %v", err)
	}
	if held.Status != domain.TxFailed {
		t.Fatalf("held tx status = %q", held.Status)
	}
	if n := countRows(t, db, `SELECT COUNT(*) FROM transactions WHERE user_id = $1 AND type = $2 AND amount = 30`, user.ID, service.TxTypeWithdrawalRefund); n != 1 {
		t.Fatalf("refund transactions = %d, want 1", n)
	}
}

func TestDeposit_ConfirmIsIdempotent(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	user := createUser(t, db, domain.Pools{})

	paySvc := service.NewPaymentService(db, service.NopNotifier{}, 10, "https://pay.example.com")
	order, err := paySvc.CreateOrder(ctx, user.ID, 150)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	// wallet untouched until webhook confirms
	if w := getWallet(t, db, user.ID); w.Pools.Deposit != 0 {
		t.Fatalf("deposit credited before confirmation: %d", w.Pools.Deposit)
	}

	if err := paySvc.ConfirmDeposit(ctx, order.OrderRef, "gw-1", true); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := paySvc.ConfirmDeposit(ctx, order.OrderRef, "gw-1", true); err != nil {
		t.Fatalf("replayed confirm: %v", err)
	}

	w := getWallet(t, db, user.ID)
	if w.Pools.Deposit != 150 {
		t.Fatalf("deposit = %d, want 150 (no double credit)", w.Pools.Deposit)
	}
	if n := countRows(t, db, `SELECT COUNT(*) FROM transactions WHERE user_id = $1 AND type = $2`, user.ID, service.TxTypeDeposit); n != 1 {
		t.Fatalf("deposit transactions = %d, want 1", n)
	}
}

func TestPayout_CreditsWinningsAndStats(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	user := createUser(t, db, domain.Pools{})
	tournament := createTournament(t, db, 0, 48, domain.TournamentCompleted)

	adminSvc := service.NewAdminService(db, service.NopNotifier{})
	if err := adminSvc.RecordPayout(ctx, tournament.ID, user.ID, 250); err != nil {
		t.Fatalf("payout: %v", err)
	}

	w := getWallet(t, db, user.ID)
	if w.Pools.Winning != 250 {
		t.Fatalf("winning = %d, want 250", w.Pools.Winning)
	}
	if w.TotalWon != 1 || w.LifetimeEarnings != 250 {
		t.Fatalf("stats = won %d, earnings %d", w.TotalWon, w.LifetimeEarnings)
	}
}

func TestAdmin_BanAndReinstateUser(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	user := createUser(t, db, domain.Pools{})

	adminSvc := service.NewAdminService(db, service.NopNotifier{})
	if err := adminSvc.SetUserStatus(ctx, user.ID, domain.UserStatusBanned); err != nil {
		t.Fatalf("ban: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	got, err := userRepo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Status != domain.UserStatusBanned {
		t.Fatalf("status = %q, want %q", got.Status, domain.UserStatusBanned)
	}

	if err := adminSvc.SetUserStatus(ctx, user.ID, domain.UserStatusActive); err != nil {
		t.Fatalf("reinstate: %v", err)
	}
	got, err = userRepo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Status != domain.UserStatusActive {
		t.Fatalf("status = %q, want %q", got.Status, domain.UserStatusActive)
	}

	if err := adminSvc.SetUserStatus(ctx, 999999, domain.UserStatusBanned); !errors.Is(err, service.ErrUserNotFound) {
		t.Fatalf("unknown user: err = %v, want ErrUserNotFound", err)
	}
}

func TestTournamentList_StatusFilter(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	user := createUser(t, db, domain.Pools{})
	createTournament(t, db, 10, 48, domain.TournamentOpen)
	createTournament(t, db, 10, 48, domain.TournamentCompleted)

	svc := service.NewTournamentService(db, service.NopNotifier{})
	views, err := svc.List(ctx, user.ID, 50, domain.TournamentCompleted)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) == 0 {
		t.Fatal("expected at least one completed tournament")
	}
	for _, v := range views {
		if v.Status != domain.TournamentCompleted {
			t.Fatalf("status = %q, want %q", v.Status, domain.TournamentCompleted)
		}
	}
}
