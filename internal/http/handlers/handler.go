package handlers

import (
	"arena_webapp/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HandlerConfig holds wallet limits, the gateway endpoint and the
// websocket origin policy
type HandlerConfig struct {
	MinWithdraw    int64
	MinDeposit     int64
	GatewayBaseURL string
	AllowedOrigin  string
}

type Handler struct {
	DB                *pgxpool.Pool
	AllowedOrigin     string
	AuthService       *service.AuthService
	WalletService     *service.WalletService
	TournamentService *service.TournamentService
	PaymentService    *service.PaymentService
	AdminService      *service.AdminService
}

func NewHandler(db *pgxpool.Pool, notifier service.Notifier, cfg HandlerConfig) *Handler {
	return &Handler{
		DB:                db,
		AllowedOrigin:     cfg.AllowedOrigin,
		AuthService:       service.NewAuthService(db),
		WalletService:     service.NewWalletService(db, notifier, cfg.MinWithdraw),
		TournamentService: service.NewTournamentService(db, notifier),
		PaymentService:    service.NewPaymentService(db, notifier, cfg.MinDeposit, cfg.GatewayBaseURL),
		AdminService:      service.NewAdminService(db, notifier),
	}
}

// getUserID extracts the authenticated user ID from the Gin context
func getUserID(c interface{ Get(any) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
