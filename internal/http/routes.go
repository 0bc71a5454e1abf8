package http

import (
	"time"

	"arena_webapp/internal/config"
	"arena_webapp/internal/http/handlers"
	"arena_webapp/internal/http/middleware"
	"arena_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires the full HTTP surface. The returned hub is the
// post-commit notifier handed to the services.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) *ws.Hub {
	hub := ws.NewHub()

	h := handlers.NewHandler(db, hub, handlers.HandlerConfig{
		MinWithdraw:    cfg.MinWithdrawAmount,
		MinDeposit:     cfg.MinDepositAmount,
		GatewayBaseURL: cfg.GatewayBaseURL,
		AllowedOrigin:  cfg.AllowedOrigin,
	})
	healthHandler := handlers.NewHealthHandler(db, hub, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.Use(middleware.RedisRateLimit(60, time.Minute))

	// Auth
	api.POST("/auth/signup", middleware.RedisRateLimit(5, time.Minute), h.Signup)
	api.POST("/auth/login", middleware.RedisRateLimit(10, time.Minute), h.Login)
	api.GET("/me", middleware.JWT(), h.Me)

	// Wallet
	api.GET("/wallet", middleware.JWT(), h.Wallet)
	api.GET("/wallet/transactions", middleware.JWT(), h.Transactions)
	api.POST("/wallet/withdraw", middleware.JWT(), middleware.UserRateLimit("withdraw", 5, time.Minute), h.Withdraw)
	api.GET("/wallet/withdrawals", middleware.JWT(), h.Withdrawals)
	api.POST("/wallet/deposit", middleware.JWT(), h.DepositInitiate)

	// Gateway webhook, authenticated by the gateway not the user
	api.POST("/payments/webhook", h.DepositWebhook)

	// Tournaments
	api.GET("/tournaments", middleware.JWT(), h.Tournaments)
	api.GET("/tournaments/:id", middleware.JWT(), h.Tournament)
	api.POST("/tournaments/:id/join", middleware.JWT(), middleware.UserRateLimit("join", 10, time.Minute), h.Join)

	// Backoffice
	admin := api.Group("/admin")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	admin.GET("/withdrawals", h.AdminPendingWithdrawals)
	admin.POST("/withdrawals/:id/approve", h.AdminApproveWithdrawal)
	admin.POST("/withdrawals/:id/reject", h.AdminRejectWithdrawal)
	admin.POST("/tournaments", h.AdminCreateTournament)
	admin.GET("/tournaments/:id/registrations", h.AdminRegistrations)
	admin.POST("/tournaments/:id/status", h.AdminSetTournamentStatus)
	admin.POST("/tournaments/:id/room", h.AdminSetRoomCredentials)
	admin.POST("/tournaments/:id/payouts", h.AdminRecordPayout)
	admin.POST("/users/:id/status", h.AdminSetUserStatus)

	// Live wallet and tournament snapshots
	r.GET("/ws", h.WS(hub))

	return hub
}
