package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"arena_webapp/internal/domain"
	"arena_webapp/internal/http/middleware"
	"arena_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// Wallet returns the wallet snapshot
func (h *Handler) Wallet(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	wallet, err := h.WalletService.GetWallet(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "wallet not found"})
		return
	}

	c.JSON(http.StatusOK, wallet)
}

// Transactions returns the ledger, most recent first
func (h *Handler) Transactions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	txs, err := h.WalletService.GetTransactionHistory(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

// Withdraw creates a pending withdrawal against the winnings pool
func (h *Handler) Withdraw(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body domain.WithdrawRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	wr, err := h.WalletService.RequestWithdrawal(c.Request.Context(), userID, body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			middleware.WithdrawalRequests.WithLabelValues("invalid_amount").Inc()
			c.JSON(http.StatusBadRequest, gin.H{
				"error":        "minimum withdrawal amount not met",
				"min_withdraw": h.WalletService.MinWithdrawAmount(),
			})
		case errors.Is(err, service.ErrInsufficientFunds):
			middleware.WithdrawalRequests.WithLabelValues("insufficient_funds").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient winnings balance"})
		case errors.Is(err, service.ErrWriteFailed):
			middleware.WithdrawalRequests.WithLabelValues("write_failed").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record withdrawal"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "withdrawal failed"})
		}
		return
	}

	middleware.WithdrawalRequests.WithLabelValues("accepted").Inc()
	c.JSON(http.StatusCreated, wr)
}

// Withdrawals lists the caller's withdrawal requests
func (h *Handler) Withdrawals(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	list, err := h.WalletService.ListWithdrawals(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load withdrawals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"withdrawals": list})
}

type depositRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}

// DepositInitiate creates a pending gateway order
func (h *Handler) DepositInitiate(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	order, err := h.PaymentService.CreateOrder(c.Request.Context(), userID, req.Amount)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount below minimum deposit"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create order"})
		return
	}

	c.JSON(http.StatusCreated, order)
}

type depositWebhookRequest struct {
	OrderRef   string `json:"order_ref" binding:"required"`
	GatewayTxn string `json:"gateway_txn"`
	Success    bool   `json:"success"`
}

// DepositWebhook applies the gateway's payment result
func (h *Handler) DepositWebhook(c *gin.Context) {
	var req depositWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	err := h.PaymentService.ConfirmDeposit(c.Request.Context(), req.OrderRef, req.GatewayTxn, req.Success)
	if err != nil {
		if errors.Is(err, service.ErrDepositNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown order"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not confirm deposit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
