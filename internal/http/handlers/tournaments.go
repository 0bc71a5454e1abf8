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

// Tournaments lists the catalog with the caller's join state
func (h *Handler) Tournaments(c *gin.Context) {
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

	status := domain.TournamentStatus(c.Query("status"))
	list, err := h.TournamentService.List(c.Request.Context(), userID, limit, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tournaments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tournaments": list})
}

// Tournament returns a single catalog entry
func (h *Handler) Tournament(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	tournamentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}

	view, err := h.TournamentService.Get(c.Request.Context(), userID, tournamentID)
	if err != nil {
		if errors.Is(err, service.ErrTournamentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tournament not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tournament"})
		return
	}

	c.JSON(http.StatusOK, view)
}

type joinRequest struct {
	IGN string `json:"ign" binding:"required"`
}

// Join settles a tournament entry: debit, registration and ledger entry
// commit together or the join fails with no effect.
func (h *Handler) Join(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	tournamentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}

	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	wallet, err := h.TournamentService.Join(c.Request.Context(), tournamentID, userID, req.IGN)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTournamentNotFound):
			middleware.JoinSettlements.WithLabelValues("not_found").Inc()
			c.JSON(http.StatusNotFound, gin.H{"error": "tournament not found"})
		case errors.Is(err, service.ErrTournamentUnavailable):
			middleware.JoinSettlements.WithLabelValues("unavailable").Inc()
			c.JSON(http.StatusConflict, gin.H{"error": "tournament is not open for entry"})
		case errors.Is(err, service.ErrTournamentFull):
			middleware.JoinSettlements.WithLabelValues("full").Inc()
			c.JSON(http.StatusConflict, gin.H{"error": "tournament is full"})
		case errors.Is(err, service.ErrAlreadyJoined):
			middleware.JoinSettlements.WithLabelValues("already_joined").Inc()
			c.JSON(http.StatusConflict, gin.H{"error": "already joined"})
		case errors.Is(err, service.ErrInsufficientBalance):
			middleware.JoinSettlements.WithLabelValues("insufficient_balance").Inc()
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient balance, please add money"})
		case errors.Is(err, service.ErrWriteFailed):
			middleware.JoinSettlements.WithLabelValues("write_failed").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record entry"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "join failed"})
		}
		return
	}

	middleware.JoinSettlements.WithLabelValues("settled").Inc()
	c.JSON(http.StatusOK, gin.H{"status": "joined", "wallet": wallet})
}
