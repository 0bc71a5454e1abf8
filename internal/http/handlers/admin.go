package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"arena_webapp/internal/domain"
	"arena_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminPendingWithdrawals lists unresolved payout requests
func (h *Handler) AdminPendingWithdrawals(c *gin.Context) {
	list, err := h.AdminService.ListPendingWithdrawals(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load withdrawals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": list})
}

func (h *Handler) resolveWithdrawal(c *gin.Context, approve bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid withdrawal id"})
		return
	}

	if approve {
		err = h.AdminService.ApproveWithdrawal(c.Request.Context(), id)
	} else {
		err = h.AdminService.RejectWithdrawal(c.Request.Context(), id)
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrWithdrawalNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "withdrawal not found"})
		case errors.Is(err, service.ErrWithdrawalResolved):
			c.JSON(http.StatusConflict, gin.H{"error": "withdrawal already resolved"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "resolution failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AdminApproveWithdrawal marks a request paid out
func (h *Handler) AdminApproveWithdrawal(c *gin.Context) {
	h.resolveWithdrawal(c, true)
}

// AdminRejectWithdrawal fails a request and refunds the winnings pool
func (h *Handler) AdminRejectWithdrawal(c *gin.Context) {
	h.resolveWithdrawal(c, false)
}

type payoutRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
	Amount int64 `json:"amount" binding:"required,min=1"`
}

// AdminRecordPayout credits tournament winnings to a player
func (h *Handler) AdminRecordPayout(c *gin.Context) {
	tournamentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}

	var req payoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	err = h.AdminService.RecordPayout(c.Request.Context(), tournamentID, req.UserID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTournamentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "tournament not found"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payout failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AdminCreateTournament inserts a catalog entry
func (h *Handler) AdminCreateTournament(c *gin.Context) {
	var t domain.Tournament
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	if err := h.AdminService.CreateTournament(c.Request.Context(), &t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create tournament"})
		return
	}

	c.JSON(http.StatusCreated, t)
}

type statusRequest struct {
	Status domain.TournamentStatus `json:"status" binding:"required"`
}

// AdminSetTournamentStatus moves a tournament through its lifecycle
func (h *Handler) AdminSetTournamentStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	switch req.Status {
	case domain.TournamentOpen, domain.TournamentLive, domain.TournamentCompleted, domain.TournamentFull:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	if err := h.AdminService.SetTournamentStatus(c.Request.Context(), id, req.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type roomRequest struct {
	RoomID   string `json:"room_id" binding:"required"`
	RoomPass string `json:"room_pass" binding:"required"`
}

// AdminRegistrations lists a tournament's participants
func (h *Handler) AdminRegistrations(c *gin.Context) {
	tournamentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}

	regs, err := h.AdminService.ListRegistrations(c.Request.Context(), tournamentID)
	if err != nil {
		if errors.Is(err, service.ErrTournamentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tournament not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load registrations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"registrations": regs})
}

type userStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminSetUserStatus updates an account's status
func (h *Handler) AdminSetUserStatus(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req userStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	switch req.Status {
	case domain.UserStatusActive, domain.UserStatusBanned:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	if err := h.AdminService.SetUserStatus(c.Request.Context(), userID, req.Status); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AdminSetRoomCredentials publishes the match room to joined players
func (h *Handler) AdminSetRoomCredentials(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}

	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	if err := h.AdminService.SetRoomCredentials(c.Request.Context(), id, req.RoomID, req.RoomPass); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not set room credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
