package domain

import "time"

// WithdrawalStatus is the resolution state of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalPending WithdrawalStatus = "Pending"
	WithdrawalSuccess WithdrawalStatus = "Success"
	WithdrawalFailed  WithdrawalStatus = "Failed"
)

// WithdrawalRequest is a pending payout against the winnings pool.
// Created by the withdrawal flow; resolved only by the admin backend.
type WithdrawalRequest struct {
	ID         int64            `db:"id" json:"id"`
	Reference  string           `db:"reference" json:"reference"`
	UserID     int64            `db:"user_id" json:"user_id"`
	Name       string           `db:"name" json:"name"`
	Amount     int64            `db:"amount" json:"amount"`
	Method     string           `db:"method" json:"method"`
	Details    string           `db:"details" json:"details"`
	Status     WithdrawalStatus `db:"status" json:"status"`
	// TransactionID links the pending ledger entry created together with
	// the request; resolution flips that entry alongside the request.
	TransactionID int64      `db:"transaction_id" json:"-"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	ResolvedAt    *time.Time `db:"resolved_at" json:"resolved_at,omitempty"`
}

// WithdrawRequestBody is the user-submitted withdrawal form.
type WithdrawRequestBody struct {
	Amount  int64  `json:"amount" binding:"required,min=1"`
	Method  string `json:"method" binding:"required"`
	Details string `json:"details" binding:"required"`
}
