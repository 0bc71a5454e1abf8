package domain

import "time"

// DepositStatus is the gateway-side state of a top-up order.
type DepositStatus string

const (
	DepositPending   DepositStatus = "Pending"
	DepositConfirmed DepositStatus = "Confirmed"
	DepositFailed    DepositStatus = "Failed"
)

// Deposit is a payment-gateway top-up order. The gateway itself is
// external; confirmation arrives via webhook and credits the deposit
// pool in a separate, later transaction.
type Deposit struct {
	ID          int64         `db:"id" json:"id"`
	OrderRef    string        `db:"order_ref" json:"order_ref"`
	UserID      int64         `db:"user_id" json:"user_id"`
	Amount      int64         `db:"amount" json:"amount"`
	Status      DepositStatus `db:"status" json:"status"`
	GatewayTxn  string        `db:"gateway_txn" json:"gateway_txn,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	ConfirmedAt *time.Time    `db:"confirmed_at" json:"confirmed_at,omitempty"`
}

// DepositOrder is returned to the client to continue payment externally.
type DepositOrder struct {
	OrderRef    string `json:"order_ref"`
	Amount      int64  `json:"amount"`
	RedirectURL string `json:"redirect_url"`
}
