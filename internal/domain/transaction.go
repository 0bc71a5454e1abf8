package domain

import "time"

// TxStatus marks the settlement state of a ledger entry.
type TxStatus string

const (
	TxSuccess TxStatus = "Success"
	TxPending TxStatus = "Pending"
	TxFailed  TxStatus = "Failed"
)

// Transaction is an append-only wallet ledger entry. Amounts are
// recorded as positive values, the type label carries the direction.
// Amounts never change after insert; only the status of a pending
// entry is resolved later (withdrawals).
type Transaction struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Type      string    `db:"type" json:"type"`
	Amount    int64     `db:"amount" json:"amount"`
	Status    TxStatus  `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
