package domain

import "time"

// Pool names a wallet sub-balance.
type Pool string

const (
	PoolDeposit Pool = "deposit"
	PoolWinning Pool = "winning"
	PoolBonus   Pool = "bonus"
)

// Pools is a point-in-time snapshot of the three sub-balances.
// Amounts are whole currency units.
type Pools struct {
	Deposit int64 `json:"deposit_bal"`
	Winning int64 `json:"winning_bal"`
	Bonus   int64 `json:"bonus_bal"`
}

// Total returns the aggregate balance across all pools.
func (p Pools) Total() int64 {
	return p.Deposit + p.Winning + p.Bonus
}

// Wallet holds a user's balance pools and lifetime counters.
// One wallet per user, created together with the account.
type Wallet struct {
	UserID           int64     `db:"user_id" json:"user_id"`
	Pools            Pools     `json:"pools"`
	TotalMatches     int64     `db:"total_matches" json:"total_matches"`
	TotalWon         int64     `db:"total_won" json:"total_won"`
	LifetimeEarnings int64     `db:"lifetime_earnings" json:"lifetime_earnings"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
