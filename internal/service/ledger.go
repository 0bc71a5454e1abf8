package service

import "arena_webapp/internal/domain"

// TieredDebit deducts amount across the wallet pools in fixed order:
// deposit balance first, then winnings, then bonus. The deduction is
// all-or-nothing; if the pools together cannot cover the amount the
// input is returned unchanged with ErrInsufficientBalance.
func TieredDebit(p domain.Pools, amount int64) (domain.Pools, error) {
	if amount < 0 {
		return p, ErrInvalidAmount
	}
	if p.Total() < amount {
		return p, ErrInsufficientBalance
	}

	remaining := amount

	take := min64(p.Deposit, remaining)
	p.Deposit -= take
	remaining -= take

	take = min64(p.Winning, remaining)
	p.Winning -= take
	remaining -= take

	p.Bonus -= remaining

	return p, nil
}

// CreditPool adds amount to a single pool.
func CreditPool(p domain.Pools, pool domain.Pool, amount int64) (domain.Pools, error) {
	if amount <= 0 {
		return p, ErrInvalidAmount
	}

	switch pool {
	case domain.PoolDeposit:
		p.Deposit += amount
	case domain.PoolWinning:
		p.Winning += amount
	case domain.PoolBonus:
		p.Bonus += amount
	default:
		return p, ErrInvalidAmount
	}

	return p, nil
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
