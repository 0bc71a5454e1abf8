package service

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrAlreadyJoined         = errors.New("already joined")
	ErrTournamentUnavailable = errors.New("tournament unavailable")
	ErrTournamentFull        = errors.New("tournament full")
	ErrWriteFailed           = errors.New("write failed")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrUserNotFound          = errors.New("user not found")
	ErrTournamentNotFound    = errors.New("tournament not found")
	ErrWithdrawalNotFound    = errors.New("withdrawal request not found")
	ErrWithdrawalResolved    = errors.New("withdrawal request already resolved")
	ErrDepositNotFound       = errors.New("deposit order not found")
	ErrEmailTaken            = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
)

// wrapWrite tags a storage error so callers can distinguish a failed
// write from a rejected operation.
func wrapWrite(err error) error {
	return fmt.Errorf("%w: %v", ErrWriteFailed, err)
}

