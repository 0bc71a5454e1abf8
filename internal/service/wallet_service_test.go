package service

import (
	"context"
	"errors"
	"testing"

	"arena_webapp/internal/domain"
)

// Amount validation happens before any storage access, so a nil pool is
// fine here.
func TestRequestWithdrawal_BelowMinimum(t *testing.T) {
	svc := NewWalletService(nil, NopNotifier{}, 22)

	body := domain.WithdrawRequestBody{Amount: 21, Method: "upi", Details: "user@bank"}
	_, err := svc.RequestWithdrawal(context.Background(), 1, body)
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}
}
