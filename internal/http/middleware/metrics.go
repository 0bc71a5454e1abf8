package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)
	JoinSettlements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entry_settlements_total",
			Help: "Tournament entry settlements by outcome",
		},
		[]string{"outcome"},
	)
	WithdrawalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "withdrawal_requests_total",
			Help: "Withdrawal requests by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(RLRequests)
	prometheus.MustRegister(RLBlocked)
	prometheus.MustRegister(JoinSettlements)
	prometheus.MustRegister(WithdrawalRequests)
}
