package domain

import "testing"

func TestTournamentStatusJoinable(t *testing.T) {
	cases := []struct {
		status TournamentStatus
		want   bool
	}{
		{TournamentOpen, true},
		{TournamentLive, true},
		{TournamentCompleted, false},
		{TournamentFull, false},
		{"Unknown", false},
	}

	for _, tc := range cases {
		if got := tc.status.Joinable(); got != tc.want {
			t.Errorf("Joinable(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestPoolsTotal(t *testing.T) {
	p := Pools{Deposit: 1, Winning: 2, Bonus: 3}
	if p.Total() != 6 {
		t.Fatalf("Total = %d, want 6", p.Total())
	}
	if (Pools{}).Total() != 0 {
		t.Fatalf("empty Total = %d, want 0", (Pools{}).Total())
	}
}
