package domain

import (
	"testing"
	"time"
)

func TestMonthWindow(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "Mid month",
			now:       time.Date(2025, time.March, 15, 12, 30, 0, 0, time.UTC),
			wantStart: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{
			name:      "First instant of month",
			now:       time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{
			name:      "December rolls into next year",
			now:       time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC),
			wantStart: time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{
			name:      "Non-UTC input normalized",
			now:       time.Date(2025, time.March, 1, 0, 30, 0, 0, time.FixedZone("plus2", 2*3600)),
			wantStart: time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := MonthWindow(tt.now)
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
		})
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		pages int
		want  int
	}{
		{pages: 0, want: 0},
		{pages: 1, want: 500},
		{pages: 10, want: 5000},
		{pages: 30, want: 15000},
	}

	for _, tt := range tests {
		if got := EstimateTokens(tt.pages); got != tt.want {
			t.Errorf("EstimateTokens(%d) = %d, want %d", tt.pages, got, tt.want)
		}
	}
}

func TestUser_Plan(t *testing.T) {
	tests := []struct {
		name string
		user *User
		want PlanTier
	}{
		{name: "Nil user", user: nil, want: PlanFree},
		{name: "Empty plan", user: &User{ID: "u1"}, want: PlanFree},
		{name: "Starter plan", user: &User{ID: "u1", PlanType: PlanStarter}, want: PlanStarter},
		{name: "Pro plan", user: &User{ID: "u1", PlanType: PlanPro}, want: PlanPro},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.Plan(); got != tt.want {
				t.Errorf("Plan() = %s, want %s", got, tt.want)
			}
		})
	}
}
