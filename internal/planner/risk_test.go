package planner

import (
	"errors"
	"testing"

	apperrors "debtwise/internal/errors"
)

func debtWithMin(id string, minCents int64) Debt {
	return Debt{
		ID:              id,
		Name:            "Debt " + id,
		Category:        CategoryPersonal,
		OriginalCents:   5000000,
		BalanceCents:    2500000,
		APRBps:          1200,
		MinPaymentCents: minCents,
		DueDay:          1,
	}
}

func TestAssessRisk(t *testing.T) {
	t.Run("ratio_from_gross_income", func(t *testing.T) {
		// gross 50,000 with a 20,000 minimum is exactly 40% — boundary Safe
		debts := []Debt{debtWithMin("a", 2000000)}
		profile := IncomeProfile{GrossMonthlyCents: 5000000, NetMonthlyCents: 4000000}

		got, err := AssessRisk(debts, profile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.RatioPct != 40.0 {
			t.Errorf("expected ratio 40.0, got %v", got.RatioPct)
		}
		if got.Tier != TierSafe {
			t.Errorf("expected tier safe at the boundary, got %s", got.Tier)
		}
		if got.IncomeBaseCents != 5000000 {
			t.Errorf("expected gross income as base, got %d", got.IncomeBaseCents)
		}
	})

	t.Run("falls_back_to_net_income", func(t *testing.T) {
		debts := []Debt{debtWithMin("a", 1000000)}
		profile := IncomeProfile{NetMonthlyCents: 4000000}

		got, err := AssessRisk(debts, profile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.IncomeBaseCents != 4000000 {
			t.Errorf("expected net income as fallback base, got %d", got.IncomeBaseCents)
		}
		if got.RatioPct != 25.0 {
			t.Errorf("expected ratio 25.0, got %v", got.RatioPct)
		}
	})

	t.Run("no_income_is_not_zero_risk", func(t *testing.T) {
		debts := []Debt{debtWithMin("a", 1000000)}

		_, err := AssessRisk(debts, IncomeProfile{})
		if !errors.Is(err, apperrors.ErrInsufficientIncomeData) {
			t.Fatalf("expected ErrInsufficientIncomeData, got %v", err)
		}
	})

	t.Run("excludes_zero_balance_debts", func(t *testing.T) {
		paid := debtWithMin("paid", 500000)
		paid.BalanceCents = 0
		debts := []Debt{debtWithMin("a", 1000000), paid}
		profile := IncomeProfile{GrossMonthlyCents: 5000000}

		got, err := AssessRisk(debts, profile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.TotalMinPaymentCents != 1000000 {
			t.Errorf("expected retired debt excluded, got total %d", got.TotalMinPaymentCents)
		}
	})

	t.Run("ratio_not_capped", func(t *testing.T) {
		debts := []Debt{debtWithMin("a", 10000000)}
		profile := IncomeProfile{GrossMonthlyCents: 5000000}

		got, err := AssessRisk(debts, profile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.RatioPct != 200.0 {
			t.Errorf("expected uncapped ratio 200.0, got %v", got.RatioPct)
		}
		if got.Tier != TierCritical {
			t.Errorf("expected tier critical, got %s", got.Tier)
		}
	})

	t.Run("negative_disposable_not_clamped", func(t *testing.T) {
		profile := IncomeProfile{GrossMonthlyCents: 5000000, NetMonthlyCents: 300000, MonthlyExpenseCents: 400000}
		got, err := AssessRisk(nil, profile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.DisposableCents != -100000 {
			t.Errorf("expected disposable -100000, got %d", got.DisposableCents)
		}
	})
}

func TestTierBoundaries(t *testing.T) {
	cases := []struct {
		ratio float64
		want  RiskTier
	}{
		{0, TierSafe},
		{40.0, TierSafe},
		{40.01, TierModerate},
		{60.0, TierModerate},
		{60.01, TierHigh},
		{80.0, TierHigh},
		{80.01, TierCritical},
		{250, TierCritical},
	}
	for _, tc := range cases {
		if got := tierFor(tc.ratio); got != tc.want {
			t.Errorf("tierFor(%v) = %s, want %s", tc.ratio, got, tc.want)
		}
	}
}

func TestTierGuidance(t *testing.T) {
	for _, tier := range []RiskTier{TierSafe, TierModerate, TierHigh, TierCritical} {
		if tier.Guidance() == "" {
			t.Errorf("expected guidance text for tier %s", tier)
		}
	}
}
