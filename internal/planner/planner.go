// Package planner implements the debt risk-assessment and repayment-planning
// engine: DTI risk scoring, payoff-order selection, month-by-month
// amortization projection, and plan re-derivation under a payment budget or
// goal weighting.
//
// The package is pure and stateless: every function is a self-contained
// computation over its inputs, safe to call concurrently without coordination.
// All monetary amounts are integer cents and all rates are integer basis
// points, so balances reach exactly zero without float tolerance checks.
package planner

// Category classifies a debt. Revolving debts (credit cards) get a
// percentage-of-balance minimum payment heuristic; everything else amortizes
// over a fixed term.
type Category string

const (
	CategoryCreditCard  Category = "credit_card"
	CategoryInstallment Category = "installment"
	CategoryMortgage    Category = "mortgage"
	CategoryAuto        Category = "auto"
	CategoryPersonal    Category = "personal"
	CategoryBusiness    Category = "business"
	CategoryInformal    Category = "informal"
	CategoryOther       Category = "other"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryCreditCard, CategoryInstallment, CategoryMortgage, CategoryAuto,
		CategoryPersonal, CategoryBusiness, CategoryInformal, CategoryOther:
		return true
	}
	return false
}

// Revolving reports whether the category carries a revolving balance.
func (c Category) Revolving() bool {
	return c == CategoryCreditCard
}

// Debt is the canonical, validated shape of a single liability consumed by
// every downstream calculation. Produce one with NormalizeDebt.
type Debt struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Category        Category `json:"category"`
	OriginalCents   int64    `json:"original_cents"`
	BalanceCents    int64    `json:"balance_cents"`
	APRBps          int64    `json:"apr_bps"`
	MinPaymentCents int64    `json:"min_payment_cents"`
	DueDay          int      `json:"due_day"`
}

// IncomeProfile is the payer's monthly financial baseline.
type IncomeProfile struct {
	GrossMonthlyCents   int64 `json:"gross_monthly_cents"`
	NetMonthlyCents     int64 `json:"net_monthly_cents"`
	MonthlyExpenseCents int64 `json:"monthly_expense_cents"`
}

// DisposableCents returns net income minus expenses. A negative value is a
// risk signal in its own right and is deliberately not clamped.
func (p IncomeProfile) DisposableCents() int64 {
	return p.NetMonthlyCents - p.MonthlyExpenseCents
}

// activeDebts filters to debts with a positive remaining balance.
func activeDebts(debts []Debt) []Debt {
	out := make([]Debt, 0, len(debts))
	for _, d := range debts {
		if d.BalanceCents > 0 {
			out = append(out, d)
		}
	}
	return out
}

// minPaymentSum totals the stated minimum payments of the given debts.
func minPaymentSum(debts []Debt) int64 {
	var sum int64
	for _, d := range debts {
		sum += d.MinPaymentCents
	}
	return sum
}
