package planner

import apperrors "debtwise/internal/errors"

// RiskTier buckets a DTI ratio into an ordered severity level.
type RiskTier string

const (
	TierSafe     RiskTier = "safe"
	TierModerate RiskTier = "moderate"
	TierHigh     RiskTier = "high"
	TierCritical RiskTier = "critical"
)

// Guidance returns the fixed advisory text for the tier.
func (t RiskTier) Guidance() string {
	switch t {
	case TierSafe:
		return "Your debt load is manageable. Keep up your current payments and consider putting extra toward the highest-rate debt."
	case TierModerate:
		return "Your debt payments take a meaningful share of your income. Avoid taking on new debt and review your monthly budget."
	case TierHigh:
		return "Your debt payments crowd out most of your income. Prioritize paying down high-rate balances and cut discretionary spending."
	case TierCritical:
		return "Your minimum payments exceed what your income can sustain. Consider debt restructuring or professional credit counseling."
	}
	return ""
}

// RiskAssessment is the output of the DTI calculator. It is derived on every
// request from the current debt set and income profile; persisted copies are
// caches only.
type RiskAssessment struct {
	RatioPct             float64  `json:"ratio_pct"`
	Tier                 RiskTier `json:"tier"`
	Guidance             string   `json:"guidance"`
	TotalMinPaymentCents int64    `json:"total_min_payment_cents"`
	IncomeBaseCents      int64    `json:"income_base_cents"`
	DisposableCents      int64    `json:"disposable_cents"`
}

// AssessRisk computes the debt-to-income ratio over the active debts and maps
// it to a risk tier. Gross income is the preferred denominator; net income is
// the fallback when gross is unknown. When neither is positive the state is
// "cannot assess", reported as INSUFFICIENT_INCOME_DATA rather than a 0%
// ratio, so callers never show zero risk for missing data.
func AssessRisk(debts []Debt, profile IncomeProfile) (*RiskAssessment, error) {
	base := profile.GrossMonthlyCents
	if base <= 0 {
		base = profile.NetMonthlyCents
	}
	if base <= 0 {
		return nil, apperrors.ErrInsufficientIncomeData
	}

	totalMin := minPaymentSum(activeDebts(debts))
	ratio := float64(totalMin) / float64(base) * 100

	tier := tierFor(ratio)
	return &RiskAssessment{
		RatioPct:             ratio,
		Tier:                 tier,
		Guidance:             tier.Guidance(),
		TotalMinPaymentCents: totalMin,
		IncomeBaseCents:      base,
		DisposableCents:      profile.DisposableCents(),
	}, nil
}

// tierFor maps a DTI ratio to its tier. Upper bounds are inclusive:
// exactly 40 is still Safe, exactly 60 still Moderate, exactly 80 still High.
func tierFor(ratioPct float64) RiskTier {
	switch {
	case ratioPct <= 40:
		return TierSafe
	case ratioPct <= 60:
		return TierModerate
	case ratioPct <= 80:
		return TierHigh
	default:
		return TierCritical
	}
}
