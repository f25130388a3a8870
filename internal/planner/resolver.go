package planner

import (
	"errors"
	"sort"

	apperrors "debtwise/internal/errors"
)

// maxRefineAttempts bounds the target-months inversion loop. The inversion is
// a first-order estimate, not an exact root solve.
const maxRefineAttempts = 3

// PlanRequest carries the interactive inputs for plan resolution: the payment
// slider and the goal-weighting slider (0 = fastest payoff, 100 = least
// interest). Strategy may be set explicitly to override the weighting mapping,
// which is how the UI's strategy picker and the proportional strategy reach
// the projector.
type PlanRequest struct {
	BudgetCents   int64
	GoalWeighting int
	Strategy      Strategy
}

// Plan is a fully resolved repayment plan.
type Plan struct {
	Strategy           Strategy        `json:"strategy"`
	MonthlyBudgetCents int64           `json:"monthly_budget_cents"`
	GoalWeighting      int             `json:"goal_weighting"`
	Months             int             `json:"months"`
	TotalInterestCents int64           `json:"total_interest_cents"`
	PayoffOrder        []string        `json:"payoff_order"`
	Schedule           []MonthSnapshot `json:"schedule"`
}

// StrategyForWeighting maps the goal weighting to a strategy. Weightings
// below 50 bias toward fast visible wins (snowball); 50 and above bias toward
// interest minimization (avalanche). This is a hard threshold, not a blend of
// two simulations — a documented simplification, not a precision guarantee.
func StrategyForWeighting(weighting int) Strategy {
	if weighting < 50 {
		return StrategySnowball
	}
	return StrategyAvalanche
}

// ResolvePlan re-derives a repayment plan for the requested budget and goal
// weighting. A budget below the sum of minimum payments is rejected, never
// silently raised. The resolution is synchronous and idempotent: identical
// inputs yield an identical plan.
func ResolvePlan(debts []Debt, req PlanRequest) (*Plan, error) {
	if req.GoalWeighting < 0 || req.GoalWeighting > 100 {
		return nil, apperrors.WithFields(apperrors.ErrValidation,
			apperrors.FieldError{Field: "goal_weighting", Reason: "must be between 0 and 100"})
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = StrategyForWeighting(req.GoalWeighting)
	}

	proj, err := Project(debts, strategy, req.BudgetCents)
	if err != nil {
		return nil, err
	}

	order, err := payoffOrder(debts, strategy, proj)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Strategy:           strategy,
		MonthlyBudgetCents: req.BudgetCents,
		GoalWeighting:      req.GoalWeighting,
		Months:             proj.Months,
		TotalInterestCents: proj.TotalInterestCents,
		PayoffOrder:        order,
		Schedule:           proj.Schedule,
	}, nil
}

// ResolveForMonths inverts the relation: given a desired payoff time, derive
// the monthly payment. The first-order estimate ignores interest
// (balance / months, floored at the minimum-payment sum), then refines by
// re-simulating and spreading the projected interest over the horizon when
// the estimate undershoots. Refinement is bounded; the final attempt's plan
// is returned even if it slightly overshoots the requested months.
func ResolveForMonths(debts []Debt, targetMonths, weighting int) (*Plan, error) {
	if targetMonths < 1 || targetMonths > maxProjectionMonths {
		return nil, apperrors.WithFields(apperrors.ErrValidation,
			apperrors.FieldError{Field: "target_months", Reason: "must be between 1 and 600"})
	}

	active := activeDebts(debts)
	var totalBalance int64
	for _, d := range active {
		totalBalance += d.BalanceCents
	}

	estimate := (totalBalance + int64(targetMonths) - 1) / int64(targetMonths)
	// The user stated a time goal, not a budget, so raising the derived
	// payment to feasibility is not a trust violation here.
	if min := minPaymentSum(active); estimate < min {
		estimate = min
	}

	var plan *Plan
	var err error
	for attempt := 0; attempt < maxRefineAttempts; attempt++ {
		plan, err = ResolvePlan(debts, PlanRequest{BudgetCents: estimate, GoalWeighting: weighting})
		if errors.Is(err, apperrors.ErrPlanDoesNotConverge) {
			estimate += estimate/5 + 1
			continue
		}
		if err != nil {
			return nil, err
		}
		if plan.Months <= targetMonths {
			return plan, nil
		}
		estimate += plan.TotalInterestCents/int64(targetMonths) + 1
	}
	if plan == nil {
		return nil, err
	}
	return plan, nil
}

// payoffOrder reports the order extra payment is applied: the strategy order
// where one exists, otherwise (proportional) the actual payoff order from the
// simulation.
func payoffOrder(debts []Debt, strategy Strategy, proj *Projection) ([]string, error) {
	if strategy != StrategyProportional {
		alloc, err := Allocate(debts, strategy)
		if err != nil {
			return nil, err
		}
		return alloc.Order, nil
	}

	ids := make([]string, 0, len(proj.PayoffMonth))
	for id := range proj.PayoffMonth {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if proj.PayoffMonth[ids[i]] != proj.PayoffMonth[ids[j]] {
			return proj.PayoffMonth[ids[i]] < proj.PayoffMonth[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids, nil
}
