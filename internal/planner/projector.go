package planner

import (
	"math"
	"sort"

	apperrors "debtwise/internal/errors"
)

// maxProjectionMonths caps the simulation at 50 years. Hitting the cap means
// the budget barely exceeds minimums on high-rate debt and never amortizes
// the principal; that is reported as PLAN_DOES_NOT_CONVERGE, distinct from an
// infeasible budget.
const maxProjectionMonths = 600

// MonthSnapshot records one simulated month: interest accrued, per-debt
// payments, and end-of-month balances.
type MonthSnapshot struct {
	Month         int              `json:"month"`
	InterestCents int64            `json:"interest_cents"`
	Payments      map[string]int64 `json:"payments"`
	Balances      map[string]int64 `json:"balances"`
}

// Projection is the result of simulating a repayment plan to completion.
type Projection struct {
	Months             int             `json:"months"`
	TotalInterestCents int64           `json:"total_interest_cents"`
	PayoffMonth        map[string]int  `json:"payoff_month"`
	Schedule           []MonthSnapshot `json:"schedule"`
}

// Project simulates month-by-month allocation of the budget across the active
// debts until every balance reaches zero. Each month: interest accrues on
// open balances, minimum payments apply first (capped at what is owed), and
// the leftover budget goes to the strategy target — poured down the order for
// snowball/avalanche, split by current balance share for proportional, with
// weights renormalized over the debts still open.
//
// The budget must cover the sum of stated minimum payments; a smaller budget
// is rejected with INFEASIBLE_BUDGET, never silently raised.
func Project(debts []Debt, strategy Strategy, budgetCents int64) (*Projection, error) {
	active := activeDebts(debts)
	if len(active) == 0 {
		return nil, apperrors.ErrNoActiveDebts
	}
	if budgetCents < minPaymentSum(active) {
		return nil, apperrors.ErrInfeasibleBudget
	}

	alloc, err := Allocate(active, strategy)
	if err != nil {
		return nil, err
	}

	bal := make(map[string]int64, len(active))
	for _, d := range active {
		bal[d.ID] = d.BalanceCents
	}

	proj := &Projection{PayoffMonth: make(map[string]int, len(active))}

	for m := 1; m <= maxProjectionMonths; m++ {
		month := MonthSnapshot{
			Month:    m,
			Payments: make(map[string]int64, len(active)),
			Balances: make(map[string]int64, len(active)),
		}

		// 1) Accrue interest on open balances.
		for _, d := range active {
			b := bal[d.ID]
			if b <= 0 {
				continue
			}
			interest := monthlyInterest(b, d.APRBps)
			bal[d.ID] = b + interest
			month.InterestCents += interest
		}
		proj.TotalInterestCents += month.InterestCents

		// 2) Minimum payments first, capped at what is owed.
		leftover := budgetCents
		for _, d := range active {
			owed := bal[d.ID]
			if owed <= 0 {
				continue
			}
			pay := d.MinPaymentCents
			if pay > owed {
				pay = owed
			}
			bal[d.ID] -= pay
			month.Payments[d.ID] += pay
			leftover -= pay
		}

		// 3) Extra payment per strategy.
		if strategy == StrategyProportional {
			applyProportional(active, bal, leftover, &month)
		} else {
			applyOrdered(alloc.Order, bal, leftover, &month)
		}

		// 4) Close debts that hit zero this month.
		done := true
		for _, d := range active {
			month.Balances[d.ID] = bal[d.ID]
			if bal[d.ID] > 0 {
				done = false
			} else if _, closed := proj.PayoffMonth[d.ID]; !closed {
				proj.PayoffMonth[d.ID] = m
			}
		}
		proj.Schedule = append(proj.Schedule, month)

		if done {
			proj.Months = m
			return proj, nil
		}
	}

	return nil, apperrors.ErrPlanDoesNotConverge
}

// applyOrdered pours the leftover into the first open debt in order,
// overflowing to the next when a debt closes mid-month.
func applyOrdered(order []string, bal map[string]int64, leftover int64, month *MonthSnapshot) {
	for _, id := range order {
		if leftover <= 0 {
			return
		}
		owed := bal[id]
		if owed <= 0 {
			continue
		}
		pay := leftover
		if pay > owed {
			pay = owed
		}
		bal[id] -= pay
		month.Payments[id] += pay
		leftover -= pay
	}
}

// applyProportional splits the leftover across open debts by their share of
// the total open balance, recomputed from current balances. Remainder cents
// go to the largest balances first; overflow from debts that close is
// re-split among the rest.
func applyProportional(active []Debt, bal map[string]int64, leftover int64, month *MonthSnapshot) {
	for leftover > 0 {
		open := make([]Debt, 0, len(active))
		var total int64
		for _, d := range active {
			if bal[d.ID] > 0 {
				open = append(open, d)
				total += bal[d.ID]
			}
		}
		if len(open) == 0 {
			return
		}
		sort.Slice(open, func(i, j int) bool {
			if bal[open[i].ID] != bal[open[j].ID] {
				return bal[open[i].ID] > bal[open[j].ID]
			}
			return open[i].ID < open[j].ID
		})

		shares := make([]int64, len(open))
		var allocated int64
		for i, d := range open {
			shares[i] = int64(math.Floor(float64(leftover) * float64(bal[d.ID]) / float64(total)))
			allocated += shares[i]
		}
		// Flooring leaves a few cents unassigned; hand them out in sort order.
		for i := 0; allocated < leftover && i < len(shares); i++ {
			shares[i]++
			allocated++
		}

		for i, d := range open {
			pay := shares[i]
			if pay > bal[d.ID] {
				pay = bal[d.ID]
			}
			if pay <= 0 {
				continue
			}
			bal[d.ID] -= pay
			month.Payments[d.ID] += pay
			leftover -= pay
		}
	}
}

// monthlyInterest accrues one month of interest on a balance at the given
// annual rate, rounded to the nearest cent.
func monthlyInterest(balanceCents, aprBps int64) int64 {
	rate := float64(aprBps) / 10000.0 / 12.0
	interest := int64(math.Round(float64(balanceCents) * rate))
	if interest < 0 {
		return 0
	}
	return interest
}
