package planner

import (
	"sort"

	apperrors "debtwise/internal/errors"
)

// Strategy selects how extra payment beyond minimums is applied.
type Strategy string

const (
	// StrategySnowball pays the smallest balance first.
	StrategySnowball Strategy = "snowball"
	// StrategyAvalanche pays the highest interest rate first.
	StrategyAvalanche Strategy = "avalanche"
	// StrategyProportional splits extra payment across all open debts by
	// their share of total remaining balance.
	StrategyProportional Strategy = "proportional"
)

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategySnowball, StrategyAvalanche, StrategyProportional:
		return true
	}
	return false
}

// Allocation is the output of strategy selection: a strict payoff order for
// snowball/avalanche, or a weight map for proportional. Exactly one of Order
// and Weights is populated.
type Allocation struct {
	Strategy Strategy           `json:"strategy"`
	Order    []string           `json:"order,omitempty"`
	Weights  map[string]float64 `json:"weights,omitempty"`
}

// Allocate orders the active debts according to the chosen strategy.
// Tie-breaks are deterministic: snowball breaks balance ties by lower rate
// then ID; avalanche breaks rate ties by larger balance then ID.
func Allocate(debts []Debt, strategy Strategy) (Allocation, error) {
	if !strategy.Valid() {
		return Allocation{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown repayment strategy: "+string(strategy))
	}

	active := activeDebts(debts)

	if strategy == StrategyProportional {
		var total int64
		for _, d := range active {
			total += d.BalanceCents
		}
		weights := make(map[string]float64, len(active))
		for _, d := range active {
			if total > 0 {
				weights[d.ID] = float64(d.BalanceCents) / float64(total)
			}
		}
		return Allocation{Strategy: strategy, Weights: weights}, nil
	}

	sorted := make([]Debt, len(active))
	copy(sorted, active)

	switch strategy {
	case StrategySnowball:
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].BalanceCents != sorted[j].BalanceCents {
				return sorted[i].BalanceCents < sorted[j].BalanceCents
			}
			if sorted[i].APRBps != sorted[j].APRBps {
				return sorted[i].APRBps < sorted[j].APRBps
			}
			return sorted[i].ID < sorted[j].ID
		})
	case StrategyAvalanche:
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].APRBps != sorted[j].APRBps {
				return sorted[i].APRBps > sorted[j].APRBps
			}
			if sorted[i].BalanceCents != sorted[j].BalanceCents {
				return sorted[i].BalanceCents > sorted[j].BalanceCents
			}
			return sorted[i].ID < sorted[j].ID
		})
	}

	order := make([]string, len(sorted))
	for i, d := range sorted {
		order[i] = d.ID
	}
	return Allocation{Strategy: strategy, Order: order}, nil
}
