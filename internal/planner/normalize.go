package planner

import (
	"math"
	"strconv"
	"strings"

	apperrors "debtwise/internal/errors"
)

// Default minimum payment for revolving debts: 2% of balance, floored at $25.
const (
	revolvingMinPaymentPct   = 0.02
	revolvingMinPaymentFloor = 2500
)

// RawDebt carries user-entered values before validation. Numeric fields are
// strings because form and chat inputs arrive with grouping separators and
// localized formatting.
type RawDebt struct {
	ID             string
	Name           string
	Category       string
	OriginalAmount string
	Balance        string
	AnnualRatePct  string
	MinimumPayment string // optional; derived when empty
	DueDay         int

	// RemainingTermMonths lets the normalizer derive a minimum payment for
	// installment-type debts. Zero means not supplied.
	RemainingTermMonths int
}

// NormalizeDebt validates and normalizes a raw debt entry into the canonical
// shape used by every downstream calculation. It is a pure transformation:
// on failure it returns a VALIDATION_ERROR enumerating every offending field,
// or MISSING_REQUIRED_FIELD when a minimum payment is absent and no heuristic
// applies.
func NormalizeDebt(raw RawDebt) (Debt, error) {
	var fields []apperrors.FieldError
	addErr := func(field, reason string) {
		fields = append(fields, apperrors.FieldError{Field: field, Reason: reason})
	}

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		addErr("name", "must not be empty")
	}

	category := Category(strings.TrimSpace(raw.Category))
	if !category.Valid() {
		addErr("category", "unknown debt category")
	}

	// Cross-field checks only run against values that parsed and passed
	// their own checks, so one bad field reports exactly one error.
	original, err := parseCents(raw.OriginalAmount)
	originalOK := err == nil && original >= 0
	switch {
	case err != nil:
		addErr("original_amount", err.Error())
	case original < 0:
		addErr("original_amount", "must not be negative")
	}

	balance, err := parseCents(raw.Balance)
	balanceOK := err == nil && balance >= 0
	switch {
	case err != nil:
		addErr("balance", err.Error())
	case balance < 0:
		addErr("balance", "must not be negative")
	case originalOK && balance > original:
		addErr("balance", "must not exceed the original amount")
	}

	aprBps, err := parseBps(raw.AnnualRatePct)
	aprOK := err == nil && aprBps >= 0
	switch {
	case err != nil:
		addErr("annual_rate", err.Error())
	case aprBps < 0:
		addErr("annual_rate", "must not be negative")
	}

	if raw.DueDay < 1 || raw.DueDay > 31 {
		addErr("due_day", "must be between 1 and 31")
	}

	minPayment := int64(-1)
	if strings.TrimSpace(raw.MinimumPayment) != "" {
		minPayment, err = parseCents(raw.MinimumPayment)
		switch {
		case err != nil:
			addErr("minimum_payment", err.Error())
		case minPayment < 0:
			addErr("minimum_payment", "must not be negative")
		case balanceOK && aprOK && minPayment > balance+monthlyInterest(balance, aprBps):
			// Flagged, not clamped: a minimum above one period's payoff is a
			// data-entry mistake the user should see and fix.
			addErr("minimum_payment", "exceeds remaining balance plus one month of interest")
		}
	}

	if len(fields) > 0 {
		return Debt{}, apperrors.WithFields(apperrors.ErrValidation, fields...)
	}

	if minPayment < 0 {
		minPayment, err = deriveMinPayment(category, balance, aprBps, raw.RemainingTermMonths)
		if err != nil {
			return Debt{}, err
		}
	}

	return Debt{
		ID:              raw.ID,
		Name:            name,
		Category:        category,
		OriginalCents:   original,
		BalanceCents:    balance,
		APRBps:          aprBps,
		MinPaymentCents: minPayment,
		DueDay:          raw.DueDay,
	}, nil
}

// deriveMinPayment computes a default minimum payment when none was entered.
// Revolving debts use a percentage-of-balance heuristic; installment-type
// debts need a remaining term to amortize over.
func deriveMinPayment(category Category, balanceCents, aprBps int64, termMonths int) (int64, error) {
	if category.Revolving() {
		min := int64(math.Round(float64(balanceCents) * revolvingMinPaymentPct))
		if min < revolvingMinPaymentFloor {
			min = revolvingMinPaymentFloor
		}
		if min > balanceCents {
			min = balanceCents
		}
		return min, nil
	}

	if termMonths > 0 {
		principal := (balanceCents + int64(termMonths) - 1) / int64(termMonths)
		return principal + monthlyInterest(balanceCents, aprBps), nil
	}

	return 0, apperrors.WithFields(apperrors.ErrMissingRequiredField,
		apperrors.FieldError{Field: "minimum_payment", Reason: "required for non-revolving debts without a remaining term"})
}

// parseCents parses a user-entered decimal amount into integer cents,
// tolerating thousands separators.
func parseCents(s string) (int64, error) {
	v, err := parseDecimal(s)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(v * 100)), nil
}

// parseBps parses a user-entered percentage into basis points.
func parseBps(s string) (int64, error) {
	v, err := parseDecimal(s)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(v * 100)), nil
}

func parseDecimal(s string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', '_', ' ', ' ':
			return -1
		}
		return r
	}, strings.TrimSpace(s))

	if cleaned == "" {
		return 0, errDecimalRequired
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errDecimalInvalid
	}
	return v, nil
}

type decimalError string

func (e decimalError) Error() string { return string(e) }

const (
	errDecimalRequired = decimalError("is required")
	errDecimalInvalid  = decimalError("is not a valid number")
)
