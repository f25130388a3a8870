// Package errors provides custom error types for the Debtwise API.
// All service-layer and planner errors use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// FieldError identifies a single offending input field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
// Validation errors additionally carry the list of fields at fault.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	Fields     []FieldError `json:"fields,omitempty"`
	StatusCode int          `json:"-"`
	Internal   error        `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WithFields creates a new AppError from a sentinel carrying per-field detail.
func WithFields(sentinel *AppError, fields ...FieldError) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Fields:     fields,
		StatusCode: sentinel.StatusCode,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Debt record errors.
var (
	ErrDebtNotFound         = &AppError{Code: "DEBT_NOT_FOUND", Message: "Debt not found", StatusCode: http.StatusNotFound}
	ErrValidation           = &AppError{Code: "VALIDATION_ERROR", Message: "One or more fields are invalid", StatusCode: http.StatusBadRequest}
	ErrMissingRequiredField = &AppError{Code: "MISSING_REQUIRED_FIELD", Message: "A required field is missing and no default applies", StatusCode: http.StatusBadRequest}
	ErrPaymentExceedsDebt   = &AppError{Code: "PAYMENT_EXCEEDS_DEBT", Message: "Payment is larger than the remaining balance", StatusCode: http.StatusBadRequest}
)

// Income profile errors.
var (
	ErrIncomeProfileNotFound = &AppError{Code: "INCOME_PROFILE_NOT_FOUND", Message: "Income profile not found", StatusCode: http.StatusNotFound}
)

// Risk and planning errors. These are recoverable conditions the caller can
// act on, so each carries a specific, user-actionable message.
var (
	ErrInsufficientIncomeData = &AppError{Code: "INSUFFICIENT_INCOME_DATA", Message: "No income data available to assess risk", StatusCode: http.StatusUnprocessableEntity}
	ErrInfeasibleBudget       = &AppError{Code: "INFEASIBLE_BUDGET", Message: "Monthly budget is below the sum of minimum payments", StatusCode: http.StatusUnprocessableEntity}
	ErrPlanDoesNotConverge    = &AppError{Code: "PLAN_DOES_NOT_CONVERGE", Message: "Budget is too small to pay off these debts within 50 years", StatusCode: http.StatusUnprocessableEntity}
	ErrNoActiveDebts          = &AppError{Code: "NO_ACTIVE_DEBTS", Message: "There are no active debts to plan for", StatusCode: http.StatusUnprocessableEntity}
	ErrPlanNotFound           = &AppError{Code: "PLAN_NOT_FOUND", Message: "Repayment plan not found", StatusCode: http.StatusNotFound}
)

// Insight errors.
var (
	ErrInsightUnavailable = &AppError{Code: "INSIGHT_UNAVAILABLE", Message: "Coaching insights are not available right now", StatusCode: http.StatusServiceUnavailable}
)
