package services

import (
	"debtwise/internal/models"
	"debtwise/internal/pagination"
	"debtwise/internal/planner"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
	TouchLastLogin(userID uint)
}

// DebtInput carries raw user-entered debt fields. Numeric values stay strings
// until the planner's normalizer has validated them.
type DebtInput struct {
	Name                string
	Category            string
	OriginalAmount      string
	Balance             string
	AnnualRate          string
	MinimumPayment      string
	DueDay              int
	RemainingTermMonths int
}

// DebtServicer defines the contract for debt-record business logic.
type DebtServicer interface {
	CreateDebt(userID uint, input DebtInput) (*models.Debt, error)
	GetUserDebts(userID uint, page pagination.PageRequest, isActive *bool, category *planner.Category) (*pagination.PageResponse[models.Debt], error)
	GetDebtByID(userID, debtID uint) (*models.Debt, error)
	UpdateDebt(userID, debtID uint, input DebtInput) (*models.Debt, error)
	RecordPayment(userID, debtID uint, amountCents int64) (*models.Debt, error)
	DeleteDebt(userID, debtID uint) error
}

// IncomeServicer defines the contract for income-profile business logic.
type IncomeServicer interface {
	UpsertProfile(userID uint, grossCents, netCents, expenseCents int64) (*models.IncomeProfile, error)
	GetProfile(userID uint) (*models.IncomeProfile, error)
}

// PlanInput carries the interactive planning inputs: the payment slider, the
// goal-weighting slider, an optional explicit strategy, and an optional
// target payoff time that derives the payment instead.
type PlanInput struct {
	BudgetCents   int64
	GoalWeighting int
	Strategy      string
	TargetMonths  int
}

// PlanServicer defines the contract for risk assessment and repayment
// planning. Preview is pure computation; Commit persists the plan and
// supersedes the previously active one.
type PlanServicer interface {
	AssessRisk(userID uint) (*planner.RiskAssessment, error)
	PreviewPlan(userID uint, input PlanInput) (*planner.Plan, error)
	CommitPlan(userID uint, input PlanInput) (*models.RepaymentPlan, error)
	GetActivePlan(userID uint) (*models.RepaymentPlan, error)
	GetPlanHistory(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.RepaymentPlan], error)
}

// InsightServicer defines the contract for the AI coaching collaborator.
// The planner has no dependency in the other direction; this consumes its
// serializable outputs only.
type InsightServicer interface {
	CoachingTips(assessment *planner.RiskAssessment, debts []planner.Debt) (string, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
