package services

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	apperrors "debtwise/internal/errors"
	"debtwise/internal/models"
	"debtwise/internal/pagination"
	"debtwise/internal/planner"
	"debtwise/internal/uuid"
)

// planService handles risk assessment and repayment planning. It loads the
// user's debts and income, hands them to the planner, and persists committed
// plans. All projection math lives in the planner package.
type planService struct {
	db *gorm.DB
}

// NewPlanService creates a new PlanServicer.
func NewPlanService(db *gorm.DB) PlanServicer {
	return &planService{db: db}
}

// AssessRisk computes the user's debt-to-income assessment from their active
// debts and income profile.
func (s *planService) AssessRisk(userID uint) (*planner.RiskAssessment, error) {
	debts, err := s.loadActiveDebts(userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.loadProfile(userID)
	if err != nil {
		return nil, err
	}

	return planner.AssessRisk(debts, profile)
}

// PreviewPlan resolves a plan without persisting anything. When TargetMonths
// is set the budget is derived from the goal; otherwise the explicit budget
// is used as-is.
func (s *planService) PreviewPlan(userID uint, input PlanInput) (*planner.Plan, error) {
	debts, err := s.loadActiveDebts(userID)
	if err != nil {
		return nil, err
	}
	return resolve(debts, input)
}

// CommitPlan resolves and persists a plan. The previously active plan is
// deactivated in the same transaction, so at most one plan per user is
// active at any point.
func (s *planService) CommitPlan(userID uint, input PlanInput) (*models.RepaymentPlan, error) {
	debts, err := s.loadActiveDebts(userID)
	if err != nil {
		return nil, err
	}

	resolved, err := resolve(debts, input)
	if err != nil {
		return nil, err
	}

	order, err := json.Marshal(resolved.PayoffOrder)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	plan := &models.RepaymentPlan{
		UserID:        userID,
		Reference:     uuid.New(),
		Strategy:      resolved.Strategy,
		MonthlyBudget: resolved.MonthlyBudgetCents,
		GoalWeighting: resolved.GoalWeighting,
		Months:        resolved.Months,
		TotalInterest: resolved.TotalInterestCents,
		PayoffOrder:   string(order),
		IsActive:      true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.RepaymentPlan{}).
			Where("user_id = ? AND is_active = ?", userID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(plan).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return plan, nil
}

// GetActivePlan returns the user's currently active plan.
func (s *planService) GetActivePlan(userID uint) (*models.RepaymentPlan, error) {
	var plan models.RepaymentPlan
	err := s.db.Where("user_id = ? AND is_active = ?", userID, true).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &plan, nil
}

// GetPlanHistory returns the user's plans, newest first.
func (s *planService) GetPlanHistory(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.RepaymentPlan], error) {
	page.Defaults()

	base := s.db.Model(&models.RepaymentPlan{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var plans []models.RepaymentPlan
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&plans).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(plans, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// resolve dispatches to the planner: a target payoff time derives the budget,
// otherwise the explicit budget is resolved directly.
func resolve(debts []planner.Debt, input PlanInput) (*planner.Plan, error) {
	if input.TargetMonths > 0 {
		return planner.ResolveForMonths(debts, input.TargetMonths, input.GoalWeighting)
	}
	return planner.ResolvePlan(debts, planner.PlanRequest{
		BudgetCents:   input.BudgetCents,
		GoalWeighting: input.GoalWeighting,
		Strategy:      planner.Strategy(input.Strategy),
	})
}

func (s *planService) loadActiveDebts(userID uint) ([]planner.Debt, error) {
	var debts []models.Debt
	err := s.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("balance ASC").Find(&debts).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return plannerDebts(debts), nil
}

func (s *planService) loadProfile(userID uint) (planner.IncomeProfile, error) {
	var profile models.IncomeProfile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return planner.IncomeProfile{}, apperrors.ErrInsufficientIncomeData
		}
		return planner.IncomeProfile{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return planner.IncomeProfile{
		GrossMonthlyCents:   profile.GrossMonthly,
		NetMonthlyCents:     profile.NetMonthly,
		MonthlyExpenseCents: profile.MonthlyExpense,
	}, nil
}
