package services

import (
	"encoding/json"
	"testing"

	"debtwise/internal/models"
	"debtwise/internal/pagination"
	"debtwise/internal/planner"
	"debtwise/internal/testutil"
)

func TestAssessRisk(t *testing.T) {
	t.Run("computes_from_stored_data", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		user := testutil.CreateTestUser(t, db)

		// 2% minimum on 10,000.00 is 200.00; against 500.00 gross that is 40%.
		testutil.CreateTestDebt(t, db, user.ID, 1000000, 1999)
		testutil.CreateTestIncomeProfile(t, db, user.ID, 50000, 40000, 10000)

		assessment, err := svc.AssessRisk(user.ID)
		testutil.AssertNoError(t, err)
		if assessment.RatioPct != 40.0 {
			t.Errorf("expected ratio 40.0, got %v", assessment.RatioPct)
		}
		if assessment.Tier != planner.TierSafe {
			t.Errorf("expected safe tier, got %s", assessment.Tier)
		}
	})

	t.Run("ignores_retired_debts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestDebt(t, db, user.ID, 1000000, 1999)
		retired := testutil.CreateTestDebt(t, db, user.ID, 500000, 1999)
		db.Model(retired).Updates(map[string]interface{}{"balance": 0, "is_active": false})
		testutil.CreateTestIncomeProfile(t, db, user.ID, 50000, 40000, 10000)

		assessment, err := svc.AssessRisk(user.ID)
		testutil.AssertNoError(t, err)
		if assessment.TotalMinPaymentCents != 20000 {
			t.Errorf("expected min payment total 20000, got %d", assessment.TotalMinPaymentCents)
		}
	})

	t.Run("no_income_profile", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestDebt(t, db, user.ID, 1000000, 1999)

		_, err := svc.AssessRisk(user.ID)
		testutil.AssertAppError(t, err, "INSUFFICIENT_INCOME_DATA")
	})
}

func TestPreviewPlan(t *testing.T) {
	t.Run("resolves_without_persisting", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestDebt(t, db, user.ID, 1000000, 1999)

		plan, err := svc.PreviewPlan(user.ID, PlanInput{BudgetCents: 100000, GoalWeighting: 80})
		testutil.AssertNoError(t, err)
		if plan.Strategy != planner.StrategyAvalanche {
			t.Errorf("expected avalanche for weighting 80, got %s", plan.Strategy)
		}
		if plan.Months == 0 {
			t.Error("expected a non-empty schedule")
		}

		var count int64
		db.Model(&models.RepaymentPlan{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no persisted plans, found %d", count)
		}
	})

	t.Run("target_months_derives_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestDebt(t, db, user.ID, 1000000, 1999)

		plan, err := svc.PreviewPlan(user.ID, PlanInput{TargetMonths: 12, GoalWeighting: 50})
		testutil.AssertNoError(t, err)
		if plan.Months > 12 {
			t.Errorf("expected payoff within 12 months, got %d", plan.Months)
		}
	})

	t.Run("no_active_debts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.PreviewPlan(user.ID, PlanInput{BudgetCents: 100000, GoalWeighting: 50})
		testutil.AssertAppError(t, err, "NO_ACTIVE_DEBTS")
	})

	t.Run("infeasible_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestDebt(t, db, user.ID, 1000000, 1999)

		_, err := svc.PreviewPlan(user.ID, PlanInput{BudgetCents: 1, GoalWeighting: 50})
		testutil.AssertAppError(t, err, "INFEASIBLE_BUDGET")
	})
}

func TestCommitPlan(t *testing.T) {
	t.Run("persists_with_reference", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		user := testutil.CreateTestUser(t, db)
		debt := testutil.CreateTestDebt(t, db, user.ID, 1000000, 1999)

		plan, err := svc.CommitPlan(user.ID, PlanInput{BudgetCents: 100000, GoalWeighting: 80})
		testutil.AssertNoError(t, err)
		if plan.ID == 0 {
			t.Fatal("expected non-zero plan ID")
		}
		if plan.Reference == "" {
			t.Error("expected a plan reference")
		}
		if !plan.IsActive {
			t.Error("expected committed plan to be active")
		}

		var order []string
		if err := json.Unmarshal([]byte(plan.PayoffOrder), &order); err != nil {
			t.Fatalf("payoff order is not valid JSON: %v", err)
		}
		if len(order) != 1 {
			t.Fatalf("expected 1 debt in payoff order, got %d", len(order))
		}
		_ = debt
	})

	t.Run("supersedes_previous_active", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestDebt(t, db, user.ID, 1000000, 1999)

		first, err := svc.CommitPlan(user.ID, PlanInput{BudgetCents: 100000, GoalWeighting: 80})
		testutil.AssertNoError(t, err)

		second, err := svc.CommitPlan(user.ID, PlanInput{BudgetCents: 150000, GoalWeighting: 20})
		testutil.AssertNoError(t, err)

		var activeCount int64
		db.Model(&models.RepaymentPlan{}).
			Where("user_id = ? AND is_active = ?", user.ID, true).
			Count(&activeCount)
		if activeCount != 1 {
			t.Fatalf("expected exactly one active plan, got %d", activeCount)
		}

		active, err := svc.GetActivePlan(user.ID)
		testutil.AssertNoError(t, err)
		if active.ID != second.ID {
			t.Errorf("expected plan %d active, got %d", second.ID, active.ID)
		}

		var superseded models.RepaymentPlan
		db.First(&superseded, first.ID)
		if superseded.IsActive {
			t.Error("expected first plan to be deactivated")
		}
	})

	t.Run("does_not_touch_other_users", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		testutil.CreateTestDebt(t, db, user.ID, 1000000, 1999)
		otherPlan := testutil.CreateTestPlan(t, db, other.ID, 100000)

		_, err := svc.CommitPlan(user.ID, PlanInput{BudgetCents: 100000, GoalWeighting: 50})
		testutil.AssertNoError(t, err)

		var fresh models.RepaymentPlan
		db.First(&fresh, otherPlan.ID)
		if !fresh.IsActive {
			t.Error("expected other user's plan to stay active")
		}
	})

	t.Run("failed_resolution_persists_nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestDebt(t, db, user.ID, 1000000, 1999)
		existing := testutil.CreateTestPlan(t, db, user.ID, 100000)

		_, err := svc.CommitPlan(user.ID, PlanInput{BudgetCents: 1, GoalWeighting: 50})
		testutil.AssertAppError(t, err, "INFEASIBLE_BUDGET")

		active, err := svc.GetActivePlan(user.ID)
		testutil.AssertNoError(t, err)
		if active.ID != existing.ID {
			t.Errorf("expected existing plan %d to stay active, got %d", existing.ID, active.ID)
		}
	})
}

func TestGetActivePlan(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetActivePlan(user.ID)
		testutil.AssertAppError(t, err, "PLAN_NOT_FOUND")
	})
}

func TestGetPlanHistory(t *testing.T) {
	t.Run("returns_all_plans", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestDebt(t, db, user.ID, 1000000, 1999)

		_, err := svc.CommitPlan(user.ID, PlanInput{BudgetCents: 100000, GoalWeighting: 80})
		testutil.AssertNoError(t, err)
		_, err = svc.CommitPlan(user.ID, PlanInput{BudgetCents: 150000, GoalWeighting: 20})
		testutil.AssertNoError(t, err)

		resp, err := svc.GetPlanHistory(user.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if resp.TotalItems != 2 {
			t.Errorf("expected 2 plans in history, got %d", resp.TotalItems)
		}
	})
}
