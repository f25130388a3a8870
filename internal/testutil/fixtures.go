package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"debtwise/internal/models"
	"debtwise/internal/planner"
	"debtwise/internal/uuid"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestDebt creates an active credit card debt with the given balance
// and APR (in basis points).
func CreateTestDebt(t *testing.T, db *gorm.DB, userID uint, balance, aprBps int64) *models.Debt {
	t.Helper()

	minPayment := balance / 50 // 2%
	if minPayment < 2500 {
		minPayment = 2500
	}
	if minPayment > balance {
		minPayment = balance
	}

	debt := &models.Debt{
		UserID:         userID,
		Name:           fmt.Sprintf("Test Debt %d", nextID()),
		Category:       planner.CategoryCreditCard,
		OriginalAmount: balance,
		Balance:        balance,
		APRBps:         aprBps,
		MinPayment:     minPayment,
		DueDay:         15,
		IsActive:       balance > 0,
	}
	if err := db.Create(debt).Error; err != nil {
		t.Fatalf("failed to create test debt: %v", err)
	}
	return debt
}

// CreateTestIncomeProfile creates an income profile with the given monthly
// amounts in cents.
func CreateTestIncomeProfile(t *testing.T, db *gorm.DB, userID uint, gross, net, expense int64) *models.IncomeProfile {
	t.Helper()

	profile := &models.IncomeProfile{
		UserID:         userID,
		GrossMonthly:   gross,
		NetMonthly:     net,
		MonthlyExpense: expense,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test income profile: %v", err)
	}
	return profile
}

// CreateTestPlan creates an active repayment plan.
func CreateTestPlan(t *testing.T, db *gorm.DB, userID uint, budget int64) *models.RepaymentPlan {
	t.Helper()

	plan := &models.RepaymentPlan{
		UserID:        userID,
		Reference:     uuid.New(),
		Strategy:      planner.StrategyAvalanche,
		MonthlyBudget: budget,
		GoalWeighting: 50,
		Months:        12,
		TotalInterest: 5000,
		PayoffOrder:   "[]",
		IsActive:      true,
	}
	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("failed to create test plan: %v", err)
	}
	return plan
}
