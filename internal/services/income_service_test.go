package services

import (
	"testing"

	"debtwise/internal/testutil"
)

func TestUpsertProfile(t *testing.T) {
	t.Run("creates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)

		profile, err := svc.UpsertProfile(user.ID, 500000, 400000, 150000)
		testutil.AssertNoError(t, err)
		if profile.ID == 0 {
			t.Fatal("expected non-zero profile ID")
		}
		if profile.GrossMonthly != 500000 {
			t.Errorf("expected gross 500000, got %d", profile.GrossMonthly)
		}
	})

	t.Run("replaces_existing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)

		first, err := svc.UpsertProfile(user.ID, 500000, 400000, 150000)
		testutil.AssertNoError(t, err)

		second, err := svc.UpsertProfile(user.ID, 600000, 480000, 150000)
		testutil.AssertNoError(t, err)

		if second.ID != first.ID {
			t.Errorf("expected upsert to reuse row %d, got %d", first.ID, second.ID)
		}
		if second.GrossMonthly != 600000 {
			t.Errorf("expected gross 600000, got %d", second.GrossMonthly)
		}
	})

	t.Run("net_above_gross_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpsertProfile(user.ID, 400000, 500000, 100000)
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
		testutil.AssertFieldError(t, err, "net_monthly")
	})

	t.Run("net_only_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)

		profile, err := svc.UpsertProfile(user.ID, 0, 400000, 100000)
		testutil.AssertNoError(t, err)
		if profile.NetMonthly != 400000 {
			t.Errorf("expected net 400000, got %d", profile.NetMonthly)
		}
	})

	t.Run("negative_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpsertProfile(user.ID, -1, 0, 0)
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
		testutil.AssertFieldError(t, err, "gross_monthly")
	})
}

func TestGetProfile(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestIncomeProfile(t, db, user.ID, 500000, 400000, 150000)

		profile, err := svc.GetProfile(user.ID)
		testutil.AssertNoError(t, err)
		if profile.MonthlyExpense != 150000 {
			t.Errorf("expected expense 150000, got %d", profile.MonthlyExpense)
		}
	})

	t.Run("missing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetProfile(user.ID)
		testutil.AssertAppError(t, err, "INCOME_PROFILE_NOT_FOUND")
	})
}
