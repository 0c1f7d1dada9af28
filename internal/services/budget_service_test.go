package services

import (
	"testing"
	"time"

	"spendbook/internal/testutil"

	"github.com/shopspring/decimal"
)

func TestCreateBudget(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
		budget, err := svc.Create(user.ID, "Food", decimal.NewFromInt(200), start, end)
		testutil.AssertNoError(t, err)

		if budget.ID == 0 {
			t.Fatal("expected non-zero budget ID")
		}
		if !budget.LimitAmount.Equal(decimal.NewFromInt(200)) {
			t.Errorf("expected limit 200, got %s", budget.LimitAmount)
		}
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		_, err := svc.Create(99999, "Food", decimal.NewFromInt(100), time.Now(), time.Now())
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("start_after_end", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		start := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		_, err := svc.Create(user.ID, "Food", decimal.NewFromInt(100), start, end)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestBudgetSpending(t *testing.T) {
	t.Run("sums_matching_expenses_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		budgetSvc := NewBudgetService(db)
		expenseSvc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
		budget, err := budgetSvc.Create(user.ID, "Food", decimal.NewFromInt(200), start, end)
		testutil.AssertNoError(t, err)

		day := func(m time.Month, d int) time.Time { return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC) }

		_, err = expenseSvc.Add(user.ID, "big shop", "", decimal.NewFromInt(120), day(time.March, 10), "Food", "card", false, "")
		testutil.AssertNoError(t, err)
		_, err = expenseSvc.Add(user.ID, "small shop", "", decimal.NewFromInt(50), day(time.March, 20), "Food", "cash", false, "")
		testutil.AssertNoError(t, err)
		// Wrong category, inside range.
		_, err = expenseSvc.Add(user.ID, "bus pass", "", decimal.NewFromInt(40), day(time.March, 15), "Transport", "card", false, "")
		testutil.AssertNoError(t, err)
		// Right category, outside range.
		_, err = expenseSvc.Add(user.ID, "april shop", "", decimal.NewFromInt(30), day(time.April, 2), "Food", "card", false, "")
		testutil.AssertNoError(t, err)

		spending, err := budgetSvc.GetSpending(budget.ID)
		testutil.AssertNoError(t, err)
		if !spending.Equal(decimal.NewFromInt(170)) {
			t.Errorf("expected spending 170, got %s", spending)
		}
	})

	t.Run("no_expenses_is_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		budget, err := svc.Create(user.ID, "Empty", decimal.NewFromInt(100),
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
		testutil.AssertNoError(t, err)

		spending, err := svc.GetSpending(budget.ID)
		testutil.AssertNoError(t, err)
		if !spending.IsZero() {
			t.Errorf("expected zero spending, got %s", spending)
		}
	})

	t.Run("boundary_dates_included", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		budgetSvc := NewBudgetService(db)
		expenseSvc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
		budget, err := budgetSvc.Create(user.ID, "Rent", decimal.NewFromInt(1000), start, end)
		testutil.AssertNoError(t, err)

		_, err = expenseSvc.Add(user.ID, "first", "", decimal.NewFromInt(500), start, "Rent", "transfer", false, "")
		testutil.AssertNoError(t, err)
		_, err = expenseSvc.Add(user.ID, "last", "", decimal.NewFromInt(250), end, "Rent", "transfer", false, "")
		testutil.AssertNoError(t, err)

		spending, err := budgetSvc.GetSpending(budget.ID)
		testutil.AssertNoError(t, err)
		if !spending.Equal(decimal.NewFromInt(750)) {
			t.Errorf("expected spending 750, got %s", spending)
		}
	})
}

func TestGetActiveBudget(t *testing.T) {
	t.Run("range_containing_today", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		now := time.Now().UTC()
		_, err := svc.Create(user.ID, "Active", decimal.NewFromInt(100), now.AddDate(0, 0, -5), now.AddDate(0, 0, 5))
		testutil.AssertNoError(t, err)
		// Expired budget for the same category.
		_, err = svc.Create(user.ID, "Active", decimal.NewFromInt(50), now.AddDate(0, -2, 0), now.AddDate(0, -1, 0))
		testutil.AssertNoError(t, err)

		budget, err := svc.GetActiveBudget(user.ID, "Active")
		testutil.AssertNoError(t, err)
		if !budget.LimitAmount.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected the current budget (limit 100), got limit %s", budget.LimitAmount)
		}
	})

	t.Run("none_active", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		now := time.Now().UTC()
		_, err := svc.Create(user.ID, "Old", decimal.NewFromInt(50), now.AddDate(0, -2, 0), now.AddDate(0, -1, 0))
		testutil.AssertNoError(t, err)

		_, err = svc.GetActiveBudget(user.ID, "Old")
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestUpdateAndDeleteBudget(t *testing.T) {
	t.Run("update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		budget, err := svc.Create(user.ID, "Food", decimal.NewFromInt(100),
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
		testutil.AssertNoError(t, err)

		updated, err := svc.Update(budget.ID, "Dining", decimal.NewFromInt(150),
			time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC))
		testutil.AssertNoError(t, err)
		if updated.Category != "Dining" {
			t.Errorf("expected category Dining, got %s", updated.Category)
		}
		if !updated.LimitAmount.Equal(decimal.NewFromInt(150)) {
			t.Errorf("expected limit 150, got %s", updated.LimitAmount)
		}
	})

	t.Run("delete_then_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		budget, err := svc.Create(user.ID, "Temp", decimal.NewFromInt(10),
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.Delete(budget.ID))
		_, err = svc.GetByID(budget.ID)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}
