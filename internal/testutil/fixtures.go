package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"spendbook/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	username := fmt.Sprintf("user%d", nextID())
	return CreateTestUserWithName(t, db, username)
}

// CreateTestUserWithName creates a user with the given username.
func CreateTestUserWithName(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestExpense creates an expense for the given user with the given amount.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint, amount decimal.Decimal) *models.Expense {
	t.Helper()
	return CreateTestExpenseInCategory(t, db, userID, amount, "General")
}

// CreateTestExpenseInCategory creates an expense in a specific category, dated today.
func CreateTestExpenseInCategory(t *testing.T, db *gorm.DB, userID uint, amount decimal.Decimal, category string) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:        userID,
		Title:         fmt.Sprintf("Test Expense %d", nextID()),
		Description:   "test expense",
		Amount:        amount,
		Date:          time.Now().UTC().Truncate(24 * time.Hour),
		Category:      category,
		PaymentMethod: "cash",
		ExpenseType:   models.ExpenseTypePersonal,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestBudget creates a budget covering the given date range.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID uint, category string, limit decimal.Decimal, start, end time.Time) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:      userID,
		Category:    category,
		LimitAmount: limit,
		StartDate:   start,
		EndDate:     end,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestGroup creates a group with the given users as members.
func CreateTestGroup(t *testing.T, db *gorm.DB, members ...*models.User) *models.Group {
	t.Helper()

	group := &models.Group{
		Name:        fmt.Sprintf("Test Group %d", nextID()),
		CreatedDate: time.Now().UTC().Truncate(24 * time.Hour),
	}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("failed to create test group: %v", err)
	}
	for _, m := range members {
		if err := db.Model(group).Association("Members").Append(m); err != nil {
			t.Fatalf("failed to add test group member: %v", err)
		}
	}
	return group
}

// CreateTestRecurringBill creates a recurring bill due on the given day of the month.
func CreateTestRecurringBill(t *testing.T, db *gorm.DB, userID uint, amount decimal.Decimal, dayOfMonthDue int) *models.RecurringBill {
	t.Helper()

	bill := &models.RecurringBill{
		UserID:        userID,
		Name:          fmt.Sprintf("Test Bill %d", nextID()),
		Amount:        amount,
		Category:      "Utilities",
		Frequency:     "monthly",
		DayOfMonthDue: dayOfMonthDue,
	}
	if err := db.Create(bill).Error; err != nil {
		t.Fatalf("failed to create test recurring bill: %v", err)
	}
	return bill
}

// CreateTestNotification creates an unread notification for the given user.
func CreateTestNotification(t *testing.T, db *gorm.DB, userID uint, message string) *models.Notification {
	t.Helper()

	notification := &models.Notification{
		UserID:  userID,
		Message: message,
	}
	if err := db.Create(notification).Error; err != nil {
		t.Fatalf("failed to create test notification: %v", err)
	}
	return notification
}
