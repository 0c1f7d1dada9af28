package services

import (
	"time"

	"github.com/shopspring/decimal"

	"spendbook/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, password string) (*models.User, error)
	AttemptLogin(username, password string) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	UpdateUser(id uint, username string) (*models.User, error)
	DeleteUser(id uint) error
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	Add(userID uint, title, description string, amount decimal.Decimal, date time.Time, category, paymentMethod string, isPinned bool, expenseType models.ExpenseType) (*models.Expense, error)
	GetAll() ([]models.Expense, error)
	GetByUser(userID uint) ([]models.Expense, error)
	GetByID(id uint) (*models.Expense, error)
	Update(id uint, description string, amount decimal.Decimal, category string, date time.Time, paymentMethod string) (*models.Expense, error)
	Delete(id uint) error
	SearchByKeyword(keyword string) ([]models.Expense, error)
	FilterByCategory(category string) ([]models.Expense, error)
	FilterByPaymentMethod(paymentMethod string) ([]models.Expense, error)
	FilterByDateRange(start, end time.Time) ([]models.Expense, error)
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	Create(userID uint, category string, limitAmount decimal.Decimal, startDate, endDate time.Time) (*models.Budget, error)
	GetAll() ([]models.Budget, error)
	GetByUser(userID uint) ([]models.Budget, error)
	GetByID(id uint) (*models.Budget, error)
	Update(id uint, category string, limitAmount decimal.Decimal, startDate, endDate time.Time) (*models.Budget, error)
	Delete(id uint) error
	GetSpending(budgetID uint) (decimal.Decimal, error)
	GetActiveBudget(userID uint, category string) (*models.Budget, error)
	TotalSpending(userID uint, category string, start, end time.Time) (decimal.Decimal, error)
}

// GroupSummary aggregates a group's expense totals. Currency values are
// pre-formatted strings with the currency symbol prefix.
type GroupSummary struct {
	GroupID       uint              `json:"group_id"`
	GroupName     string            `json:"group_name"`
	TotalExpenses string            `json:"total_expenses"`
	MemberCount   int               `json:"member_count"`
	ExpenseCount  int               `json:"expense_count"`
	MemberShares  map[string]string `json:"member_shares"`
}

// GroupServicer defines the contract for group-related business logic.
// Every operation except Create and GetUserGroups is membership-gated:
// a non-member actor gets ErrNotGroupMember.
type GroupServicer interface {
	Create(name, description string, creatorID uint) (*models.Group, error)
	GetUserGroups(userID uint) ([]models.Group, error)
	GetByID(groupID, actorID uint) (*models.Group, error)
	AddMembers(groupID uint, userIDs []uint, actorID uint) (*models.Group, error)
	AddExpense(groupID, actorID uint, title, description string, amount decimal.Decimal, date time.Time, category, paymentMethod string, splits map[uint]decimal.Decimal) (*models.Expense, error)
	Summary(groupID, actorID uint) (*GroupSummary, error)
	Update(groupID, actorID uint, name, description string) (*models.Group, error)
	Delete(groupID, actorID uint) error
}

// BillPatch holds the optional fields of a recurring bill update. Only
// non-nil fields overwrite the stored values (merge semantics, unlike the
// full-replace update on expenses).
type BillPatch struct {
	Name               *string
	Amount             *decimal.Decimal
	Category           *string
	Frequency          *string
	DayOfMonthDue      *int
	NextDueDate        *time.Time
	Description        *string
	ReminderDaysBefore *int
	ReminderHour       *int
	ReminderMinute     *int
}

// RecurringBillServicer defines the contract for recurring-bill business logic.
type RecurringBillServicer interface {
	Create(userID uint, name string, amount decimal.Decimal, category, frequency string, dayOfMonthDue int, nextDueDate *time.Time, description string, reminderDaysBefore, reminderHour, reminderMinute *int) (*models.RecurringBill, error)
	GetAll() ([]models.RecurringBill, error)
	GetByUser(userID uint) ([]models.RecurringBill, error)
	GetByID(id uint) (*models.RecurringBill, error)
	Update(id uint, patch BillPatch) (*models.RecurringBill, error)
	Delete(id uint) error
}

// NotificationServicer defines the contract for notification business logic,
// including the daily bill-reminder sweep.
type NotificationServicer interface {
	Create(userID uint, message string) (*models.Notification, error)
	GetByUser(userID uint) ([]models.Notification, error)
	GetUnreadByUser(userID uint) ([]models.Notification, error)
	MarkRead(id uint) error
	MarkAllRead(userID uint) error
	CheckUpcomingBills(today time.Time) (int, error)
}
