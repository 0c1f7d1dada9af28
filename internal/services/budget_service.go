package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "spendbook/internal/errors"
	"spendbook/internal/models"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// Create creates a new budget for an existing user.
func (s *budgetService) Create(
	userID uint,
	category string,
	limitAmount decimal.Decimal,
	startDate, endDate time.Time,
) (*models.Budget, error) {
	// Verify the user exists before attaching a budget to them
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrUserNotFound
	}

	startDate = dateOnly(startDate)
	endDate = dateOnly(endDate)
	if startDate.After(endDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "start date must not be after end date")
	}

	budget := &models.Budget{
		UserID:      userID,
		Category:    category,
		LimitAmount: limitAmount,
		StartDate:   startDate,
		EndDate:     endDate,
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// GetAll returns every budget.
func (s *budgetService) GetAll() ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// GetByUser returns all budgets owned by a user.
func (s *budgetService) GetByUser(userID uint) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.Where("user_id = ?", userID).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// GetByID retrieves a budget by ID.
func (s *budgetService) GetByID(id uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.First(&budget, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// Update overwrites category, limit amount, and the date range.
func (s *budgetService) Update(
	id uint,
	category string,
	limitAmount decimal.Decimal,
	startDate, endDate time.Time,
) (*models.Budget, error) {
	budget, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	startDate = dateOnly(startDate)
	endDate = dateOnly(endDate)
	if startDate.After(endDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "start date must not be after end date")
	}

	updates := map[string]interface{}{
		"category":     category,
		"limit_amount": limitAmount,
		"start_date":   startDate,
		"end_date":     endDate,
	}
	if err := s.db.Model(budget).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// Delete removes a budget.
func (s *budgetService) Delete(id uint) error {
	budget, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetSpending sums the budget owner's expenses that match the budget's
// category (exactly) and fall within its date range, inclusive. A budget
// with no matching expenses has zero spending.
func (s *budgetService) GetSpending(budgetID uint) (decimal.Decimal, error) {
	budget, err := s.GetByID(budgetID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.TotalSpending(budget.UserID, budget.Category, budget.StartDate, budget.EndDate)
}

// GetActiveBudget returns the budget for a user and category whose date
// range contains today, at date precision.
func (s *budgetService) GetActiveBudget(userID uint, category string) (*models.Budget, error) {
	today := dateOnly(time.Now())
	var budget models.Budget
	err := s.db.
		Where("user_id = ? AND category = ? AND start_date <= ? AND end_date >= ?",
			userID, category, today, today).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// TotalSpending aggregates expense amounts for a user and category within
// [start, end] independent of any budget row.
func (s *budgetService) TotalSpending(userID uint, category string, start, end time.Time) (decimal.Decimal, error) {
	var expenses []models.Expense
	err := s.db.
		Where("user_id = ? AND category = ? AND date BETWEEN ? AND ?",
			userID, category, dateOnly(start), dateOnly(end)).
		Find(&expenses).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total, nil
}
