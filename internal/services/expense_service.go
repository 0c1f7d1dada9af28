package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "spendbook/internal/errors"
	"spendbook/internal/models"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// Add persists a new expense for a user.
func (s *expenseService) Add(
	userID uint,
	title, description string,
	amount decimal.Decimal,
	date time.Time,
	category, paymentMethod string,
	isPinned bool,
	expenseType models.ExpenseType,
) (*models.Expense, error) {
	if amount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	if date.IsZero() {
		date = time.Now()
	}
	if expenseType == "" {
		expenseType = models.ExpenseTypePersonal
	}

	expense := &models.Expense{
		UserID:        userID,
		Title:         title,
		Description:   description,
		Amount:        amount,
		Date:          dateOnly(date),
		Category:      category,
		PaymentMethod: paymentMethod,
		IsPinned:      isPinned,
		ExpenseType:   expenseType,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// GetAll returns every expense in the store's natural order.
func (s *expenseService) GetAll() ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.db.Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// GetByUser returns all expenses owned by a user.
func (s *expenseService) GetByUser(userID uint) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.db.Where("user_id = ?", userID).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// GetByID retrieves an expense by ID.
func (s *expenseService) GetByID(id uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// Update overwrites description, amount, category, date, and payment method.
// Unlike recurring bills this is a full replace: every one of these fields is
// taken from the payload, present or not.
func (s *expenseService) Update(
	id uint,
	description string,
	amount decimal.Decimal,
	category string,
	date time.Time,
	paymentMethod string,
) (*models.Expense, error) {
	expense, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}

	updates := map[string]interface{}{
		"description":    description,
		"amount":         amount,
		"category":       category,
		"date":           dateOnly(date),
		"payment_method": paymentMethod,
	}
	if err := s.db.Model(expense).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// Delete removes an expense and its split rows.
func (s *expenseService) Delete(id uint) error {
	expense, err := s.GetByID(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("expense_id = ?", id).Delete(&models.ExpenseSplit{}).Error; err != nil {
			return err
		}
		return tx.Delete(expense).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SearchByKeyword returns expenses whose description or category contains
// the keyword, case-insensitively.
func (s *expenseService) SearchByKeyword(keyword string) ([]models.Expense, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"
	var expenses []models.Expense
	if err := s.db.
		Where("LOWER(description) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// FilterByCategory returns expenses with a case-insensitive exact category match.
func (s *expenseService) FilterByCategory(category string) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.db.
		Where("LOWER(category) = ?", strings.ToLower(category)).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// FilterByPaymentMethod returns expenses with a case-insensitive exact payment method match.
func (s *expenseService) FilterByPaymentMethod(paymentMethod string) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.db.
		Where("LOWER(payment_method) = ?", strings.ToLower(paymentMethod)).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// FilterByDateRange returns expenses dated within [start, end], inclusive on
// both bounds.
func (s *expenseService) FilterByDateRange(start, end time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.db.
		Where("date BETWEEN ? AND ?", dateOnly(start), dateOnly(end)).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}
