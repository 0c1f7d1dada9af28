package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "spendbook/internal/errors"
	"spendbook/internal/models"
)

// recurringBillService handles recurring-bill business logic.
type recurringBillService struct {
	db *gorm.DB
}

// NewRecurringBillService creates a new RecurringBillServicer.
func NewRecurringBillService(db *gorm.DB) RecurringBillServicer {
	return &recurringBillService{db: db}
}

// Create persists a new recurring bill for an existing user.
func (s *recurringBillService) Create(
	userID uint,
	name string,
	amount decimal.Decimal,
	category, frequency string,
	dayOfMonthDue int,
	nextDueDate *time.Time,
	description string,
	reminderDaysBefore, reminderHour, reminderMinute *int,
) (*models.RecurringBill, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrUserNotFound
	}

	if dayOfMonthDue < 1 || dayOfMonthDue > 31 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "day of month due must be between 1 and 31")
	}

	if nextDueDate != nil {
		d := dateOnly(*nextDueDate)
		nextDueDate = &d
	}

	bill := &models.RecurringBill{
		UserID:             userID,
		Name:               name,
		Amount:             amount,
		Category:           category,
		Frequency:          frequency,
		DayOfMonthDue:      dayOfMonthDue,
		NextDueDate:        nextDueDate,
		Description:        description,
		ReminderDaysBefore: reminderDaysBefore,
		ReminderHour:       reminderHour,
		ReminderMinute:     reminderMinute,
	}

	if err := s.db.Create(bill).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bill, nil
}

// GetAll returns every recurring bill.
func (s *recurringBillService) GetAll() ([]models.RecurringBill, error) {
	var bills []models.RecurringBill
	if err := s.db.Find(&bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bills, nil
}

// GetByUser returns all recurring bills owned by a user.
func (s *recurringBillService) GetByUser(userID uint) ([]models.RecurringBill, error) {
	var bills []models.RecurringBill
	if err := s.db.Where("user_id = ?", userID).Find(&bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bills, nil
}

// GetByID retrieves a recurring bill by ID.
func (s *recurringBillService) GetByID(id uint) (*models.RecurringBill, error) {
	var bill models.RecurringBill
	if err := s.db.First(&bill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBillNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &bill, nil
}

// Update applies a partial merge: only the patch's non-nil fields overwrite
// stored values. This is deliberately different from the expense update,
// which replaces all of its fields at once.
func (s *recurringBillService) Update(id uint, patch BillPatch) (*models.RecurringBill, error) {
	bill, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Amount != nil {
		updates["amount"] = *patch.Amount
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Frequency != nil {
		updates["frequency"] = *patch.Frequency
	}
	if patch.DayOfMonthDue != nil {
		if *patch.DayOfMonthDue < 1 || *patch.DayOfMonthDue > 31 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "day of month due must be between 1 and 31")
		}
		updates["day_of_month_due"] = *patch.DayOfMonthDue
	}
	if patch.NextDueDate != nil {
		updates["next_due_date"] = dateOnly(*patch.NextDueDate)
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.ReminderDaysBefore != nil {
		updates["reminder_days_before"] = *patch.ReminderDaysBefore
	}
	if patch.ReminderHour != nil {
		updates["reminder_hour"] = *patch.ReminderHour
	}
	if patch.ReminderMinute != nil {
		updates["reminder_minute"] = *patch.ReminderMinute
	}

	if len(updates) > 0 {
		if err := s.db.Model(bill).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return bill, nil
}

// Delete removes a recurring bill.
func (s *recurringBillService) Delete(id uint) error {
	bill, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(bill).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
