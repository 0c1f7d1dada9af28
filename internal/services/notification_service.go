package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "spendbook/internal/errors"
	"spendbook/internal/logger"
	"spendbook/internal/models"
)

// notificationService handles notification business logic and the daily
// bill-reminder sweep.
type notificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new NotificationServicer.
func NewNotificationService(db *gorm.DB) NotificationServicer {
	return &notificationService{db: db}
}

// Create persists a new unread notification for an existing user.
func (s *notificationService) Create(userID uint, message string) (*models.Notification, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrUserNotFound
	}

	notification := &models.Notification{
		UserID:  userID,
		Message: message,
	}
	if err := s.db.Create(notification).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return notification, nil
}

// GetByUser returns all notifications for a user.
func (s *notificationService) GetByUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := s.db.Where("user_id = ?", userID).Find(&notifications).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return notifications, nil
}

// GetUnreadByUser returns the user's unread notifications.
func (s *notificationService) GetUnreadByUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := s.db.Where("user_id = ? AND is_read = ?", userID, false).Find(&notifications).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return notifications, nil
}

// MarkRead marks one notification as read. Read is terminal; marking an
// already-read notification again is harmless.
func (s *notificationService) MarkRead(id uint) error {
	var notification models.Notification
	if err := s.db.First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(&notification).Update("is_read", true).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// MarkAllRead marks every unread notification for a user as read. Calling
// it with nothing unread is a no-op, not an error.
func (s *notificationService) MarkAllRead(userID uint) error {
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CheckUpcomingBills is the daily reminder sweep. For each of the next 2 and
// 3 days it finds every recurring bill whose due day-of-month equals that
// date's day and creates a reminder notification for the bill's owner.
// Month and year are intentionally not checked, matching the due-day model:
// a bill due on the 31st will also match months without a 31st, and every
// bill fires again each month.
//
// The sweep is idempotent per day: a notification identical to one already
// created today for the same user is skipped, so re-running it cannot
// double-notify. Returns the number of notifications created.
func (s *notificationService) CheckUpcomingBills(today time.Time) (int, error) {
	today = dateOnly(today)
	created := 0

	for daysAhead := 2; daysAhead <= 3; daysAhead++ {
		targetDate := today.AddDate(0, 0, daysAhead)

		var bills []models.RecurringBill
		if err := s.db.Where("day_of_month_due = ?", targetDate.Day()).Find(&bills).Error; err != nil {
			return created, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		for _, bill := range bills {
			message := fmt.Sprintf("Your '%s' bill of %s%s is due in %d days.",
				bill.Name, currencySymbol, bill.Amount.StringFixed(2), daysAhead)

			duplicate, err := s.notifiedToday(bill.UserID, message, today)
			if err != nil {
				return created, err
			}
			if duplicate {
				continue
			}

			notification := &models.Notification{
				UserID:  bill.UserID,
				Message: message,
			}
			if err := s.db.Create(notification).Error; err != nil {
				return created, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			created++
		}
	}

	if created > 0 {
		logger.Get().Infow("bill reminder sweep completed", "notifications_created", created)
	}
	return created, nil
}

// notifiedToday reports whether an identical notification already exists for
// the user since the start of the given day.
func (s *notificationService) notifiedToday(userID uint, message string, today time.Time) (bool, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND message = ? AND created_at >= ?", userID, message, today).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}
