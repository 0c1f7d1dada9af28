package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringBill represents a bill that repeats on a fixed day of the month.
// Reminder fields control when the user is notified ahead of the due day.
type RecurringBill struct {
	Base
	UserID             uint            `gorm:"not null;index" json:"user_id"`
	Name               string          `gorm:"not null" json:"name"`
	Amount             decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Category           string          `json:"category"`
	Frequency          string          `json:"frequency"`
	DayOfMonthDue      int             `gorm:"not null" json:"day_of_month_due"`
	NextDueDate        *time.Time      `gorm:"type:date" json:"next_due_date,omitempty"`
	Description        string          `json:"description"`
	ReminderDaysBefore *int            `json:"reminder_days_before,omitempty"`
	ReminderHour       *int            `json:"reminder_hour,omitempty"`
	ReminderMinute     *int            `json:"reminder_minute,omitempty"`
}
