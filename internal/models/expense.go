package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseType distinguishes personal from professional expenses
type ExpenseType string

const (
	ExpenseTypePersonal     ExpenseType = "personal"
	ExpenseTypeProfessional ExpenseType = "professional"
)

// Expense represents a single recorded expense. An expense belongs to one
// user and may optionally be linked to a group, in which case its cost is
// divided among the group's members via ExpenseSplit rows.
type Expense struct {
	Base
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	GroupID       *uint           `gorm:"index" json:"group_id,omitempty"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Date          time.Time       `gorm:"type:date;not null" json:"date"`
	Category      string          `gorm:"index" json:"category"`
	PaymentMethod string          `json:"payment_method"`
	IsPinned      bool            `gorm:"default:false" json:"is_pinned"`
	ExpenseType   ExpenseType     `gorm:"default:personal" json:"expense_type"`

	// Relationships
	Splits []ExpenseSplit `gorm:"foreignKey:ExpenseID;constraint:OnDelete:CASCADE" json:"splits,omitempty"`
}

// ExpenseSplit maps one member's share of a group expense.
type ExpenseSplit struct {
	Base
	ExpenseID uint            `gorm:"not null;uniqueIndex:idx_expense_user" json:"expense_id"`
	UserID    uint            `gorm:"not null;uniqueIndex:idx_expense_user" json:"user_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
}
