package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget represents a spending limit for a category within a date range
type Budget struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Category    string          `gorm:"not null" json:"category"`
	LimitAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"limit_amount"`
	StartDate   time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time       `gorm:"type:date;not null" json:"end_date"`
}
