// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("expense_type", validateExpenseType)
		_ = v.RegisterValidation("bill_frequency", validateBillFrequency)
	}
}

func validateExpenseType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "personal", "professional":
		return true
	}
	return false
}

func validateBillFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "monthly", "weekly", "yearly":
		return true
	}
	return false
}
