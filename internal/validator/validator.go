// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"debtwise/internal/planner"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("debt_category", validateDebtCategory)
		_ = v.RegisterValidation("repayment_strategy", validateRepaymentStrategy)
	}
}

func validateDebtCategory(fl validator.FieldLevel) bool {
	return planner.Category(fl.Field().String()).Valid()
}

func validateRepaymentStrategy(fl validator.FieldLevel) bool {
	return planner.Strategy(fl.Field().String()).Valid()
}
