// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// symbolRegex matches exchange asset symbols such as BTC or 1INCH.
var symbolRegex = regexp.MustCompile(`^[A-Z0-9]{2,10}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("risk_tolerance", validateRiskTolerance)
		_ = v.RegisterValidation("asset_symbol", validateAssetSymbol)
	}
}

func validateRiskTolerance(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "LOW", "MEDIUM", "HIGH":
		return true
	}
	return false
}

func validateAssetSymbol(fl validator.FieldLevel) bool {
	return symbolRegex.MatchString(fl.Field().String())
}
