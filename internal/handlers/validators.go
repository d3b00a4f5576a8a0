package handlers

import (
	"reflect"
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// maxMoneyScale matches the NUMERIC(20,4) money columns.
const maxMoneyScale = 4

// RegisterValidators installs the money and date rules on gin's validator engine.
// Decimals are validated through their string form.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	if err := v.RegisterValidation("money", validateMoney); err != nil {
		return err
	}
	if err := v.RegisterValidation("nonneg_money", validateNonNegativeMoney); err != nil {
		return err
	}
	return v.RegisterValidation("doc_date", validateDocDate)
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func parseMoney(fl validator.FieldLevel) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil || d.Exponent() < -maxMoneyScale {
		return decimal.Decimal{}, false
	}
	return d, true
}

// validateMoney accepts strictly positive amounts with at most four decimals.
func validateMoney(fl validator.FieldLevel) bool {
	d, ok := parseMoney(fl)
	return ok && d.IsPositive()
}

// validateNonNegativeMoney accepts zero or positive amounts with at most four decimals.
func validateNonNegativeMoney(fl validator.FieldLevel) bool {
	d, ok := parseMoney(fl)
	return ok && !d.IsNegative()
}

func validateDocDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(dto.DateLayout, fl.Field().String())
	return err == nil
}
