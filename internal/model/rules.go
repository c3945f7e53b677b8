package model

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

func nonNegativeDecimal(value interface{}) error {
	d, ok := value.(*decimal.Decimal)
	if !ok || d == nil {
		return nil
	}
	if d.IsNegative() {
		return errors.New("must not be negative")
	}
	return nil
}

func notBefore(start *Date) validation.RuleFunc {
	return func(value interface{}) error {
		end, ok := value.(*Date)
		if !ok || end == nil || start == nil {
			return nil
		}
		if end.Before(start.Time) {
			return errors.New("must not be before the start date")
		}
		return nil
	}
}

func emptyList() datatypes.JSONSlice[string] {
	return datatypes.JSONSlice[string]{}
}
