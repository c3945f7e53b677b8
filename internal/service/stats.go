package service

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sheba-admin/internal/repository"
)

// CompletionRate is completed/total as a percentage rounded to two decimals.
// It is 0 when total is 0.
func CompletionRate(completed, total int64) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(completed).
		Div(decimal.NewFromInt(total)).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		InexactFloat64()
}

func where(query string, args ...interface{}) repository.Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where(query, args...)
	}
}

func sum(counts map[string]int64) int64 {
	var n int64
	for _, c := range counts {
		n += c
	}
	return n
}
