package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/types"
	"gorm.io/gorm"
)

// Budget represents a spending limit for one category in one month.
type Budget struct {
	DefaultModel
	CategoryID uuid.UUID `gorm:"uniqueIndex:budget_category_month"`
	Category   Category
	Month      types.Month     `gorm:"uniqueIndex:budget_category_month"`
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (b *Budget) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(b.Amount) {
		return ErrBudgetAmountNotPositive
	}

	return nil
}
