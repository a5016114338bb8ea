package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/types"
	"gorm.io/gorm"
)

// Expense represents a single realized expense.
type Expense struct {
	DefaultModel
	CategoryID uuid.UUID `gorm:"index"`
	Category   Category
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Date       types.Date
	Note       string

	// RecurringExpenseID links an expense to the recurring expense that
	// materialized it. It is nil for expenses entered directly.
	RecurringExpenseID *uuid.UUID
	RecurringExpense   *RecurringExpense
}

// BeforeSave trims whitespace and defaults the date to today.
func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Note = strings.TrimSpace(e.Note)

	if e.Date.IsZero() {
		e.Date = types.DateOf(time.Now())
	}

	return nil
}

// CategoryTotal is the sum of all expenses for one category in a date range.
type CategoryTotal struct {
	CategoryID uuid.UUID       `json:"categoryId"` // ID of the category
	Total      decimal.Decimal `json:"total"`      // Sum of all expense amounts
}

// ExpensesSum returns the sum of all expenses with from <= date <= to.
func ExpensesSum(from, to types.Date) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := DB.Table("expenses").
		Where("date(date) >= date(?) AND date(date) <= date(?)", from, to).
		Where("deleted_at IS NULL").
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return sum.Decimal, nil
}

// CategorySum returns the sum of all expenses for one category with
// from <= date <= to.
func CategorySum(categoryID uuid.UUID, from, to types.Date) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := DB.Table("expenses").
		Where("category_id = ?", categoryID).
		Where("date(date) >= date(?) AND date(date) <= date(?)", from, to).
		Where("deleted_at IS NULL").
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return sum.Decimal, nil
}

// CategoryTotals returns the expense sums per category with from <= date <= to.
func CategoryTotals(from, to types.Date) ([]CategoryTotal, error) {
	totals := make([]CategoryTotal, 0)

	err := DB.Table("expenses").
		Where("date(date) >= date(?) AND date(date) <= date(?)", from, to).
		Where("deleted_at IS NULL").
		Select("category_id, SUM(amount) AS total").
		Group("category_id").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	return totals, nil
}
