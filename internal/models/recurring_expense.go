package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/types"
	"gorm.io/gorm"
)

// Frequency defines how often a recurring expense is due.
type Frequency string

const (
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyYearly  Frequency = "YEARLY"
)

// Valid reports whether the frequency is one of the allowed values.
func (f Frequency) Valid() bool {
	return f == FrequencyWeekly || f == FrequencyMonthly || f == FrequencyYearly
}

// RecurringExpense represents a recurring financial obligation, e.g. a
// subscription, rent or a bill.
//
// StartDate anchors the schedule: all occurrences are computed from it.
// NextDueDate is the next date the obligation will be materialized into
// an Expense. It is only advanced by the materializer, one period per
// sweep, and is never before the day of the last successful sweep.
type RecurringExpense struct {
	DefaultModel
	CategoryID  uuid.UUID `gorm:"index"`
	Category    Category
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Note        string
	Frequency   Frequency
	StartDate   types.Date
	NextDueDate types.Date `gorm:"index"`
}

// BeforeSave validates the frequency and defaults the schedule dates.
//
// An empty frequency is not checked here since partial updates only
// carry the changed fields. BeforeCreate requires it to be set.
func (r *RecurringExpense) BeforeSave(_ *gorm.DB) error {
	r.Note = strings.TrimSpace(r.Note)

	if r.Frequency != "" && !r.Frequency.Valid() {
		return ErrFrequencyInvalid
	}

	if r.StartDate.IsZero() {
		r.StartDate = types.DateOf(time.Now())
	}

	if r.NextDueDate.IsZero() {
		r.NextDueDate = r.StartDate
	}

	return nil
}

// BeforeCreate generates the UUID and requires a frequency.
func (r *RecurringExpense) BeforeCreate(tx *gorm.DB) error {
	if !r.Frequency.Valid() {
		return ErrFrequencyInvalid
	}

	return r.DefaultModel.BeforeCreate(tx)
}

// BeforeDelete detaches all expenses that were materialized from this
// recurring expense. They keep existing, only the back-reference is
// cleared.
func (r *RecurringExpense) BeforeDelete(tx *gorm.DB) error {
	return tx.Model(&Expense{}).
		Where("recurring_expense_id = ?", r.ID).
		UpdateColumn("recurring_expense_id", nil).Error
}
