package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/types"
	"gorm.io/gorm"
)

// Income represents money received, e.g. salary or a freelance payment.
type Income struct {
	DefaultModel
	Amount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Date   types.Date
	Note   string
}

// BeforeSave trims whitespace and defaults the date to today.
func (i *Income) BeforeSave(_ *gorm.DB) error {
	i.Note = strings.TrimSpace(i.Note)

	if i.Date.IsZero() {
		i.Date = types.DateOf(time.Now())
	}

	return nil
}
