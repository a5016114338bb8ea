package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestBudgetAfterSave() {
	tests := []struct {
		amount decimal.Decimal
		err    error
	}{
		{decimal.NewFromFloat(-10), models.ErrBudgetAmountNotPositive},
		{decimal.Zero, models.ErrBudgetAmountNotPositive},
		{decimal.NewFromFloat(400), nil},
	}

	for _, tt := range tests {
		b := models.Budget{
			Amount: tt.amount,
		}

		err := b.AfterSave(nil)
		assert.Equal(suite.T(), tt.err, err)
	}
}

func (suite *TestSuiteStandard) TestBudgetUniquePerCategoryAndMonth() {
	category := suite.createTestCategory(models.Category{})
	month := types.NewMonth(2024, 6)

	_ = suite.createTestBudget(models.Budget{CategoryID: category.ID, Month: month})

	err := models.DB.Create(&models.Budget{
		CategoryID: category.ID,
		Month:      month,
		Amount:     decimal.NewFromFloat(50),
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrBudgetMonthNotUnique)

	// The same category can be budgeted in another month
	_ = suite.createTestBudget(models.Budget{CategoryID: category.ID, Month: month.AddDate(0, 1)})
}
