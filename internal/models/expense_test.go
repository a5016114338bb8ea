package models_test

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestExpenseTrimWhitespace() {
	note := " Streaming subscription  "

	expense := suite.createTestExpense(models.Expense{Note: note})

	assert.Equal(suite.T(), strings.TrimSpace(note), expense.Note)
}

func (suite *TestSuiteStandard) TestExpenseDateDefaults() {
	expense := suite.createTestExpense(models.Expense{})

	assert.False(suite.T(), expense.Date.IsZero(), "date must default to today")
}

func (suite *TestSuiteStandard) TestExpensesSum() {
	category := suite.createTestCategory(models.Category{})

	_ = suite.createTestExpense(models.Expense{CategoryID: category.ID, Amount: decimal.NewFromFloat(10), Date: types.NewDate(2024, 6, 1)})
	_ = suite.createTestExpense(models.Expense{CategoryID: category.ID, Amount: decimal.NewFromFloat(20), Date: types.NewDate(2024, 6, 15)})

	// Outside of the range
	_ = suite.createTestExpense(models.Expense{CategoryID: category.ID, Amount: decimal.NewFromFloat(40), Date: types.NewDate(2024, 7, 1)})

	sum, err := models.ExpensesSum(types.NewDate(2024, 6, 1), types.NewDate(2024, 6, 30))
	require.Nil(suite.T(), err)
	assert.True(suite.T(), sum.Equal(decimal.NewFromFloat(30)), "sum is %s, not 30", sum)
}

func (suite *TestSuiteStandard) TestExpensesSumIncludesBoundaryDays() {
	category := suite.createTestCategory(models.Category{})

	// Both boundary days of the range count
	_ = suite.createTestExpense(models.Expense{CategoryID: category.ID, Amount: decimal.NewFromFloat(10), Date: types.NewDate(2024, 6, 1)})
	_ = suite.createTestExpense(models.Expense{CategoryID: category.ID, Amount: decimal.NewFromFloat(20), Date: types.NewDate(2024, 6, 30)})

	sum, err := models.ExpensesSum(types.NewDate(2024, 6, 1), types.NewDate(2024, 6, 30))
	require.Nil(suite.T(), err)
	assert.True(suite.T(), sum.Equal(decimal.NewFromFloat(30)), "sum is %s, not 30", sum)
}

func (suite *TestSuiteStandard) TestCategorySumIncludesBoundaryDays() {
	category := suite.createTestCategory(models.Category{})
	other := suite.createTestCategory(models.Category{})

	_ = suite.createTestExpense(models.Expense{CategoryID: category.ID, Amount: decimal.NewFromFloat(15), Date: types.NewDate(2024, 6, 30)})
	_ = suite.createTestExpense(models.Expense{CategoryID: other.ID, Amount: decimal.NewFromFloat(100), Date: types.NewDate(2024, 6, 30)})

	sum, err := models.CategorySum(category.ID, types.NewDate(2024, 6, 1), types.NewDate(2024, 6, 30))
	require.Nil(suite.T(), err)
	assert.True(suite.T(), sum.Equal(decimal.NewFromFloat(15)), "sum is %s, not 15", sum)
}

func (suite *TestSuiteStandard) TestCategoryTotalsIncludesBoundaryDays() {
	category := suite.createTestCategory(models.Category{})

	_ = suite.createTestExpense(models.Expense{CategoryID: category.ID, Amount: decimal.NewFromFloat(25), Date: types.NewDate(2024, 6, 30)})

	totals, err := models.CategoryTotals(types.NewDate(2024, 6, 1), types.NewDate(2024, 6, 30))
	require.Nil(suite.T(), err)
	require.Len(suite.T(), totals, 1)
	assert.True(suite.T(), totals[0].Total.Equal(decimal.NewFromFloat(25)), "total is %s, not 25", totals[0].Total)
}

func (suite *TestSuiteStandard) TestCategoryTotals() {
	groceries := suite.createTestCategory(models.Category{Name: "Groceries"})
	transport := suite.createTestCategory(models.Category{Name: "Transport"})

	_ = suite.createTestExpense(models.Expense{CategoryID: groceries.ID, Amount: decimal.NewFromFloat(12.5), Date: types.NewDate(2024, 6, 2)})
	_ = suite.createTestExpense(models.Expense{CategoryID: groceries.ID, Amount: decimal.NewFromFloat(7.5), Date: types.NewDate(2024, 6, 3)})
	_ = suite.createTestExpense(models.Expense{CategoryID: transport.ID, Amount: decimal.NewFromFloat(49), Date: types.NewDate(2024, 6, 4)})

	totals, err := models.CategoryTotals(types.NewDate(2024, 6, 1), types.NewDate(2024, 6, 30))
	require.Nil(suite.T(), err)
	require.Len(suite.T(), totals, 2)

	byCategory := make(map[string]decimal.Decimal, len(totals))
	for _, total := range totals {
		byCategory[total.CategoryID.String()] = total.Total
	}

	assert.True(suite.T(), byCategory[groceries.ID.String()].Equal(decimal.NewFromFloat(20)))
	assert.True(suite.T(), byCategory[transport.ID.String()].Equal(decimal.NewFromFloat(49)))
}
