package models_test

import (
	"strings"
	"testing"

	"github.com/spendwise/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCategoryTrimWhitespace() {
	name := "  Groceries\t"
	note := " Everything edible  "

	category := suite.createTestCategory(models.Category{Name: name, Note: note})

	assert.Equal(suite.T(), strings.TrimSpace(name), category.Name)
	assert.Equal(suite.T(), strings.TrimSpace(note), category.Note)
}

func (suite *TestSuiteStandard) TestCategoryNameUnique() {
	_ = suite.createTestCategory(models.Category{Name: "Rent"})

	err := models.DB.Create(&models.Category{Name: "Rent"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryNameNotUnique)
}

func (suite *TestSuiteStandard) TestCategoryUncategorizedSeeded() {
	var category models.Category
	err := models.DB.First(&category, models.UncategorizedID).Error

	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), "Uncategorized", category.Name)
}

func (suite *TestSuiteStandard) TestCategoryUncategorizedProtected() {
	var category models.Category
	require.Nil(suite.T(), models.DB.First(&category, models.UncategorizedID).Error)

	err := models.DB.Delete(&category).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryProtected)
}

// TestCategoryDeletionPolicies verifies that deleting a category deletes
// its expenses and budgets, but reassigns its recurring expenses to the
// Uncategorized category.
func (suite *TestSuiteStandard) TestCategoryDeletionPolicies() {
	t := suite.T()

	category := suite.createTestCategory(models.Category{})
	expense := suite.createTestExpense(models.Expense{CategoryID: category.ID})
	budget := suite.createTestBudget(models.Budget{CategoryID: category.ID})
	recurring := suite.createTestRecurringExpense(models.RecurringExpense{CategoryID: category.ID})

	require.Nil(t, models.DB.Delete(&category).Error)

	tests := []struct {
		name  string
		check func(t *testing.T)
	}{
		{
			"Expense is deleted",
			func(t *testing.T) {
				err := models.DB.First(&models.Expense{}, expense.ID).Error
				assert.ErrorIs(t, err, models.ErrResourceNotFound)
			},
		},
		{
			"Budget is deleted",
			func(t *testing.T) {
				err := models.DB.First(&models.Budget{}, budget.ID).Error
				assert.ErrorIs(t, err, models.ErrResourceNotFound)
			},
		},
		{
			"Recurring expense degrades to Uncategorized",
			func(t *testing.T) {
				var r models.RecurringExpense
				require.Nil(t, models.DB.First(&r, recurring.ID).Error)
				assert.Equal(t, models.UncategorizedID, r.CategoryID)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, tt.check)
	}
}
