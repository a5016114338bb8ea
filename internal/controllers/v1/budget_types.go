package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
	ez_uuid "github.com/spendwise/backend/internal/uuid"
)

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	CategoryID uuid.UUID       `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the category the budget limits
	Month      types.Month     `json:"month" example:"2024-06"`                                   // The month the budget applies to
	Amount     decimal.Decimal `json:"amount" example:"300" swaggertype:"number"`                 // The spending limit
}

func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		CategoryID: editable.CategoryID,
		Month:      editable.Month,
		Amount:     editable.Amount,
	}
}

type BudgetLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/budgets/3b1ea324-d438-4419-882a-2fc91d71772f"`        // The budget itself
	Category string `json:"category" example:"https://example.com/api/v1/categories/52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // The category the budget limits
	Expenses string `json:"expenses" example:"https://example.com/api/v1/expenses?category=52d967d3-33f4-4b04-9ba7-772e"`  // The expenses counting against the budget
}

type Budget struct {
	models.DefaultModel
	BudgetEditable
	Links BudgetLinks `json:"links"`

	// Spent is computed from the expenses of the category in the month
	Spent decimal.Decimal `json:"spent" example:"147.23" swaggertype:"number"`
}

func newBudget(c *gin.Context, model models.Budget) (Budget, error) {
	url := c.GetString(string(models.DBContextURL))

	spent, err := models.CategorySum(model.CategoryID, model.Month.FirstDay(), model.Month.LastDay())
	if err != nil {
		return Budget{}, err
	}

	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			CategoryID: model.CategoryID,
			Month:      model.Month,
			Amount:     model.Amount,
		},
		Spent: spent,
		Links: BudgetLinks{
			Self:     fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
			Category: fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
			Expenses: fmt.Sprintf("%s/v1/expenses?category=%s&from=%s&to=%s", url, model.CategoryID, model.Month.FirstDay(), model.Month.LastDay()),
		},
	}, nil
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of Budgets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BudgetCreateResponse struct {
	Data  []BudgetResponse `json:"data"`                                                          // List of the created Budgets or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (b *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`                                                          // Data for the Budget
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetQueryFilter struct {
	CategoryID ez_uuid.UUID `form:"category"`                   // By ID of the category
	Month      string       `form:"month" filterField:"false"`  // By month (YYYY-MM)
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first Budget returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of Budgets to return. Defaults to 50.
}

func (f BudgetQueryFilter) model() models.Budget {
	return models.Budget{
		CategoryID: f.CategoryID.UUID,
	}
}
