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

// ExpenseEditable represents all user configurable parameters
type ExpenseEditable struct {
	CategoryID uuid.UUID       `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the category of the expense
	Amount     decimal.Decimal `json:"amount" example:"14.5" swaggertype:"number"`                // The amount spent
	Date       types.Date      `json:"date" example:"2024-06-01"`                                 // Date of the expense. Defaults to today
	Note       string          `json:"note" example:"Lunch with the team" default:""`             // Notes about the expense
}

func (editable ExpenseEditable) model() models.Expense {
	categoryID := editable.CategoryID
	if categoryID == uuid.Nil {
		categoryID = models.UncategorizedID
	}

	return models.Expense{
		CategoryID: categoryID,
		Amount:     editable.Amount,
		Date:       editable.Date,
		Note:       editable.Note,
	}
}

type ExpenseLinks struct {
	Self             string `json:"self" example:"https://example.com/api/v1/expenses/d1er3cc2-5dd3-4e82-b6f3-7ci2d71772f"`                        // The expense itself
	Category         string `json:"category" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`                 // The category of the expense
	RecurringExpense string `json:"recurringExpense,omitempty" example:"https://example.com/api/v1/recurring-expenses/8f9d7c31-bb12-4a9f-9da2-1c"` // The recurring expense this expense was created from, if any
}

type Expense struct {
	models.DefaultModel
	ExpenseEditable
	Links ExpenseLinks `json:"links"`

	// RecurringExpenseID is set by the materializer, not by the user
	RecurringExpenseID *uuid.UUID `json:"recurringExpenseId" example:"8f9d7c31-bb12-4a9f-9da2-1c39ab35fdfa"`
}

func newExpense(c *gin.Context, model models.Expense) Expense {
	url := c.GetString(string(models.DBContextURL))

	expense := Expense{
		DefaultModel: model.DefaultModel,
		ExpenseEditable: ExpenseEditable{
			CategoryID: model.CategoryID,
			Amount:     model.Amount,
			Date:       model.Date,
			Note:       model.Note,
		},
		RecurringExpenseID: model.RecurringExpenseID,
		Links: ExpenseLinks{
			Self:     fmt.Sprintf("%s/v1/expenses/%s", url, model.ID),
			Category: fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
		},
	}

	if model.RecurringExpenseID != nil {
		expense.Links.RecurringExpense = fmt.Sprintf("%s/v1/recurring-expenses/%s", url, model.RecurringExpenseID)
	}

	return expense
}

type ExpenseListResponse struct {
	Data       []Expense   `json:"data"`                                                          // List of Expenses
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ExpenseCreateResponse struct {
	Data  []ExpenseResponse `json:"data"`                                                          // List of the created Expenses or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (e *ExpenseCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	e.Data = append(e.Data, ExpenseResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ExpenseResponse struct {
	Data  *Expense `json:"data"`                                                          // Data for the Expense
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ExpenseQueryFilter struct {
	CategoryID ez_uuid.UUID `form:"category"`                     // By ID of the category
	Note       string       `form:"note" filterField:"false"`     // By note
	Search     string       `form:"search" filterField:"false"`   // By string in note
	From       string       `form:"from" filterField:"false"`     // Only expenses on or after this date (YYYY-MM-DD)
	To         string       `form:"to" filterField:"false"`       // Only expenses on or before this date (YYYY-MM-DD)
	Recurring  bool         `form:"recurring" filterField:"false"` // Only expenses created by (true) or not created by (false) a recurring expense
	Offset     uint         `form:"offset" filterField:"false"`   // The offset of the first Expense returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`    // Maximum number of Expenses to return. Defaults to 50.
}

func (f ExpenseQueryFilter) model() models.Expense {
	return models.Expense{
		CategoryID: f.CategoryID.UUID,
	}
}

// ExpenseTotalsResponse summarizes the expenses in a date range.
type ExpenseTotalsResponse struct {
	Data  *ExpenseTotals `json:"data"`                                             // The totals
	Error *string        `json:"error" example:"there is no expense matching your query"` // The error, if any occurred
}

type ExpenseTotals struct {
	Total      decimal.Decimal        `json:"total" example:"1498.23" swaggertype:"number"` // Sum of all expenses in the range
	Categories []models.CategoryTotal `json:"categories"`                                   // Per-category sums
}
