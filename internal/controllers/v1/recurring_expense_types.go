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

// RecurringExpenseEditable represents all user configurable parameters
type RecurringExpenseEditable struct {
	CategoryID uuid.UUID        `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the category. Defaults to the Uncategorized category
	Amount     decimal.Decimal  `json:"amount" example:"12.99" swaggertype:"number"`               // The amount due per occurrence
	Note       string           `json:"note" example:"Video streaming" default:""`                 // Notes about the recurring expense
	Frequency  models.Frequency `json:"frequency" example:"MONTHLY"`                               // How often the expense is due. One of WEEKLY, MONTHLY, YEARLY
	StartDate  types.Date       `json:"startDate" example:"2024-01-31"`                            // The date the schedule is anchored on. Defaults to today
}

func (editable RecurringExpenseEditable) model() models.RecurringExpense {
	categoryID := editable.CategoryID
	if categoryID == uuid.Nil {
		categoryID = models.UncategorizedID
	}

	return models.RecurringExpense{
		CategoryID: categoryID,
		Amount:     editable.Amount,
		Note:       editable.Note,
		Frequency:  editable.Frequency,
		StartDate:  editable.StartDate,
	}
}

type RecurringExpenseLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/recurring-expenses/c8dd9e54-2d38-42ab-9531-a7c9b0b4e4c0"` // The recurring expense itself
	Category string `json:"category" example:"https://example.com/api/v1/categories/52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`    // The category of the recurring expense
}

type RecurringExpense struct {
	models.DefaultModel
	RecurringExpenseEditable
	Links RecurringExpenseLinks `json:"links"`

	// NextDueDate is maintained by the schedule, not the user
	NextDueDate types.Date `json:"nextDueDate" example:"2024-02-29"` // The next date the expense is due
}

func newRecurringExpense(c *gin.Context, model models.RecurringExpense) RecurringExpense {
	url := c.GetString(string(models.DBContextURL))

	return RecurringExpense{
		DefaultModel: model.DefaultModel,
		RecurringExpenseEditable: RecurringExpenseEditable{
			CategoryID: model.CategoryID,
			Amount:     model.Amount,
			Note:       model.Note,
			Frequency:  model.Frequency,
			StartDate:  model.StartDate,
		},
		NextDueDate: model.NextDueDate,
		Links: RecurringExpenseLinks{
			Self:     fmt.Sprintf("%s/v1/recurring-expenses/%s", url, model.ID),
			Category: fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
		},
	}
}

type RecurringExpenseListResponse struct {
	Data       []RecurringExpense `json:"data"`                                                          // List of RecurringExpenses
	Error      *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination        `json:"pagination"`                                                    // Pagination information
}

type RecurringExpenseCreateResponse struct {
	Data  []RecurringExpenseResponse `json:"data"`                                                          // List of the created RecurringExpenses or their respective error
	Error *string                    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *RecurringExpenseCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RecurringExpenseResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RecurringExpenseResponse struct {
	Data  *RecurringExpense `json:"data"`                                                          // Data for the RecurringExpense
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// SweepResponse is the result of a manually triggered sweep.
type SweepResponse struct {
	Data  []RecurringExpense `json:"data"`                                               // The recurring expenses that were materialized into expenses
	Error *string            `json:"error" example:"there is no Category matching your"` // The error, if any occurred
}

type RecurringExpenseQueryFilter struct {
	CategoryID ez_uuid.UUID     `form:"category"`                   // By ID of the category
	Frequency  models.Frequency `form:"frequency"`                  // By frequency (WEEKLY, MONTHLY, YEARLY)
	Note       string           `form:"note" filterField:"false"`   // By note
	Search     string           `form:"search" filterField:"false"` // By string in note
	Offset     uint             `form:"offset" filterField:"false"` // The offset of the first RecurringExpense returned. Defaults to 0.
	Limit      int              `form:"limit" filterField:"false"`  // Maximum number of RecurringExpenses to return. Defaults to 50.
}

func (f RecurringExpenseQueryFilter) model() models.RecurringExpense {
	return models.RecurringExpense{
		CategoryID: f.CategoryID.UUID,
		Frequency:  f.Frequency,
	}
}
