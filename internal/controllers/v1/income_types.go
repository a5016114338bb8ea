package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
)

// IncomeEditable represents all user configurable parameters
type IncomeEditable struct {
	Amount decimal.Decimal `json:"amount" example:"2500" swaggertype:"number"` // The amount received
	Date   types.Date      `json:"date" example:"2024-06-01"`                  // Date of the income. Defaults to today
	Note   string          `json:"note" example:"Salary" default:""`           // Notes about the income
}

func (editable IncomeEditable) model() models.Income {
	return models.Income{
		Amount: editable.Amount,
		Date:   editable.Date,
		Note:   editable.Note,
	}
}

type IncomeLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/incomes/d1er3cc2-5dd3-4e82-b6f3-7ci2d71772f"` // The income itself
}

type Income struct {
	models.DefaultModel
	IncomeEditable
	Links IncomeLinks `json:"links"`
}

func newIncome(c *gin.Context, model models.Income) Income {
	url := c.GetString(string(models.DBContextURL))

	return Income{
		DefaultModel: model.DefaultModel,
		IncomeEditable: IncomeEditable{
			Amount: model.Amount,
			Date:   model.Date,
			Note:   model.Note,
		},
		Links: IncomeLinks{
			Self: fmt.Sprintf("%s/v1/incomes/%s", url, model.ID),
		},
	}
}

type IncomeListResponse struct {
	Data       []Income    `json:"data"`                                                          // List of Incomes
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type IncomeCreateResponse struct {
	Data  []IncomeResponse `json:"data"`                                                          // List of the created Incomes or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (i *IncomeCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	i.Data = append(i.Data, IncomeResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type IncomeResponse struct {
	Data  *Income `json:"data"`                                                          // Data for the Income
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type IncomeQueryFilter struct {
	Note   string `form:"note" filterField:"false"`   // By note
	Search string `form:"search" filterField:"false"` // By string in note
	From   string `form:"from" filterField:"false"`   // Only incomes on or after this date (YYYY-MM-DD)
	To     string `form:"to" filterField:"false"`     // Only incomes on or before this date (YYYY-MM-DD)
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Income returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Incomes to return. Defaults to 50.
}
