package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/models"
)

func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.DELETE("", Cleanup)
	r.OPTIONS("", Options)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Backup            string `json:"backup" example:"https://example.com/api/v1/backup"`                        // URL of the backup endpoint
	Budgets           string `json:"budgets" example:"https://example.com/api/v1/budgets"`                      // URL of Budget collection endpoint
	Categories        string `json:"categories" example:"https://example.com/api/v1/categories"`                // URL of Category collection endpoint
	Coach             string `json:"coach" example:"https://example.com/api/v1/coach/messages"`                 // URL of the financial coach conversation
	Expenses          string `json:"expenses" example:"https://example.com/api/v1/expenses"`                    // URL of Expense collection endpoint
	Export            string `json:"export" example:"https://example.com/api/v1/export"`                        // URL of the CSV export endpoint
	Incomes           string `json:"incomes" example:"https://example.com/api/v1/incomes"`                      // URL of Income collection endpoint
	RecurringExpenses string `json:"recurringExpenses" example:"https://example.com/api/v1/recurring-expenses"` // URL of RecurringExpense collection endpoint
	Restore           string `json:"restore" example:"https://example.com/api/v1/restore"`                      // URL of the restore endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Backup:            url + "/v1/backup",
			Budgets:           url + "/v1/budgets",
			Categories:        url + "/v1/categories",
			Coach:             url + "/v1/coach/messages",
			Expenses:          url + "/v1/expenses",
			Export:            url + "/v1/export",
			Incomes:           url + "/v1/incomes",
			RecurringExpenses: url + "/v1/recurring-expenses",
			Restore:           url + "/v1/restore",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
