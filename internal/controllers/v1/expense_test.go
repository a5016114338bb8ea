package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	v1 "github.com/spendwise/backend/internal/controllers/v1"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
	"github.com/spendwise/backend/test"
	"github.com/stretchr/testify/assert"
)

func createTestExpense(t *testing.T, e v1.ExpenseEditable, expectedStatus ...int) v1.ExpenseResponse {
	if e.Amount.IsZero() {
		e.Amount = decimal.NewFromFloat(17.23)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.ExpenseEditable{e}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/expenses", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var expense v1.ExpenseCreateResponse
	test.DecodeResponse(t, &r, &expense)

	if r.Code == http.StatusCreated {
		return expense.Data[0]
	}

	return v1.ExpenseResponse{}
}

// TestExpensesDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestExpensesDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestExpense(t, v1.ExpenseEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/expenses", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.ExpenseListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestExpensesOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestExpensesOptions() {
	tests := []struct {
		name   string
		id     string // path at the expenses endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Expense with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Expense exists", createTestExpense(suite.T(), v1.ExpenseEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/expenses", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestExpensesCreateDefaults verifies that an expense without a category
// and date is assigned the default category and today.
func (suite *TestSuiteStandard) TestExpensesCreateDefaults() {
	expense := createTestExpense(suite.T(), v1.ExpenseEditable{
		Amount: decimal.NewFromFloat(2.75),
		Note:   "Coffee",
	})

	assert.Equal(suite.T(), models.UncategorizedID, expense.Data.CategoryID)
	assert.False(suite.T(), expense.Data.Date.IsZero())
	assert.Nil(suite.T(), expense.Data.RecurringExpenseID)
	assert.True(suite.T(), expense.Data.Amount.Equal(decimal.NewFromFloat(2.75)), "Amount is %s, expected 2.75", expense.Data.Amount)
}

// TestExpensesGetFilter verifies that filtering expenses works.
func (suite *TestSuiteStandard) TestExpensesGetFilter() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		CategoryID: category.Data.ID,
		Date:       types.NewDate(2024, 6, 1),
		Note:       "Groceries for the week",
	})

	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		CategoryID: category.Data.ID,
		Date:       types.NewDate(2024, 6, 15),
		Note:       "Cinema",
	})

	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		Date: types.NewDate(2024, 7, 1),
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Category", fmt.Sprintf("category=%s", category.Data.ID), 2},
		{"Category without expenses", fmt.Sprintf("category=%s", uuid.New()), 0},
		{"From", "from=2024-06-10", 2},
		{"To", "to=2024-06-30", 2},
		{"To on an expense date", "to=2024-06-15", 2},
		{"From and To", "from=2024-06-01&to=2024-06-01", 1},
		{"Note", "note=Cinema", 1},
		{"Search", "search=week", 1},
		{"Not recurring", "recurring=false", 3},
		{"Recurring", "recurring=true", 0},
		{"Empty query returns all", "", 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/expenses?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ExpenseListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.len, len(response.Data), "Wrong number of expenses for query %q", tt.query)
		})
	}
}

// TestExpensesGetFilterInvalidDate verifies that unparseable dates are
// rejected.
func (suite *TestSuiteStandard) TestExpensesGetFilterInvalidDate() {
	tests := []string{"from=yesterday", "to=2024-13-01"}

	for _, tt := range tests {
		suite.T().Run(tt, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/expenses?%s", tt), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

// TestExpensesGetSorted verifies that expenses are sorted with the newest
// first.
func (suite *TestSuiteStandard) TestExpensesGetSorted() {
	first := createTestExpense(suite.T(), v1.ExpenseEditable{Date: types.NewDate(2024, 3, 31)})
	second := createTestExpense(suite.T(), v1.ExpenseEditable{Date: types.NewDate(2024, 1, 15)})
	third := createTestExpense(suite.T(), v1.ExpenseEditable{Date: types.NewDate(2023, 12, 24)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/expenses", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExpenseListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	if !assert.Len(suite.T(), response.Data, 3) {
		assert.FailNow(suite.T(), "Response length does not match!")
	}

	assert.Equal(suite.T(), first.Data.ID, response.Data[0].ID)
	assert.Equal(suite.T(), second.Data.ID, response.Data[1].ID)
	assert.Equal(suite.T(), third.Data.ID, response.Data[2].ID)
}

// TestExpensesCreateFails verifies that creation fails where it should.
func (suite *TestSuiteStandard) TestExpensesCreateFails() {
	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken Body", `{ "note": 2 }`, http.StatusBadRequest},
		{"No body", "", http.StatusBadRequest},
		{"Non-existing category", []v1.ExpenseEditable{{CategoryID: uuid.New(), Amount: decimal.NewFromFloat(1)}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/expenses", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestExpensesUpdate verifies that updating expenses works.
func (suite *TestSuiteStandard) TestExpensesUpdate() {
	expense := createTestExpense(suite.T(), v1.ExpenseEditable{
		Note: "Lunch",
	})

	r := test.Request(suite.T(), http.MethodPatch, expense.Data.Links.Self, map[string]any{
		"note":   "Lunch with the team",
		"amount": 32.80,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updatedExpense v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &updatedExpense)

	assert.Equal(suite.T(), "Lunch with the team", updatedExpense.Data.Note)
	assert.True(suite.T(), updatedExpense.Data.Amount.Equal(decimal.NewFromFloat(32.80)), "Amount is %s, expected 32.80", updatedExpense.Data.Amount)
}

// TestExpensesUpdateFails verifies that updates fail where they should.
func (suite *TestSuiteStandard) TestExpensesUpdateFails() {
	tests := []struct {
		name   string
		id     string
		body   any
		status int
	}{
		{"Invalid type", "", map[string]any{"note": 2}, http.StatusBadRequest},
		{"Broken JSON", "", `{ "`, http.StatusBadRequest},
		{"Non-existing expense", uuid.New().String(), `{ "note": "Updated" }`, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			if tt.id == "" {
				expense := createTestExpense(suite.T(), v1.ExpenseEditable{})
				tt.id = expense.Data.ID.String()
			}

			recorder := test.Request(t, http.MethodPatch, fmt.Sprintf("http://example.com/v1/expenses/%s", tt.id), tt.body)
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

// TestExpensesDelete verifies that deleting expenses works.
func (suite *TestSuiteStandard) TestExpensesDelete() {
	expense := createTestExpense(suite.T(), v1.ExpenseEditable{})

	r := test.Request(suite.T(), http.MethodDelete, expense.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, expense.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestExpensesTotals verifies the summation of expenses for a date range.
func (suite *TestSuiteStandard) TestExpensesTotals() {
	groceries := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})
	leisure := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Leisure"})

	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		CategoryID: groceries.Data.ID,
		Amount:     decimal.NewFromFloat(100),
		Date:       types.NewDate(2024, 6, 1),
	})
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		CategoryID: groceries.Data.ID,
		Amount:     decimal.NewFromFloat(50.50),
		Date:       types.NewDate(2024, 6, 30),
	})
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		CategoryID: leisure.Data.ID,
		Amount:     decimal.NewFromFloat(20),
		Date:       types.NewDate(2024, 6, 15),
	})

	// Outside of the requested range
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		CategoryID: groceries.Data.ID,
		Amount:     decimal.NewFromFloat(1000),
		Date:       types.NewDate(2024, 7, 1),
	})
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		Amount: decimal.NewFromFloat(1000),
		Date:   types.NewDate(2024, 5, 15),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/expenses/totals?from=2024-06-01&to=2024-06-30", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExpenseTotalsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.Total.Equal(decimal.NewFromFloat(170.50)), "Total is %s, expected 170.50", response.Data.Total)

	if !assert.Len(suite.T(), response.Data.Categories, 2) {
		assert.FailNow(suite.T(), "Wrong number of category totals")
	}

	for _, categoryTotal := range response.Data.Categories {
		switch categoryTotal.CategoryID {
		case groceries.Data.ID:
			assert.True(suite.T(), categoryTotal.Total.Equal(decimal.NewFromFloat(150.50)), "Groceries total is %s, expected 150.50", categoryTotal.Total)
		case leisure.Data.ID:
			assert.True(suite.T(), categoryTotal.Total.Equal(decimal.NewFromFloat(20)), "Leisure total is %s, expected 20", categoryTotal.Total)
		default:
			assert.Fail(suite.T(), "Unexpected category in totals", categoryTotal.CategoryID)
		}
	}
}

// TestExpensesTotalsFails verifies the parameter validation of the totals
// endpoint.
func (suite *TestSuiteStandard) TestExpensesTotalsFails() {
	tests := []struct {
		name  string
		query string
	}{
		{"Invalid from", "from=NotADate"},
		{"Invalid to", "to=NotADate"},
		{"From after to", "from=2024-06-30&to=2024-06-01"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/expenses/totals?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}
