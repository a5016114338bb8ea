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

func createTestBudget(t *testing.T, b v1.BudgetEditable, expectedStatus ...int) v1.BudgetResponse {
	if b.CategoryID == uuid.Nil {
		b.CategoryID = createTestCategory(t, v1.CategoryEditable{}).Data.ID
	}

	if b.Month.IsZero() {
		b.Month = types.NewMonth(2024, 6)
	}

	if b.Amount.IsZero() {
		b.Amount = decimal.NewFromFloat(300)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.BudgetEditable{b}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var budget v1.BudgetCreateResponse
	test.DecodeResponse(t, &r, &budget)

	if r.Code == http.StatusCreated {
		return budget.Data[0]
	}

	return v1.BudgetResponse{}
}

// TestBudgetsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestBudgetsDBClosed() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestBudget(t, v1.BudgetEditable{CategoryID: category.Data.ID}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/budgets", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.BudgetListResponse
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

// TestBudgetsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestBudgetsOptions() {
	tests := []struct {
		name   string
		id     string // path at the budgets endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Budget with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Budget exists", createTestBudget(suite.T(), v1.BudgetEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/budgets", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestBudgetsCreateUpserts verifies that creating a budget for a category
// and month that already has one updates the limit instead of failing.
func (suite *TestSuiteStandard) TestBudgetsCreateUpserts() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	budget := createTestBudget(suite.T(), v1.BudgetEditable{
		CategoryID: category.Data.ID,
		Month:      types.NewMonth(2024, 6),
		Amount:     decimal.NewFromFloat(300),
	})

	update := createTestBudget(suite.T(), v1.BudgetEditable{
		CategoryID: category.Data.ID,
		Month:      types.NewMonth(2024, 6),
		Amount:     decimal.NewFromFloat(450),
	})

	assert.Equal(suite.T(), budget.Data.ID, update.Data.ID, "The existing budget is updated, not replaced")
	assert.True(suite.T(), update.Data.Amount.Equal(decimal.NewFromFloat(450)), "Amount is %s, expected 450", update.Data.Amount)

	// Only one budget exists for the category and month
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 1)
}

// TestBudgetsSpent verifies that the spent amount is computed from the
// expenses of the category in the month.
func (suite *TestSuiteStandard) TestBudgetsSpent() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		CategoryID: category.Data.ID,
		Amount:     decimal.NewFromFloat(100),
		Date:       types.NewDate(2024, 6, 1),
	})
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		CategoryID: category.Data.ID,
		Amount:     decimal.NewFromFloat(47.23),
		Date:       types.NewDate(2024, 6, 30),
	})

	// Other month and other category do not count
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		CategoryID: category.Data.ID,
		Amount:     decimal.NewFromFloat(1000),
		Date:       types.NewDate(2024, 7, 1),
	})
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		Amount: decimal.NewFromFloat(1000),
		Date:   types.NewDate(2024, 6, 15),
	})

	budget := createTestBudget(suite.T(), v1.BudgetEditable{
		CategoryID: category.Data.ID,
		Month:      types.NewMonth(2024, 6),
		Amount:     decimal.NewFromFloat(300),
	})

	assert.True(suite.T(), budget.Data.Spent.Equal(decimal.NewFromFloat(147.23)), "Spent is %s, expected 147.23", budget.Data.Spent)
}

// TestBudgetsGetFilter verifies that filtering budgets works.
func (suite *TestSuiteStandard) TestBudgetsGetFilter() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	_ = createTestBudget(suite.T(), v1.BudgetEditable{
		CategoryID: category.Data.ID,
		Month:      types.NewMonth(2024, 5),
	})
	_ = createTestBudget(suite.T(), v1.BudgetEditable{
		CategoryID: category.Data.ID,
		Month:      types.NewMonth(2024, 6),
	})
	_ = createTestBudget(suite.T(), v1.BudgetEditable{
		Month: types.NewMonth(2024, 6),
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Category", fmt.Sprintf("category=%s", category.Data.ID), 2},
		{"Category without budgets", fmt.Sprintf("category=%s", uuid.New()), 0},
		{"Month", "month=2024-06", 2},
		{"Month without budgets", "month=2023-01", 0},
		{"Category and month", fmt.Sprintf("category=%s&month=2024-05", category.Data.ID), 1},
		{"Empty query returns all", "", 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.BudgetListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.len, len(response.Data), "Wrong number of budgets for query %q", tt.query)
		})
	}
}

// TestBudgetsGetFilterInvalidMonth verifies that unparseable months are
// rejected.
func (suite *TestSuiteStandard) TestBudgetsGetFilterInvalidMonth() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets?month=June", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "the month must be specified as YYYY-MM", *response.Error)
}

// TestBudgetsCreateFails verifies that creation fails where it should.
func (suite *TestSuiteStandard) TestBudgetsCreateFails() {
	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken Body", `{ "amount": 2 }`, http.StatusBadRequest},
		{"No body", "", http.StatusBadRequest},
		{"Non-existing category", []v1.BudgetEditable{{CategoryID: uuid.New(), Month: types.NewMonth(2024, 6), Amount: decimal.NewFromFloat(10)}}, http.StatusBadRequest},
		{"Negative amount", []v1.BudgetEditable{{CategoryID: models.UncategorizedID, Month: types.NewMonth(2024, 6), Amount: decimal.NewFromFloat(-10)}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestBudgetsUpdate verifies that updating budgets works.
func (suite *TestSuiteStandard) TestBudgetsUpdate() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{
		Amount: decimal.NewFromFloat(300),
	})

	r := test.Request(suite.T(), http.MethodPatch, budget.Data.Links.Self, map[string]any{
		"amount": 500,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updatedBudget v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &updatedBudget)

	assert.True(suite.T(), updatedBudget.Data.Amount.Equal(decimal.NewFromFloat(500)), "Amount is %s, expected 500", updatedBudget.Data.Amount)
}

// TestBudgetsUpdateFails verifies that updates fail where they should.
func (suite *TestSuiteStandard) TestBudgetsUpdateFails() {
	tests := []struct {
		name   string
		id     string
		body   any
		status int
	}{
		{"Invalid type", "", map[string]any{"amount": "many"}, http.StatusBadRequest},
		{"Broken JSON", "", `{ "`, http.StatusBadRequest},
		{"Non-existing budget", uuid.New().String(), `{ "amount": 10 }`, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			if tt.id == "" {
				budget := createTestBudget(suite.T(), v1.BudgetEditable{})
				tt.id = budget.Data.ID.String()
			}

			recorder := test.Request(t, http.MethodPatch, fmt.Sprintf("http://example.com/v1/budgets/%s", tt.id), tt.body)
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

// TestBudgetsDelete verifies that deleting budgets works.
func (suite *TestSuiteStandard) TestBudgetsDelete() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})

	r := test.Request(suite.T(), http.MethodDelete, budget.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, budget.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestBudgetsGetSorted verifies that budgets are sorted with the newest
// month first.
func (suite *TestSuiteStandard) TestBudgetsGetSorted() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	older := createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: category.Data.ID, Month: types.NewMonth(2024, 1)})
	newest := createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: category.Data.ID, Month: types.NewMonth(2024, 6)})
	oldest := createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: category.Data.ID, Month: types.NewMonth(2023, 7)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	if !assert.Len(suite.T(), response.Data, 3) {
		assert.FailNow(suite.T(), "Response length does not match!")
	}

	assert.Equal(suite.T(), newest.Data.ID, response.Data[0].ID)
	assert.Equal(suite.T(), older.Data.ID, response.Data[1].ID)
	assert.Equal(suite.T(), oldest.Data.ID, response.Data[2].ID)
}
