package v1_test

import (
	"net/http"

	v1 "github.com/spendwise/backend/internal/controllers/v1"
	"github.com/spendwise/backend/test"
	"github.com/stretchr/testify/assert"
)

// TestRootGet verifies that the link list for v1 is returned.
func (suite *TestSuiteStandard) TestRootGet() {
	expected := v1.Response{
		Links: v1.Links{
			Backup:            "http://example.com/v1/backup",
			Budgets:           "http://example.com/v1/budgets",
			Categories:        "http://example.com/v1/categories",
			Coach:             "http://example.com/v1/coach/messages",
			Expenses:          "http://example.com/v1/expenses",
			Export:            "http://example.com/v1/export",
			Incomes:           "http://example.com/v1/incomes",
			RecurringExpenses: "http://example.com/v1/recurring-expenses",
			Restore:           "http://example.com/v1/restore",
		},
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.Response
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), expected, response)
}

// TestRootOptions verifies that the v1 root announces its allowed methods.
func (suite *TestSuiteStandard) TestRootOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "GET, DELETE", r.Header().Get("allow"))
}
