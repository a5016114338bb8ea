package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// Category errors
	ErrCategoryNameNotUnique = errors.New("the category name must be unique")
	ErrCategoryProtected     = errors.New("the Uncategorized category cannot be deleted")

	// Budget errors
	ErrBudgetMonthNotUnique    = errors.New("there can only be one budget per category and month")
	ErrBudgetAmountNotPositive = errors.New("the budget amount must be positive")

	// Recurring expense errors
	ErrFrequencyInvalid = errors.New("the frequency must be one of WEEKLY, MONTHLY, YEARLY")

	// Chat errors
	ErrChatMessageEmpty = errors.New("the chat message must not be empty")

	// Referenced resources
	ErrReferenceInvalid = errors.New("a resource referenced in the request does not exist")
)
