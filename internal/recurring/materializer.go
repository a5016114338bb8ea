package recurring

import (
	"fmt"

	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
	"gorm.io/gorm"
)

// Service materializes due recurring expenses.
//
// The database handle is explicit so that callers control which
// connection the batch runs on.
type Service struct {
	db *gorm.DB
}

// NewService returns a Service using the given database handle.
//
// A nil handle means the current models.DB, which follows reconnects
// after a database restore.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) handle() *gorm.DB {
	if s.db != nil {
		return s.db
	}

	return models.DB
}

// ProcessDue materializes all recurring expenses that are due on or
// before today.
//
// For every due recurring expense, an Expense is created with the date
// the payment was supposed to occur, and the schedule is advanced by
// exactly one period. A schedule that missed several periods catches up
// one period per sweep.
//
// All expenses and schedule updates of one sweep are committed in a
// single transaction. On error, nothing is persisted and all recurring
// expenses stay due, the next sweep retries them.
//
// The returned slice contains the recurring expenses that were
// materialized, with their schedules already advanced. An empty sweep is
// not an error and has no side effects.
func (s *Service) ProcessDue(today types.Date) ([]models.RecurringExpense, error) {
	var due []models.RecurringExpense

	err := s.handle().Transaction(func(tx *gorm.DB) error {
		// The due query runs inside the transaction so that interactive
		// edits cannot slip in between the read and the schedule update.
		err := tx.Where("date(next_due_date) <= date(?)", today).Find(&due).Error
		if err != nil {
			return fmt.Errorf("error loading due recurring expenses: %w", err)
		}

		for i := range due {
			recurring := &due[i]

			// The expense is dated on the due date, not on the day the
			// sweep happens to run
			expense := models.Expense{
				CategoryID:         recurring.CategoryID,
				Amount:             recurring.Amount,
				Note:               recurring.Note,
				Date:               recurring.NextDueDate,
				RecurringExpenseID: &recurring.ID,
			}
			if err := tx.Create(&expense).Error; err != nil {
				return fmt.Errorf("error creating expense for recurring expense %s: %w", recurring.ID, err)
			}

			next, err := NextOccurrence(recurring.NextDueDate, recurring.Frequency, recurring.StartDate.Day())
			if err != nil {
				return fmt.Errorf("error advancing schedule for recurring expense %s: %w", recurring.ID, err)
			}
			recurring.NextDueDate = next

			if err := tx.Save(recurring).Error; err != nil {
				return fmt.Errorf("error updating recurring expense %s: %w", recurring.ID, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(due) == 0 {
		return nil, nil
	}

	return due, nil
}
