// Package worker runs the daily sweep that materializes due recurring
// expenses.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/recurring"
	"github.com/spendwise/backend/internal/types"
	"gorm.io/gorm"
)

var metrics = []prometheus.Collector{
	sweepCount,
	sweepFailureCount,
	materializedCount,
}

// RegisterPrometheusMetrics registers all Prometheus metrics of the
// worker with the default registry.
func RegisterPrometheusMetrics() error {
	for _, c := range metrics {
		if err := prometheus.Register(c); err != nil {
			return fmt.Errorf("could not register %s with Prometheus", c)
		}
	}

	return nil
}

// UnregisterPrometheusMetrics unregisters all Prometheus metrics of the
// worker.
//
// This is needed to cleanly exit.
func UnregisterPrometheusMetrics() bool {
	for _, c := range metrics {
		if ok := prometheus.Unregister(c); !ok {
			return false
		}
	}

	return true
}

var sweepCount = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "recurring_expense_sweeps_total",
		Help: "How many sweeps for due recurring expenses ran.",
	},
)

var sweepFailureCount = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "recurring_expense_sweep_failures_total",
		Help: "How many sweeps for due recurring expenses failed.",
	},
)

var materializedCount = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "recurring_expenses_materialized_total",
		Help: "How many due recurring expenses were turned into expenses.",
	},
)

// A Notifier is told about every materialized recurring expense.
//
// Notifications happen after the sweep is committed, a failing Notifier
// never takes back an expense.
type Notifier interface {
	Notify(recurring models.RecurringExpense)
}

// LogNotifier logs every materialized recurring expense.
type LogNotifier struct{}

func (LogNotifier) Notify(recurring models.RecurringExpense) {
	log.Info().
		Str("recurring-expense-id", recurring.ID.String()).
		Str("amount", recurring.Amount.String()).
		Str("next-due-date", recurring.NextDueDate.String()).
		Msg("Materialized recurring expense")
}

// Worker periodically materializes due recurring expenses.
type Worker struct {
	service  *recurring.Service
	notifier Notifier
	interval time.Duration
}

// New returns a Worker sweeping on the given database. A nil handle
// means the current models.DB, which follows reconnects after a
// database restore.
//
// An interval of 0 defaults to once per day, which matches the
// granularity of due dates.
func New(db *gorm.DB, notifier Notifier, interval time.Duration) *Worker {
	if interval == 0 {
		interval = 24 * time.Hour
	}

	return &Worker{
		service:  recurring.NewService(db),
		notifier: notifier,
		interval: interval,
	}
}

// Sweep materializes everything that is due right now and notifies
// about each materialized recurring expense.
func (w *Worker) Sweep() ([]models.RecurringExpense, error) {
	sweepCount.Inc()

	processed, err := w.service.ProcessDue(types.DateOf(time.Now().UTC()))
	if err != nil {
		sweepFailureCount.Inc()
		return nil, err
	}

	materializedCount.Add(float64(len(processed)))
	for _, recurring := range processed {
		w.notifier.Notify(recurring)
	}

	return processed, nil
}

// Run sweeps once immediately, then on every tick until the context is
// canceled. Sweeps run sequentially, a slow sweep delays the next one.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if _, err := w.Sweep(); err != nil {
			log.Error().Err(err).Msg("Sweep for due recurring expenses failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
