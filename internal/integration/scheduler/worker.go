package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/wealthflow/backend/internal/application/adapter"
	"github.com/wealthflow/backend/internal/application/usecase/budget"
	"github.com/wealthflow/backend/internal/application/usecase/recurring"
	"github.com/wealthflow/backend/internal/application/usecase/report"
)

// Lease names used by the worker.
const (
	leaseRecurring     = "recurring-tick"
	leaseBudgetAlerts  = "budget-alerts"
	leaseMonthlyReport = "monthly-report"
)

// Worker drives the periodic ledger jobs: recurring transaction
// materialization, budget alert evaluation, and monthly reports. A shared
// lock keeps multiple instances from running the same job at once; the jobs
// themselves are idempotent regardless.
type Worker struct {
	recurringTick   *recurring.RunTickUseCase
	budgetEvaluator *budget.EvaluateAlertsUseCase
	monthlyReports  *report.GenerateMonthlyReportsUseCase
	lock            adapter.SchedulerLock

	recurringInterval time.Duration
	budgetInterval    time.Duration
}

// WorkerConfig holds configuration for the scheduler worker.
type WorkerConfig struct {
	RecurringInterval time.Duration
	BudgetInterval    time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		RecurringInterval: 1 * time.Hour,
		BudgetInterval:    6 * time.Hour,
	}
}

// NewWorker creates a new scheduler worker.
func NewWorker(
	recurringTick *recurring.RunTickUseCase,
	budgetEvaluator *budget.EvaluateAlertsUseCase,
	monthlyReports *report.GenerateMonthlyReportsUseCase,
	lock adapter.SchedulerLock,
	config WorkerConfig,
) *Worker {
	return &Worker{
		recurringTick:     recurringTick,
		budgetEvaluator:   budgetEvaluator,
		monthlyReports:    monthlyReports,
		lock:              lock,
		recurringInterval: config.RecurringInterval,
		budgetInterval:    config.BudgetInterval,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Scheduler worker started",
		"recurring_interval", w.recurringInterval,
		"budget_interval", w.budgetInterval,
	)

	recurringTicker := time.NewTicker(w.recurringInterval)
	defer recurringTicker.Stop()
	budgetTicker := time.NewTicker(w.budgetInterval)
	defer budgetTicker.Stop()
	// Checked often; runMonthlyReports only fires on the first day of a month.
	reportTicker := time.NewTicker(1 * time.Hour)
	defer reportTicker.Stop()

	// Run immediately on start, then on tickers
	w.runRecurringTick(ctx)
	w.runBudgetEvaluation(ctx)

	var lastReportMonth time.Month

	for {
		select {
		case <-ctx.Done():
			slog.Info("Scheduler worker shutting down")
			return
		case <-recurringTicker.C:
			w.runRecurringTick(ctx)
		case <-budgetTicker.C:
			w.runBudgetEvaluation(ctx)
		case <-reportTicker.C:
			now := time.Now().UTC()
			if now.Day() == 1 && now.Month() != lastReportMonth {
				if w.runMonthlyReports(ctx) {
					lastReportMonth = now.Month()
				}
			}
		}
	}
}

// withLease runs fn while holding the named lease. Returns false when the
// lease is currently held elsewhere.
func (w *Worker) withLease(ctx context.Context, name string, ttl time.Duration, fn func()) bool {
	acquired, err := w.lock.Acquire(ctx, name, ttl)
	if err != nil {
		slog.Error("Failed to acquire scheduler lease", "lease", name, "error", err)
		return false
	}
	if !acquired {
		slog.Debug("Scheduler lease held elsewhere, skipping", "lease", name)
		return false
	}
	defer func() {
		if err := w.lock.Release(ctx, name); err != nil {
			slog.Warn("Failed to release scheduler lease", "lease", name, "error", err)
		}
	}()

	fn()
	return true
}

func (w *Worker) runRecurringTick(ctx context.Context) {
	w.withLease(ctx, leaseRecurring, 10*time.Minute, func() {
		output, err := w.recurringTick.Execute(ctx, recurring.RunTickInput{Now: time.Now().UTC()})
		if err != nil {
			slog.Error("Recurring tick failed", "error", err)
			return
		}
		if output.Total > 0 {
			slog.Info("Recurring tick completed",
				"processed", output.Processed,
				"skipped", output.Skipped,
				"failed", output.Failed,
			)
		}
	})
}

func (w *Worker) runBudgetEvaluation(ctx context.Context) {
	w.withLease(ctx, leaseBudgetAlerts, 10*time.Minute, func() {
		output, err := w.budgetEvaluator.Execute(ctx, budget.EvaluateAlertsInput{Now: time.Now().UTC()})
		if err != nil {
			slog.Error("Budget evaluation failed", "error", err)
			return
		}
		if output.AlertsSent > 0 || output.Failed > 0 {
			slog.Info("Budget evaluation completed",
				"checked", output.Checked,
				"alerts_sent", output.AlertsSent,
				"failed", output.Failed,
			)
		}
	})
}

func (w *Worker) runMonthlyReports(ctx context.Context) bool {
	return w.withLease(ctx, leaseMonthlyReport, 30*time.Minute, func() {
		output, err := w.monthlyReports.Execute(ctx, report.GenerateMonthlyReportsInput{Now: time.Now().UTC()})
		if err != nil {
			slog.Error("Monthly report run failed", "error", err)
			return
		}
		slog.Info("Monthly report run completed",
			"users", output.Users,
			"sent", output.Sent,
			"failed", output.Failed,
		)
	})
}
