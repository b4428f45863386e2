// Package report contains the monthly report generation use case.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wealthflow/backend/internal/application/adapter"
	"github.com/wealthflow/backend/internal/domain/entity"
)

// GenerateMonthlyReportsInput represents the input for a report run.
// The report always covers the calendar month preceding Now.
type GenerateMonthlyReportsInput struct {
	Now time.Time
}

// GenerateMonthlyReportsOutput represents the output of a report run.
type GenerateMonthlyReportsOutput struct {
	Users  int
	Sent   int
	Failed int
}

// GenerateMonthlyReportsUseCase builds last month's income/expense summary
// for every user and delivers it by notification. Insight generation is
// best-effort: when the insights service is unconfigured or errors, the
// report ships with a generic fallback line instead of failing.
type GenerateMonthlyReportsUseCase struct {
	userRepo        adapter.UserRepository
	transactionRepo adapter.TransactionRepository
	insights        adapter.InsightsService
	notifier        adapter.Notifier
}

// NewGenerateMonthlyReportsUseCase creates a new GenerateMonthlyReportsUseCase instance.
func NewGenerateMonthlyReportsUseCase(
	userRepo adapter.UserRepository,
	transactionRepo adapter.TransactionRepository,
	insights adapter.InsightsService,
	notifier adapter.Notifier,
) *GenerateMonthlyReportsUseCase {
	return &GenerateMonthlyReportsUseCase{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		insights:        insights,
		notifier:        notifier,
	}
}

// Execute generates and delivers the monthly reports.
func (uc *GenerateMonthlyReportsUseCase) Execute(ctx context.Context, input GenerateMonthlyReportsInput) (*GenerateMonthlyReportsOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	monthStart, monthEnd := entity.MonthRange(now.AddDate(0, -1, 0))

	users, err := uc.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	output := &GenerateMonthlyReportsOutput{Users: len(users)}
	for _, user := range users {
		if err := uc.reportForUser(ctx, user, monthStart, monthEnd); err != nil {
			output.Failed++
			slog.Error("Failed to send monthly report",
				"user_id", user.ID,
				"error", err,
			)
			continue
		}
		output.Sent++
	}

	slog.Info("Monthly report run finished",
		"month", monthStart.Format("January 2006"),
		"users", output.Users,
		"sent", output.Sent,
		"failed", output.Failed,
	)

	return output, nil
}

func (uc *GenerateMonthlyReportsUseCase) reportForUser(ctx context.Context, user *entity.User, monthStart, monthEnd time.Time) error {
	totals, err := uc.transactionRepo.GetTypeTotalsForUserInRange(ctx, user.ID, monthStart, monthEnd)
	if err != nil {
		return fmt.Errorf("failed to aggregate totals: %w", err)
	}

	stats := adapter.MonthlyStats{
		MonthName:        monthStart.Format("January"),
		TotalIncome:      totals.IncomeTotal,
		TotalExpense:     totals.ExpenseTotal,
		Net:              totals.IncomeTotal.Sub(totals.ExpenseTotal),
		TransactionCount: totals.Count,
	}

	insights := uc.generateInsights(ctx, user, stats)

	notification := adapter.Notification{
		RecipientEmail: user.Email,
		RecipientName:  user.Name,
		Kind:           adapter.NotificationKindMonthlyReport,
		Subject:        "Your Monthly Financial Report - " + stats.MonthName,
		Payload: map[string]interface{}{
			"month":        stats.MonthName,
			"totalIncome":  stats.TotalIncome.String(),
			"totalExpense": stats.TotalExpense.String(),
			"net":          stats.Net.String(),
			"insights":     insights,
		},
	}
	return uc.notifier.Notify(ctx, notification)
}

func (uc *GenerateMonthlyReportsUseCase) generateInsights(ctx context.Context, user *entity.User, stats adapter.MonthlyStats) []string {
	fallback := []string{"Your monthly financial report is ready."}

	if uc.insights == nil || !uc.insights.IsAvailable() {
		return fallback
	}

	insights, err := uc.insights.GenerateMonthlyInsights(ctx, stats)
	if err != nil || len(insights) == 0 {
		slog.Warn("Insight generation failed, using fallback",
			"user_id", user.ID,
			"error", err,
		)
		return fallback
	}
	return insights
}
