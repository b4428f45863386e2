// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"
)

// MonthlyStats represents one user's aggregated figures for a report month.
type MonthlyStats struct {
	MonthName        string
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	Net              decimal.Decimal
	TransactionCount int64
}

// InsightsService generates short natural-language commentary for a monthly
// report. Implementations may call an external model; callers must degrade
// gracefully when generation fails.
type InsightsService interface {
	// IsAvailable reports whether the service is configured.
	IsAvailable() bool

	// GenerateMonthlyInsights produces a few short insight sentences for the stats.
	GenerateMonthlyInsights(ctx context.Context, stats MonthlyStats) ([]string, error)
}
