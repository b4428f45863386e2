// Package ingestion contains use cases that accept candidate transaction
// records produced by external extraction collaborators (CSV/PDF statement
// parsers, receipt scanners). How the fields were extracted is not this
// module's concern; every row arrives as an independent draft.
package ingestion

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wealthflow/backend/internal/application/usecase/transaction"
)

// MaxReportedFailures caps how many per-row failure reasons are echoed back
// to the caller; the counts always cover the whole batch.
const MaxReportedFailures = 10

// ImportTransactionsInput represents a batch of candidate drafts.
type ImportTransactionsInput struct {
	UserID uuid.UUID
	Rows   []transaction.TransactionDraft
}

// RowFailure describes why one row of the batch was rejected.
type RowFailure struct {
	Row    int
	Reason string
}

// ImportTransactionsOutput aggregates per-row results. A partially failed
// import reports how many rows succeeded plus the first few failure
// reasons, never just a boolean.
type ImportTransactionsOutput struct {
	Imported int
	Failed   int
	Failures []RowFailure
}

// ImportTransactionsUseCase posts each row as an independent transaction
// creation; one bad row never aborts the rest of the batch.
type ImportTransactionsUseCase struct {
	createUseCase *transaction.CreateTransactionUseCase
}

// NewImportTransactionsUseCase creates a new ImportTransactionsUseCase instance.
func NewImportTransactionsUseCase(createUseCase *transaction.CreateTransactionUseCase) *ImportTransactionsUseCase {
	return &ImportTransactionsUseCase{
		createUseCase: createUseCase,
	}
}

// Execute imports the batch.
func (uc *ImportTransactionsUseCase) Execute(ctx context.Context, input ImportTransactionsInput) (*ImportTransactionsOutput, error) {
	output := &ImportTransactionsOutput{}

	for i, draft := range input.Rows {
		_, err := uc.createUseCase.Execute(ctx, transaction.CreateTransactionInput{
			UserID: input.UserID,
			Draft:  draft,
		})
		if err != nil {
			output.Failed++
			if len(output.Failures) < MaxReportedFailures {
				output.Failures = append(output.Failures, RowFailure{
					Row:    i + 1,
					Reason: err.Error(),
				})
			}
			slog.Debug("Import row rejected",
				"user_id", input.UserID,
				"row", i+1,
				"error", err,
			)
			continue
		}
		output.Imported++
	}

	slog.Info("Statement import finished",
		"user_id", input.UserID,
		"imported", output.Imported,
		"failed", output.Failed,
	)

	return output, nil
}
