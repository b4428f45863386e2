// Package recurring contains the recurring-transaction scheduler use case.
package recurring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wealthflow/backend/internal/application/adapter"
	"github.com/wealthflow/backend/internal/application/usecase/transaction"
	"github.com/wealthflow/backend/internal/domain/entity"
	domainerror "github.com/wealthflow/backend/internal/domain/error"
)

// RunTickInput represents the input for a scheduler tick.
type RunTickInput struct {
	Now time.Time
}

// TemplateResult reports the outcome for one processed template.
type TemplateResult struct {
	TemplateID    uuid.UUID
	TransactionID uuid.UUID // Materialized transaction, zero when failed or skipped
	Skipped       bool
	Error         string
}

// RunTickOutput represents the output of a scheduler tick.
type RunTickOutput struct {
	Total     int
	Processed int
	Skipped   int
	Failed    int
	Details   []TemplateResult
}

// RunTickUseCase materializes due recurring templates. Each template is
// handled in its own atomic unit, so one broken template never blocks the
// rest of the run. Inside the unit the template is re-fetched under a row
// lock and its dueness re-checked: two overlapping ticks both see the
// template as due in the initial scan, but only the first to lock it still
// finds nextRecurrence in the past, so each due date materializes at most
// one transaction.
type RunTickUseCase struct {
	transactionRepo adapter.TransactionRepository
	uow             adapter.UnitOfWork
}

// NewRunTickUseCase creates a new RunTickUseCase instance.
func NewRunTickUseCase(
	transactionRepo adapter.TransactionRepository,
	uow adapter.UnitOfWork,
) *RunTickUseCase {
	return &RunTickUseCase{
		transactionRepo: transactionRepo,
		uow:             uow,
	}
}

// Execute runs one scheduler tick.
func (uc *RunTickUseCase) Execute(ctx context.Context, input RunTickInput) (*RunTickOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	due, err := uc.transactionRepo.FindDueRecurring(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to find due recurring templates: %w", err)
	}

	output := &RunTickOutput{Total: len(due)}
	if len(due) == 0 {
		return output, nil
	}

	slog.Info("Processing due recurring templates", "count", len(due))

	for _, template := range due {
		result := uc.processTemplate(ctx, template.ID, now)
		output.Details = append(output.Details, result)

		switch {
		case result.Error != "":
			output.Failed++
		case result.Skipped:
			output.Skipped++
		default:
			output.Processed++
		}
	}

	slog.Info("Recurring tick finished",
		"total", output.Total,
		"processed", output.Processed,
		"skipped", output.Skipped,
		"failed", output.Failed,
	)

	return output, nil
}

// processTemplate materializes a single template in its own atomic unit.
func (uc *RunTickUseCase) processTemplate(ctx context.Context, templateID uuid.UUID, now time.Time) TemplateResult {
	result := TemplateResult{TemplateID: templateID}

	err := uc.uow.Do(ctx, func(stores adapter.Stores) error {
		template, err := stores.Transactions().FindByIDForUpdate(ctx, templateID)
		if err != nil {
			if errors.Is(err, domainerror.ErrTransactionNotFound) {
				// Deleted between the scan and the lock.
				result.Skipped = true
				return nil
			}
			return fmt.Errorf("failed to lock template: %w", err)
		}

		if !template.IsRecurring || template.RecurringInterval == nil ||
			template.NextRecurrence == nil || template.NextRecurrence.After(now) {
			// Another tick already advanced it.
			result.Skipped = true
			return nil
		}

		materialized := entity.NewTransaction(
			template.UserID,
			template.Type,
			template.Amount,
			template.AccountID,
			template.ToAccountID,
			now,
			template.Description,
		)
		if err := stores.Transactions().Create(ctx, materialized); err != nil {
			return fmt.Errorf("failed to create materialized transaction: %w", err)
		}

		deltas := transaction.NewDeltaSet()
		deltas.AddEffect(materialized, transaction.EffectOf(materialized.Type, materialized.Amount))
		if _, err := transaction.ApplyDeltas(ctx, stores, materialized.ID, deltas, false); err != nil {
			return err
		}

		next := entity.NextOccurrence(now, *template.RecurringInterval)
		template.LastRecurrence = &now
		template.NextRecurrence = &next
		template.UpdatedAt = time.Now().UTC()
		if err := stores.Transactions().Update(ctx, template); err != nil {
			return fmt.Errorf("failed to advance template schedule: %w", err)
		}

		result.TransactionID = materialized.ID
		return nil
	})
	if err != nil {
		// A template whose source account is gone keeps failing here until
		// the template itself is deleted; it never advances silently.
		slog.Error("Failed to process recurring template",
			"template_id", templateID,
			"error", err,
		)
		result.Error = err.Error()
	}

	return result
}
