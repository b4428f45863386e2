package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wealthflow/backend/internal/application/adapter"
	"github.com/wealthflow/backend/internal/domain/entity"
	domainerror "github.com/wealthflow/backend/internal/domain/error"
	"github.com/wealthflow/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByIDForUpdate retrieves a transaction by ID holding a row lock until
// the enclosing transaction commits.
func (r *transactionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := forUpdate(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByIDsAndUser retrieves all transactions matching the given IDs that are
// owned by the user. Missing IDs are simply absent from the result.
func (r *transactionRepository) FindByIDsAndUser(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("id IN ? AND user_id = ?", ids, userID).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// FindByUser retrieves all transactions for a given user.
func (r *transactionRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// FindByAccount retrieves all transactions whose source account is the given account.
func (r *transactionRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("date DESC, created_at DESC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// FindDueRecurring retrieves all recurring templates whose next recurrence is
// at or before now.
func (r *transactionRepository) FindDueRecurring(ctx context.Context, now time.Time) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("is_recurring = ?", true).
		Where("next_recurrence IS NOT NULL AND next_recurrence <= ?", now).
		Order("next_recurrence ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// Update updates an existing transaction in the database.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Save(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a transaction from the database.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// DeleteByIDs removes multiple transactions, returning the deleted count.
func (r *transactionRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id IN ? AND user_id = ?", ids, userID).
		Delete(&model.TransactionModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteByAccount removes all transactions whose source account is the given
// account.
func (r *transactionRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&model.TransactionModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// SumExpensesForAccountInRange sums EXPENSE amounts against an account within
// [start, end].
func (r *transactionRepository) SumExpensesForAccountInRange(ctx context.Context, accountID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("account_id = ?", accountID).
		Where("type = ?", string(entity.TransactionTypeExpense)).
		Where("date >= ? AND date <= ?", start, end).
		Scan(&row)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	return row.Total, nil
}

// GetTotalsByAccount calculates income/expense/transfer totals for an account.
func (r *transactionRepository) GetTotalsByAccount(ctx context.Context, accountID uuid.UUID) (*adapter.TransactionTotals, error) {
	sum := func(query *gorm.DB) (decimal.Decimal, error) {
		var row struct {
			Total decimal.Decimal
		}
		if err := query.Select("COALESCE(SUM(amount), 0) as total").Scan(&row).Error; err != nil {
			return decimal.Zero, err
		}
		return row.Total, nil
	}

	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.TransactionModel{})
	}

	income, err := sum(base().
		Where("account_id = ?", accountID).
		Where("type = ?", string(entity.TransactionTypeIncome)))
	if err != nil {
		return nil, err
	}

	expense, err := sum(base().
		Where("account_id = ?", accountID).
		Where("type = ?", string(entity.TransactionTypeExpense)))
	if err != nil {
		return nil, err
	}

	transferOut, err := sum(base().
		Where("account_id = ?", accountID).
		Where("type = ?", string(entity.TransactionTypeTransfer)))
	if err != nil {
		return nil, err
	}

	transferIn, err := sum(base().
		Where("to_account_id = ?", accountID).
		Where("type = ?", string(entity.TransactionTypeTransfer)))
	if err != nil {
		return nil, err
	}

	return &adapter.TransactionTotals{
		IncomeTotal:  income,
		ExpenseTotal: expense,
		TransferIn:   transferIn,
		TransferOut:  transferOut,
	}, nil
}

// GetTypeTotalsForUserInRange sums income and expense amounts for a user
// within [start, end].
func (r *transactionRepository) GetTypeTotalsForUserInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) (*adapter.TypeTotals, error) {
	var rows []struct {
		Type  string
		Total decimal.Decimal
		Count int64
	}
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("type, COALESCE(SUM(amount), 0) as total, COUNT(*) as count").
		Where("user_id = ?", userID).
		Where("date >= ? AND date <= ?", start, end).
		Group("type").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	totals := &adapter.TypeTotals{
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
	}
	for _, row := range rows {
		totals.Count += row.Count
		switch entity.TransactionType(row.Type) {
		case entity.TransactionTypeIncome:
			totals.IncomeTotal = row.Total
		case entity.TransactionTypeExpense:
			totals.ExpenseTotal = row.Total
		}
	}
	return totals, nil
}
