// Package transaction contains the ledger transaction use cases.
package transaction

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthflow/backend/internal/domain/entity"
)

// Effect represents the signed balance deltas a transaction produces on its
// source account and, for transfers, its destination account. Amounts are
// always stored positive on the transaction row; direction lives here.
type Effect struct {
	SourceDelta      decimal.Decimal
	DestinationDelta decimal.Decimal // Zero unless the transaction is a transfer
}

// EffectOf computes the effect of a transaction type and amount:
// INCOME credits the source, EXPENSE debits it, TRANSFER debits the source
// and credits the destination.
func EffectOf(transactionType entity.TransactionType, amount decimal.Decimal) Effect {
	switch transactionType {
	case entity.TransactionTypeIncome:
		return Effect{SourceDelta: amount}
	case entity.TransactionTypeExpense:
		return Effect{SourceDelta: amount.Neg()}
	case entity.TransactionTypeTransfer:
		return Effect{SourceDelta: amount.Neg(), DestinationDelta: amount}
	}
	return Effect{}
}

// Inverse returns the correction that undoes the effect.
func (e Effect) Inverse() Effect {
	return Effect{
		SourceDelta:      e.SourceDelta.Neg(),
		DestinationDelta: e.DestinationDelta.Neg(),
	}
}

// DeltaSet accumulates net balance adjustments, exactly one per account.
// Folding the inverse of an old effect and a new effect into the same set
// collapses the same/changed account cases of an update into a single
// per-account write.
type DeltaSet map[uuid.UUID]decimal.Decimal

// NewDeltaSet creates an empty DeltaSet.
func NewDeltaSet() DeltaSet {
	return make(DeltaSet)
}

// Add accumulates a signed delta for an account.
func (d DeltaSet) Add(accountID uuid.UUID, delta decimal.Decimal) {
	d[accountID] = d[accountID].Add(delta)
}

// AddEffect folds an effect into the set against the accounts of the given
// transaction row.
func (d DeltaSet) AddEffect(tx *entity.Transaction, effect Effect) {
	d.Add(tx.AccountID, effect.SourceDelta)
	if tx.ToAccountID != nil {
		d.Add(*tx.ToAccountID, effect.DestinationDelta)
	}
}

// AccountIDs returns the affected account IDs in a stable order. Locking
// accounts in a consistent order avoids deadlocks between concurrent units.
func (d DeltaSet) AccountIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

// NetInverseDeltas nets the inverse effects of a batch of transactions,
// grouped by account. Transfers contribute to both their source and
// destination groups with the correct sign. Used by bulk delete so that a
// batch produces exactly one balance write per affected account.
func NetInverseDeltas(transactions []*entity.Transaction) DeltaSet {
	deltas := NewDeltaSet()
	for _, tx := range transactions {
		deltas.AddEffect(tx, EffectOf(tx.Type, tx.Amount).Inverse())
	}
	return deltas
}
