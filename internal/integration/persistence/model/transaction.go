package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthflow/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type              string          `gorm:"type:varchar(10);not null;index"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	AccountID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ToAccountID       *uuid.UUID      `gorm:"type:uuid;index"`
	Date              time.Time       `gorm:"not null;index"`
	Description       string          `gorm:"type:varchar(255);not null"`
	Status            string          `gorm:"type:varchar(10);not null"`
	IsRecurring       bool            `gorm:"default:false"`
	RecurringInterval *string         `gorm:"type:varchar(10)"`
	NextRecurrence    *time.Time      `gorm:"index"`
	LastRecurrence    *time.Time
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	User    *UserModel    `gorm:"foreignKey:UserID;references:ID"`
	Account *AccountModel `gorm:"foreignKey:AccountID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var interval *entity.RecurringInterval
	if m.RecurringInterval != nil {
		value := entity.RecurringInterval(*m.RecurringInterval)
		interval = &value
	}

	return &entity.Transaction{
		ID:                m.ID,
		UserID:            m.UserID,
		Type:              entity.TransactionType(m.Type),
		Amount:            m.Amount,
		AccountID:         m.AccountID,
		ToAccountID:       m.ToAccountID,
		Date:              m.Date,
		Description:       m.Description,
		Status:            entity.TransactionStatus(m.Status),
		IsRecurring:       m.IsRecurring,
		RecurringInterval: interval,
		NextRecurrence:    m.NextRecurrence,
		LastRecurrence:    m.LastRecurrence,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	var interval *string
	if transaction.RecurringInterval != nil {
		value := string(*transaction.RecurringInterval)
		interval = &value
	}

	return &TransactionModel{
		ID:                transaction.ID,
		UserID:            transaction.UserID,
		Type:              string(transaction.Type),
		Amount:            transaction.Amount,
		AccountID:         transaction.AccountID,
		ToAccountID:       transaction.ToAccountID,
		Date:              transaction.Date,
		Description:       transaction.Description,
		Status:            string(transaction.Status),
		IsRecurring:       transaction.IsRecurring,
		RecurringInterval: interval,
		NextRecurrence:    transaction.NextRecurrence,
		LastRecurrence:    transaction.LastRecurrence,
		CreatedAt:         transaction.CreatedAt,
		UpdatedAt:         transaction.UpdatedAt,
	}
}
