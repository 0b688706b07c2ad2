package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Wallet holds the spendable balance for a customer. The billing ledger
// itself lives in the backend; the console reads the balance and records
// debits for sends it dispatches.
type Wallet struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UUID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_wallets_uuid" json:"uuid"`
	CustomerID uint      `gorm:"not null;uniqueIndex:uk_wallets_customer_id" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`

	Balance  uint64 `gorm:"not null;default:0" json:"balance"`
	Currency string `gorm:"size:8;not null;default:'INR'" json:"currency"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Wallet) TableName() string {
	return "wallets"
}

// WalletFilter represents filter criteria for wallet queries
type WalletFilter struct {
	ID         *uint
	UUID       *uuid.UUID
	CustomerID *uint
}

// TransactionType distinguishes wallet debits from credits
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "debit"
	TransactionTypeCredit TransactionType = "credit"
)

// Valid checks if the transaction type is valid
func (t TransactionType) Valid() bool {
	return t == TransactionTypeDebit || t == TransactionTypeCredit
}

// Scan implements the sql.Scanner interface for TransactionType
func (t *TransactionType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = TransactionType(v)
	case []byte:
		*t = TransactionType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into TransactionType", value)
	}
	return nil
}

// Value implements the driver.Valuer interface for TransactionType
func (t TransactionType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid TransactionType: %s", t)
	}
	return string(t), nil
}

// Transaction records one wallet movement, typically a campaign-send debit.
type Transaction struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	UUID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uk_transactions_uuid" json:"uuid"`
	WalletID uint            `gorm:"not null;index:idx_transactions_wallet_id" json:"wallet_id"`
	Wallet   *Wallet         `gorm:"foreignKey:WalletID;references:ID" json:"wallet,omitempty"`
	Type     TransactionType `gorm:"type:transaction_type;not null" json:"type"`
	Amount   uint64          `gorm:"not null" json:"amount"`

	Metadata json.RawMessage `gorm:"type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_transactions_created_at" json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// TransactionFilter represents filter criteria for transaction queries
type TransactionFilter struct {
	ID       *uint
	WalletID *uint
	Type     *TransactionType
}
