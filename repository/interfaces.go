// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/rcsuite/console/models"
	"github.com/google/uuid"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// ContactRepository defines operations for roster contacts
type ContactRepository interface {
	Repository[models.Contact, models.ContactFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Contact, error)
	ListByCustomer(ctx context.Context, customerID uint, limit, offset int) ([]*models.Contact, error)
	NumbersByCustomer(ctx context.Context, customerID uint) ([]string, error)
	CapableNumbersByCustomer(ctx context.Context, customerID uint) ([]string, error)
	ExistingNumbers(ctx context.Context, customerID uint, numbers []string) (map[string]bool, error)
	MarkChecking(ctx context.Context, ids []uint) error
	ResetChecking(ctx context.Context, ids []uint) error
	// UpdateCapabilityIfNumberMatches applies a capability verdict only when
	// the stored number still equals the number the verdict was obtained for.
	// It reports whether a row was updated.
	UpdateCapabilityIfNumberMatches(ctx context.Context, id uint, number string, capable bool, checkedAt time.Time) (bool, error)
	UpdateNumber(ctx context.Context, id uint, number string) error
	Delete(ctx context.Context, id uint) error
	DeleteByIDs(ctx context.Context, ids []uint) (int64, error)
	DeleteAllByCustomer(ctx context.Context, customerID uint) (int64, error)
}

// CustomerRepository defines operations for customers
type CustomerRepository interface {
	Repository[models.Customer, models.CustomerFilter]
	ByEmail(ctx context.Context, email string) (*models.Customer, error)
	ByUUID(ctx context.Context, uuid string) (*models.Customer, error)
	ByRCSAccountID(ctx context.Context, accountID string) (*models.Customer, error)
}

// CustomerSessionRepository defines operations for customer sessions
type CustomerSessionRepository interface {
	Repository[models.CustomerSession, models.CustomerSessionFilter]
	ByRefreshToken(ctx context.Context, token string) (*models.CustomerSession, error)
	ListActiveSessionsByCustomer(ctx context.Context, customerID uint) ([]*models.CustomerSession, error)
	RevokeSession(ctx context.Context, sessionID uint) error
	RevokeAllCustomerSessions(ctx context.Context, customerID uint) error
	CleanupExpiredSessions(ctx context.Context) error
}

// MessageTemplateRepository defines operations for message templates
type MessageTemplateRepository interface {
	Repository[models.MessageTemplate, models.MessageTemplateFilter]
	ByUUID(ctx context.Context, uuid string) (*models.MessageTemplate, error)
	ListByCustomer(ctx context.Context, customerID uint, limit, offset int) ([]*models.MessageTemplate, error)
	Update(ctx context.Context, template models.MessageTemplate) error
	Delete(ctx context.Context, id uint) error
}

// RCSCampaignRepository defines operations for RCS campaigns
type RCSCampaignRepository interface {
	Repository[models.RCSCampaign, models.RCSCampaignFilter]
	ByUUID(ctx context.Context, uuid string) (*models.RCSCampaign, error)
	ListByCustomer(ctx context.Context, customerID uint, limit, offset int) ([]*models.RCSCampaign, error)
	Update(ctx context.Context, campaign models.RCSCampaign) error
	UpdateStatus(ctx context.Context, id uint, status models.RCSCampaignStatus) error
}

// WalletRepository defines operations for wallets
type WalletRepository interface {
	Repository[models.Wallet, models.WalletFilter]
	ByCustomerID(ctx context.Context, customerID uint) (*models.Wallet, error)
	// Debit decreases the balance only when it covers the amount. It reports
	// whether the debit was applied.
	Debit(ctx context.Context, walletID uint, amount uint64) (bool, error)
	Credit(ctx context.Context, walletID uint, amount uint64) error
}

// TransactionRepository defines operations for wallet transactions
type TransactionRepository interface {
	Repository[models.Transaction, models.TransactionFilter]
	ListByWallet(ctx context.Context, walletID uint, limit, offset int) ([]*models.Transaction, error)
}

// AuditLogRepository defines operations for audit logs
type AuditLogRepository interface {
	Repository[models.AuditLog, models.AuditLogFilter]
	ListByCustomer(ctx context.Context, customerID uint, limit, offset int) ([]*models.AuditLog, error)
	ListByAction(ctx context.Context, action string, limit, offset int) ([]*models.AuditLog, error)
	ListFailedActions(ctx context.Context, limit, offset int) ([]*models.AuditLog, error)
}

// MediaAssetRepository defines operations for media assets
type MediaAssetRepository interface {
	Repository[models.MediaAsset, models.MediaAssetFilter]
	ByUUID(ctx context.Context, uuid uuid.UUID) (*models.MediaAsset, error)
	ListByCustomer(ctx context.Context, customerID uint, limit, offset int) ([]*models.MediaAsset, error)
	Delete(ctx context.Context, id uint) error
}
