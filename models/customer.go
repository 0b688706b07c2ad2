package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a console account that owns rosters, templates,
// campaigns and a wallet.
type Customer struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_customers_uuid" json:"uuid"`

	// RCSAccountID is the identifier this customer uses against the RCS
	// backend (capability checks and sends are billed to it).
	RCSAccountID string `gorm:"size:64;not null;uniqueIndex:uk_customers_rcs_account_id" json:"rcs_account_id"`

	Email        string `gorm:"size:255;not null;uniqueIndex:idx_customers_email" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"` // Never serialize password hash
	DisplayName  string `gorm:"size:255;not null" json:"display_name"`

	IsActive *bool `gorm:"default:true;index:idx_customers_is_active" json:"is_active"`

	CreatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_customers_created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	// Relationships
	Sessions  []CustomerSession `gorm:"foreignKey:CustomerID" json:"-"`
	Contacts  []Contact         `gorm:"foreignKey:CustomerID" json:"-"`
	Campaigns []RCSCampaign     `gorm:"foreignKey:CustomerID" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}

// CustomerFilter represents filter criteria for customer queries
type CustomerFilter struct {
	ID           *uint
	UUID         *uuid.UUID
	Email        *string
	RCSAccountID *string
	IsActive     *bool
}
