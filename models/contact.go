// Package models contains domain entities and business models for the RCS console
package models

import (
	"time"

	"github.com/google/uuid"
)

// CapabilityState describes where a contact is in the capability lifecycle.
type CapabilityState string

const (
	CapabilityStateUnknown    CapabilityState = "unknown"
	CapabilityStateChecking   CapabilityState = "checking"
	CapabilityStateCapable    CapabilityState = "capable"
	CapabilityStateNotCapable CapabilityState = "not-capable"
)

// Contact is one roster entry: a canonical phone number plus its RCS
// capability state. Capable is nil while capability is unknown; Checking is
// true while a capability request is in flight for this record.
type Contact struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UUID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_contacts_uuid" json:"uuid"`
	CustomerID uint      `gorm:"not null;index:idx_contacts_customer_id" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`

	Name   *string `gorm:"size:255" json:"name,omitempty"`
	Number string  `gorm:"size:20;not null;index:idx_contacts_number" json:"number"`

	Capable   *bool      `json:"capable"`
	Checking  bool       `gorm:"not null;default:false" json:"checking"`
	CheckedAt *time.Time `json:"checked_at,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_contacts_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Contact) TableName() string {
	return "contacts"
}

// State derives the capability lifecycle state from the stored fields.
func (c *Contact) State() CapabilityState {
	switch {
	case c.Checking:
		return CapabilityStateChecking
	case c.Capable == nil:
		return CapabilityStateUnknown
	case *c.Capable:
		return CapabilityStateCapable
	default:
		return CapabilityStateNotCapable
	}
}

// ContactFilter represents filter criteria for contact queries
type ContactFilter struct {
	ID         *uint
	UUID       *uuid.UUID
	CustomerID *uint
	Number     *string
	Capable    *bool
	Checking   *bool
}
