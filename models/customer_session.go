package models

import (
	"time"
)

// CustomerSession tracks an issued access/refresh token pair.
type CustomerSession struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;index:idx_customer_sessions_customer_id" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`

	RefreshToken string     `gorm:"size:512;not null;uniqueIndex:uk_customer_sessions_refresh_token" json:"-"`
	IPAddress    *string    `gorm:"type:inet" json:"ip_address,omitempty"`
	UserAgent    *string    `gorm:"type:text" json:"user_agent,omitempty"`
	IsActive     *bool      `gorm:"default:true;index:idx_customer_sessions_is_active" json:"is_active"`
	ExpiresAt    time.Time  `gorm:"not null;index:idx_customer_sessions_expires_at" json:"expires_at"`
	RevokedAt    *time.Time `json:"revoked_at,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (CustomerSession) TableName() string {
	return "customer_sessions"
}

// CustomerSessionFilter represents filter criteria for session queries
type CustomerSessionFilter struct {
	ID           *uint
	CustomerID   *uint
	RefreshToken *string
	IsActive     *bool
}
