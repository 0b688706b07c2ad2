package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// RCSCampaignStatus represents the status of an RCS campaign
type RCSCampaignStatus string

const (
	RCSCampaignStatusInitiated          RCSCampaignStatus = "initiated"
	RCSCampaignStatusInProgress         RCSCampaignStatus = "in-progress"
	RCSCampaignStatusWaitingForApproval RCSCampaignStatus = "waiting-for-approval"
	RCSCampaignStatusApproved           RCSCampaignStatus = "approved"
	RCSCampaignStatusRejected           RCSCampaignStatus = "rejected"
	RCSCampaignStatusSent               RCSCampaignStatus = "sent"
)

// String returns the string representation of the status
func (s RCSCampaignStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s RCSCampaignStatus) Valid() bool {
	switch s {
	case RCSCampaignStatusInitiated, RCSCampaignStatusInProgress,
		RCSCampaignStatusWaitingForApproval, RCSCampaignStatusApproved,
		RCSCampaignStatusRejected, RCSCampaignStatusSent:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for RCSCampaignStatus
func (s *RCSCampaignStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = RCSCampaignStatus(v)
	case []byte:
		*s = RCSCampaignStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into RCSCampaignStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for RCSCampaignStatus
func (s RCSCampaignStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid RCSCampaignStatus: %s", s)
	}
	return string(s), nil
}

// RCSCampaignSpec represents the JSON specification for an RCS campaign
type RCSCampaignSpec struct {
	CampaignName *string `json:"campaign_name,omitempty"`

	// Message content: either a template reference or an inline content
	// structure matching the template type.
	TemplateUUID *string          `json:"template_uuid,omitempty"`
	Type         *TemplateType    `json:"type,omitempty"`
	Content      *TemplateContent `json:"content,omitempty"`

	// Scheduling
	ScheduleAt *time.Time `json:"schedule_at,omitempty"`

	// Budget reserved for this campaign, in the wallet currency.
	Budget *uint64 `json:"budget,omitempty"`
}

// Value implements the driver.Valuer interface for RCSCampaignSpec
func (s RCSCampaignSpec) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface for RCSCampaignSpec
func (s *RCSCampaignSpec) Scan(value any) error {
	if value == nil {
		*s = RCSCampaignSpec{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into RCSCampaignSpec", value)
	}

	return json.Unmarshal(bytes, s)
}

// RCSCampaign represents an RCS campaign in the database
type RCSCampaign struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	UUID       uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uk_rcs_campaigns_uuid" json:"uuid"`
	CustomerID uint              `gorm:"not null;index:idx_rcs_campaigns_customer_id" json:"customer_id"`
	Customer   *Customer         `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
	Status     RCSCampaignStatus `gorm:"type:rcs_campaign_status;not null;default:'initiated';index:idx_rcs_campaigns_status" json:"status"`
	Spec       RCSCampaignSpec   `gorm:"type:jsonb;not null" json:"spec"`

	// Recipient numbers frozen at creation time, all canonical.
	PhoneNumbers pq.StringArray `gorm:"type:text[]" json:"phone_numbers"`

	Comment *string `gorm:"type:text" json:"comment,omitempty"`

	SentAt    *time.Time `json:"sent_at,omitempty"`
	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_rcs_campaigns_created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (RCSCampaign) TableName() string {
	return "rcs_campaigns"
}

// RCSCampaignFilter represents filter criteria for campaign queries
type RCSCampaignFilter struct {
	ID           *uint
	UUID         *uuid.UUID
	CustomerID   *uint
	Status       *RCSCampaignStatus
	CampaignName *string
}
