package dto

import (
	"time"
)

// CreateCampaignRequest represents the request to create a new RCS campaign
type CreateCampaignRequest struct {
	CustomerID   uint       `json:"-"`
	CampaignName *string    `json:"campaign_name,omitempty"`
	TemplateUUID *string    `json:"template_uuid,omitempty"`
	ScheduleAt   *time.Time `json:"schedule_at,omitempty"`
	Budget       *uint64    `json:"budget,omitempty"`
}

// CreateCampaignResponse represents the response to a campaign creation
type CreateCampaignResponse struct {
	UUID string `json:"uuid"`
}

// UpdateCampaignRequest represents the request to update an existing campaign
type UpdateCampaignRequest struct {
	CustomerID   uint       `json:"-"`
	UUID         string     `json:"-"`
	CampaignName *string    `json:"campaign_name,omitempty"`
	TemplateUUID *string    `json:"template_uuid,omitempty"`
	ScheduleAt   *time.Time `json:"schedule_at,omitempty"`
	Budget       *uint64    `json:"budget,omitempty"`
}

// GetCampaignRequest identifies one campaign to fetch
type GetCampaignRequest struct {
	CustomerID uint   `json:"-"`
	UUID       string `json:"-"`
}

// CampaignDTO represents an RCS campaign in responses
type CampaignDTO struct {
	UUID           string     `json:"uuid"`
	Status         string     `json:"status"`
	CampaignName   *string    `json:"campaign_name,omitempty"`
	TemplateUUID   *string    `json:"template_uuid,omitempty"`
	ScheduleAt     *time.Time `json:"schedule_at,omitempty"`
	Budget         *uint64    `json:"budget,omitempty"`
	RecipientCount int        `json:"recipient_count"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// ListCampaignsRequest represents a campaign list page request
type ListCampaignsRequest struct {
	CustomerID uint `json:"-"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
}

// ListCampaignsResponse represents one campaign list page
type ListCampaignsResponse struct {
	Campaigns []CampaignDTO `json:"campaigns"`
	Total     int64         `json:"total"`
	Page      int           `json:"page"`
	PageSize  int           `json:"page_size"`
}

// SendCampaignRequest asks for campaign dispatch to the capable roster
type SendCampaignRequest struct {
	CustomerID uint   `json:"-"`
	UUID       string `json:"-"`
}

// SendCampaignResponse reports dispatch outcome
type SendCampaignResponse struct {
	UUID           string `json:"uuid"`
	Status         string `json:"status"`
	RecipientCount int    `json:"recipient_count"`
	ChargedAmount  uint64 `json:"charged_amount"`
}

// GetWalletBalanceRequest asks for the customer's spendable balance
type GetWalletBalanceRequest struct {
	CustomerID uint `json:"-"`
}

// GetWalletBalanceResponse carries the wallet balance
type GetWalletBalanceResponse struct {
	Balance  uint64 `json:"balance"`
	Currency string `json:"currency"`
}
