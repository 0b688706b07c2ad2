// Package businessflow contains the business logic for the application.
package businessflow

import (
	"time"

	"github.com/rcsuite/console/app/dto"
	"github.com/rcsuite/console/models"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds all client-related information for audit logging and session tracking
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	RequestID  string            `json:"request_id,omitempty"`
	SessionID  string            `json:"session_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Additional: make(map[string]string),
	}
}

// AddAdditional adds additional custom information to the metadata
func (cm *ClientMetadata) AddAdditional(key, value string) {
	if cm.Additional == nil {
		cm.Additional = make(map[string]string)
	}
	cm.Additional[key] = value
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// SetSessionID sets the session ID
func (cm *ClientMetadata) SetSessionID(sessionID string) {
	cm.SessionID = sessionID
}

// ToContactDTO converts a contact model to its response DTO
func ToContactDTO(contact models.Contact) dto.ContactDTO {
	d := dto.ContactDTO{
		UUID:     contact.UUID.String(),
		Number:   contact.Number,
		Capable:  contact.Capable,
		Checking: contact.Checking,
		State:    string(contact.State()),
	}
	if contact.Name != nil {
		d.Name = *contact.Name
	}
	if contact.CheckedAt != nil {
		d.CheckedAt = contact.CheckedAt.Format(time.RFC3339)
	}
	return d
}

// ToCustomerDTO converts a customer model to its response DTO
func ToCustomerDTO(customer models.Customer) dto.CustomerDTO {
	return dto.CustomerDTO{
		ID:           customer.ID,
		UUID:         customer.UUID.String(),
		Email:        customer.Email,
		DisplayName:  customer.DisplayName,
		RCSAccountID: customer.RCSAccountID,
		IsActive:     customer.IsActive,
		CreatedAt:    customer.CreatedAt.Format(time.RFC3339),
	}
}

// ToSessionDTO converts a session model to its response DTO
func ToSessionDTO(session models.CustomerSession, accessToken string) dto.SessionDTO {
	return dto.SessionDTO{
		AccessToken:  accessToken,
		RefreshToken: session.RefreshToken,
		ExpiresIn:    int(time.Until(session.ExpiresAt).Seconds()),
		TokenType:    "Bearer",
		CreatedAt:    session.CreatedAt.Format(time.RFC3339),
	}
}
