package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rcsuite/console/config"
	"github.com/rcsuite/console/models"
	"github.com/rcsuite/console/utils"
)

// RCSService dispatches composed messages to the RCS backend
type RCSService interface {
	SendBulk(ctx context.Context, req SendBulkRequest) error
}

// SendBulkRequest is the request payload for the send API
type SendBulkRequest struct {
	PhoneNumbers []string               `json:"phoneNumbers"`
	TemplateID   string                 `json:"templateId"`
	Type         models.TemplateType    `json:"type"`
	UserID       string                 `json:"userId"`
	CampaignName string                 `json:"campaignName"`
	Content      models.TemplateContent `json:"content"`
}

// sendBulkResponse is the response payload from the send API
type sendBulkResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// RCSServiceImpl implements RCSService
type RCSServiceImpl struct {
	config *config.RCSConfig
	client *http.Client
}

// NewRCSService creates a new RCS service instance
func NewRCSService(cfg *config.RCSConfig) RCSService {
	return &RCSServiceImpl{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// SendBulk sends one message to multiple recipients in a single API call
func (s *RCSServiceImpl) SendBulk(ctx context.Context, req SendBulkRequest) error {
	if len(req.PhoneNumbers) == 0 {
		return nil
	}

	requestBody, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal send request: %w", err)
	}

	url := fmt.Sprintf("https://%s/api/v1/messages/send", s.config.ProviderDomain)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", s.config.APIKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send bulk request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("send request rejected: status %d", resp.StatusCode)
	}

	var result sendBulkResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode send response: %w", err)
	}
	if result.Status != "" && result.Status != "ACCEPTED" && result.Status != "OK" {
		return fmt.Errorf("send rejected: %s (%s)", result.Status, result.Message)
	}

	return nil
}

// MockRCSService implements RCSService for testing
type MockRCSService struct {
	SentRequests []MockSendRequest
	Err          error
}

// MockSendRequest records one send invocation
type MockSendRequest struct {
	Request SendBulkRequest
	SentAt  time.Time
}

// NewMockRCSService creates a new mock RCS service
func NewMockRCSService() *MockRCSService {
	return &MockRCSService{
		SentRequests: make([]MockSendRequest, 0),
	}
}

func (m *MockRCSService) SendBulk(ctx context.Context, req SendBulkRequest) error {
	if m.Err != nil {
		return m.Err
	}
	m.SentRequests = append(m.SentRequests, MockSendRequest{
		Request: req,
		SentAt:  utils.UTCNow(),
	})
	return nil
}
