package dto

import (
	"github.com/rcsuite/console/models"
)

// TemplateDTO represents a message template in responses
type TemplateDTO struct {
	UUID      string                 `json:"uuid"`
	Name      string                 `json:"name"`
	Type      string                 `json:"type"`
	Content   models.TemplateContent `json:"content"`
	CreatedAt string                 `json:"created_at"`
	UpdatedAt string                 `json:"updated_at,omitempty"`
}

// CreateTemplateRequest represents the request to create a message template
type CreateTemplateRequest struct {
	CustomerID uint                   `json:"-"`
	Name       string                 `json:"name" validate:"required,max=255"`
	Type       models.TemplateType    `json:"type" validate:"required"`
	Content    models.TemplateContent `json:"content" validate:"required"`
}

// CreateTemplateResponse represents the response to a template creation
type CreateTemplateResponse struct {
	UUID string `json:"uuid"`
}

// UpdateTemplateRequest represents the request to update a message template
type UpdateTemplateRequest struct {
	CustomerID uint                    `json:"-"`
	UUID       string                  `json:"-"`
	Name       *string                 `json:"name,omitempty"`
	Type       *models.TemplateType    `json:"type,omitempty"`
	Content    *models.TemplateContent `json:"content,omitempty"`
}

// DeleteTemplateRequest identifies one template to remove
type DeleteTemplateRequest struct {
	CustomerID uint   `json:"-"`
	UUID       string `json:"-"`
}

// ListTemplatesRequest represents a template list page request
type ListTemplatesRequest struct {
	CustomerID uint `json:"-"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
}

// ListTemplatesResponse represents one template list page
type ListTemplatesResponse struct {
	Templates []TemplateDTO `json:"templates"`
	Total     int64         `json:"total"`
	Page      int           `json:"page"`
	PageSize  int           `json:"page_size"`
}
