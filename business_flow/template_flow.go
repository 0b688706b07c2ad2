// Package businessflow contains the core business logic and use cases for template workflows
package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/rcsuite/console/app/dto"
	"github.com/rcsuite/console/models"
	"github.com/rcsuite/console/repository"
	"github.com/rcsuite/console/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TemplateFlow handles the message template business logic
type TemplateFlow interface {
	CreateTemplate(ctx context.Context, req *dto.CreateTemplateRequest, metadata *ClientMetadata) (*dto.CreateTemplateResponse, error)
	UpdateTemplate(ctx context.Context, req *dto.UpdateTemplateRequest, metadata *ClientMetadata) (*dto.TemplateDTO, error)
	GetTemplate(ctx context.Context, customerID uint, templateUUID string) (*dto.TemplateDTO, error)
	ListTemplates(ctx context.Context, req *dto.ListTemplatesRequest, metadata *ClientMetadata) (*dto.ListTemplatesResponse, error)
	DeleteTemplate(ctx context.Context, req *dto.DeleteTemplateRequest, metadata *ClientMetadata) error
}

// TemplateFlowImpl implements the template business flow
type TemplateFlowImpl struct {
	templateRepo repository.MessageTemplateRepository
	customerRepo repository.CustomerRepository
	auditRepo    repository.AuditLogRepository
	db           *gorm.DB
}

// NewTemplateFlow creates a new template flow instance
func NewTemplateFlow(
	templateRepo repository.MessageTemplateRepository,
	customerRepo repository.CustomerRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) TemplateFlow {
	return &TemplateFlowImpl{
		templateRepo: templateRepo,
		customerRepo: customerRepo,
		auditRepo:    auditRepo,
		db:           db,
	}
}

// CreateTemplate validates the type-specific content and stores the template
func (f *TemplateFlowImpl) CreateTemplate(ctx context.Context, req *dto.CreateTemplateRequest, metadata *ClientMetadata) (*dto.CreateTemplateResponse, error) {
	customer, err := f.activeCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, NewBusinessError("TEMPLATE_VALIDATION_FAILED", "Template name is required", ErrTemplateNameRequired)
	}
	if err := ValidateTemplateContent(req.Type, req.Content); err != nil {
		return nil, NewBusinessError("TEMPLATE_VALIDATION_FAILED", "Template validation failed", err)
	}

	template := &models.MessageTemplate{
		UUID:       uuid.New(),
		CustomerID: customer.ID,
		Name:       req.Name,
		Type:       req.Type,
		Content:    req.Content,
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		return f.templateRepo.Save(txCtx, template)
	})
	if err != nil {
		return nil, NewBusinessError("TEMPLATE_CREATION_FAILED", "Template creation failed", err)
	}

	msg := fmt.Sprintf("Template created: %s", template.UUID.String())
	_ = f.createAuditLog(ctx, customer, models.AuditActionTemplateCreated, msg, true, nil, metadata)

	return &dto.CreateTemplateResponse{UUID: template.UUID.String()}, nil
}

// UpdateTemplate applies a partial update after re-validating the content
func (f *TemplateFlowImpl) UpdateTemplate(ctx context.Context, req *dto.UpdateTemplateRequest, metadata *ClientMetadata) (*dto.TemplateDTO, error) {
	customer, err := f.activeCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	template, err := f.ownedTemplate(ctx, customer.ID, req.UUID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, NewBusinessError("TEMPLATE_VALIDATION_FAILED", "Template name is required", ErrTemplateNameRequired)
		}
		template.Name = *req.Name
	}
	if req.Type != nil {
		template.Type = *req.Type
	}
	if req.Content != nil {
		template.Content = *req.Content
	}
	if err := ValidateTemplateContent(template.Type, template.Content); err != nil {
		return nil, NewBusinessError("TEMPLATE_VALIDATION_FAILED", "Template validation failed", err)
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		return f.templateRepo.Update(txCtx, *template)
	})
	if err != nil {
		return nil, NewBusinessError("TEMPLATE_UPDATE_FAILED", "Template update failed", err)
	}

	msg := fmt.Sprintf("Template updated: %s", template.UUID.String())
	_ = f.createAuditLog(ctx, customer, models.AuditActionTemplateUpdated, msg, true, nil, metadata)

	result := toTemplateDTO(*template)
	return &result, nil
}

// GetTemplate fetches one template with ownership enforcement
func (f *TemplateFlowImpl) GetTemplate(ctx context.Context, customerID uint, templateUUID string) (*dto.TemplateDTO, error) {
	template, err := f.ownedTemplate(ctx, customerID, templateUUID)
	if err != nil {
		return nil, err
	}

	result := toTemplateDTO(*template)
	return &result, nil
}

// ListTemplates returns one template page
func (f *TemplateFlowImpl) ListTemplates(ctx context.Context, req *dto.ListTemplatesRequest, metadata *ClientMetadata) (*dto.ListTemplatesResponse, error) {
	page, pageSize, err := normalizePage(req.Page, req.PageSize)
	if err != nil {
		return nil, NewBusinessError("INVALID_PAGINATION", "Invalid pagination parameters", err)
	}

	templates, err := f.templateRepo.ListByCustomer(ctx, req.CustomerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("TEMPLATE_LIST_FAILED", "Failed to list templates", err)
	}

	total, err := f.templateRepo.Count(ctx, models.MessageTemplateFilter{CustomerID: &req.CustomerID})
	if err != nil {
		return nil, NewBusinessError("TEMPLATE_COUNT_FAILED", "Failed to count templates", err)
	}

	dtos := make([]dto.TemplateDTO, 0, len(templates))
	for _, t := range templates {
		dtos = append(dtos, toTemplateDTO(*t))
	}

	return &dto.ListTemplatesResponse{
		Templates: dtos,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}, nil
}

// DeleteTemplate removes one template
func (f *TemplateFlowImpl) DeleteTemplate(ctx context.Context, req *dto.DeleteTemplateRequest, metadata *ClientMetadata) error {
	customer, err := f.activeCustomer(ctx, req.CustomerID)
	if err != nil {
		return err
	}

	template, err := f.ownedTemplate(ctx, customer.ID, req.UUID)
	if err != nil {
		return err
	}

	if err := f.templateRepo.Delete(ctx, template.ID); err != nil {
		return NewBusinessError("TEMPLATE_DELETE_FAILED", "Failed to delete template", err)
	}

	msg := fmt.Sprintf("Template deleted: %s", req.UUID)
	_ = f.createAuditLog(ctx, customer, models.AuditActionTemplateDeleted, msg, true, nil, metadata)

	return nil
}

// ValidateTemplateContent enforces the per-type content rules
func ValidateTemplateContent(templateType models.TemplateType, content models.TemplateContent) error {
	if !templateType.Valid() {
		return ErrTemplateInvalidType
	}

	hasText := content.Text != nil && *content.Text != ""

	switch templateType {
	case models.TemplateTypePlainText:
		if !hasText {
			return ErrTemplateTextRequired
		}
	case models.TemplateTypeTextWithActions:
		if !hasText {
			return ErrTemplateTextRequired
		}
		if len(content.Suggestions) == 0 {
			return ErrSuggestionsRequired
		}
	case models.TemplateTypeRichCard:
		if content.CardTitle == nil || *content.CardTitle == "" {
			return ErrCardTitleRequired
		}
		if content.CardMedia == nil || *content.CardMedia == "" {
			return ErrCardMediaRequired
		}
	case models.TemplateTypeCarousel:
		if len(content.Contents) < 2 || len(content.Contents) > 10 {
			return ErrCarouselCardsRequired
		}
		for _, card := range content.Contents {
			if card.CardTitle == "" {
				return ErrCardTitleRequired
			}
		}
	}

	return nil
}

func toTemplateDTO(template models.MessageTemplate) dto.TemplateDTO {
	return dto.TemplateDTO{
		UUID:      template.UUID.String(),
		Name:      template.Name,
		Type:      template.Type.String(),
		Content:   template.Content,
		CreatedAt: template.CreatedAt.Format(time.RFC3339),
		UpdatedAt: template.UpdatedAt.Format(time.RFC3339),
	}
}

// ownedTemplate loads a template by UUID and verifies ownership
func (f *TemplateFlowImpl) ownedTemplate(ctx context.Context, customerID uint, templateUUID string) (*models.MessageTemplate, error) {
	template, err := f.templateRepo.ByUUID(ctx, templateUUID)
	if err != nil {
		return nil, NewBusinessError("TEMPLATE_LOOKUP_FAILED", "Failed to lookup template", err)
	}
	if template == nil {
		return nil, NewBusinessError("TEMPLATE_NOT_FOUND", "Template not found", ErrTemplateNotFound)
	}
	if template.CustomerID != customerID {
		return nil, NewBusinessError("TEMPLATE_ACCESS_DENIED", "Template access denied", ErrTemplateAccessDenied)
	}
	return template, nil
}

// activeCustomer loads the customer and rejects inactive accounts
func (f *TemplateFlowImpl) activeCustomer(ctx context.Context, customerID uint) (*models.Customer, error) {
	customer, err := f.customerRepo.ByID(ctx, customerID)
	if err != nil {
		return nil, NewBusinessError("CUSTOMER_LOOKUP_FAILED", "Failed to lookup customer", err)
	}
	if customer == nil {
		return nil, NewBusinessError("CUSTOMER_NOT_FOUND", "Customer not found", ErrCustomerNotFound)
	}
	if !utils.IsTrue(customer.IsActive) {
		return nil, NewBusinessError("CUSTOMER_INACTIVE", "Customer account is inactive", ErrAccountInactive)
	}
	return customer, nil
}

func (f *TemplateFlowImpl) createAuditLog(ctx context.Context, customer *models.Customer, action, description string, success bool, errorMsg *string, metadata *ClientMetadata) error {
	var customerID *uint
	if customer != nil {
		customerID = &customer.ID
	}

	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	audit := &models.AuditLog{
		CustomerID:   customerID,
		Action:       action,
		Description:  &description,
		Success:      utils.ToPtr(success),
		IPAddress:    &ipAddress,
		UserAgent:    &userAgent,
		ErrorMessage: errorMsg,
	}

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		audit.RequestID = &requestID
	}

	return f.auditRepo.Save(ctx, audit)
}
