// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"

	"github.com/rcsuite/console/app/dto"
	businessflow "github.com/rcsuite/console/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// TemplateHandlerInterface defines the contract for message template handlers
type TemplateHandlerInterface interface {
	CreateTemplate(c fiber.Ctx) error
	UpdateTemplate(c fiber.Ctx) error
	GetTemplate(c fiber.Ctx) error
	ListTemplates(c fiber.Ctx) error
	DeleteTemplate(c fiber.Ctx) error
}

// TemplateHandler handles message template HTTP requests
type TemplateHandler struct {
	templateFlow businessflow.TemplateFlow
	validator    *validator.Validate
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templateFlow businessflow.TemplateFlow) *TemplateHandler {
	return &TemplateHandler{
		templateFlow: templateFlow,
		validator:    validator.New(),
	}
}

func (h *TemplateHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.Err(message, errorCode, details))
}

func (h *TemplateHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.OK(message, data))
}

// CreateTemplate creates a message template
// @Summary Create a template
// @Description Create a message template. Content requirements depend on the type: plain_text, text_with_actions, rich_card, or carousel.
// @Tags Templates
// @Accept json
// @Produce json
// @Param request body dto.CreateTemplateRequest true "Template data"
// @Success 201 {object} dto.APIResponse{data=dto.CreateTemplateResponse} "Template created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/templates [post]
func (h *TemplateHandler) CreateTemplate(c fiber.Ctx) error {
	var req dto.CreateTemplateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	customerID, ok := authenticatedCustomerID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}
	req.CustomerID = customerID

	result, err := h.templateFlow.CreateTemplate(createRequestContext(c, "/api/v1/templates"), &req, clientMetadata(c))
	if err != nil {
		return h.templateError(c, err, "Template creation failed", "TEMPLATE_CREATION_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Template created successfully", result)
}

// UpdateTemplate applies a partial template update
// @Summary Update a template
// @Tags Templates
// @Accept json
// @Produce json
// @Param uuid path string true "Template UUID"
// @Param request body dto.UpdateTemplateRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.TemplateDTO} "Template updated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Template belongs to another customer"
// @Failure 404 {object} dto.APIResponse "Template not found"
// @Router /api/v1/templates/{uuid} [put]
func (h *TemplateHandler) UpdateTemplate(c fiber.Ctx) error {
	templateUUID := c.Params("uuid")
	if templateUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Template UUID is required", "MISSING_TEMPLATE_UUID", nil)
	}

	var req dto.UpdateTemplateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	customerID, ok := authenticatedCustomerID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}
	req.CustomerID = customerID
	req.UUID = templateUUID

	result, err := h.templateFlow.UpdateTemplate(createRequestContext(c, "/api/v1/templates/"+templateUUID), &req, clientMetadata(c))
	if err != nil {
		return h.templateError(c, err, "Template update failed", "TEMPLATE_UPDATE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Template updated successfully", result)
}

// GetTemplate fetches one template
// @Summary Get a template
// @Tags Templates
// @Produce json
// @Param uuid path string true "Template UUID"
// @Success 200 {object} dto.APIResponse{data=dto.TemplateDTO} "Template"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Template belongs to another customer"
// @Failure 404 {object} dto.APIResponse "Template not found"
// @Router /api/v1/templates/{uuid} [get]
func (h *TemplateHandler) GetTemplate(c fiber.Ctx) error {
	templateUUID := c.Params("uuid")
	if templateUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Template UUID is required", "MISSING_TEMPLATE_UUID", nil)
	}

	customerID, ok := authenticatedCustomerID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	result, err := h.templateFlow.GetTemplate(createRequestContext(c, "/api/v1/templates/"+templateUUID), customerID, templateUUID)
	if err != nil {
		return h.templateError(c, err, "Template retrieval failed", "TEMPLATE_RETRIEVAL_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Template retrieved successfully", result)
}

// ListTemplates returns one template page
// @Summary List templates
// @Tags Templates
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 50, max 200)"
// @Success 200 {object} dto.APIResponse{data=dto.ListTemplatesResponse} "Template page"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/templates [get]
func (h *TemplateHandler) ListTemplates(c fiber.Ctx) error {
	customerID, ok := authenticatedCustomerID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	req := dto.ListTemplatesRequest{
		CustomerID: customerID,
		Page:       queryInt(c, "page", 0),
		PageSize:   queryInt(c, "page_size", 0),
	}

	result, err := h.templateFlow.ListTemplates(createRequestContext(c, "/api/v1/templates"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination parameters", "INVALID_PAGINATION", nil)
		}
		return h.templateError(c, err, "Template listing failed", "TEMPLATE_LIST_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Templates retrieved successfully", result)
}

// DeleteTemplate removes one template
// @Summary Delete a template
// @Tags Templates
// @Produce json
// @Param uuid path string true "Template UUID"
// @Success 200 {object} dto.APIResponse "Template deleted"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Template belongs to another customer"
// @Failure 404 {object} dto.APIResponse "Template not found"
// @Router /api/v1/templates/{uuid} [delete]
func (h *TemplateHandler) DeleteTemplate(c fiber.Ctx) error {
	templateUUID := c.Params("uuid")
	if templateUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Template UUID is required", "MISSING_TEMPLATE_UUID", nil)
	}

	customerID, ok := authenticatedCustomerID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	req := dto.DeleteTemplateRequest{CustomerID: customerID, UUID: templateUUID}
	err := h.templateFlow.DeleteTemplate(createRequestContext(c, "/api/v1/templates/"+templateUUID), &req, clientMetadata(c))
	if err != nil {
		return h.templateError(c, err, "Template deletion failed", "TEMPLATE_DELETE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Template deleted successfully", nil)
}

// templateError maps template business errors to HTTP responses
func (h *TemplateHandler) templateError(c fiber.Ctx, err error, fallbackMessage, fallbackCode string) error {
	if businessflow.IsCustomerNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer not found", "CUSTOMER_NOT_FOUND", nil)
	}
	if businessflow.IsAccountInactive(err) {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer account is inactive", "ACCOUNT_INACTIVE", nil)
	}
	if businessflow.IsTemplateNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Template not found", "TEMPLATE_NOT_FOUND", nil)
	}
	if businessflow.IsTemplateAccessDenied(err) {
		return h.ErrorResponse(c, fiber.StatusForbidden, "Access denied: template belongs to another customer", "TEMPLATE_ACCESS_DENIED", nil)
	}
	if businessflow.IsTemplateNameRequired(err) || businessflow.IsTemplateTextRequired(err) ||
		businessflow.IsTemplateInvalidType(err) || businessflow.IsSuggestionsRequired(err) ||
		businessflow.IsCardTitleRequired(err) || businessflow.IsCardMediaRequired(err) ||
		businessflow.IsCarouselCardsRequired(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Template validation failed", "TEMPLATE_VALIDATION_FAILED", err.Error())
	}

	log.Println(fallbackMessage, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, fallbackMessage, fallbackCode, nil)
}
