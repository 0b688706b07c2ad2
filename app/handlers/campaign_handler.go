// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"

	"github.com/rcsuite/console/app/dto"
	businessflow "github.com/rcsuite/console/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// CampaignHandlerInterface defines the contract for RCS campaign handlers
type CampaignHandlerInterface interface {
	CreateCampaign(c fiber.Ctx) error
	UpdateCampaign(c fiber.Ctx) error
	GetCampaign(c fiber.Ctx) error
	ListCampaigns(c fiber.Ctx) error
	SendCampaign(c fiber.Ctx) error
	GetWalletBalance(c fiber.Ctx) error
}

// CampaignHandler handles RCS campaign HTTP requests
type CampaignHandler struct {
	campaignFlow businessflow.CampaignFlow
	validator    *validator.Validate
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaignFlow businessflow.CampaignFlow) *CampaignHandler {
	return &CampaignHandler{
		campaignFlow: campaignFlow,
		validator:    validator.New(),
	}
}

func (h *CampaignHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.Err(message, errorCode, details))
}

func (h *CampaignHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.OK(message, data))
}

// CreateCampaign creates a campaign with the capable roster frozen as recipients
// @Summary Create a campaign
// @Tags Campaigns
// @Accept json
// @Produce json
// @Param request body dto.CreateCampaignRequest true "Campaign data"
// @Success 201 {object} dto.APIResponse{data=dto.CreateCampaignResponse} "Campaign created"
// @Failure 400 {object} dto.APIResponse "Validation error or empty roster"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/campaigns [post]
func (h *CampaignHandler) CreateCampaign(c fiber.Ctx) error {
	var req dto.CreateCampaignRequest
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

	result, err := h.campaignFlow.CreateCampaign(createRequestContext(c, "/api/v1/campaigns"), &req, clientMetadata(c))
	if err != nil {
		return h.campaignError(c, err, "Campaign creation failed", "CAMPAIGN_CREATION_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Campaign created successfully", result)
}

// UpdateCampaign applies a partial update while the campaign is still initiated
// @Summary Update a campaign
// @Tags Campaigns
// @Accept json
// @Produce json
// @Param uuid path string true "Campaign UUID"
// @Param request body dto.UpdateCampaignRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.CampaignDTO} "Campaign updated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Update not allowed in current status"
// @Failure 404 {object} dto.APIResponse "Campaign not found"
// @Router /api/v1/campaigns/{uuid} [put]
func (h *CampaignHandler) UpdateCampaign(c fiber.Ctx) error {
	campaignUUID := c.Params("uuid")
	if campaignUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Campaign UUID is required", "MISSING_CAMPAIGN_UUID", nil)
	}

	var req dto.UpdateCampaignRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	customerID, ok := authenticatedCustomerID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}
	req.CustomerID = customerID
	req.UUID = campaignUUID

	result, err := h.campaignFlow.UpdateCampaign(createRequestContext(c, "/api/v1/campaigns/"+campaignUUID), &req, clientMetadata(c))
	if err != nil {
		return h.campaignError(c, err, "Campaign update failed", "CAMPAIGN_UPDATE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Campaign updated successfully", result)
}

// GetCampaign fetches one campaign
// @Summary Get a campaign
// @Tags Campaigns
// @Produce json
// @Param uuid path string true "Campaign UUID"
// @Success 200 {object} dto.APIResponse{data=dto.CampaignDTO} "Campaign"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Campaign belongs to another customer"
// @Failure 404 {object} dto.APIResponse "Campaign not found"
// @Router /api/v1/campaigns/{uuid} [get]
func (h *CampaignHandler) GetCampaign(c fiber.Ctx) error {
	campaignUUID := c.Params("uuid")
	if campaignUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Campaign UUID is required", "MISSING_CAMPAIGN_UUID", nil)
	}

	customerID, ok := authenticatedCustomerID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	req := dto.GetCampaignRequest{CustomerID: customerID, UUID: campaignUUID}
	result, err := h.campaignFlow.GetCampaign(createRequestContext(c, "/api/v1/campaigns/"+campaignUUID), &req)
	if err != nil {
		return h.campaignError(c, err, "Campaign retrieval failed", "CAMPAIGN_RETRIEVAL_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Campaign retrieved successfully", result)
}

// ListCampaigns returns one campaign page
// @Summary List campaigns
// @Tags Campaigns
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 50, max 200)"
// @Success 200 {object} dto.APIResponse{data=dto.ListCampaignsResponse} "Campaign page"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/campaigns [get]
func (h *CampaignHandler) ListCampaigns(c fiber.Ctx) error {
	customerID, ok := authenticatedCustomerID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	req := dto.ListCampaignsRequest{
		CustomerID: customerID,
		Page:       queryInt(c, "page", 0),
		PageSize:   queryInt(c, "page_size", 0),
	}

	result, err := h.campaignFlow.ListCampaigns(createRequestContext(c, "/api/v1/campaigns"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination parameters", "INVALID_PAGINATION", nil)
		}
		return h.campaignError(c, err, "Campaign listing failed", "CAMPAIGN_LIST_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Campaigns retrieved successfully", result)
}

// SendCampaign charges the wallet and dispatches the campaign
// @Summary Send a campaign
// @Description Dispatch the campaign to its frozen recipients. The wallet is debited per recipient before the provider call.
// @Tags Campaigns
// @Produce json
// @Param uuid path string true "Campaign UUID"
// @Success 200 {object} dto.APIResponse{data=dto.SendCampaignResponse} "Campaign dispatched"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 402 {object} dto.APIResponse "Insufficient wallet balance"
// @Failure 403 {object} dto.APIResponse "Campaign belongs to another customer"
// @Failure 404 {object} dto.APIResponse "Campaign not found"
// @Failure 409 {object} dto.APIResponse "Campaign already sent"
// @Failure 502 {object} dto.APIResponse "Provider dispatch failed"
// @Router /api/v1/campaigns/{uuid}/send [post]
func (h *CampaignHandler) SendCampaign(c fiber.Ctx) error {
	campaignUUID := c.Params("uuid")
	if campaignUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Campaign UUID is required", "MISSING_CAMPAIGN_UUID", nil)
	}

	customerID, ok := authenticatedCustomerID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	req := dto.SendCampaignRequest{CustomerID: customerID, UUID: campaignUUID}
	result, err := h.campaignFlow.SendCampaign(createRequestContext(c, "/api/v1/campaigns/"+campaignUUID+"/send"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsInsufficientFunds(err) {
			return h.ErrorResponse(c, fiber.StatusPaymentRequired, "Wallet balance does not cover the campaign", "INSUFFICIENT_FUNDS", nil)
		}
		if businessflow.IsCampaignAlreadySent(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Campaign has already been sent", "CAMPAIGN_ALREADY_SENT", nil)
		}
		if be, ok := err.(*businessflow.BusinessError); ok && be.Code == "CAMPAIGN_SEND_FAILED" {
			return h.ErrorResponse(c, fiber.StatusBadGateway, "Campaign dispatch failed", be.Code, nil)
		}
		return h.campaignError(c, err, "Campaign dispatch failed", "CAMPAIGN_SEND_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Campaign dispatched successfully", result)
}

// GetWalletBalance returns the customer's spendable balance
// @Summary Get wallet balance
// @Tags Campaigns
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.GetWalletBalanceResponse} "Wallet balance"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Wallet not found"
// @Router /api/v1/wallet/balance [get]
func (h *CampaignHandler) GetWalletBalance(c fiber.Ctx) error {
	customerID, ok := authenticatedCustomerID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	req := dto.GetWalletBalanceRequest{CustomerID: customerID}
	result, err := h.campaignFlow.GetWalletBalance(createRequestContext(c, "/api/v1/wallet/balance"), &req)
	if err != nil {
		if businessflow.IsWalletNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Wallet not found", "WALLET_NOT_FOUND", nil)
		}
		return h.campaignError(c, err, "Wallet balance retrieval failed", "WALLET_BALANCE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Wallet balance retrieved successfully", result)
}

// campaignError maps campaign business errors to HTTP responses
func (h *CampaignHandler) campaignError(c fiber.Ctx, err error, fallbackMessage, fallbackCode string) error {
	if businessflow.IsCustomerNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer not found", "CUSTOMER_NOT_FOUND", nil)
	}
	if businessflow.IsAccountInactive(err) {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer account is inactive", "ACCOUNT_INACTIVE", nil)
	}
	if businessflow.IsCampaignNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
	}
	if businessflow.IsCampaignAccessDenied(err) {
		return h.ErrorResponse(c, fiber.StatusForbidden, "Access denied: campaign belongs to another customer", "CAMPAIGN_ACCESS_DENIED", nil)
	}
	if businessflow.IsCampaignUpdateNotAllowed(err) {
		return h.ErrorResponse(c, fiber.StatusForbidden, "Campaign cannot be updated in current status", "CAMPAIGN_UPDATE_NOT_ALLOWED", nil)
	}
	if businessflow.IsCampaignNameRequired(err) || businessflow.IsScheduleTimeTooSoon(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Campaign validation failed", "CAMPAIGN_VALIDATION_FAILED", err.Error())
	}
	if businessflow.IsCampaignNoRecipients(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "No capable recipients in roster", "CAMPAIGN_NO_RECIPIENTS", nil)
	}
	if businessflow.IsTemplateNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Template not found", "TEMPLATE_NOT_FOUND", nil)
	}
	if businessflow.IsTemplateAccessDenied(err) {
		return h.ErrorResponse(c, fiber.StatusForbidden, "Access denied: template belongs to another customer", "TEMPLATE_ACCESS_DENIED", nil)
	}

	log.Println(fallbackMessage, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, fallbackMessage, fallbackCode, nil)
}
