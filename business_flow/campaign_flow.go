// Package businessflow contains the core business logic and use cases for campaign workflows
package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rcsuite/console/app/dto"
	"github.com/rcsuite/console/app/services"
	"github.com/rcsuite/console/config"
	"github.com/rcsuite/console/models"
	"github.com/rcsuite/console/repository"
	"github.com/rcsuite/console/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CampaignFlow handles the RCS campaign business logic
type CampaignFlow interface {
	CreateCampaign(ctx context.Context, req *dto.CreateCampaignRequest, metadata *ClientMetadata) (*dto.CreateCampaignResponse, error)
	UpdateCampaign(ctx context.Context, req *dto.UpdateCampaignRequest, metadata *ClientMetadata) (*dto.CampaignDTO, error)
	GetCampaign(ctx context.Context, req *dto.GetCampaignRequest) (*dto.CampaignDTO, error)
	ListCampaigns(ctx context.Context, req *dto.ListCampaignsRequest, metadata *ClientMetadata) (*dto.ListCampaignsResponse, error)
	SendCampaign(ctx context.Context, req *dto.SendCampaignRequest, metadata *ClientMetadata) (*dto.SendCampaignResponse, error)
	GetWalletBalance(ctx context.Context, req *dto.GetWalletBalanceRequest) (*dto.GetWalletBalanceResponse, error)
}

// CampaignFlowImpl implements the campaign business flow
type CampaignFlowImpl struct {
	campaignRepo    repository.RCSCampaignRepository
	templateRepo    repository.MessageTemplateRepository
	contactRepo     repository.ContactRepository
	customerRepo    repository.CustomerRepository
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
	auditRepo       repository.AuditLogRepository
	rcsService      services.RCSService
	db              *gorm.DB
	messagePrice    uint64
}

// NewCampaignFlow creates a new campaign flow instance
func NewCampaignFlow(
	campaignRepo repository.RCSCampaignRepository,
	templateRepo repository.MessageTemplateRepository,
	contactRepo repository.ContactRepository,
	customerRepo repository.CustomerRepository,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	auditRepo repository.AuditLogRepository,
	rcsService services.RCSService,
	cfg *config.RCSConfig,
	db *gorm.DB,
) CampaignFlow {
	return &CampaignFlowImpl{
		campaignRepo:    campaignRepo,
		templateRepo:    templateRepo,
		contactRepo:     contactRepo,
		customerRepo:    customerRepo,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		auditRepo:       auditRepo,
		rcsService:      rcsService,
		db:              db,
		messagePrice:    cfg.MessagePrice,
	}
}

// CreateCampaign freezes the capable roster into a new campaign
func (f *CampaignFlowImpl) CreateCampaign(ctx context.Context, req *dto.CreateCampaignRequest, metadata *ClientMetadata) (*dto.CreateCampaignResponse, error) {
	customer, err := f.activeCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	if req.CampaignName == nil || *req.CampaignName == "" {
		return nil, NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign name is required", ErrCampaignNameRequired)
	}
	if req.ScheduleAt != nil && req.ScheduleAt.Before(time.Now().UTC().Add(time.Minute)) {
		return nil, NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Schedule time is too soon", ErrScheduleTimeTooSoon)
	}

	spec := models.RCSCampaignSpec{
		CampaignName: req.CampaignName,
		ScheduleAt:   req.ScheduleAt,
		Budget:       req.Budget,
	}
	if req.TemplateUUID != nil {
		template, err := f.ownedTemplate(ctx, customer.ID, *req.TemplateUUID)
		if err != nil {
			return nil, err
		}
		templateUUID := template.UUID.String()
		spec.TemplateUUID = &templateUUID
		spec.Type = &template.Type
		spec.Content = &template.Content
	}

	// Recipients are frozen at creation time to the numbers with a
	// positive capability verdict.
	numbers, err := f.contactRepo.CapableNumbersByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_CREATION_FAILED", "Failed to load roster", err)
	}
	if len(numbers) == 0 {
		return nil, NewBusinessError("CAMPAIGN_NO_RECIPIENTS", "No capable recipients in roster", ErrCampaignNoRecipients)
	}

	campaign := &models.RCSCampaign{
		UUID:         uuid.New(),
		CustomerID:   customer.ID,
		Status:       models.RCSCampaignStatusInitiated,
		Spec:         spec,
		PhoneNumbers: numbers,
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		return f.campaignRepo.Save(txCtx, campaign)
	})
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_CREATION_FAILED", "Campaign creation failed", err)
	}

	msg := fmt.Sprintf("Campaign created: %s (%d recipients)", campaign.UUID.String(), len(numbers))
	_ = f.createAuditLog(ctx, customer, models.AuditActionCampaignCreated, msg, true, nil, metadata)

	return &dto.CreateCampaignResponse{UUID: campaign.UUID.String()}, nil
}

// UpdateCampaign applies a partial update while the campaign is still initiated
func (f *CampaignFlowImpl) UpdateCampaign(ctx context.Context, req *dto.UpdateCampaignRequest, metadata *ClientMetadata) (*dto.CampaignDTO, error) {
	customer, err := f.activeCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	campaign, err := f.ownedCampaign(ctx, customer.ID, req.UUID)
	if err != nil {
		return nil, err
	}

	if campaign.Status != models.RCSCampaignStatusInitiated {
		return nil, NewBusinessError("CAMPAIGN_UPDATE_NOT_ALLOWED", "Campaign can no longer be updated", ErrCampaignUpdateNotAllowed)
	}

	if req.CampaignName != nil {
		if *req.CampaignName == "" {
			return nil, NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign name is required", ErrCampaignNameRequired)
		}
		campaign.Spec.CampaignName = req.CampaignName
	}
	if req.ScheduleAt != nil {
		if req.ScheduleAt.Before(time.Now().UTC().Add(time.Minute)) {
			return nil, NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Schedule time is too soon", ErrScheduleTimeTooSoon)
		}
		campaign.Spec.ScheduleAt = req.ScheduleAt
	}
	if req.Budget != nil {
		campaign.Spec.Budget = req.Budget
	}
	if req.TemplateUUID != nil {
		template, err := f.ownedTemplate(ctx, customer.ID, *req.TemplateUUID)
		if err != nil {
			return nil, err
		}
		templateUUID := template.UUID.String()
		campaign.Spec.TemplateUUID = &templateUUID
		campaign.Spec.Type = &template.Type
		campaign.Spec.Content = &template.Content
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		return f.campaignRepo.Update(txCtx, *campaign)
	})
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_UPDATE_FAILED", "Campaign update failed", err)
	}

	msg := fmt.Sprintf("Campaign updated: %s", campaign.UUID.String())
	_ = f.createAuditLog(ctx, customer, models.AuditActionCampaignUpdated, msg, true, nil, metadata)

	result := toCampaignDTO(*campaign)
	return &result, nil
}

// GetCampaign fetches one campaign with ownership enforcement
func (f *CampaignFlowImpl) GetCampaign(ctx context.Context, req *dto.GetCampaignRequest) (*dto.CampaignDTO, error) {
	campaign, err := f.ownedCampaign(ctx, req.CustomerID, req.UUID)
	if err != nil {
		return nil, err
	}

	result := toCampaignDTO(*campaign)
	return &result, nil
}

// ListCampaigns returns one campaign page
func (f *CampaignFlowImpl) ListCampaigns(ctx context.Context, req *dto.ListCampaignsRequest, metadata *ClientMetadata) (*dto.ListCampaignsResponse, error) {
	page, pageSize, err := normalizePage(req.Page, req.PageSize)
	if err != nil {
		return nil, NewBusinessError("INVALID_PAGINATION", "Invalid pagination parameters", err)
	}

	campaigns, err := f.campaignRepo.ListByCustomer(ctx, req.CustomerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LIST_FAILED", "Failed to list campaigns", err)
	}

	total, err := f.campaignRepo.Count(ctx, models.RCSCampaignFilter{CustomerID: &req.CustomerID})
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_COUNT_FAILED", "Failed to count campaigns", err)
	}

	dtos := make([]dto.CampaignDTO, 0, len(campaigns))
	for _, c := range campaigns {
		dtos = append(dtos, toCampaignDTO(*c))
	}

	return &dto.ListCampaignsResponse{
		Campaigns: dtos,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}, nil
}

// SendCampaign dispatches the campaign to its frozen recipients and charges
// the wallet. The debit happens before the provider call so a failed charge
// never results in free traffic; a failed provider call refunds the wallet.
func (f *CampaignFlowImpl) SendCampaign(ctx context.Context, req *dto.SendCampaignRequest, metadata *ClientMetadata) (*dto.SendCampaignResponse, error) {
	customer, err := f.activeCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	campaign, err := f.ownedCampaign(ctx, customer.ID, req.UUID)
	if err != nil {
		return nil, err
	}

	if campaign.Status == models.RCSCampaignStatusSent || campaign.Status == models.RCSCampaignStatusInProgress {
		return nil, NewBusinessError("CAMPAIGN_ALREADY_SENT", "Campaign has already been sent", ErrCampaignAlreadySent)
	}
	if len(campaign.PhoneNumbers) == 0 {
		return nil, NewBusinessError("CAMPAIGN_NO_RECIPIENTS", "Campaign has no recipients", ErrCampaignNoRecipients)
	}
	if campaign.Spec.Type == nil || campaign.Spec.Content == nil {
		return nil, NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign has no message content", ErrTemplateNotFound)
	}

	wallet, err := f.walletRepo.ByCustomerID(ctx, customer.ID)
	if err != nil {
		return nil, NewBusinessError("WALLET_LOOKUP_FAILED", "Failed to lookup wallet", err)
	}
	if wallet == nil {
		return nil, NewBusinessError("WALLET_NOT_FOUND", "Wallet not found", ErrWalletNotFound)
	}

	amount := f.messagePrice * uint64(len(campaign.PhoneNumbers))

	debited, err := f.walletRepo.Debit(ctx, wallet.ID, amount)
	if err != nil {
		return nil, NewBusinessError("WALLET_DEBIT_FAILED", "Failed to debit wallet", err)
	}
	if !debited {
		return nil, NewBusinessError("INSUFFICIENT_FUNDS", "Wallet balance does not cover the campaign", ErrInsufficientFunds)
	}

	campaignName := ""
	if campaign.Spec.CampaignName != nil {
		campaignName = *campaign.Spec.CampaignName
	}
	templateID := ""
	if campaign.Spec.TemplateUUID != nil {
		templateID = *campaign.Spec.TemplateUUID
	}

	sendErr := f.rcsService.SendBulk(ctx, services.SendBulkRequest{
		PhoneNumbers: campaign.PhoneNumbers,
		TemplateID:   templateID,
		Type:         *campaign.Spec.Type,
		UserID:       customer.RCSAccountID,
		CampaignName: campaignName,
		Content:      *campaign.Spec.Content,
	})
	if sendErr != nil {
		if creditErr := f.walletRepo.Credit(ctx, wallet.ID, amount); creditErr == nil {
			_ = f.recordTransaction(ctx, wallet.ID, models.TransactionTypeCredit, amount, campaign.UUID, "refund")
		}
		errMsg := sendErr.Error()
		msg := fmt.Sprintf("Campaign send failed: %s", campaign.UUID.String())
		_ = f.createAuditLog(ctx, customer, models.AuditActionCampaignSendFailed, msg, false, &errMsg, metadata)
		return nil, NewBusinessError("CAMPAIGN_SEND_FAILED", "Campaign dispatch failed", sendErr)
	}

	_ = f.recordTransaction(ctx, wallet.ID, models.TransactionTypeDebit, amount, campaign.UUID, "campaign send")

	now := time.Now().UTC()
	campaign.Status = models.RCSCampaignStatusInProgress
	campaign.SentAt = &now
	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		return f.campaignRepo.Update(txCtx, *campaign)
	})
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_UPDATE_FAILED", "Failed to record campaign dispatch", err)
	}

	msg := fmt.Sprintf("Campaign sent: %s (%d recipients, charged %d)", campaign.UUID.String(), len(campaign.PhoneNumbers), amount)
	_ = f.createAuditLog(ctx, customer, models.AuditActionCampaignSent, msg, true, nil, metadata)

	return &dto.SendCampaignResponse{
		UUID:           campaign.UUID.String(),
		Status:         campaign.Status.String(),
		RecipientCount: len(campaign.PhoneNumbers),
		ChargedAmount:  amount,
	}, nil
}

// GetWalletBalance returns the customer's spendable balance
func (f *CampaignFlowImpl) GetWalletBalance(ctx context.Context, req *dto.GetWalletBalanceRequest) (*dto.GetWalletBalanceResponse, error) {
	wallet, err := f.walletRepo.ByCustomerID(ctx, req.CustomerID)
	if err != nil {
		return nil, NewBusinessError("WALLET_LOOKUP_FAILED", "Failed to lookup wallet", err)
	}
	if wallet == nil {
		return nil, NewBusinessError("WALLET_NOT_FOUND", "Wallet not found", ErrWalletNotFound)
	}

	currency := wallet.Currency
	if currency == "" {
		currency = utils.INRCurrency
	}

	return &dto.GetWalletBalanceResponse{
		Balance:  wallet.Balance,
		Currency: currency,
	}, nil
}

func (f *CampaignFlowImpl) recordTransaction(ctx context.Context, walletID uint, txType models.TransactionType, amount uint64, campaignUUID uuid.UUID, reason string) error {
	meta, _ := json.Marshal(map[string]string{
		"campaign_uuid": campaignUUID.String(),
		"reason":        reason,
	})

	return f.transactionRepo.Save(ctx, &models.Transaction{
		UUID:     uuid.New(),
		WalletID: walletID,
		Type:     txType,
		Amount:   amount,
		Metadata: meta,
	})
}

func toCampaignDTO(campaign models.RCSCampaign) dto.CampaignDTO {
	updatedAt := campaign.UpdatedAt
	return dto.CampaignDTO{
		UUID:           campaign.UUID.String(),
		Status:         campaign.Status.String(),
		CampaignName:   campaign.Spec.CampaignName,
		TemplateUUID:   campaign.Spec.TemplateUUID,
		ScheduleAt:     campaign.Spec.ScheduleAt,
		Budget:         campaign.Spec.Budget,
		RecipientCount: len(campaign.PhoneNumbers),
		CreatedAt:      campaign.CreatedAt,
		UpdatedAt:      &updatedAt,
	}
}

// ownedCampaign loads a campaign by UUID and verifies ownership
func (f *CampaignFlowImpl) ownedCampaign(ctx context.Context, customerID uint, campaignUUID string) (*models.RCSCampaign, error) {
	campaign, err := f.campaignRepo.ByUUID(ctx, campaignUUID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}
	if campaign.CustomerID != customerID {
		return nil, NewBusinessError("CAMPAIGN_ACCESS_DENIED", "Campaign access denied", ErrCampaignAccessDenied)
	}
	return campaign, nil
}

// ownedTemplate loads a template by UUID and verifies ownership
func (f *CampaignFlowImpl) ownedTemplate(ctx context.Context, customerID uint, templateUUID string) (*models.MessageTemplate, error) {
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
func (f *CampaignFlowImpl) activeCustomer(ctx context.Context, customerID uint) (*models.Customer, error) {
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

func (f *CampaignFlowImpl) createAuditLog(ctx context.Context, customer *models.Customer, action, description string, success bool, errorMsg *string, metadata *ClientMetadata) error {
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
