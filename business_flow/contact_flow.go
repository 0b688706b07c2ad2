// Package businessflow contains the core business logic and use cases for contact roster workflows
package businessflow

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rcsuite/console/app/dto"
	"github.com/rcsuite/console/app/services"
	"github.com/rcsuite/console/config"
	"github.com/rcsuite/console/contactimport"
	"github.com/rcsuite/console/models"
	"github.com/rcsuite/console/repository"
	"github.com/rcsuite/console/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactFlow handles the contact roster business logic: bulk import from
// text or spreadsheets, capability resolution, single-record edits, and
// roster maintenance.
type ContactFlow interface {
	ImportManual(ctx context.Context, req *dto.ImportContactsRequest, metadata *ClientMetadata) (*dto.ImportContactsResponse, error)
	ImportSpreadsheet(ctx context.Context, req *dto.ImportSpreadsheetRequest, metadata *ClientMetadata) (*dto.ImportContactsResponse, error)
	ListContacts(ctx context.Context, req *dto.ListContactsRequest, metadata *ClientMetadata) (*dto.ListContactsResponse, error)
	EditNumber(ctx context.Context, req *dto.EditContactRequest, metadata *ClientMetadata) (*dto.EditContactResponse, error)
	DeleteContact(ctx context.Context, req *dto.DeleteContactRequest, metadata *ClientMetadata) error
	RemoveDuplicates(ctx context.Context, req *dto.RemoveDuplicatesRequest, metadata *ClientMetadata) (*dto.RemoveDuplicatesResponse, error)
	ClearContacts(ctx context.Context, req *dto.ClearContactsRequest, metadata *ClientMetadata) (*dto.ClearContactsResponse, error)
	TemplateWorkbook(ctx context.Context) (*bytes.Buffer, error)
}

// ContactFlowImpl implements the contact roster business flow
type ContactFlowImpl struct {
	contactRepo   repository.ContactRepository
	customerRepo  repository.CustomerRepository
	auditRepo     repository.AuditLogRepository
	capabilitySvc services.CapabilityService
	db            *gorm.DB

	plan         contactimport.CountryPlan
	chunkSize    int
	checkTimeout time.Duration
	removalDelay time.Duration
}

// NewContactFlow creates a new contact flow instance
func NewContactFlow(
	contactRepo repository.ContactRepository,
	customerRepo repository.CustomerRepository,
	auditRepo repository.AuditLogRepository,
	capabilitySvc services.CapabilityService,
	cfg *config.RCSConfig,
	db *gorm.DB,
) ContactFlow {
	plan := contactimport.CountryPlan{
		CallingCode:    cfg.CountryCallingCode,
		NationalLength: cfg.NationalNumberLength,
	}
	if plan.CallingCode == "" {
		plan = contactimport.DefaultCountryPlan
	}

	return &ContactFlowImpl{
		contactRepo:   contactRepo,
		customerRepo:  customerRepo,
		auditRepo:     auditRepo,
		capabilitySvc: capabilitySvc,
		db:            db,
		plan:          plan,
		chunkSize:     cfg.IngestChunkSize,
		checkTimeout:  cfg.CapabilityTimeout,
		removalDelay:  cfg.NotCapableRemovalDelay,
	}
}

// ImportManual parses the textarea syntax (one "name,number" or bare number
// per line) and imports the numbers that resolve capable.
func (f *ContactFlowImpl) ImportManual(ctx context.Context, req *dto.ImportContactsRequest, metadata *ClientMetadata) (*dto.ImportContactsResponse, error) {
	customer, err := f.activeCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	entries := f.plan.ParseBulk(req.Raw)
	if len(entries) == 0 {
		return nil, NewBusinessError("NO_VALID_NUMBERS", "No valid numbers found", ErrNoValidNumbers)
	}

	return f.importEntries(ctx, customer, entries, metadata)
}

// ImportSpreadsheet reads an uploaded .xlsx/.xls/.csv file, runs the chunked
// ingestor over its rows, and imports the numbers that resolve capable.
func (f *ContactFlowImpl) ImportSpreadsheet(ctx context.Context, req *dto.ImportSpreadsheetRequest, metadata *ClientMetadata) (*dto.ImportContactsResponse, error) {
	customer, err := f.activeCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	rows, err := contactimport.ReadRows(bytes.NewReader(req.Data), req.FileName)
	if err != nil {
		return nil, NewBusinessError("UNSUPPORTED_FILE", "Failed to read uploaded file", fmt.Errorf("%w: %v", ErrUnsupportedFileType, err))
	}

	numbers, err := f.plan.IngestRows(ctx, rows, contactimport.IngestOptions{ChunkSize: f.chunkSize})
	if err != nil {
		return nil, NewBusinessError("INGEST_FAILED", "Spreadsheet ingestion failed", err)
	}
	if len(numbers) == 0 {
		return nil, NewBusinessError("NO_VALID_NUMBERS", "No valid numbers found", ErrNoValidNumbers)
	}

	entries := make([]contactimport.ParsedEntry, 0, len(numbers))
	for _, n := range numbers {
		entries = append(entries, contactimport.ParsedEntry{Number: n})
	}

	return f.importEntries(ctx, customer, entries, metadata)
}

// importEntries runs one capability batch over the candidates and appends
// only the capable ones to the roster. Numbers the service does not vouch
// for are excluded, never stored as capable.
func (f *ContactFlowImpl) importEntries(ctx context.Context, customer *models.Customer, entries []contactimport.ParsedEntry, metadata *ClientMetadata) (*dto.ImportContactsResponse, error) {
	numbers := make([]string, 0, len(entries))
	for _, e := range entries {
		numbers = append(numbers, e.Number)
	}

	checkCtx := ctx
	if f.checkTimeout > 0 {
		var cancel context.CancelFunc
		checkCtx, cancel = context.WithTimeout(ctx, f.checkTimeout)
		defer cancel()
	}

	result, err := f.capabilitySvc.CheckBatch(checkCtx, numbers, customer.RCSAccountID)
	if err != nil {
		errMsg := fmt.Sprintf("Capability check failed: %s", err.Error())
		_ = f.createAuditLog(ctx, customer, models.AuditActionCapabilityCheckFailed, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("CAPABILITY_CHECK_FAILED", "Capability check failed", fmt.Errorf("%w: %v", ErrCapabilityCheckFailed, err))
	}

	existing, err := f.contactRepo.ExistingNumbers(ctx, customer.ID, numbers)
	if err != nil {
		return nil, NewBusinessError("CONTACT_LOOKUP_FAILED", "Failed to check existing contacts", err)
	}

	var contacts []*models.Contact
	now := utils.UTCNow()
	skipped := 0
	rejected := 0
	for _, e := range entries {
		if !result.Capable(e.Number) {
			rejected++
			continue
		}
		if existing[e.Number] {
			skipped++
			continue
		}
		contact := &models.Contact{
			UUID:       uuid.New(),
			CustomerID: customer.ID,
			Number:     e.Number,
			Capable:    utils.ToPtr(true),
			Checking:   false,
			CheckedAt:  &now,
		}
		if e.Name != "" {
			contact.Name = utils.ToPtr(e.Name)
		}
		contacts = append(contacts, contact)
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		return f.contactRepo.SaveBatch(txCtx, contacts)
	})
	if err != nil {
		errMsg := fmt.Sprintf("Contact import failed: %s", err.Error())
		_ = f.createAuditLog(ctx, customer, models.AuditActionContactImportFailed, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("CONTACT_IMPORT_FAILED", "Contact import failed", err)
	}

	msg := fmt.Sprintf("Imported %d contacts (%d duplicates skipped, %d not capable)", len(contacts), skipped, rejected)
	_ = f.createAuditLog(ctx, customer, models.AuditActionContactImportCompleted, msg, true, nil, metadata)

	imported := make([]dto.ContactDTO, 0, len(contacts))
	for _, c := range contacts {
		imported = append(imported, ToContactDTO(*c))
	}

	return &dto.ImportContactsResponse{
		Imported:      imported,
		ImportedCount: len(contacts),
		SkippedCount:  skipped,
		RejectedCount: rejected,
	}, nil
}

// ListContacts returns one roster page
func (f *ContactFlowImpl) ListContacts(ctx context.Context, req *dto.ListContactsRequest, metadata *ClientMetadata) (*dto.ListContactsResponse, error) {
	page, pageSize, err := normalizePage(req.Page, req.PageSize)
	if err != nil {
		return nil, NewBusinessError("INVALID_PAGINATION", "Invalid pagination parameters", err)
	}

	contacts, err := f.contactRepo.ListByCustomer(ctx, req.CustomerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("CONTACT_LIST_FAILED", "Failed to list contacts", err)
	}

	total, err := f.contactRepo.Count(ctx, models.ContactFilter{CustomerID: &req.CustomerID})
	if err != nil {
		return nil, NewBusinessError("CONTACT_COUNT_FAILED", "Failed to count contacts", err)
	}

	dtos := make([]dto.ContactDTO, 0, len(contacts))
	for _, c := range contacts {
		dtos = append(dtos, ToContactDTO(*c))
	}

	return &dto.ListContactsResponse{
		Contacts: dtos,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// EditNumber re-normalizes a single contact's number and re-checks its
// capability. An incomplete value is stored with capability reset and no
// check is issued. A complete value goes through checking=true, a single
// capability call, and a guarded write that only lands if the stored number
// still matches the number the verdict was obtained for. A not-capable
// verdict schedules removal of the record after a short delay.
func (f *ContactFlowImpl) EditNumber(ctx context.Context, req *dto.EditContactRequest, metadata *ClientMetadata) (*dto.EditContactResponse, error) {
	customer, err := f.activeCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	contact, err := f.ownedContact(ctx, customer.ID, req.UUID)
	if err != nil {
		return nil, err
	}

	canonical, complete := f.plan.Normalize(req.Number)
	if !complete {
		// User still typing: store the raw value with capability reset,
		// no check issued.
		if err := f.contactRepo.UpdateNumber(ctx, contact.ID, req.Number); err != nil {
			return nil, NewBusinessError("CONTACT_UPDATE_FAILED", "Failed to update contact", err)
		}
		updated, err := f.contactRepo.ByID(ctx, contact.ID)
		if err != nil || updated == nil {
			return nil, NewBusinessError("CONTACT_LOOKUP_FAILED", "Failed to reload contact", err)
		}
		return &dto.EditContactResponse{Contact: ToContactDTO(*updated)}, nil
	}

	if err := f.contactRepo.UpdateNumber(ctx, contact.ID, canonical); err != nil {
		return nil, NewBusinessError("CONTACT_UPDATE_FAILED", "Failed to update contact", err)
	}
	if err := f.contactRepo.MarkChecking(ctx, []uint{contact.ID}); err != nil {
		return nil, NewBusinessError("CONTACT_UPDATE_FAILED", "Failed to flag contact for checking", err)
	}

	checkCtx := ctx
	if f.checkTimeout > 0 {
		var cancel context.CancelFunc
		checkCtx, cancel = context.WithTimeout(ctx, f.checkTimeout)
		defer cancel()
	}

	capable, err := f.capabilitySvc.CheckSingle(checkCtx, canonical, customer.RCSAccountID)
	if err != nil {
		// Unresolved, not rejected: drop back to unknown.
		_ = f.contactRepo.ResetChecking(ctx, []uint{contact.ID})

		errMsg := fmt.Sprintf("Capability check failed: %s", err.Error())
		_ = f.createAuditLog(ctx, customer, models.AuditActionCapabilityCheckFailed, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("CAPABILITY_CHECK_FAILED", "Capability check failed", fmt.Errorf("%w: %v", ErrCapabilityCheckFailed, err))
	}

	applied, err := f.contactRepo.UpdateCapabilityIfNumberMatches(ctx, contact.ID, canonical, capable, utils.UTCNow())
	if err != nil {
		return nil, NewBusinessError("CONTACT_UPDATE_FAILED", "Failed to apply capability result", err)
	}

	removed := false
	if applied && !capable {
		f.scheduleRemoval(contact.ID, canonical)
		removed = true
	}

	msg := fmt.Sprintf("Contact %s edited, capable=%t, applied=%t", req.UUID, capable, applied)
	_ = f.createAuditLog(ctx, customer, models.AuditActionContactEdited, msg, true, nil, metadata)

	updated, err := f.contactRepo.ByID(ctx, contact.ID)
	if err != nil || updated == nil {
		return nil, NewBusinessError("CONTACT_LOOKUP_FAILED", "Failed to reload contact", err)
	}

	return &dto.EditContactResponse{
		Contact: ToContactDTO(*updated),
		Removed: removed,
	}, nil
}

// scheduleRemoval deletes a not-capable edited record after the configured
// delay so the user sees the rejection before the row disappears. The stored
// number is re-checked at fire time; a newer edit keeps the record.
func (f *ContactFlowImpl) scheduleRemoval(contactID uint, number string) {
	delay := f.removalDelay
	if delay <= 0 {
		delay = time.Second
	}

	time.AfterFunc(delay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		contact, err := f.contactRepo.ByID(ctx, contactID)
		if err != nil || contact == nil {
			return
		}
		if contact.Number != number {
			return
		}
		_ = f.contactRepo.Delete(ctx, contactID)
	})
}

// DeleteContact removes one roster entry
func (f *ContactFlowImpl) DeleteContact(ctx context.Context, req *dto.DeleteContactRequest, metadata *ClientMetadata) error {
	customer, err := f.activeCustomer(ctx, req.CustomerID)
	if err != nil {
		return err
	}

	contact, err := f.ownedContact(ctx, customer.ID, req.UUID)
	if err != nil {
		return err
	}

	if err := f.contactRepo.Delete(ctx, contact.ID); err != nil {
		return NewBusinessError("CONTACT_DELETE_FAILED", "Failed to delete contact", err)
	}

	msg := fmt.Sprintf("Contact %s deleted", req.UUID)
	_ = f.createAuditLog(ctx, customer, models.AuditActionContactDeleted, msg, true, nil, metadata)

	return nil
}

// RemoveDuplicates keeps the first record per distinct number and deletes
// the rest
func (f *ContactFlowImpl) RemoveDuplicates(ctx context.Context, req *dto.RemoveDuplicatesRequest, metadata *ClientMetadata) (*dto.RemoveDuplicatesResponse, error) {
	customer, err := f.activeCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	var removed int64
	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		contacts, err := f.contactRepo.ByFilter(txCtx, models.ContactFilter{CustomerID: &customer.ID}, "id ASC", 0, 0)
		if err != nil {
			return err
		}

		removed, err = f.contactRepo.DeleteByIDs(txCtx, duplicateContactIDs(contacts, f.plan))
		return err
	})
	if err != nil {
		return nil, NewBusinessError("CONTACT_DEDUPE_FAILED", "Failed to remove duplicates", err)
	}

	msg := fmt.Sprintf("Removed %d duplicate contacts", removed)
	_ = f.createAuditLog(ctx, customer, models.AuditActionContactsDeduplicated, msg, true, nil, metadata)

	return &dto.RemoveDuplicatesResponse{RemovedCount: removed}, nil
}

// duplicateContactIDs selects the records repeating an earlier record's
// number, first occurrence kept. Only fully canonical numbers participate:
// raw values held by in-progress edits are never collapsed, even when two
// records happen to hold the same partial input.
func duplicateContactIDs(contacts []*models.Contact, plan contactimport.CountryPlan) []uint {
	seen := make(map[string]bool, len(contacts))
	var ids []uint
	for _, c := range contacts {
		if !plan.IsCanonical(c.Number) {
			continue
		}
		if seen[c.Number] {
			ids = append(ids, c.ID)
			continue
		}
		seen[c.Number] = true
	}
	return ids
}

// ClearContacts deletes the whole roster. The handler requires an explicit
// confirmation flag before this is reachable.
func (f *ContactFlowImpl) ClearContacts(ctx context.Context, req *dto.ClearContactsRequest, metadata *ClientMetadata) (*dto.ClearContactsResponse, error) {
	customer, err := f.activeCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	removed, err := f.contactRepo.DeleteAllByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, NewBusinessError("CONTACT_CLEAR_FAILED", "Failed to clear contacts", err)
	}

	msg := fmt.Sprintf("Cleared %d contacts", removed)
	_ = f.createAuditLog(ctx, customer, models.AuditActionContactsCleared, msg, true, nil, metadata)

	return &dto.ClearContactsResponse{RemovedCount: removed}, nil
}

// TemplateWorkbook builds the downloadable spreadsheet template
func (f *ContactFlowImpl) TemplateWorkbook(ctx context.Context) (*bytes.Buffer, error) {
	return contactimport.TemplateWorkbook(f.plan)
}

// activeCustomer loads the customer and rejects inactive accounts
func (f *ContactFlowImpl) activeCustomer(ctx context.Context, customerID uint) (*models.Customer, error) {
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

// ownedContact loads a contact by UUID and verifies ownership
func (f *ContactFlowImpl) ownedContact(ctx context.Context, customerID uint, contactUUID string) (*models.Contact, error) {
	contact, err := f.contactRepo.ByUUID(ctx, contactUUID)
	if err != nil {
		return nil, NewBusinessError("CONTACT_LOOKUP_FAILED", "Failed to lookup contact", err)
	}
	if contact == nil {
		return nil, NewBusinessError("CONTACT_NOT_FOUND", "Contact not found", ErrContactNotFound)
	}
	if contact.CustomerID != customerID {
		return nil, NewBusinessError("CONTACT_ACCESS_DENIED", "Contact access denied", ErrContactAccessDenied)
	}
	return contact, nil
}

func (f *ContactFlowImpl) createAuditLog(ctx context.Context, customer *models.Customer, action, description string, success bool, errorMsg *string, metadata *ClientMetadata) error {
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

// normalizePage validates pagination inputs and applies defaults
func normalizePage(page, pageSize int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 50
	}
	if page < 1 {
		return 0, 0, ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return 0, 0, ErrInvalidPageSize
	}
	return page, pageSize, nil
}
