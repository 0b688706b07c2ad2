// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"io"
	"log"

	"github.com/rcsuite/console/app/dto"
	businessflow "github.com/rcsuite/console/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// ContactHandlerInterface defines the contract for contact roster handlers
type ContactHandlerInterface interface {
	ImportContacts(c fiber.Ctx) error
	ImportSpreadsheet(c fiber.Ctx) error
	DownloadTemplate(c fiber.Ctx) error
	ListContacts(c fiber.Ctx) error
	EditContact(c fiber.Ctx) error
	DeleteContact(c fiber.Ctx) error
	RemoveDuplicates(c fiber.Ctx) error
	ClearContacts(c fiber.Ctx) error
}

// ContactHandler handles contact roster HTTP requests
type ContactHandler struct {
	contactFlow businessflow.ContactFlow
	validator   *validator.Validate
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactFlow businessflow.ContactFlow) *ContactHandler {
	return &ContactHandler{
		contactFlow: contactFlow,
		validator:   validator.New(),
	}
}

func (h *ContactHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.Err(message, errorCode, details))
}

func (h *ContactHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.OK(message, data))
}

// ImportContacts handles the manual textarea bulk import
// @Summary Import contacts
// @Description Import contacts pasted as lines of "name,number" or bare numbers. Only numbers with a positive capability verdict are stored.
// @Tags Contacts
// @Accept json
// @Produce json
// @Param request body dto.ImportContactsRequest true "Raw contact lines"
// @Success 201 {object} dto.APIResponse{data=dto.ImportContactsResponse} "Import completed"
// @Failure 400 {object} dto.APIResponse "Validation error or no valid numbers"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 502 {object} dto.APIResponse "Capability service unavailable"
// @Router /api/v1/contacts/import [post]
func (h *ContactHandler) ImportContacts(c fiber.Ctx) error {
	var req dto.ImportContactsRequest
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

	result, err := h.contactFlow.ImportManual(createRequestContext(c, "/api/v1/contacts/import"), &req, clientMetadata(c))
	if err != nil {
		return h.contactError(c, err, "Contact import failed", "CONTACT_IMPORT_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Contacts imported successfully", result)
}

// ImportSpreadsheet handles an uploaded .xlsx/.xls/.csv contact file
// @Summary Import contacts from a spreadsheet
// @Description Upload a spreadsheet with name/number columns. Rows are ingested in chunks and checked for RCS capability.
// @Tags Contacts
// @Accept mpfd
// @Produce json
// @Param file formData file true "Spreadsheet file (.xlsx/.xls/.csv)"
// @Success 201 {object} dto.APIResponse{data=dto.ImportContactsResponse} "Import completed"
// @Failure 400 {object} dto.APIResponse "Invalid file"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 502 {object} dto.APIResponse "Capability service unavailable"
// @Router /api/v1/contacts/import/spreadsheet [post]
func (h *ContactHandler) ImportSpreadsheet(c fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader == nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "file is required", "INVALID_FILE", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "invalid file", "INVALID_FILE", err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "failed to read file", "INVALID_FILE", err.Error())
	}

	customerID, ok := authenticatedCustomerID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	req := dto.ImportSpreadsheetRequest{
		CustomerID: customerID,
		FileName:   fileHeader.Filename,
		Data:       data,
	}

	result, err := h.contactFlow.ImportSpreadsheet(createRequestContext(c, "/api/v1/contacts/import/spreadsheet"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsUnsupportedFileType(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Unsupported file type", "UNSUPPORTED_FILE_TYPE", nil)
		}
		return h.contactError(c, err, "Spreadsheet import failed", "CONTACT_IMPORT_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Contacts imported successfully", result)
}

// DownloadTemplate streams the example import workbook
// @Summary Download the import template
// @Description Download an .xlsx workbook with the expected name/number columns and example rows
// @Tags Contacts
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {string} string "Binary workbook"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/contacts/import/template [get]
func (h *ContactHandler) DownloadTemplate(c fiber.Ctx) error {
	buf, err := h.contactFlow.TemplateWorkbook(createRequestContext(c, "/api/v1/contacts/import/template"))
	if err != nil {
		log.Println("Template workbook generation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate template", "TEMPLATE_GENERATION_FAILED", nil)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="contacts_template.xlsx"`)
	return c.Send(buf.Bytes())
}

// ListContacts returns one roster page
// @Summary List contacts
// @Description List the customer's roster with capability state, newest first
// @Tags Contacts
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 50, max 200)"
// @Success 200 {object} dto.APIResponse{data=dto.ListContactsResponse} "Roster page"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/contacts [get]
func (h *ContactHandler) ListContacts(c fiber.Ctx) error {
	customerID, ok := authenticatedCustomerID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	req := dto.ListContactsRequest{
		CustomerID: customerID,
		Page:       queryInt(c, "page", 0),
		PageSize:   queryInt(c, "page_size", 0),
	}

	result, err := h.contactFlow.ListContacts(createRequestContext(c, "/api/v1/contacts"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination parameters", "INVALID_PAGINATION", nil)
		}
		return h.contactError(c, err, "Failed to list contacts", "CONTACT_LIST_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Contacts retrieved successfully", result)
}

// EditContact re-normalizes a contact's number and re-checks capability
// @Summary Edit a contact number
// @Description Replace the number of one contact. Complete numbers are re-checked; a not-capable verdict removes the contact shortly after.
// @Tags Contacts
// @Accept json
// @Produce json
// @Param uuid path string true "Contact UUID"
// @Param request body dto.EditContactRequest true "New number"
// @Success 200 {object} dto.APIResponse{data=dto.EditContactResponse} "Edit resolved"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Contact belongs to another customer"
// @Failure 404 {object} dto.APIResponse "Contact not found"
// @Failure 502 {object} dto.APIResponse "Capability service unavailable"
// @Router /api/v1/contacts/{uuid} [put]
func (h *ContactHandler) EditContact(c fiber.Ctx) error {
	contactUUID := c.Params("uuid")
	if contactUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Contact UUID is required", "MISSING_CONTACT_UUID", nil)
	}

	var req dto.EditContactRequest
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
	req.UUID = contactUUID

	result, err := h.contactFlow.EditNumber(createRequestContext(c, "/api/v1/contacts/"+contactUUID), &req, clientMetadata(c))
	if err != nil {
		return h.contactError(c, err, "Contact edit failed", "CONTACT_EDIT_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Contact updated successfully", result)
}

// DeleteContact removes one roster entry
// @Summary Delete a contact
// @Tags Contacts
// @Produce json
// @Param uuid path string true "Contact UUID"
// @Success 200 {object} dto.APIResponse "Contact deleted"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Contact belongs to another customer"
// @Failure 404 {object} dto.APIResponse "Contact not found"
// @Router /api/v1/contacts/{uuid} [delete]
func (h *ContactHandler) DeleteContact(c fiber.Ctx) error {
	contactUUID := c.Params("uuid")
	if contactUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Contact UUID is required", "MISSING_CONTACT_UUID", nil)
	}

	customerID, ok := authenticatedCustomerID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	req := dto.DeleteContactRequest{CustomerID: customerID, UUID: contactUUID}
	err := h.contactFlow.DeleteContact(createRequestContext(c, "/api/v1/contacts/"+contactUUID), &req, clientMetadata(c))
	if err != nil {
		return h.contactError(c, err, "Contact deletion failed", "CONTACT_DELETE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Contact deleted successfully", nil)
}

// RemoveDuplicates collapses duplicate numbers keeping the oldest record
// @Summary Remove duplicate contacts
// @Tags Contacts
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.RemoveDuplicatesResponse} "Duplicates removed"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/contacts/deduplicate [post]
func (h *ContactHandler) RemoveDuplicates(c fiber.Ctx) error {
	customerID, ok := authenticatedCustomerID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	req := dto.RemoveDuplicatesRequest{CustomerID: customerID}
	result, err := h.contactFlow.RemoveDuplicates(createRequestContext(c, "/api/v1/contacts/deduplicate"), &req, clientMetadata(c))
	if err != nil {
		return h.contactError(c, err, "Duplicate removal failed", "CONTACT_DEDUPLICATION_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Duplicates removed successfully", result)
}

// ClearContacts deletes the whole roster after explicit confirmation
// @Summary Clear the roster
// @Description Delete every contact in the roster. Requires confirm=true in the body.
// @Tags Contacts
// @Accept json
// @Produce json
// @Param request body dto.ClearContactsRequest true "Confirmation"
// @Success 200 {object} dto.APIResponse{data=dto.ClearContactsResponse} "Roster cleared"
// @Failure 400 {object} dto.APIResponse "Missing confirmation"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/contacts/clear [post]
func (h *ContactHandler) ClearContacts(c fiber.Ctx) error {
	var req dto.ClearContactsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if !req.Confirm {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Confirmation is required", "CONFIRMATION_REQUIRED", nil)
	}

	customerID, ok := authenticatedCustomerID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}
	req.CustomerID = customerID

	result, err := h.contactFlow.ClearContacts(createRequestContext(c, "/api/v1/contacts/clear"), &req, clientMetadata(c))
	if err != nil {
		return h.contactError(c, err, "Roster clearing failed", "CONTACT_CLEAR_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Roster cleared successfully", result)
}

// contactError maps contact business errors to HTTP responses
func (h *ContactHandler) contactError(c fiber.Ctx, err error, fallbackMessage, fallbackCode string) error {
	if businessflow.IsCustomerNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer not found", "CUSTOMER_NOT_FOUND", nil)
	}
	if businessflow.IsAccountInactive(err) {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer account is inactive", "ACCOUNT_INACTIVE", nil)
	}
	if businessflow.IsContactNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Contact not found", "CONTACT_NOT_FOUND", nil)
	}
	if businessflow.IsContactAccessDenied(err) {
		return h.ErrorResponse(c, fiber.StatusForbidden, "Access denied: contact belongs to another customer", "CONTACT_ACCESS_DENIED", nil)
	}
	if businessflow.IsNoValidNumbers(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "No valid numbers in the input", "NO_VALID_NUMBERS", nil)
	}
	if businessflow.IsCapabilityCheckFailed(err) {
		return h.ErrorResponse(c, fiber.StatusBadGateway, "Capability service unavailable", "CAPABILITY_CHECK_FAILED", nil)
	}

	log.Println(fallbackMessage, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, fallbackMessage, fallbackCode, nil)
}
