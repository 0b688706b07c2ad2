// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"io"
	"log"

	"github.com/rcsuite/console/app/dto"
	businessflow "github.com/rcsuite/console/business_flow"
	"github.com/gofiber/fiber/v3"
)

// MediaHandlerInterface defines the contract for media asset handlers
type MediaHandlerInterface interface {
	Upload(c fiber.Ctx) error
	Download(c fiber.Ctx) error
	ListMedia(c fiber.Ctx) error
	DeleteMedia(c fiber.Ctx) error
}

// MediaHandler handles card media HTTP requests
type MediaHandler struct {
	mediaFlow businessflow.MediaFlow
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(mediaFlow businessflow.MediaFlow) *MediaHandler {
	return &MediaHandler{mediaFlow: mediaFlow}
}

func (h *MediaHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.Err(message, errorCode, details))
}

func (h *MediaHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.OK(message, data))
}

// Upload stores one card image for the authenticated customer
// @Summary Upload card media
// @Description Upload a JPEG, PNG, or WebP image for rich-card templates. Oversized images are downscaled.
// @Tags Media
// @Accept mpfd
// @Produce json
// @Param file formData file true "Image file"
// @Success 201 {object} dto.APIResponse{data=dto.MediaAssetDTO} "Upload successful"
// @Failure 400 {object} dto.APIResponse "Invalid file"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/media/upload [post]
func (h *MediaHandler) Upload(c fiber.Ctx) error {
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

	req := dto.UploadMediaRequest{
		CustomerID: customerID,
		FileName:   fileHeader.Filename,
		Data:       data,
	}

	result, err := h.mediaFlow.UploadMedia(createRequestContext(c, "/api/v1/media/upload"), &req, clientMetadata(c))
	if err != nil {
		return h.mediaError(c, err, "Media upload failed", "MEDIA_UPLOAD_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Media uploaded successfully", result)
}

// Download serves one stored image by UUID
// @Summary Download card media
// @Tags Media
// @Produce application/octet-stream
// @Param uuid path string true "Media UUID"
// @Success 200 {string} string "Binary image"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Media not found"
// @Router /api/v1/media/{uuid} [get]
func (h *MediaHandler) Download(c fiber.Ctx) error {
	mediaUUID := c.Params("uuid")
	if mediaUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Media UUID is required", "MISSING_MEDIA_UUID", nil)
	}

	customerID, ok := authenticatedCustomerID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	filename, contentType, data, err := h.mediaFlow.GetMedia(createRequestContext(c, "/api/v1/media/{uuid}"), customerID, mediaUUID)
	if err != nil {
		return h.mediaError(c, err, "Media retrieval failed", "MEDIA_RETRIEVAL_FAILED")
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(data)
}

// ListMedia returns one media page
// @Summary List card media
// @Tags Media
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 50, max 200)"
// @Success 200 {object} dto.APIResponse{data=dto.ListMediaResponse} "Media page"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/media [get]
func (h *MediaHandler) ListMedia(c fiber.Ctx) error {
	customerID, ok := authenticatedCustomerID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	req := dto.ListMediaRequest{
		CustomerID: customerID,
		Page:       queryInt(c, "page", 0),
		PageSize:   queryInt(c, "page_size", 0),
	}

	result, err := h.mediaFlow.ListMedia(createRequestContext(c, "/api/v1/media"), &req)
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination parameters", "INVALID_PAGINATION", nil)
		}
		return h.mediaError(c, err, "Media listing failed", "MEDIA_LIST_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Media retrieved successfully", result)
}

// DeleteMedia removes one stored image
// @Summary Delete card media
// @Tags Media
// @Produce json
// @Param uuid path string true "Media UUID"
// @Success 200 {object} dto.APIResponse "Media deleted"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Media not found"
// @Router /api/v1/media/{uuid} [delete]
func (h *MediaHandler) DeleteMedia(c fiber.Ctx) error {
	mediaUUID := c.Params("uuid")
	if mediaUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Media UUID is required", "MISSING_MEDIA_UUID", nil)
	}

	customerID, ok := authenticatedCustomerID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	err := h.mediaFlow.DeleteMedia(createRequestContext(c, "/api/v1/media/"+mediaUUID), customerID, mediaUUID, clientMetadata(c))
	if err != nil {
		return h.mediaError(c, err, "Media deletion failed", "MEDIA_DELETE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Media deleted successfully", nil)
}

// mediaError maps media business errors to HTTP responses
func (h *MediaHandler) mediaError(c fiber.Ctx, err error, fallbackMessage, fallbackCode string) error {
	if businessflow.IsCustomerNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer not found", "CUSTOMER_NOT_FOUND", nil)
	}
	if businessflow.IsAccountInactive(err) {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer account is inactive", "ACCOUNT_INACTIVE", nil)
	}
	if businessflow.IsMediaNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Media not found", "MEDIA_NOT_FOUND", nil)
	}
	if businessflow.IsMediaTooLarge(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "File exceeds the size limit", "MEDIA_TOO_LARGE", nil)
	}
	if businessflow.IsMediaInvalidType(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Only JPEG, PNG, and WebP images are accepted", "MEDIA_INVALID_TYPE", nil)
	}

	log.Println(fallbackMessage, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, fallbackMessage, fallbackCode, nil)
}
