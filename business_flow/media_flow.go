// Package businessflow contains the core business logic and use cases for media workflows
package businessflow

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rcsuite/console/app/dto"
	"github.com/rcsuite/console/config"
	"github.com/rcsuite/console/models"
	"github.com/rcsuite/console/repository"
	"github.com/rcsuite/console/utils"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
	"gorm.io/gorm"
)

// MediaFlow handles rich-card image uploads
type MediaFlow interface {
	UploadMedia(ctx context.Context, req *dto.UploadMediaRequest, metadata *ClientMetadata) (*dto.MediaAssetDTO, error)
	GetMedia(ctx context.Context, customerID uint, mediaUUID string) (string, string, []byte, error)
	ListMedia(ctx context.Context, req *dto.ListMediaRequest) (*dto.ListMediaResponse, error)
	DeleteMedia(ctx context.Context, customerID uint, mediaUUID string, metadata *ClientMetadata) error
}

// MediaFlowImpl implements the media business flow
type MediaFlowImpl struct {
	mediaRepo    repository.MediaAssetRepository
	customerRepo repository.CustomerRepository
	auditRepo    repository.AuditLogRepository
	db           *gorm.DB
	maxBytes     int
	maxDimension int
	storageDir   string
}

// NewMediaFlow creates a new media flow instance
func NewMediaFlow(
	mediaRepo repository.MediaAssetRepository,
	customerRepo repository.CustomerRepository,
	auditRepo repository.AuditLogRepository,
	cfg *config.RCSConfig,
	db *gorm.DB,
) MediaFlow {
	return &MediaFlowImpl{
		mediaRepo:    mediaRepo,
		customerRepo: customerRepo,
		auditRepo:    auditRepo,
		db:           db,
		maxBytes:     cfg.MediaMaxBytes,
		maxDimension: cfg.MediaMaxDimension,
		storageDir:   filepath.Join("data", "uploads", "media"),
	}
}

// Card media formats accepted by the RCS backend.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// UploadMedia validates, decodes, and stores one card image. Images larger
// than the configured dimension are downscaled before storage.
func (f *MediaFlowImpl) UploadMedia(ctx context.Context, req *dto.UploadMediaRequest, metadata *ClientMetadata) (*dto.MediaAssetDTO, error) {
	customer, err := f.activeCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	if len(req.Data) == 0 {
		return nil, NewBusinessError("MEDIA_VALIDATION_FAILED", "File is empty", ErrMediaInvalidType)
	}
	if len(req.Data) > f.maxBytes {
		return nil, NewBusinessError("MEDIA_TOO_LARGE", "File exceeds the size limit", ErrMediaTooLarge)
	}

	detected := http.DetectContentType(req.Data)
	if !allowedImageTypes[detected] {
		return nil, NewBusinessError("MEDIA_INVALID_TYPE", "Only JPEG, PNG, and WebP images are accepted", ErrMediaInvalidType)
	}

	img, _, err := image.Decode(bytes.NewReader(req.Data))
	if err != nil {
		return nil, NewBusinessError("MEDIA_DECODE_FAILED", "Image could not be decoded", err)
	}

	origWidth := img.Bounds().Dx()
	img = f.downscale(img)
	bounds := img.Bounds()

	// WebP has no stdlib encoder, so downscaled images are re-encoded
	// as PNG. Within-limit uploads keep their original bytes.
	data := req.Data
	contentType := detected
	ext := extensionFor(detected)
	if bounds.Dx() != origWidth {
		var buf bytes.Buffer
		switch detected {
		case "image/jpeg":
			err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
		default:
			err = png.Encode(&buf, img)
			contentType = "image/png"
			ext = ".png"
		}
		if err != nil {
			return nil, NewBusinessError("MEDIA_ENCODE_FAILED", "Image could not be re-encoded", err)
		}
		data = buf.Bytes()
	}

	assetUUID := uuid.New()
	storagePath, err := f.writeToDisk(assetUUID, ext, data)
	if err != nil {
		return nil, NewBusinessError("MEDIA_STORAGE_FAILED", "Failed to store media file", err)
	}

	asset := &models.MediaAsset{
		UUID:        assetUUID,
		CustomerID:  customer.ID,
		FileName:    req.FileName,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		StoragePath: storagePath,
		PublicURL:   "/api/v1/media/" + assetUUID.String(),
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		return f.mediaRepo.Save(txCtx, asset)
	})
	if err != nil {
		_ = os.Remove(storagePath)
		return nil, NewBusinessError("MEDIA_CREATION_FAILED", "Failed to record media asset", err)
	}

	msg := fmt.Sprintf("Media uploaded: %s (%s, %dx%d)", assetUUID.String(), contentType, bounds.Dx(), bounds.Dy())
	_ = f.createAuditLog(ctx, customer, models.AuditActionMediaUploaded, msg, true, nil, metadata)

	result := toMediaAssetDTO(*asset)
	return &result, nil
}

// GetMedia returns the stored file for one asset with ownership enforcement
func (f *MediaFlowImpl) GetMedia(ctx context.Context, customerID uint, mediaUUID string) (string, string, []byte, error) {
	asset, err := f.ownedAsset(ctx, customerID, mediaUUID)
	if err != nil {
		return "", "", nil, err
	}

	data, err := os.ReadFile(asset.StoragePath)
	if err != nil {
		return "", "", nil, NewBusinessError("MEDIA_READ_FAILED", "Failed to read media file", err)
	}

	return asset.FileName, asset.ContentType, data, nil
}

// ListMedia returns one media page
func (f *MediaFlowImpl) ListMedia(ctx context.Context, req *dto.ListMediaRequest) (*dto.ListMediaResponse, error) {
	page, pageSize, err := normalizePage(req.Page, req.PageSize)
	if err != nil {
		return nil, NewBusinessError("INVALID_PAGINATION", "Invalid pagination parameters", err)
	}

	assets, err := f.mediaRepo.ListByCustomer(ctx, req.CustomerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("MEDIA_LIST_FAILED", "Failed to list media assets", err)
	}

	total, err := f.mediaRepo.Count(ctx, models.MediaAssetFilter{CustomerID: &req.CustomerID})
	if err != nil {
		return nil, NewBusinessError("MEDIA_COUNT_FAILED", "Failed to count media assets", err)
	}

	dtos := make([]dto.MediaAssetDTO, 0, len(assets))
	for _, a := range assets {
		dtos = append(dtos, toMediaAssetDTO(*a))
	}

	return &dto.ListMediaResponse{
		Assets:   dtos,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// DeleteMedia removes one asset and its stored file
func (f *MediaFlowImpl) DeleteMedia(ctx context.Context, customerID uint, mediaUUID string, metadata *ClientMetadata) error {
	customer, err := f.activeCustomer(ctx, customerID)
	if err != nil {
		return err
	}

	asset, err := f.ownedAsset(ctx, customerID, mediaUUID)
	if err != nil {
		return err
	}

	if err := f.mediaRepo.Delete(ctx, asset.ID); err != nil {
		return NewBusinessError("MEDIA_DELETE_FAILED", "Failed to delete media asset", err)
	}
	_ = os.Remove(asset.StoragePath)

	msg := fmt.Sprintf("Media deleted: %s", mediaUUID)
	_ = f.createAuditLog(ctx, customer, models.AuditActionMediaDeleted, msg, true, nil, metadata)

	return nil
}

// downscale shrinks the image to fit the configured dimension cap while
// preserving aspect ratio. Within-limit images are returned unchanged.
func (f *MediaFlowImpl) downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= f.maxDimension && height <= f.maxDimension {
		return img
	}

	if width >= height {
		height = height * f.maxDimension / width
		width = f.maxDimension
	} else {
		width = width * f.maxDimension / height
		height = f.maxDimension
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}

func (f *MediaFlowImpl) writeToDisk(assetUUID uuid.UUID, ext string, data []byte) (string, error) {
	dateDir := utils.UTCNow().Format("2006-01-02")
	dir := filepath.Join(f.storageDir, dateDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, assetUUID.String()+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}

func toMediaAssetDTO(asset models.MediaAsset) dto.MediaAssetDTO {
	return dto.MediaAssetDTO{
		UUID:        asset.UUID.String(),
		FileName:    asset.FileName,
		ContentType: asset.ContentType,
		SizeBytes:   asset.SizeBytes,
		Width:       asset.Width,
		Height:      asset.Height,
		PublicURL:   asset.PublicURL,
		CreatedAt:   asset.CreatedAt.Format(time.RFC3339),
	}
}

// ownedAsset loads an asset by UUID and verifies ownership
func (f *MediaFlowImpl) ownedAsset(ctx context.Context, customerID uint, mediaUUID string) (*models.MediaAsset, error) {
	parsed, err := utils.ParseUUID(mediaUUID)
	if err != nil {
		return nil, NewBusinessError("MEDIA_NOT_FOUND", "Media asset not found", ErrMediaNotFound)
	}

	asset, err := f.mediaRepo.ByUUID(ctx, parsed)
	if err != nil {
		return nil, NewBusinessError("MEDIA_LOOKUP_FAILED", "Failed to lookup media asset", err)
	}
	if asset == nil {
		return nil, NewBusinessError("MEDIA_NOT_FOUND", "Media asset not found", ErrMediaNotFound)
	}
	if asset.CustomerID != customerID {
		return nil, NewBusinessError("MEDIA_ACCESS_DENIED", "Media access denied", ErrMediaNotFound)
	}
	return asset, nil
}

// activeCustomer loads the customer and rejects inactive accounts
func (f *MediaFlowImpl) activeCustomer(ctx context.Context, customerID uint) (*models.Customer, error) {
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

func (f *MediaFlowImpl) createAuditLog(ctx context.Context, customer *models.Customer, action, description string, success bool, errorMsg *string, metadata *ClientMetadata) error {
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
