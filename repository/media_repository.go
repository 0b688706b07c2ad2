package repository

import (
	"context"
	"fmt"

	"github.com/rcsuite/console/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MediaAssetRepositoryImpl implements the MediaAssetRepository interface
type MediaAssetRepositoryImpl struct {
	*BaseRepository[models.MediaAsset, models.MediaAssetFilter]
}

// NewMediaAssetRepository creates a new media asset repository
func NewMediaAssetRepository(db *gorm.DB) MediaAssetRepository {
	return &MediaAssetRepositoryImpl{
		BaseRepository: NewBaseRepository[models.MediaAsset, models.MediaAssetFilter](db),
	}
}

// ByUUID retrieves a media asset by UUID
func (r *MediaAssetRepositoryImpl) ByUUID(ctx context.Context, id uuid.UUID) (*models.MediaAsset, error) {
	filter := models.MediaAssetFilter{UUID: &id}
	assets, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find media asset by UUID: %w", err)
	}

	if len(assets) == 0 {
		return nil, nil
	}

	return assets[0], nil
}

// ListByCustomer retrieves media assets for a customer with pagination
func (r *MediaAssetRepositoryImpl) ListByCustomer(ctx context.Context, customerID uint, limit, offset int) ([]*models.MediaAsset, error) {
	filter := models.MediaAssetFilter{CustomerID: &customerID}
	return r.ByFilter(ctx, filter, "created_at DESC", limit, offset)
}

// Delete removes a media asset
func (r *MediaAssetRepositoryImpl) Delete(ctx context.Context, id uint) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Delete(&models.MediaAsset{}, id).Error
	if err != nil {
		return fmt.Errorf("failed to delete media asset: %w", err)
	}

	return nil
}

// ByFilter retrieves media assets based on filter criteria
func (r *MediaAssetRepositoryImpl) ByFilter(ctx context.Context, filter models.MediaAssetFilter, orderBy string, limit, offset int) ([]*models.MediaAsset, error) {
	db := r.getDB(ctx)

	var assets []*models.MediaAsset
	query := r.applyFilter(db, filter)

	if orderBy != "" {
		query = query.Order(orderBy)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find media assets by filter: %w", err)
	}

	return assets, nil
}

// Count returns the number of media assets matching the filter
func (r *MediaAssetRepositoryImpl) Count(ctx context.Context, filter models.MediaAssetFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.MediaAsset{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count media assets: %w", err)
	}

	return count, nil
}

// Exists checks if any media asset matching the filter exists
func (r *MediaAssetRepositoryImpl) Exists(ctx context.Context, filter models.MediaAssetFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *MediaAssetRepositoryImpl) applyFilter(db *gorm.DB, filter models.MediaAssetFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.CustomerID != nil {
		db = db.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.ContentType != nil {
		db = db.Where("content_type = ?", *filter.ContentType)
	}

	return db
}
