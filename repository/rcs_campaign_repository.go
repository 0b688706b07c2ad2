package repository

import (
	"context"
	"fmt"

	"github.com/rcsuite/console/models"
	"github.com/rcsuite/console/utils"
	"gorm.io/gorm"
)

// RCSCampaignRepositoryImpl implements the RCSCampaignRepository interface
type RCSCampaignRepositoryImpl struct {
	*BaseRepository[models.RCSCampaign, models.RCSCampaignFilter]
}

// NewRCSCampaignRepository creates a new RCS campaign repository
func NewRCSCampaignRepository(db *gorm.DB) RCSCampaignRepository {
	return &RCSCampaignRepositoryImpl{
		BaseRepository: NewBaseRepository[models.RCSCampaign, models.RCSCampaignFilter](db),
	}
}

// ByUUID retrieves an RCS campaign by UUID
func (r *RCSCampaignRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.RCSCampaign, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID format: %w", err)
	}

	filter := models.RCSCampaignFilter{UUID: &parsedUUID}
	campaigns, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find campaign by UUID: %w", err)
	}

	if len(campaigns) == 0 {
		return nil, nil
	}

	return campaigns[0], nil
}

// ListByCustomer retrieves campaigns for a customer with pagination
func (r *RCSCampaignRepositoryImpl) ListByCustomer(ctx context.Context, customerID uint, limit, offset int) ([]*models.RCSCampaign, error) {
	filter := models.RCSCampaignFilter{CustomerID: &customerID}
	return r.ByFilter(ctx, filter, "created_at DESC", limit, offset)
}

// Update updates an RCS campaign
func (r *RCSCampaignRepositoryImpl) Update(ctx context.Context, campaign models.RCSCampaign) error {
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

	campaign.UpdatedAt = utils.UTCNow()

	err = db.Save(&campaign).Error
	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}

	return nil
}

// UpdateStatus updates only the status of an RCS campaign
func (r *RCSCampaignRepositoryImpl) UpdateStatus(ctx context.Context, id uint, status models.RCSCampaignStatus) error {
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

	err = db.Model(&models.RCSCampaign{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": utils.UTCNow(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update campaign status: %w", err)
	}

	return nil
}

// ByFilter retrieves RCS campaigns based on filter criteria
func (r *RCSCampaignRepositoryImpl) ByFilter(ctx context.Context, filter models.RCSCampaignFilter, orderBy string, limit, offset int) ([]*models.RCSCampaign, error) {
	db := r.getDB(ctx)

	var campaigns []*models.RCSCampaign
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

	query = query.Preload("Customer")

	err := query.Find(&campaigns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find campaigns by filter: %w", err)
	}

	return campaigns, nil
}

// Count returns the number of RCS campaigns matching the filter
func (r *RCSCampaignRepositoryImpl) Count(ctx context.Context, filter models.RCSCampaignFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.RCSCampaign{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	return count, nil
}

// Exists checks if any RCS campaign matching the filter exists
func (r *RCSCampaignRepositoryImpl) Exists(ctx context.Context, filter models.RCSCampaignFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *RCSCampaignRepositoryImpl) applyFilter(db *gorm.DB, filter models.RCSCampaignFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.CustomerID != nil {
		db = db.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.CampaignName != nil {
		db = db.Where("spec->>'campaign_name' ILIKE ?", "%"+*filter.CampaignName+"%")
	}

	return db
}
