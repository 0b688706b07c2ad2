package repository

import (
	"context"
	"fmt"

	"github.com/rcsuite/console/models"
	"github.com/rcsuite/console/utils"
	"gorm.io/gorm"
)

// MessageTemplateRepositoryImpl implements the MessageTemplateRepository interface
type MessageTemplateRepositoryImpl struct {
	*BaseRepository[models.MessageTemplate, models.MessageTemplateFilter]
}

// NewMessageTemplateRepository creates a new message template repository
func NewMessageTemplateRepository(db *gorm.DB) MessageTemplateRepository {
	return &MessageTemplateRepositoryImpl{
		BaseRepository: NewBaseRepository[models.MessageTemplate, models.MessageTemplateFilter](db),
	}
}

// ByUUID retrieves a message template by UUID
func (r *MessageTemplateRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.MessageTemplate, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID format: %w", err)
	}

	filter := models.MessageTemplateFilter{UUID: &parsedUUID}
	templates, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find template by UUID: %w", err)
	}

	if len(templates) == 0 {
		return nil, nil
	}

	return templates[0], nil
}

// ListByCustomer retrieves templates for a customer with pagination
func (r *MessageTemplateRepositoryImpl) ListByCustomer(ctx context.Context, customerID uint, limit, offset int) ([]*models.MessageTemplate, error) {
	filter := models.MessageTemplateFilter{CustomerID: &customerID}
	return r.ByFilter(ctx, filter, "created_at DESC", limit, offset)
}

// Update updates a message template
func (r *MessageTemplateRepositoryImpl) Update(ctx context.Context, template models.MessageTemplate) error {
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

	template.UpdatedAt = utils.UTCNow()

	err = db.Save(&template).Error
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}

	return nil
}

// Delete removes a message template
func (r *MessageTemplateRepositoryImpl) Delete(ctx context.Context, id uint) error {
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

	err = db.Delete(&models.MessageTemplate{}, id).Error
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	return nil
}

// ByFilter retrieves templates based on filter criteria
func (r *MessageTemplateRepositoryImpl) ByFilter(ctx context.Context, filter models.MessageTemplateFilter, orderBy string, limit, offset int) ([]*models.MessageTemplate, error) {
	db := r.getDB(ctx)

	var templates []*models.MessageTemplate
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

	err := query.Find(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find templates by filter: %w", err)
	}

	return templates, nil
}

// Count returns the number of templates matching the filter
func (r *MessageTemplateRepositoryImpl) Count(ctx context.Context, filter models.MessageTemplateFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.MessageTemplate{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count templates: %w", err)
	}

	return count, nil
}

// Exists checks if any template matching the filter exists
func (r *MessageTemplateRepositoryImpl) Exists(ctx context.Context, filter models.MessageTemplateFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *MessageTemplateRepositoryImpl) applyFilter(db *gorm.DB, filter models.MessageTemplateFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.CustomerID != nil {
		db = db.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Name != nil {
		db = db.Where("name ILIKE ?", "%"+*filter.Name+"%")
	}
	if filter.Type != nil {
		db = db.Where("type = ?", *filter.Type)
	}

	return db
}
