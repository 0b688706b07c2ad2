package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rcsuite/console/models"
	"github.com/rcsuite/console/utils"
	"gorm.io/gorm"
)

// ContactRepositoryImpl implements the ContactRepository interface
type ContactRepositoryImpl struct {
	*BaseRepository[models.Contact, models.ContactFilter]
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &ContactRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Contact, models.ContactFilter](db),
	}
}

// ByUUID retrieves a contact by UUID
func (r *ContactRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.Contact, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID format: %w", err)
	}

	filter := models.ContactFilter{UUID: &parsedUUID}
	contacts, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find contact by UUID: %w", err)
	}

	if len(contacts) == 0 {
		return nil, nil
	}

	return contacts[0], nil
}

// ListByCustomer retrieves contacts for a customer with pagination
func (r *ContactRepositoryImpl) ListByCustomer(ctx context.Context, customerID uint, limit, offset int) ([]*models.Contact, error) {
	filter := models.ContactFilter{CustomerID: &customerID}
	return r.ByFilter(ctx, filter, "created_at DESC", limit, offset)
}

// NumbersByCustomer retrieves all roster numbers for a customer
func (r *ContactRepositoryImpl) NumbersByCustomer(ctx context.Context, customerID uint) ([]string, error) {
	db := r.getDB(ctx)

	var numbers []string
	err := db.Model(&models.Contact{}).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Pluck("number", &numbers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contact numbers: %w", err)
	}

	return numbers, nil
}

// CapableNumbersByCustomer retrieves roster numbers with a positive
// capability verdict.
func (r *ContactRepositoryImpl) CapableNumbersByCustomer(ctx context.Context, customerID uint) ([]string, error) {
	db := r.getDB(ctx)

	var numbers []string
	err := db.Model(&models.Contact{}).
		Where("customer_id = ? AND capable = ?", customerID, true).
		Order("id ASC").
		Pluck("number", &numbers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list capable contact numbers: %w", err)
	}

	return numbers, nil
}

// ExistingNumbers reports which of the given numbers already exist in the
// customer's roster.
func (r *ContactRepositoryImpl) ExistingNumbers(ctx context.Context, customerID uint, numbers []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(numbers))
	if len(numbers) == 0 {
		return existing, nil
	}

	db := r.getDB(ctx)

	var found []string
	err := db.Model(&models.Contact{}).
		Where("customer_id = ? AND number IN ?", customerID, numbers).
		Pluck("number", &found).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check existing numbers: %w", err)
	}

	for _, n := range found {
		existing[n] = true
	}

	return existing, nil
}

// MarkChecking flags contacts as having a capability check in flight
func (r *ContactRepositoryImpl) MarkChecking(ctx context.Context, ids []uint) error {
	return r.setChecking(ctx, ids, true)
}

// ResetChecking clears the in-flight flag without recording a verdict
func (r *ContactRepositoryImpl) ResetChecking(ctx context.Context, ids []uint) error {
	return r.setChecking(ctx, ids, false)
}

func (r *ContactRepositoryImpl) setChecking(ctx context.Context, ids []uint, checking bool) error {
	if len(ids) == 0 {
		return nil
	}

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

	err = db.Model(&models.Contact{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"checking":   checking,
			"updated_at": time.Now().UTC(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update checking flag: %w", err)
	}

	return nil
}

// UpdateCapabilityIfNumberMatches applies a capability verdict only when the
// stored number still equals the number the verdict was obtained for. Edits
// that land while a check is in flight therefore discard the old verdict.
func (r *ContactRepositoryImpl) UpdateCapabilityIfNumberMatches(ctx context.Context, id uint, number string, capable bool, checkedAt time.Time) (bool, error) {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return false, err
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

	result := db.Model(&models.Contact{}).
		Where("id = ? AND number = ?", id, number).
		Updates(map[string]interface{}{
			"capable":    capable,
			"checking":   false,
			"checked_at": checkedAt,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		err = result.Error
		return false, fmt.Errorf("failed to update contact capability: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// UpdateNumber replaces a contact's number and resets its capability state
func (r *ContactRepositoryImpl) UpdateNumber(ctx context.Context, id uint, number string) error {
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

	// checking is cleared too: an in-flight check for the old number must
	// not leave the record stuck in Checking after its guarded apply misses.
	err = db.Model(&models.Contact{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"number":     number,
			"capable":    nil,
			"checking":   false,
			"checked_at": nil,
			"updated_at": time.Now().UTC(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update contact number: %w", err)
	}

	return nil
}

// Delete removes a single contact
func (r *ContactRepositoryImpl) Delete(ctx context.Context, id uint) error {
	_, err := r.DeleteByIDs(ctx, []uint{id})
	return err
}

// DeleteByIDs removes the given contacts and reports how many rows went away
func (r *ContactRepositoryImpl) DeleteByIDs(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return 0, err
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

	result := db.Where("id IN ?", ids).Delete(&models.Contact{})
	if result.Error != nil {
		err = result.Error
		return 0, fmt.Errorf("failed to delete contacts: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// DeleteAllByCustomer removes every contact in a customer's roster
func (r *ContactRepositoryImpl) DeleteAllByCustomer(ctx context.Context, customerID uint) (int64, error) {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return 0, err
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

	result := db.Where("customer_id = ?", customerID).Delete(&models.Contact{})
	if result.Error != nil {
		err = result.Error
		return 0, fmt.Errorf("failed to clear contacts: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// ByFilter retrieves contacts based on filter criteria
func (r *ContactRepositoryImpl) ByFilter(ctx context.Context, filter models.ContactFilter, orderBy string, limit, offset int) ([]*models.Contact, error) {
	db := r.getDB(ctx)

	var contacts []*models.Contact
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

	err := query.Find(&contacts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find contacts by filter: %w", err)
	}

	return contacts, nil
}

// Count returns the number of contacts matching the filter
func (r *ContactRepositoryImpl) Count(ctx context.Context, filter models.ContactFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.Contact{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	return count, nil
}

// Exists checks if any contact matching the filter exists
func (r *ContactRepositoryImpl) Exists(ctx context.Context, filter models.ContactFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *ContactRepositoryImpl) applyFilter(db *gorm.DB, filter models.ContactFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.CustomerID != nil {
		db = db.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Number != nil {
		db = db.Where("number = ?", *filter.Number)
	}
	if filter.Capable != nil {
		db = db.Where("capable = ?", *filter.Capable)
	}
	if filter.Checking != nil {
		db = db.Where("checking = ?", *filter.Checking)
	}

	return db
}
