package db

import (
	"github.com/terraincognita07/healthdash/internal/models"
	"gorm.io/gorm"
)

type RecordRepository struct {
	database *gorm.DB
}

func NewRecordRepository(database *gorm.DB) *RecordRepository {
	return &RecordRepository{database: database}
}

// ListByUser returns every record of the user in insertion order.
func (repo *RecordRepository) ListByUser(userID uint) ([]models.Record, error) {
	records := make([]models.Record, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *RecordRepository) ListByUserKind(userID uint, kind models.RecordKind) ([]models.Record, error) {
	records := make([]models.Record, 0)
	if err := repo.database.
		Where("user_id = ? AND kind = ?", userID, kind).
		Order("created_at ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *RecordRepository) FindByIDForUser(userID uint, kind models.RecordKind, recordID string) (models.Record, error) {
	var record models.Record
	if err := repo.database.
		Where("id = ? AND user_id = ? AND kind = ?", recordID, userID, kind).
		First(&record).Error; err != nil {
		return models.Record{}, err
	}
	return record, nil
}

func (repo *RecordRepository) ExistsByID(recordID string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Record{}).
		Where("id = ?", recordID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// FindOwnerByID returns the user holding recordID, whatever the kind.
func (repo *RecordRepository) FindOwnerByID(recordID string) (uint, bool, error) {
	var owners []uint
	if err := repo.database.Model(&models.Record{}).
		Where("id = ?", recordID).
		Limit(1).
		Pluck("user_id", &owners).Error; err != nil {
		return 0, false, err
	}
	if len(owners) == 0 {
		return 0, false, nil
	}
	return owners[0], true, nil
}

func (repo *RecordRepository) Create(record *models.Record) error {
	return repo.database.Create(record).Error
}

// UpdateFields replaces the stored field map. It returns
// gorm.ErrRecordNotFound when no row of the user matched.
func (repo *RecordRepository) UpdateFields(userID uint, kind models.RecordKind, recordID string, fields models.Fields) (models.Record, error) {
	var updated models.Record
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		var existing models.Record
		if err := tx.
			Where("id = ? AND user_id = ? AND kind = ?", recordID, userID, kind).
			First(&existing).Error; err != nil {
			return err
		}
		existing.Fields = fields
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return models.Record{}, err
	}
	return updated, nil
}

// DeleteByIDForUser reports whether a row was removed.
func (repo *RecordRepository) DeleteByIDForUser(userID uint, kind models.RecordKind, recordID string) (bool, error) {
	result := repo.database.
		Where("id = ? AND user_id = ? AND kind = ?", recordID, userID, kind).
		Delete(&models.Record{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
