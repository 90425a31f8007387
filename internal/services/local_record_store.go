package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/terraincognita07/healthdash/internal/models"
	"github.com/terraincognita07/healthdash/internal/security"
	"gorm.io/gorm"
)

const maxRecordIDAttempts = 5

type LocalRecordRepository interface {
	ListByUser(userID uint) ([]models.Record, error)
	ListByUserKind(userID uint, kind models.RecordKind) ([]models.Record, error)
	FindByIDForUser(userID uint, kind models.RecordKind, recordID string) (models.Record, error)
	ExistsByID(recordID string) (bool, error)
	FindOwnerByID(recordID string) (uint, bool, error)
	Create(record *models.Record) error
	UpdateFields(userID uint, kind models.RecordKind, recordID string, fields models.Fields) (models.Record, error)
	DeleteByIDForUser(userID uint, kind models.RecordKind, recordID string) (bool, error)
}

// LocalRecordStore keeps records in the application database.
type LocalRecordStore struct {
	records LocalRecordRepository
	newID   func() (string, error)
}

var _ RecordStore = (*LocalRecordStore)(nil)

func NewLocalRecordStore(records LocalRecordRepository) *LocalRecordStore {
	return &LocalRecordStore{
		records: records,
		newID:   security.NewRecordID,
	}
}

func (store *LocalRecordStore) List(_ context.Context, userID uint, kind models.RecordKind) ([]models.Record, error) {
	return store.records.ListByUserKind(userID, kind)
}

func (store *LocalRecordStore) ListAll(_ context.Context, userID uint) (models.Collections, error) {
	records, err := store.records.ListByUser(userID)
	if err != nil {
		return models.Collections{}, err
	}
	return models.NewCollections(records), nil
}

func (store *LocalRecordStore) Get(_ context.Context, userID uint, kind models.RecordKind, recordID string) (models.Record, error) {
	record, err := store.records.FindByIDForUser(userID, kind, recordID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Record{}, ErrRecordNotFound
	}
	return record, err
}

func (store *LocalRecordStore) Create(_ context.Context, userID uint, kind models.RecordKind, fields models.Fields) (models.Record, error) {
	recordID, err := store.allocateID()
	if err != nil {
		return models.Record{}, err
	}

	record := models.Record{
		ID:     recordID,
		UserID: userID,
		Kind:   kind,
		Fields: ApplyFieldPatch(models.Fields{}, fields),
	}
	if err := store.records.Create(&record); err != nil {
		return models.Record{}, err
	}
	return record, nil
}

func (store *LocalRecordStore) Update(_ context.Context, userID uint, kind models.RecordKind, recordID string, fields models.Fields) (models.Record, error) {
	current, err := store.records.FindByIDForUser(userID, kind, recordID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Record{}, ErrRecordNotFound
	}
	if err != nil {
		return models.Record{}, err
	}

	updated, err := store.records.UpdateFields(userID, kind, recordID, ApplyFieldPatch(current.Fields, fields))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Record{}, ErrRecordNotFound
	}
	return updated, err
}

func (store *LocalRecordStore) Delete(_ context.Context, userID uint, kind models.RecordKind, recordID string) error {
	deleted, err := store.records.DeleteByIDForUser(userID, kind, recordID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRecordNotFound
	}
	return nil
}

// ImportOutcome tells what Import did with one record.
type ImportOutcome int

const (
	ImportStored ImportOutcome = iota
	// ImportPresent means the user already holds a record with that id.
	ImportPresent
	// ImportConflict means the id belongs to another user; record ids are
	// unique across the database, so the record cannot be stored.
	ImportConflict
)

// Import stores a record under a caller-chosen id. An id that is already
// taken is never overwritten.
func (store *LocalRecordStore) Import(userID uint, record models.Record) (ImportOutcome, error) {
	owner, exists, err := store.records.FindOwnerByID(record.ID)
	if err != nil {
		return 0, err
	}
	if exists {
		if owner == userID {
			return ImportPresent, nil
		}
		return ImportConflict, nil
	}

	imported := models.Record{
		ID:     record.ID,
		UserID: userID,
		Kind:   record.Kind,
		Fields: ApplyFieldPatch(models.Fields{}, record.Fields),
	}
	if err := store.records.Create(&imported); err != nil {
		return 0, err
	}
	return ImportStored, nil
}

func (store *LocalRecordStore) allocateID() (string, error) {
	for range maxRecordIDAttempts {
		candidate, err := store.newID()
		if err != nil {
			return "", fmt.Errorf("generate record id: %w", err)
		}
		exists, err := store.records.ExistsByID(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", errors.New("could not allocate a unique record id")
}
