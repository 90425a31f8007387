package services

import (
	"context"
	"errors"

	"github.com/terraincognita07/healthdash/internal/models"
)

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrInvalidRecordFields = errors.New("invalid record fields")
	ErrUnknownRecordKind   = errors.New("unknown record kind")

	// ErrRecordStoreUnavailable marks failures of a remote store, as opposed
	// to invalid input or missing records.
	ErrRecordStoreUnavailable = errors.New("record store unavailable")
)

// RecordStore is the persistence boundary for health records. Update applies
// a patch: keys present in fields overwrite, an empty value clears the field.
// Implementations report missing records with ErrRecordNotFound.
type RecordStore interface {
	List(ctx context.Context, userID uint, kind models.RecordKind) ([]models.Record, error)
	ListAll(ctx context.Context, userID uint) (models.Collections, error)
	Get(ctx context.Context, userID uint, kind models.RecordKind, recordID string) (models.Record, error)
	Create(ctx context.Context, userID uint, kind models.RecordKind, fields models.Fields) (models.Record, error)
	Update(ctx context.Context, userID uint, kind models.RecordKind, recordID string, fields models.Fields) (models.Record, error)
	Delete(ctx context.Context, userID uint, kind models.RecordKind, recordID string) error
}

// ApplyFieldPatch merges patch into current and drops cleared keys.
func ApplyFieldPatch(current models.Fields, patch models.Fields) models.Fields {
	merged := current.Clone()
	for key, value := range patch {
		if value == "" {
			delete(merged, key)
			continue
		}
		merged[key] = value
	}
	return merged
}
