package services

import (
	"context"
	"strings"
	"time"

	"github.com/terraincognita07/healthdash/internal/models"
	"github.com/terraincognita07/healthdash/internal/wellbeing"
)

// RecordService validates record input before it reaches the store.
type RecordService struct {
	store    RecordStore
	location *time.Location
	now      func() time.Time
}

func NewRecordService(store RecordStore, location *time.Location) *RecordService {
	if location == nil {
		location = time.UTC
	}
	return &RecordService{store: store, location: location, now: time.Now}
}

func (service *RecordService) List(ctx context.Context, userID uint, kind models.RecordKind) ([]models.Record, error) {
	return service.store.List(ctx, userID, kind)
}

func (service *RecordService) Get(ctx context.Context, userID uint, kind models.RecordKind, recordID string) (models.Record, error) {
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return models.Record{}, ErrRecordNotFound
	}
	return service.store.Get(ctx, userID, kind, recordID)
}

// Create stores a new record. A missing timestamp is filled with the current
// time so the entry shows up in recent lists.
func (service *RecordService) Create(ctx context.Context, userID uint, kind models.RecordKind, raw map[string]string) (models.Record, error) {
	fields, err := NormalizeRecordFields(kind, raw, service.location)
	if err != nil {
		return models.Record{}, err
	}
	if fields.Get(models.FieldTimestamp) == "" {
		fields[models.FieldTimestamp] = wellbeing.FormatTimestamp(service.now(), service.location)
	}
	return service.store.Create(ctx, userID, kind, fields)
}

func (service *RecordService) Update(ctx context.Context, userID uint, kind models.RecordKind, recordID string, raw map[string]string) (models.Record, error) {
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return models.Record{}, ErrRecordNotFound
	}
	fields, err := NormalizeRecordFields(kind, raw, service.location)
	if err != nil {
		return models.Record{}, err
	}
	return service.store.Update(ctx, userID, kind, recordID, fields)
}

func (service *RecordService) Delete(ctx context.Context, userID uint, kind models.RecordKind, recordID string) error {
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return ErrRecordNotFound
	}
	return service.store.Delete(ctx, userID, kind, recordID)
}
