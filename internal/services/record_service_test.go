package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/healthdash/internal/models"
)

func newRecordServiceForTest(store RecordStore) *RecordService {
	service := NewRecordService(store, time.UTC)
	service.now = func() time.Time {
		return time.Date(2026, time.March, 5, 9, 41, 0, 0, time.UTC)
	}
	return service
}

func TestRecordServiceCreateFillsMissingTimestamp(t *testing.T) {
	store := &memoryRecordStore{}
	service := newRecordServiceForTest(store)

	record, err := service.Create(context.Background(), 1, models.KindMeal, map[string]string{
		models.FieldDescription: "Haferbrei",
		models.FieldNote:        "",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if got := record.Fields.Get(models.FieldTimestamp); got != "2026-03-05T09:41" {
		t.Fatalf("expected timestamp from clock, got %q", got)
	}
	if _, present := record.Fields[models.FieldNote]; present {
		t.Fatal("expected empty note to be dropped on create")
	}
}

func TestRecordServiceCreateRejectsInvalidFieldsBeforeStore(t *testing.T) {
	store := &memoryRecordStore{}
	service := newRecordServiceForTest(store)

	_, err := service.Create(context.Background(), 1, models.KindSymptom, map[string]string{models.FieldRating: "wert_0"})
	if !errors.Is(err, ErrInvalidRecordFields) {
		t.Fatalf("expected ErrInvalidRecordFields, got %v", err)
	}
	if len(store.records) != 0 {
		t.Fatalf("expected store to stay empty, got %d records", len(store.records))
	}
}

func TestRecordServiceUpdatePatchesAndClears(t *testing.T) {
	store := &memoryRecordStore{}
	store.add(1, models.KindSymptom, "s1", models.Fields{
		models.FieldTimestamp:   "2026-03-01T08:00",
		models.FieldSymptomKind: "energie",
		models.FieldNote:        "alt",
	})
	service := newRecordServiceForTest(store)

	updated, err := service.Update(context.Background(), 1, models.KindSymptom, "s1", map[string]string{
		models.FieldRating: "wert_2",
		models.FieldNote:   "",
	})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if updated.Fields.Get(models.FieldRating) != "wert_2" {
		t.Fatalf("expected rating patch, got %#v", updated.Fields)
	}
	if _, present := updated.Fields[models.FieldNote]; present {
		t.Fatal("expected note to be cleared")
	}
	if updated.Fields.Get(models.FieldSymptomKind) != "energie" {
		t.Fatal("expected untouched fields to survive the patch")
	}
}

func TestRecordServiceNotFound(t *testing.T) {
	service := newRecordServiceForTest(&memoryRecordStore{})

	if _, err := service.Update(context.Background(), 1, models.KindMeal, "missing", map[string]string{}); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound on update, got %v", err)
	}
	if err := service.Delete(context.Background(), 1, models.KindMeal, " "); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound on blank delete, got %v", err)
	}
	if _, err := service.Get(context.Background(), 1, models.KindMeal, "missing"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound on get, got %v", err)
	}
}

func TestRecordServiceScopesRecordsToUser(t *testing.T) {
	store := &memoryRecordStore{}
	store.add(1, models.KindMeal, "m1", models.Fields{models.FieldDescription: "eigene"})
	store.add(2, models.KindMeal, "m2", models.Fields{models.FieldDescription: "fremde"})
	service := newRecordServiceForTest(store)

	records, err := service.List(context.Background(), 1, models.KindMeal)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].ID != "m1" {
		t.Fatalf("expected only own meal, got %#v", records)
	}
	if err := service.Delete(context.Background(), 1, models.KindMeal, "m2"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected foreign delete to miss, got %v", err)
	}
}
