package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/terraincognita07/healthdash/internal/models"
)

// memoryRecordStore is an in-memory RecordStore for service tests.
type memoryRecordStore struct {
	records   []models.Record
	nextID    int
	listErr   error
	createErr error
	listCalls int
}

func (stub *memoryRecordStore) List(_ context.Context, userID uint, kind models.RecordKind) ([]models.Record, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := make([]models.Record, 0)
	for _, record := range stub.records {
		if record.UserID == userID && record.Kind == kind {
			result = append(result, record)
		}
	}
	return result, nil
}

func (stub *memoryRecordStore) ListAll(_ context.Context, userID uint) (models.Collections, error) {
	stub.listCalls++
	if stub.listErr != nil {
		return models.Collections{}, stub.listErr
	}
	owned := make([]models.Record, 0, len(stub.records))
	for _, record := range stub.records {
		if record.UserID == userID {
			owned = append(owned, record)
		}
	}
	return models.NewCollections(owned), nil
}

func (stub *memoryRecordStore) Get(_ context.Context, userID uint, kind models.RecordKind, recordID string) (models.Record, error) {
	index := stub.indexOf(userID, kind, recordID)
	if index < 0 {
		return models.Record{}, ErrRecordNotFound
	}
	return stub.records[index], nil
}

func (stub *memoryRecordStore) Create(_ context.Context, userID uint, kind models.RecordKind, fields models.Fields) (models.Record, error) {
	if stub.createErr != nil {
		return models.Record{}, stub.createErr
	}
	stub.nextID++
	record := models.Record{
		ID:     fmt.Sprintf("%024x", stub.nextID),
		UserID: userID,
		Kind:   kind,
		Fields: ApplyFieldPatch(models.Fields{}, fields),
	}
	stub.records = append(stub.records, record)
	return record, nil
}

func (stub *memoryRecordStore) Update(_ context.Context, userID uint, kind models.RecordKind, recordID string, fields models.Fields) (models.Record, error) {
	index := stub.indexOf(userID, kind, recordID)
	if index < 0 {
		return models.Record{}, ErrRecordNotFound
	}
	stub.records[index].Fields = ApplyFieldPatch(stub.records[index].Fields, fields)
	return stub.records[index], nil
}

func (stub *memoryRecordStore) Delete(_ context.Context, userID uint, kind models.RecordKind, recordID string) error {
	index := stub.indexOf(userID, kind, recordID)
	if index < 0 {
		return ErrRecordNotFound
	}
	stub.records = append(stub.records[:index], stub.records[index+1:]...)
	return nil
}

func (stub *memoryRecordStore) indexOf(userID uint, kind models.RecordKind, recordID string) int {
	for index, record := range stub.records {
		if record.UserID == userID && record.Kind == kind && record.ID == recordID {
			return index
		}
	}
	return -1
}

func (stub *memoryRecordStore) add(userID uint, kind models.RecordKind, recordID string, fields models.Fields) {
	stub.records = append(stub.records, models.Record{ID: recordID, UserID: userID, Kind: kind, Fields: fields})
}

func sortedFieldKeys(fields models.Fields) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
