package models

import (
	"strings"
	"time"
)

type RecordKind string

const (
	KindSymptom    RecordKind = "symptom"
	KindMeal       RecordKind = "meal"
	KindMedication RecordKind = "medication"
	KindDaily      RecordKind = "daily"
)

// RecordKinds lists every kind in the fixed merge order used for unified
// entry lists and tie-breaks.
func RecordKinds() []RecordKind {
	return []RecordKind{KindSymptom, KindMeal, KindMedication, KindDaily}
}

func ParseRecordKind(raw string) (RecordKind, bool) {
	kind := RecordKind(strings.ToLower(strings.TrimSpace(raw)))
	switch kind {
	case KindSymptom, KindMeal, KindMedication, KindDaily:
		return kind, true
	default:
		return "", false
	}
}

// Fields is the sparse attribute map of a record. An absent key and an empty
// value both mean "not set".
type Fields map[string]string

func (fields Fields) Get(key string) string {
	if fields == nil {
		return ""
	}
	return strings.TrimSpace(fields[key])
}

func (fields Fields) Clone() Fields {
	cloned := make(Fields, len(fields))
	for key, value := range fields {
		cloned[key] = value
	}
	return cloned
}

type Record struct {
	ID        string     `gorm:"primaryKey;size:24" json:"record_id"`
	UserID    uint       `gorm:"not null;index:idx_records_user_kind" json:"-"`
	Kind      RecordKind `gorm:"not null;index:idx_records_user_kind" json:"kind"`
	Fields    Fields     `gorm:"serializer:json;not null" json:"fields"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Timestamp returns the raw timestamp field of the record, whatever its kind.
func (record Record) Timestamp() string {
	return record.Fields.Get(FieldTimestamp)
}

// Collections groups the four record kinds of one user. Each slice keeps the
// order the store returned.
type Collections struct {
	Symptoms    []SymptomRecord
	Meals       []MealRecord
	Medications []MedicationRecord
	Daily       []DailyRecord
}

func (collections Collections) Len() int {
	return len(collections.Symptoms) + len(collections.Meals) + len(collections.Medications) + len(collections.Daily)
}

// Add appends the typed view of record to the matching collection. Records
// of unknown kinds are ignored.
func (collections *Collections) Add(record Record) {
	switch record.Kind {
	case KindSymptom:
		collections.Symptoms = append(collections.Symptoms, SymptomFromRecord(record))
	case KindMeal:
		collections.Meals = append(collections.Meals, MealFromRecord(record))
	case KindMedication:
		collections.Medications = append(collections.Medications, MedicationFromRecord(record))
	case KindDaily:
		collections.Daily = append(collections.Daily, DailyFromRecord(record))
	}
}

func NewCollections(records []Record) Collections {
	collections := Collections{}
	for _, record := range records {
		collections.Add(record)
	}
	return collections
}
