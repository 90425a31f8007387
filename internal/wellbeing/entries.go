package wellbeing

import (
	"slices"
	"time"

	"github.com/terraincognita07/healthdash/internal/models"
)

const mealTitleMaxRunes = 50

type Entry struct {
	ID       string            `json:"id"`
	RecordID string            `json:"record_id"`
	Kind     models.RecordKind `json:"kind"`
	Title    string            `json:"title"`
	Subtitle string            `json:"subtitle,omitempty"`
	At       time.Time         `json:"timestamp"`
	Severity Score             `json:"severity"`
}

// UnifyRecentEntries merges all four collections into one list ordered by
// time, newest first. Records without a parseable timestamp are dropped.
// Equal timestamps keep the merge order symptom, meal, medication, daily and
// the source order within a collection. A limit <= 0 keeps every entry.
func UnifyRecentEntries(collections models.Collections, limit int, location *time.Location, labels Labels) []Entry {
	if labels == nil {
		labels = MapLabels(nil)
	}

	entries := make([]Entry, 0, collections.Len())
	entries = appendSymptomEntries(entries, collections.Symptoms, location, labels)
	entries = appendMealEntries(entries, collections.Meals, location, labels)
	entries = appendMedicationEntries(entries, collections.Medications, location, labels)
	entries = appendDailyEntries(entries, collections.Daily, location, labels)

	SortEntries(entries)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// SortEntries orders entries newest first, keeping the relative order of
// entries with equal timestamps.
func SortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(left Entry, right Entry) int {
		return right.At.Compare(left.At)
	})
}

func appendSymptomEntries(entries []Entry, records []models.SymptomRecord, location *time.Location, labels Labels) []Entry {
	for _, record := range records {
		at, ok := ParseTimestamp(record.Timestamp, location)
		if !ok {
			continue
		}
		entry := newEntry(models.KindSymptom, record.ID, at)
		entry.Title = labelOrFallback(record.SymptomKind, labels.SymptomKind, labels.Fallback(models.KindSymptom))
		if record.Rating != "" {
			entry.Subtitle = labels.Rating(ScaleTenLevel, record.Rating)
		}
		if value, ok := NormalizeRating(ScaleTenLevel, record.Rating); ok {
			entry.Severity = NewScore(value)
		}
		entries = append(entries, entry)
	}
	return entries
}

func appendMealEntries(entries []Entry, records []models.MealRecord, location *time.Location, labels Labels) []Entry {
	for _, record := range records {
		at, ok := ParseTimestamp(record.Timestamp, location)
		if !ok {
			continue
		}
		entry := newEntry(models.KindMeal, record.ID, at)
		entry.Title = truncateRunes(record.Description, mealTitleMaxRunes)
		if entry.Title == "" {
			entry.Title = labels.Fallback(models.KindMeal)
		}
		entry.Subtitle = record.Portion
		entries = append(entries, entry)
	}
	return entries
}

func appendMedicationEntries(entries []Entry, records []models.MedicationRecord, location *time.Location, labels Labels) []Entry {
	for _, record := range records {
		at, ok := ParseTimestamp(record.Timestamp, location)
		if !ok {
			continue
		}
		entry := newEntry(models.KindMedication, record.ID, at)
		entry.Title = labelOrFallback(record.MedicationName, labels.Medication, labels.Fallback(models.KindMedication))
		entries = append(entries, entry)
	}
	return entries
}

func appendDailyEntries(entries []Entry, records []models.DailyRecord, location *time.Location, labels Labels) []Entry {
	for _, record := range records {
		at, ok := ParseTimestamp(record.Timestamp, location)
		if !ok {
			continue
		}
		entry := newEntry(models.KindDaily, record.ID, at)
		entry.Title = labels.Fallback(models.KindDaily)
		if record.SymptomKind != "" {
			entry.Subtitle = labels.SymptomKind(record.SymptomKind)
		}
		if value, ok := NormalizeRating(ScaleFiveLevel, record.Rating); ok {
			entry.Severity = NewScore(value)
		}
		entries = append(entries, entry)
	}
	return entries
}

func newEntry(kind models.RecordKind, recordID string, at time.Time) Entry {
	return Entry{
		ID:       string(kind) + "-" + recordID,
		RecordID: recordID,
		Kind:     kind,
		At:       at,
	}
}

func labelOrFallback(raw string, label func(string) string, fallback string) string {
	if raw == "" {
		return fallback
	}
	return label(raw)
}

func truncateRunes(value string, maxRunes int) string {
	runes := []rune(value)
	if len(runes) <= maxRunes {
		return value
	}
	return string(runes[:maxRunes])
}
