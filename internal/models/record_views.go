package models

type SymptomRecord struct {
	ID          string
	Timestamp   string
	SymptomKind string
	Rating      string
	Note        string
}

type MealRecord struct {
	ID          string
	Timestamp   string
	Description string
	Portion     string
	Note        string
}

type MedicationRecord struct {
	ID             string
	Timestamp      string
	MedicationName string
	Note           string
}

// DailyRecord is a combined entry; any of its meal, symptom and medication
// sub-facts may be empty.
type DailyRecord struct {
	ID              string
	Timestamp       string
	MealDescription string
	Portion         string
	MealNote        string
	SymptomKind     string
	Rating          string
	SymptomNote     string
	MedicationName  string
	Dosage          string
	MedicationNote  string
}

func (record DailyRecord) HasMeal() bool {
	return record.MealDescription != ""
}

func (record DailyRecord) HasSymptom() bool {
	return record.SymptomKind != "" || record.Rating != ""
}

func (record DailyRecord) HasMedication() bool {
	return record.MedicationName != ""
}

func SymptomFromRecord(record Record) SymptomRecord {
	return SymptomRecord{
		ID:          record.ID,
		Timestamp:   record.Fields.Get(FieldTimestamp),
		SymptomKind: record.Fields.Get(FieldSymptomKind),
		Rating:      record.Fields.Get(FieldRating),
		Note:        record.Fields.Get(FieldNote),
	}
}

func MealFromRecord(record Record) MealRecord {
	return MealRecord{
		ID:          record.ID,
		Timestamp:   record.Fields.Get(FieldTimestamp),
		Description: record.Fields.Get(FieldDescription),
		Portion:     record.Fields.Get(FieldPortion),
		Note:        record.Fields.Get(FieldNote),
	}
}

func MedicationFromRecord(record Record) MedicationRecord {
	return MedicationRecord{
		ID:             record.ID,
		Timestamp:      record.Fields.Get(FieldTimestamp),
		MedicationName: record.Fields.Get(FieldMedicationName),
		Note:           record.Fields.Get(FieldNote),
	}
}

func DailyFromRecord(record Record) DailyRecord {
	return DailyRecord{
		ID:              record.ID,
		Timestamp:       record.Fields.Get(FieldTimestamp),
		MealDescription: record.Fields.Get(FieldMealDescription),
		Portion:         record.Fields.Get(FieldPortion),
		MealNote:        record.Fields.Get(FieldMealNote),
		SymptomKind:     record.Fields.Get(FieldSymptomKind),
		Rating:          record.Fields.Get(FieldRating),
		SymptomNote:     record.Fields.Get(FieldSymptomNote),
		MedicationName:  record.Fields.Get(FieldMedicationName),
		Dosage:          record.Fields.Get(FieldDosage),
		MedicationNote:  record.Fields.Get(FieldMedicationNote),
	}
}
