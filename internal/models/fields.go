package models

const (
	FieldTimestamp       = "timestamp"
	FieldSymptomKind     = "symptom_kind"
	FieldRating          = "rating"
	FieldNote            = "note"
	FieldDescription     = "description"
	FieldPortion         = "portion"
	FieldMedicationName  = "medication_name"
	FieldMealDescription = "meal_description"
	FieldMealNote        = "meal_note"
	FieldSymptomNote     = "symptom_note"
	FieldDosage          = "dosage"
	FieldMedicationNote  = "medication_note"
)

const (
	maxNoteLength  = 2000
	maxShortLength = 200
)

type FieldType int

const (
	FieldText FieldType = iota
	FieldEnum
	FieldDateTime
)

// FieldSpec describes one attribute of a record kind. Remote is the name the
// Living Apps store uses for the same attribute.
type FieldSpec struct {
	Name      string
	Remote    string
	Type      FieldType
	Values    []string
	MaxLength int
}

func (spec FieldSpec) Allows(value string) bool {
	if spec.Type != FieldEnum {
		return true
	}
	for _, candidate := range spec.Values {
		if candidate == value {
			return true
		}
	}
	return false
}

var (
	SymptomKindValues = []string{"raeuspern", "lymphschwellung", "energie", "stimmung"}
	TenLevelRatings   = []string{"wert_1", "wert_2", "wert_3", "wert_4", "wert_5", "wert_6", "wert_7", "wert_8", "wert_9", "wert_10"}
	FiveLevelRatings  = []string{"sehr_gut", "gut", "geht_so", "schlecht", "sehr_schlecht"}
	MedicationValues  = []string{"ibuprofen_400mg", "vitamin_c_500mg", "vitamin_d_2000", "vitamin_d_4000", "bitterliebe_1_kapsel", "pascoflorin_sensitiv"}
)

var fieldCatalog = map[RecordKind][]FieldSpec{
	KindSymptom: {
		{Name: FieldTimestamp, Remote: "zeitpunkt_symptom", Type: FieldDateTime},
		{Name: FieldSymptomKind, Remote: "symptomtyp", Type: FieldEnum, Values: SymptomKindValues},
		{Name: FieldRating, Remote: "bewertung_symptom", Type: FieldEnum, Values: TenLevelRatings},
		{Name: FieldNote, Remote: "notizen_einzelsymptom", Type: FieldText, MaxLength: maxNoteLength},
	},
	KindMeal: {
		{Name: FieldTimestamp, Remote: "zeitpunkt_mahlzeit", Type: FieldDateTime},
		{Name: FieldDescription, Remote: "mahlzeit_beschreibung", Type: FieldText, MaxLength: maxNoteLength},
		{Name: FieldPortion, Remote: "menge_portion", Type: FieldText, MaxLength: maxShortLength},
		{Name: FieldNote, Remote: "notizen_essen", Type: FieldText, MaxLength: maxNoteLength},
	},
	KindMedication: {
		{Name: FieldTimestamp, Remote: "zeitpunkt_einnahme", Type: FieldDateTime},
		{Name: FieldMedicationName, Remote: "medikamentenname", Type: FieldEnum, Values: MedicationValues},
		{Name: FieldNote, Remote: "notizen_medikamente", Type: FieldText, MaxLength: maxNoteLength},
	},
	KindDaily: {
		{Name: FieldTimestamp, Remote: "zeitpunkt_eintrag", Type: FieldDateTime},
		{Name: FieldMealDescription, Remote: "mahlzeit_beschreibung_gesamt", Type: FieldText, MaxLength: maxNoteLength},
		{Name: FieldPortion, Remote: "menge_portion_gesamt", Type: FieldText, MaxLength: maxShortLength},
		{Name: FieldMealNote, Remote: "notizen_essen_gesamt", Type: FieldText, MaxLength: maxNoteLength},
		{Name: FieldSymptomKind, Remote: "symptomtyp_gesamt", Type: FieldEnum, Values: SymptomKindValues},
		{Name: FieldRating, Remote: "bewertung_symptom_gesamt", Type: FieldEnum, Values: FiveLevelRatings},
		{Name: FieldSymptomNote, Remote: "notizen_symptom_gesamt", Type: FieldText, MaxLength: maxNoteLength},
		{Name: FieldMedicationName, Remote: "medikamentenname_freitext_gesamt", Type: FieldText, MaxLength: maxShortLength},
		{Name: FieldDosage, Remote: "dosierung_gesamt", Type: FieldText, MaxLength: maxShortLength},
		{Name: FieldMedicationNote, Remote: "notizen_medikament_gesamt", Type: FieldText, MaxLength: maxNoteLength},
	},
}

// FieldSpecs returns the attribute catalogue of kind in declaration order.
func FieldSpecs(kind RecordKind) []FieldSpec {
	specs := fieldCatalog[kind]
	result := make([]FieldSpec, len(specs))
	copy(result, specs)
	return result
}

func LookupField(kind RecordKind, name string) (FieldSpec, bool) {
	for _, spec := range fieldCatalog[kind] {
		if spec.Name == name {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

func LookupRemoteField(kind RecordKind, remote string) (FieldSpec, bool) {
	for _, spec := range fieldCatalog[kind] {
		if spec.Remote == remote {
			return spec, true
		}
	}
	return FieldSpec{}, false
}
