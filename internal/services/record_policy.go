package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/healthdash/internal/models"
	"github.com/terraincognita07/healthdash/internal/wellbeing"
)

// NormalizeRecordFields validates raw against the field catalogue of kind.
// Values are trimmed, timestamps are rewritten to the stored layout in
// location and empty values are kept so a patch can clear a field.
func NormalizeRecordFields(kind models.RecordKind, raw map[string]string, location *time.Location) (models.Fields, error) {
	if _, ok := models.ParseRecordKind(string(kind)); !ok {
		return nil, ErrUnknownRecordKind
	}

	normalized := make(models.Fields, len(raw))
	for key, rawValue := range raw {
		spec, ok := models.LookupField(kind, key)
		if !ok {
			return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidRecordFields, key)
		}

		value := strings.TrimSpace(rawValue)
		if value == "" {
			normalized[key] = ""
			continue
		}

		switch spec.Type {
		case models.FieldDateTime:
			parsed, ok := wellbeing.ParseTimestamp(value, location)
			if !ok {
				return nil, fmt.Errorf("%w: %s is not a timestamp", ErrInvalidRecordFields, key)
			}
			value = wellbeing.FormatTimestamp(parsed, location)
		case models.FieldEnum:
			if !spec.Allows(value) {
				return nil, fmt.Errorf("%w: %s does not accept %q", ErrInvalidRecordFields, key, value)
			}
		default:
			if spec.MaxLength > 0 && utf8.RuneCountInString(value) > spec.MaxLength {
				return nil, fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidRecordFields, key, spec.MaxLength)
			}
		}
		normalized[key] = value
	}
	return normalized, nil
}
