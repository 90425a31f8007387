package wellbeing

import (
	"strings"
	"time"

	"github.com/terraincognita07/healthdash/internal/models"
)

// Labels supplies display text for derived entries. Implementations decide
// the language; the aggregation itself never depends on it.
type Labels interface {
	SymptomKind(raw string) string
	Medication(raw string) string
	Rating(scale Scale, raw string) string
	Fallback(kind models.RecordKind) string
	Weekday(day time.Weekday) string
}

// MapLabels resolves labels from a flat message catalogue such as the ones
// loaded by the i18n package. Missing keys fall back to the raw value.
type MapLabels map[string]string

var _ Labels = MapLabels(nil)

var weekdayKeys = [...]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

func (labels MapLabels) SymptomKind(raw string) string {
	return labels.lookup("symptom_kind."+raw, raw)
}

func (labels MapLabels) Medication(raw string) string {
	return labels.lookup("medication."+raw, raw)
}

func (labels MapLabels) Rating(scale Scale, raw string) string {
	return labels.lookup("rating."+scale.String()+"."+raw, raw)
}

func (labels MapLabels) Fallback(kind models.RecordKind) string {
	return labels.lookup("entry."+string(kind), string(kind))
}

func (labels MapLabels) Weekday(day time.Weekday) string {
	fallback := day.String()[:3]
	if int(day) < 0 || int(day) >= len(weekdayKeys) {
		return fallback
	}
	return labels.lookup("weekday."+weekdayKeys[day], fallback)
}

func (labels MapLabels) lookup(key string, fallback string) string {
	if value := strings.TrimSpace(labels[key]); value != "" {
		return value
	}
	return fallback
}
