package wellbeing

import (
	"time"

	"github.com/terraincognita07/healthdash/internal/models"
)

// Observation is one rated fact extracted from a symptom or combined daily
// record.
type Observation struct {
	At    time.Time
	Scale Scale
	Raw   string
}

func (observation Observation) Normalized() (float64, bool) {
	return NormalizeRating(observation.Scale, observation.Raw)
}

// Observations collects every record that carries a rating and a parseable
// timestamp. Symptom records use the ten-level scale, combined daily records
// the five-level one.
func Observations(collections models.Collections, location *time.Location) []Observation {
	observations := make([]Observation, 0, len(collections.Symptoms)+len(collections.Daily))
	for _, record := range collections.Symptoms {
		if record.Rating == "" {
			continue
		}
		at, ok := ParseTimestamp(record.Timestamp, location)
		if !ok {
			continue
		}
		observations = append(observations, Observation{At: at, Scale: ScaleTenLevel, Raw: record.Rating})
	}
	for _, record := range collections.Daily {
		if record.Rating == "" {
			continue
		}
		at, ok := ParseTimestamp(record.Timestamp, location)
		if !ok {
			continue
		}
		observations = append(observations, Observation{At: at, Scale: ScaleFiveLevel, Raw: record.Rating})
	}
	return observations
}
