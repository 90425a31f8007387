package wellbeing

import (
	"strconv"
	"strings"
)

type Scale int

const (
	// ScaleTenLevel is the symptom record scale, wert_1 (best) .. wert_10 (worst).
	ScaleTenLevel Scale = iota + 1
	// ScaleFiveLevel is the combined daily record scale, sehr_gut .. sehr_schlecht.
	ScaleFiveLevel
)

const (
	minNormalizedRating = 1
	maxNormalizedRating = 10
	tenLevelPrefix      = "wert_"
)

// fiveLevelRatings spreads the five-level scale over the full 1..10 range so
// that both extremes line up with the ten-level scale.
var fiveLevelRatings = map[string]float64{
	"sehr_gut":      1,
	"gut":           3,
	"geht_so":       5,
	"schlecht":      7,
	"sehr_schlecht": 10,
}

func (scale Scale) String() string {
	switch scale {
	case ScaleTenLevel:
		return "ten"
	case ScaleFiveLevel:
		return "five"
	default:
		return "unknown"
	}
}

// NormalizeRating converts a raw rating value of the given scale onto the
// common 1..10 continuum. Keys match exactly; anything else, including a
// differently cased key, reports false.
func NormalizeRating(scale Scale, raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}

	switch scale {
	case ScaleTenLevel:
		digits, found := strings.CutPrefix(raw, tenLevelPrefix)
		if !found {
			return 0, false
		}
		level, err := strconv.Atoi(digits)
		if err != nil || level < minNormalizedRating || level > maxNormalizedRating {
			return 0, false
		}
		if strconv.Itoa(level) != digits {
			return 0, false
		}
		return float64(level), true
	case ScaleFiveLevel:
		level, ok := fiveLevelRatings[raw]
		return level, ok
	default:
		return 0, false
	}
}
