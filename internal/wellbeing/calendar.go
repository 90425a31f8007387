package wellbeing

import (
	"strings"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02T15:04"
)

var localTimestampLayouts = []string{
	TimestampLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DateLayout,
}

var zonedTimestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// ParseTimestamp reads the timestamp formats found in stored records. Values
// without a zone are wall-clock times in location; date-only values resolve
// to local midnight.
func ParseTimestamp(raw string, location *time.Location) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	if location == nil {
		location = time.UTC
	}

	for _, layout := range zonedTimestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.In(location), true
		}
	}
	for _, layout := range localTimestampLayouts {
		if parsed, err := time.ParseInLocation(layout, value, location); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func FormatTimestamp(value time.Time, location *time.Location) string {
	if location == nil {
		location = time.UTC
	}
	return value.In(location).Format(TimestampLayout)
}
