package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/healthdash/internal/wellbeing"
)

var (
	ErrExportFromDateInvalid = errors.New("export invalid from date")
	ErrExportToDateInvalid   = errors.New("export invalid to date")
	ErrExportRangeInvalid    = errors.New("export invalid range")
)

// ParseExportRange reads optional YYYY-MM-DD bounds. Both bounds are
// inclusive calendar days in location.
func ParseExportRange(rawFrom string, rawTo string, location *time.Location) (*time.Time, *time.Time, error) {
	from, err := parseExportDay(rawFrom, location, ErrExportFromDateInvalid)
	if err != nil {
		return nil, nil, err
	}
	to, err := parseExportDay(rawTo, location, ErrExportToDateInvalid)
	if err != nil {
		return nil, nil, err
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, ErrExportRangeInvalid
	}
	return from, to, nil
}

func parseExportDay(raw string, location *time.Location, invalid error) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	if location == nil {
		location = time.UTC
	}
	parsed, err := time.ParseInLocation(wellbeing.DateLayout, trimmed, location)
	if err != nil {
		return nil, invalid
	}
	day := wellbeing.DateAtLocation(parsed, location)
	return &day, nil
}
