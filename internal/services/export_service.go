package services

import (
	"context"
	"strconv"
	"time"

	"github.com/terraincognita07/healthdash/internal/models"
	"github.com/terraincognita07/healthdash/internal/wellbeing"
)

var ExportCSVHeaders = []string{
	"Date",
	"Time",
	"Kind",
	"Record ID",
	"Title",
	"Details",
	"Severity",
}

type ExportSummary struct {
	TotalEntries int    `json:"total_entries"`
	HasData      bool   `json:"has_data"`
	DateFrom     string `json:"date_from"`
	DateTo       string `json:"date_to"`
}

type ExportJSONEntry struct {
	Date     string            `json:"date"`
	Time     string            `json:"time"`
	Kind     models.RecordKind `json:"kind"`
	RecordID string            `json:"record_id"`
	Title    string            `json:"title"`
	Details  string            `json:"details"`
	Severity wellbeing.Score   `json:"severity"`
}

type ExportService struct {
	store    RecordStore
	location *time.Location
}

func NewExportService(store RecordStore, location *time.Location) *ExportService {
	if location == nil {
		location = time.UTC
	}
	return &ExportService{store: store, location: location}
}

// LoadEntriesForRange returns every dated entry between from and to,
// newest first. Nil bounds are open.
func (service *ExportService) LoadEntriesForRange(ctx context.Context, userID uint, from *time.Time, to *time.Time, labels wellbeing.Labels) ([]wellbeing.Entry, error) {
	collections, err := service.store.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	all := wellbeing.UnifyRecentEntries(collections, 0, service.location, labels)
	filtered := make([]wellbeing.Entry, 0, len(all))
	for _, entry := range all {
		if from != nil && entry.At.Before(*from) {
			continue
		}
		if to != nil && !entry.At.Before(to.AddDate(0, 0, 1)) {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered, nil
}

func (service *ExportService) BuildSummary(ctx context.Context, userID uint, from *time.Time, to *time.Time) (ExportSummary, error) {
	entries, err := service.LoadEntriesForRange(ctx, userID, from, to, nil)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(entries) == 0 {
		return ExportSummary{}, nil
	}

	// entries are sorted newest first
	return ExportSummary{
		TotalEntries: len(entries),
		HasData:      true,
		DateFrom:     wellbeing.DateAtLocation(entries[len(entries)-1].At, service.location).Format(wellbeing.DateLayout),
		DateTo:       wellbeing.DateAtLocation(entries[0].At, service.location).Format(wellbeing.DateLayout),
	}, nil
}

func (service *ExportService) BuildJSONEntries(ctx context.Context, userID uint, from *time.Time, to *time.Time, labels wellbeing.Labels) ([]ExportJSONEntry, error) {
	entries, err := service.LoadEntriesForRange(ctx, userID, from, to, labels)
	if err != nil {
		return nil, err
	}

	result := make([]ExportJSONEntry, 0, len(entries))
	for _, entry := range entries {
		local := entry.At.In(service.location)
		result = append(result, ExportJSONEntry{
			Date:     local.Format(wellbeing.DateLayout),
			Time:     local.Format("15:04"),
			Kind:     entry.Kind,
			RecordID: entry.RecordID,
			Title:    entry.Title,
			Details:  entry.Subtitle,
			Severity: entry.Severity,
		})
	}
	return result, nil
}

// BuildCSVRows returns the data rows matching ExportCSVHeaders.
func (service *ExportService) BuildCSVRows(ctx context.Context, userID uint, from *time.Time, to *time.Time, labels wellbeing.Labels) ([][]string, error) {
	entries, err := service.BuildJSONEntries(ctx, userID, from, to, labels)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		severity := ""
		if entry.Severity.Valid {
			severity = strconv.FormatFloat(entry.Severity.Value, 'f', -1, 64)
		}
		rows = append(rows, []string{
			entry.Date,
			entry.Time,
			string(entry.Kind),
			entry.RecordID,
			entry.Title,
			entry.Details,
			severity,
		})
	}
	return rows, nil
}
