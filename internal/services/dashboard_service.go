package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/terraincognita07/healthdash/internal/models"
	"github.com/terraincognita07/healthdash/internal/wellbeing"
)

var ErrQuickEntryIncomplete = errors.New("quick entry requires symptom kind and rating")

type DashboardOptions struct {
	Days   int
	Limit  int
	Labels wellbeing.Labels
}

type DashboardView struct {
	Summary     wellbeing.Summary      `json:"summary"`
	Trend       []wellbeing.TrendPoint `json:"trend"`
	Recent      []wellbeing.Entry      `json:"recent"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// QuickEntry is the short "how are you right now" form. It is stored as a
// combined daily record.
type QuickEntry struct {
	SymptomKind string `json:"symptom_kind"`
	Rating      string `json:"rating"`
	Meal        string `json:"meal"`
	Medication  string `json:"medication"`
}

// DashboardService reads every collection fresh on each call so the view
// always reflects the store after a mutation.
type DashboardService struct {
	store    RecordStore
	location *time.Location
}

func NewDashboardService(store RecordStore, location *time.Location) *DashboardService {
	if location == nil {
		location = time.UTC
	}
	return &DashboardService{store: store, location: location}
}

func (service *DashboardService) Location() *time.Location {
	return service.location
}

func (service *DashboardService) Build(ctx context.Context, userID uint, now time.Time, options DashboardOptions) (DashboardView, error) {
	options = normalizeDashboardOptions(options)

	collections, err := service.store.ListAll(ctx, userID)
	if err != nil {
		return DashboardView{}, err
	}

	observations := wellbeing.Observations(collections, service.location)
	return DashboardView{
		Summary:     wellbeing.Summarize(collections, now, service.location),
		Trend:       slices.Collect(wellbeing.BuildTrendSeries(observations, options.Days, now, service.location, options.Labels)),
		Recent:      wellbeing.UnifyRecentEntries(collections, options.Limit, service.location, options.Labels),
		GeneratedAt: now.In(service.location),
	}, nil
}

func (service *DashboardService) Trend(ctx context.Context, userID uint, now time.Time, days int, labels wellbeing.Labels) ([]wellbeing.TrendPoint, error) {
	options := normalizeDashboardOptions(DashboardOptions{Days: days, Labels: labels})

	collections, err := service.store.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	observations := wellbeing.Observations(collections, service.location)
	return slices.Collect(wellbeing.BuildTrendSeries(observations, options.Days, now, service.location, options.Labels)), nil
}

func (service *DashboardService) Recent(ctx context.Context, userID uint, limit int, labels wellbeing.Labels) ([]wellbeing.Entry, error) {
	options := normalizeDashboardOptions(DashboardOptions{Limit: limit, Labels: labels})

	collections, err := service.store.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	return wellbeing.UnifyRecentEntries(collections, options.Limit, service.location, options.Labels), nil
}

func (service *DashboardService) Summary(ctx context.Context, userID uint, now time.Time) (wellbeing.Summary, error) {
	collections, err := service.store.ListAll(ctx, userID)
	if err != nil {
		return wellbeing.Summary{}, err
	}
	return wellbeing.Summarize(collections, now, service.location), nil
}

// QuickEntry stores entry as a daily record stamped with now.
func (service *DashboardService) QuickEntry(ctx context.Context, userID uint, now time.Time, entry QuickEntry) (models.Record, error) {
	if strings.TrimSpace(entry.SymptomKind) == "" || strings.TrimSpace(entry.Rating) == "" {
		return models.Record{}, ErrQuickEntryIncomplete
	}

	fields, err := NormalizeRecordFields(models.KindDaily, map[string]string{
		models.FieldTimestamp:       wellbeing.FormatTimestamp(now, service.location),
		models.FieldSymptomKind:     entry.SymptomKind,
		models.FieldRating:          entry.Rating,
		models.FieldMealDescription: entry.Meal,
		models.FieldMedicationName:  entry.Medication,
	}, service.location)
	if err != nil {
		return models.Record{}, err
	}
	return service.store.Create(ctx, userID, models.KindDaily, ApplyFieldPatch(models.Fields{}, fields))
}

func normalizeDashboardOptions(options DashboardOptions) DashboardOptions {
	if options.Days <= 0 {
		options.Days = DefaultTrendDays
	}
	if options.Days > MaxTrendDays {
		options.Days = MaxTrendDays
	}
	if options.Limit <= 0 {
		options.Limit = DefaultRecentLimit
	}
	if options.Limit > MaxRecentLimit {
		options.Limit = MaxRecentLimit
	}
	if options.Labels == nil {
		options.Labels = wellbeing.MapLabels(nil)
	}
	return options
}
