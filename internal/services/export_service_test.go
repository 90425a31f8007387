package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/terraincognita07/healthdash/internal/models"
	"github.com/terraincognita07/healthdash/internal/wellbeing"
)

func newExportTestStore() *memoryRecordStore {
	store := &memoryRecordStore{}
	store.add(7, models.KindSymptom, "s1", models.Fields{models.FieldTimestamp: "2026-02-07T08:15", models.FieldSymptomKind: "energie", models.FieldRating: "wert_4"})
	store.add(7, models.KindMeal, "m1", models.Fields{models.FieldTimestamp: "2026-02-12T12:00", models.FieldDescription: "Linsensuppe", models.FieldPortion: "1 Teller"})
	store.add(7, models.KindMedication, "p1", models.Fields{models.FieldTimestamp: "2026-02-20T21:00", models.FieldMedicationName: "vitamin_d_2000"})
	store.add(7, models.KindMeal, "m2", models.Fields{models.FieldDescription: "ohne Zeit"})
	return store
}

func TestExportBuildSummaryUsesDateBounds(t *testing.T) {
	service := NewExportService(newExportTestStore(), time.UTC)

	summary, err := service.BuildSummary(context.Background(), 7, nil, nil)
	if err != nil {
		t.Fatalf("BuildSummary() unexpected error: %v", err)
	}
	want := ExportSummary{TotalEntries: 3, HasData: true, DateFrom: "2026-02-07", DateTo: "2026-02-20"}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Fatalf("BuildSummary() mismatch (-want +got):\n%s", diff)
	}
}

func TestExportBuildSummaryReturnsEmptyForNoRecords(t *testing.T) {
	service := NewExportService(&memoryRecordStore{}, time.UTC)
	summary, err := service.BuildSummary(context.Background(), 7, nil, nil)
	if err != nil {
		t.Fatalf("BuildSummary() unexpected error: %v", err)
	}
	if summary.HasData || summary.TotalEntries != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}

func TestExportRangeIsInclusive(t *testing.T) {
	service := NewExportService(newExportTestStore(), time.UTC)
	from, to, err := ParseExportRange("2026-02-12", "2026-02-20", time.UTC)
	if err != nil {
		t.Fatalf("ParseExportRange() unexpected error: %v", err)
	}

	entries, err := service.BuildJSONEntries(context.Background(), 7, from, to, nil)
	if err != nil {
		t.Fatalf("BuildJSONEntries() unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries in range, got %d", len(entries))
	}
	if entries[0].RecordID != "p1" || entries[1].RecordID != "m1" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}

func TestExportCSVRows(t *testing.T) {
	labels := wellbeing.MapLabels{"symptom_kind.energie": "Energie", "rating.ten.wert_4": "4"}
	service := NewExportService(newExportTestStore(), time.UTC)
	from, to, err := ParseExportRange("2026-02-01", "2026-02-10", time.UTC)
	if err != nil {
		t.Fatalf("ParseExportRange() unexpected error: %v", err)
	}

	rows, err := service.BuildCSVRows(context.Background(), 7, from, to, labels)
	if err != nil {
		t.Fatalf("BuildCSVRows() unexpected error: %v", err)
	}
	want := [][]string{{"2026-02-07", "08:15", "symptom", "s1", "Energie", "4", "4"}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("BuildCSVRows() mismatch (-want +got):\n%s", diff)
	}
	if len(rows[0]) != len(ExportCSVHeaders) {
		t.Fatalf("expected %d columns, got %d", len(ExportCSVHeaders), len(rows[0]))
	}
}

func TestExportPropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("boom")
	service := NewExportService(&memoryRecordStore{listErr: storeErr}, time.UTC)
	if _, err := service.BuildCSVRows(context.Background(), 7, nil, nil, nil); !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestParseExportRange(t *testing.T) {
	if _, _, err := ParseExportRange("2026-13-01", "", time.UTC); !errors.Is(err, ErrExportFromDateInvalid) {
		t.Fatalf("expected ErrExportFromDateInvalid, got %v", err)
	}
	if _, _, err := ParseExportRange("", "20.02.2026", time.UTC); !errors.Is(err, ErrExportToDateInvalid) {
		t.Fatalf("expected ErrExportToDateInvalid, got %v", err)
	}
	if _, _, err := ParseExportRange("2026-02-20", "2026-02-19", time.UTC); !errors.Is(err, ErrExportRangeInvalid) {
		t.Fatalf("expected ErrExportRangeInvalid, got %v", err)
	}
	from, to, err := ParseExportRange(" ", "", time.UTC)
	if err != nil || from != nil || to != nil {
		t.Fatalf("expected open range, got %v %v %v", from, to, err)
	}
}
