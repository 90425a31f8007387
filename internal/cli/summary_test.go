package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/healthdash/internal/i18n"
	"github.com/terraincognita07/healthdash/internal/models"
	"github.com/terraincognita07/healthdash/internal/wellbeing"
)

func TestSummaryCardRenderPlain(t *testing.T) {
	manager, err := i18n.NewManager(i18n.LangEN)
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}

	card := summaryCard{
		Email: "owner@example.com",
		Summary: wellbeing.Summary{
			Date:       "2026-03-05",
			Today:      wellbeing.NewScore(2.25),
			Display:    wellbeing.NewScore(2.25),
			DisplayDay: wellbeing.ScoreDayToday,
			Direction:  wellbeing.DirectionBetter,
			Band:       wellbeing.BandGood,
			Counts:     wellbeing.ActivityCounts{Meals: 2, Symptoms: 3},
		},
		Recent: []wellbeing.Entry{
			{Kind: models.KindMeal, Title: "Porridge", Subtitle: "Breakfast", At: time.Date(2026, 3, 5, 8, 30, 0, 0, time.UTC)},
		},
		Messages: manager.Messages(i18n.LangEN),
		Location: time.UTC,
	}

	rendered := card.Render(false)
	for _, want := range []string{
		"owner@example.com",
		"2026-03-05",
		"2.3",
		"Better than yesterday",
		"05.03. 08:30  Porridge",
		"Breakfast",
	} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("expected rendered card to contain %q, got:\n%s", want, rendered)
		}
	}
	if strings.Contains(rendered, "\x1b[3") {
		t.Fatalf("expected no foreground colour codes in plain render, got %q", rendered)
	}
}

func TestSummaryCardRenderEmpty(t *testing.T) {
	card := summaryCard{
		Email:    "owner@example.com",
		Summary:  wellbeing.Summary{Date: "2026-03-05", DisplayDay: wellbeing.ScoreDayNone, Band: wellbeing.BandNone},
		Messages: map[string]string{"summary.empty": "nothing yet"},
	}

	rendered := card.Render(false)
	if !strings.Contains(rendered, "nothing yet") {
		t.Fatalf("expected empty message, got:\n%s", rendered)
	}
	if !strings.Contains(rendered, "summary.score") {
		t.Fatalf("expected missing labels to fall back to their keys, got:\n%s", rendered)
	}
}

func TestFormatSummaryScore(t *testing.T) {
	if got := formatSummaryScore(wellbeing.Score{}); got != "-" {
		t.Fatalf("expected '-' for missing score, got %q", got)
	}
	if got := formatSummaryScore(wellbeing.NewScore(4)); got != "4.0" {
		t.Fatalf("expected 4.0, got %q", got)
	}
}

func TestUseColorFalseForBuffers(t *testing.T) {
	if useColor(&bytes.Buffer{}) {
		t.Fatal("expected buffers to never use colour")
	}
}
