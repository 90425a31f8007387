package wellbeing

import (
	"time"

	"github.com/terraincognita07/healthdash/internal/models"
)

type Direction string

const (
	DirectionBetter  Direction = "better"
	DirectionWorse   Direction = "worse"
	DirectionSame    Direction = "same"
	DirectionUnknown Direction = "unknown"
)

type Band string

const (
	BandGood     Band = "good"
	BandModerate Band = "moderate"
	BandPoor     Band = "poor"
	BandNone     Band = "none"
)

type ScoreDay string

const (
	ScoreDayToday     ScoreDay = "today"
	ScoreDayYesterday ScoreDay = "yesterday"
	ScoreDayNone      ScoreDay = "none"
)

type ActivityCounts struct {
	Meals        int `json:"meals"`
	Medications  int `json:"medications"`
	Symptoms     int `json:"symptoms"`
	DailyEntries int `json:"daily_entries"`
}

type Summary struct {
	Date       string         `json:"date"`
	Today      Score          `json:"today"`
	Yesterday  Score          `json:"yesterday"`
	Display    Score          `json:"display"`
	DisplayDay ScoreDay       `json:"display_day"`
	Direction  Direction      `json:"direction"`
	Band       Band           `json:"band"`
	Counts     ActivityCounts `json:"counts"`
}

// Summarize computes the "today" card: today's and yesterday's averages, the
// score to show (today, else yesterday), the day-over-day direction and
// today's activity counts.
func Summarize(collections models.Collections, now time.Time, location *time.Location) Summary {
	observations := Observations(collections, location)
	todayStart, todayEnd := DayRange(now, location)
	yesterdayStart := todayStart.AddDate(0, 0, -1)

	today := AverageForWindow(observations, todayStart, todayEnd)
	yesterday := AverageForWindow(observations, yesterdayStart, todayStart)

	summary := Summary{
		Date:       todayStart.Format(DateLayout),
		Today:      today,
		Yesterday:  yesterday,
		DisplayDay: ScoreDayNone,
		Direction:  CompareScores(today, yesterday),
		Counts:     CountActivity(collections, todayStart, todayEnd, location),
	}
	switch {
	case today.Valid:
		summary.Display = today
		summary.DisplayDay = ScoreDayToday
	case yesterday.Valid:
		summary.Display = yesterday
		summary.DisplayDay = ScoreDayYesterday
	}
	summary.Band = ClassifyScore(summary.Display)
	return summary
}

// CompareScores reports how current relates to previous. Lower scores are
// better.
func CompareScores(current Score, previous Score) Direction {
	if !current.Valid || !previous.Valid {
		return DirectionUnknown
	}
	switch {
	case current.Value < previous.Value:
		return DirectionBetter
	case current.Value > previous.Value:
		return DirectionWorse
	default:
		return DirectionSame
	}
}

func ClassifyScore(score Score) Band {
	switch {
	case !score.Valid:
		return BandNone
	case score.Value <= 3:
		return BandGood
	case score.Value <= 6:
		return BandModerate
	default:
		return BandPoor
	}
}

// CountActivity counts records in [start, end). Combined daily records also
// count toward meals, medications and symptoms for each sub-fact they carry.
func CountActivity(collections models.Collections, start time.Time, end time.Time, location *time.Location) ActivityCounts {
	inWindow := func(raw string) bool {
		at, ok := ParseTimestamp(raw, location)
		return ok && !at.Before(start) && at.Before(end)
	}

	counts := ActivityCounts{}
	for _, record := range collections.Meals {
		if inWindow(record.Timestamp) {
			counts.Meals++
		}
	}
	for _, record := range collections.Medications {
		if inWindow(record.Timestamp) {
			counts.Medications++
		}
	}
	for _, record := range collections.Symptoms {
		if inWindow(record.Timestamp) {
			counts.Symptoms++
		}
	}
	for _, record := range collections.Daily {
		if !inWindow(record.Timestamp) {
			continue
		}
		counts.DailyEntries++
		if record.HasMeal() {
			counts.Meals++
		}
		if record.HasMedication() {
			counts.Medications++
		}
		if record.HasSymptom() {
			counts.Symptoms++
		}
	}
	return counts
}
