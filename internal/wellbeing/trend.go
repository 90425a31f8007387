package wellbeing

import (
	"iter"
	"time"
)

const dayLabelLayout = "02.01"

type TrendPoint struct {
	Date         string `json:"date"`
	Label        string `json:"label"`
	DayLabel     string `json:"day_label"`
	Score        Score  `json:"score"`
	DisplayScore Score  `json:"display_score"`
}

// BuildTrendSeries yields exactly days points, oldest first, the last one on
// the calendar day of anchor. Days without ratings keep a null score. The
// sequence holds no state and can be ranged over repeatedly.
func BuildTrendSeries(observations []Observation, days int, anchor time.Time, location *time.Location, labels Labels) iter.Seq[TrendPoint] {
	if labels == nil {
		labels = MapLabels(nil)
	}
	anchorDay := DateAtLocation(anchor, location)

	return func(yield func(TrendPoint) bool) {
		for offset := days - 1; offset >= 0; offset-- {
			dayStart := anchorDay.AddDate(0, 0, -offset)
			score := AverageForWindow(observations, dayStart, dayStart.AddDate(0, 0, 1))
			point := TrendPoint{
				Date:         dayStart.Format(DateLayout),
				Label:        labels.Weekday(dayStart.Weekday()),
				DayLabel:     dayStart.Format(dayLabelLayout),
				Score:        score,
				DisplayScore: score.Inverted(),
			}
			if !yield(point) {
				return
			}
		}
	}
}
