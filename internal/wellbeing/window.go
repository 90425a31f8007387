package wellbeing

import "time"

// AverageForWindow returns the mean normalised rating of observations whose
// time falls in [start, end). Both bounds are reduced to their calendar day,
// so the window always covers whole local days.
func AverageForWindow(observations []Observation, start time.Time, end time.Time) Score {
	windowStart := DateAtLocation(start, start.Location())
	windowEnd := DateAtLocation(end, end.Location())
	if !windowEnd.After(windowStart) {
		return Score{}
	}

	sum := 0.0
	count := 0
	for _, observation := range observations {
		if observation.At.Before(windowStart) || !observation.At.Before(windowEnd) {
			continue
		}
		value, ok := observation.Normalized()
		if !ok {
			continue
		}
		sum += value
		count++
	}

	if count == 0 {
		return Score{}
	}
	return NewScore(sum / float64(count))
}

// AverageForDay is AverageForWindow over the single calendar day of value.
func AverageForDay(observations []Observation, value time.Time, location *time.Location) Score {
	start, end := DayRange(value, location)
	return AverageForWindow(observations, start, end)
}
