package wellbeing

import (
	"bytes"
	"encoding/json"
	"math"
)

// Score is an aggregated rating on the common 1..10 scale (1 = best). A zero
// Score means "no data" and is encoded as JSON null.
type Score struct {
	Value float64
	Valid bool
}

func NewScore(value float64) Score {
	return Score{Value: value, Valid: true}
}

func (score Score) Rounded(decimals int) Score {
	if !score.Valid {
		return score
	}
	factor := math.Pow(10, float64(decimals))
	return NewScore(math.Round(score.Value*factor) / factor)
}

// Inverted maps a score onto the chart orientation where higher is better.
func (score Score) Inverted() Score {
	if !score.Valid {
		return Score{}
	}
	return NewScore(float64(maxNormalizedRating+1) - score.Value)
}

func (score Score) MarshalJSON() ([]byte, error) {
	if !score.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(score.Value)
}

func (score *Score) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*score = Score{}
		return nil
	}
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*score = NewScore(value)
	return nil
}
