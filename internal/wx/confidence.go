package wx

// ConfidenceLevel is the coarse high/medium/low classification of trust in
// a consensus value.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// ConfidenceLevelForScore maps a 0-1 score onto a level. Scores of 0.8 and
// above are high, 0.5 and above are medium, everything else is low.
func ConfidenceLevelForScore(score float64) ConfidenceLevel {
	switch {
	case score >= 0.8:
		return ConfidenceHigh
	case score >= 0.5:
		return ConfidenceMedium
	}
	return ConfidenceLow
}

// ConfidenceFactor is one weighted input to a confidence score.
// Contribution is always Weight × Score.
type ConfidenceFactor struct {
	Name         string  `json:"name"`
	Weight       float64 `json:"weight"`
	Score        float64 `json:"score"`
	Contribution float64 `json:"contribution"`
	Detail       string  `json:"detail"`
}

// ConfidenceResult is a leveled, explainable confidence score. The factor
// weights of a single result always sum to 1.0, so Score is the sum of the
// factor contributions.
type ConfidenceResult struct {
	Level       ConfidenceLevel    `json:"level"`
	Score       float64            `json:"score"`
	Factors     []ConfidenceFactor `json:"factors"`
	Explanation string             `json:"explanation"`
}
