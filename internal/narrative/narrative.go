// Package narrative turns an aggregated forecast into a short
// natural-language brief: a headline, a body, alert strings, and per-model
// divergence notes. Classification and phrasing are fully deterministic;
// each template group has phrasing variants but the first is always used.
package narrative

import (
	"github.com/forecastfusion/forecastfusion/internal/aggregate"
	"github.com/forecastfusion/forecastfusion/internal/stats"
	"github.com/forecastfusion/forecastfusion/internal/wx"
)

// Type classifies the overall character of a forecast.
type Type string

const (
	TypeAgreement    Type = "agreement"
	TypeDisagreement Type = "disagreement"
	TypeTransition   Type = "transition"
)

// Summary is the generated brief.
type Summary struct {
	Headline   string   `json:"headline"`
	Body       string   `json:"body"`
	Alerts     []string `json:"alerts"`
	ModelNotes []string `json:"modelNotes"`
}

// noDataHeadline is the fixed degenerate-case output for a forecast with
// no daily series.
const noDataHeadline = "No forecast data available."

// uncertaintyAlertDays is the lead time in days beyond which an
// uncertainty alert is attached.
const uncertaintyAlertDays = 5

// Generator produces narrative summaries. Relative day labels and lead
// times are computed against the forecast's own generation time, which
// keeps output deterministic for a fixed input.
type Generator struct {
	params aggregate.Params
}

// NewGenerator creates a generator sharing the engine's outlier threshold.
func NewGenerator(params aggregate.Params) *Generator {
	return &Generator{params: params}
}

// Classify determines the narrative type from the supplied confidence
// scores and the daily series. Low mean confidence always reads as
// disagreement, even when the data also contains a weather transition.
func (g *Generator) Classify(f *aggregate.Forecast, confidences []wx.ConfidenceResult) Type {
	if meanConfidence(f, confidences) < 0.5 {
		return TypeDisagreement
	}
	if len(f.Daily) >= 2 {
		first := f.Daily[0].Metrics.WeatherCode.IsWet()
		last := f.Daily[len(f.Daily)-1].Metrics.WeatherCode.IsWet()
		if first != last {
			return TypeTransition
		}
	}
	return TypeAgreement
}

// Generate builds the full brief for an aggregated forecast. The supplied
// confidence results (typically one per day) drive the classification and
// the confidence-tier sentence; with none supplied the forecast's overall
// confidence is used.
func (g *Generator) Generate(f *aggregate.Forecast, confidences []wx.ConfidenceResult) Summary {
	if len(f.Daily) == 0 {
		return Summary{Headline: noDataHeadline}
	}

	narrativeType := g.Classify(f, confidences)
	meanScore := meanConfidence(f, confidences)
	now := f.GeneratedAt.Time

	return Summary{
		Headline:   g.headline(f, narrativeType, now),
		Body:       g.body(f, narrativeType, meanScore, now),
		Alerts:     g.alerts(f, meanScore, now),
		ModelNotes: g.modelNotes(f, now),
	}
}

// meanConfidence averages the supplied confidence scores, falling back to
// the forecast's overall confidence when none are supplied.
func meanConfidence(f *aggregate.Forecast, confidences []wx.ConfidenceResult) float64 {
	if len(confidences) == 0 {
		return f.OverallConfidence.Score
	}
	scores := make([]float64, len(confidences))
	for i, c := range confidences {
		scores[i] = c.Score
	}
	return stats.Mean(scores)
}
