// Package aggregate fuses independent model forecasts for one location
// into a single consensus forecast with per-slot agreement, outlier, and
// confidence diagnostics.
package aggregate

import (
	"time"

	"github.com/google/uuid"

	"github.com/forecastfusion/forecastfusion/internal/wx"
)

// MetricStatistics summarizes one metric's distribution across models at
// one time slot. Range is always Max − Min and therefore non-negative;
// the central values may be negative (temperature).
type MetricStatistics struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stdDev"`
	Range  float64 `json:"range"`
}

// ModelConsensus describes how well the contributing models agree at one
// slot, with the three core metric distributions attached.
type ModelConsensus struct {
	AgreementScore    float64          `json:"agreementScore"`
	ModelsInAgreement []wx.Provider    `json:"modelsInAgreement"`
	OutlierModels     []wx.Provider    `json:"outlierModels"`
	Temperature       MetricStatistics `json:"temperature"`
	Precipitation     MetricStatistics `json:"precipitation"`
	Wind              MetricStatistics `json:"wind"`
}

// Range is the min/max spread of one metric across models at a slot,
// exposed so consumers can display model spread next to the consensus.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// HourlyForecast is one fused hourly slot.
type HourlyForecast struct {
	Metrics            wx.HourlyMetrics    `json:"metrics"`
	Confidence         wx.ConfidenceResult `json:"confidence"`
	Consensus          ModelConsensus      `json:"consensus"`
	TemperatureRange   Range               `json:"temperatureRange"`
	PrecipitationRange Range               `json:"precipitationRange"`
	WindSpeedRange     Range               `json:"windSpeedRange"`
}

// DailyForecast is one fused daily slot.
type DailyForecast struct {
	Metrics             wx.DailyMetrics     `json:"metrics"`
	Confidence          wx.ConfidenceResult `json:"confidence"`
	Consensus           ModelConsensus      `json:"consensus"`
	TemperatureMaxRange Range               `json:"temperatureMaxRange"`
	TemperatureMinRange Range               `json:"temperatureMinRange"`
	PrecipitationRange  Range               `json:"precipitationRange"`
}

// ModelWeight is one model's weight in the consensus, with a free-text
// reason describing the weighting strategy that produced it.
type ModelWeight struct {
	Model  wx.Provider `json:"model"`
	Weight float64     `json:"weight"`
	Reason string      `json:"reason"`
}

// OutlierInfo is a diagnostic record for one (model, metric) outlier flag.
// It is logged and retrievable through Forecast.Diagnostics but is not part
// of the serialized output.
type OutlierInfo struct {
	Model  wx.Provider
	Metric string
	Value  float64
	ZScore float64
	Time   time.Time
}

// Forecast is the fused consensus forecast across all contributing models.
// Models preserves input order and ModelForecasts echoes the inputs
// verbatim for drill-down.
type Forecast struct {
	ID                uuid.UUID           `json:"id"`
	Coordinates       wx.Coordinates      `json:"coordinates"`
	GeneratedAt       wx.Timestamp        `json:"generatedAt"`
	ValidFrom         wx.Timestamp        `json:"validFrom"`
	ValidTo           wx.Timestamp        `json:"validTo"`
	Models            []wx.Provider       `json:"models"`
	ModelForecasts    []wx.ModelForecast  `json:"modelForecasts"`
	Hourly            []HourlyForecast    `json:"hourly"`
	Daily             []DailyForecast     `json:"daily"`
	ModelWeights      []ModelWeight       `json:"modelWeights"`
	OverallConfidence wx.ConfidenceResult `json:"overallConfidence"`

	outliers []OutlierInfo
}

// Diagnostics returns every outlier flag recorded while building the
// forecast. A model may appear once per (slot, metric) flag.
func (f *Forecast) Diagnostics() []OutlierInfo {
	return f.outliers
}
