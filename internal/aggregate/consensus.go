package aggregate

import (
	"fmt"
	"math"
	"time"

	"github.com/forecastfusion/forecastfusion/internal/stats"
	"github.com/forecastfusion/forecastfusion/internal/wx"
)

const (
	metricTemperature   = "temperature"
	metricPrecipitation = "precipitation"
	metricWindSpeed     = "windSpeed"
)

// metricStatistics summarizes one metric's cross-model distribution.
func metricStatistics(xs []float64) MetricStatistics {
	if len(xs) == 0 {
		return MetricStatistics{}
	}
	min, max := xs[0], xs[0]
	for _, x := range xs {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	return MetricStatistics{
		Mean:   stats.Mean(xs),
		Median: stats.Median(xs),
		Min:    min,
		Max:    max,
		StdDev: stats.StdDev(xs),
		Range:  max - min,
	}
}

// detectOutliers returns index → z-score for values whose deviation from
// the slot median exceeds zThreshold population standard deviations.
//
// Centering on the median rather than the sample's own mean keeps a single
// extreme model detectable at small N: against the mean, |z| is bounded by
// √(N−1), which never reaches 2.0 with four contributing models.
func detectOutliers(xs []float64, zThreshold float64) map[int]float64 {
	if len(xs) <= 2 {
		return nil
	}
	sd := stats.StdDev(xs)
	if sd == 0 {
		return nil
	}
	median := stats.Median(xs)

	var flagged map[int]float64
	for i, x := range xs {
		z := (x - median) / sd
		if math.Abs(z) > zThreshold {
			if flagged == nil {
				flagged = make(map[int]float64)
			}
			flagged[i] = z
		}
	}
	return flagged
}

// slotConsensus runs outlier detection independently on the temperature,
// precipitation, and wind distributions of one slot and combines the flags
// into agreement/outlier model lists. A model flagged on several metrics
// produces one OutlierInfo per metric.
func slotConsensus(models []wx.Provider, temps, precips, winds []float64, zThreshold float64, slotTime time.Time) (ModelConsensus, []OutlierInfo) {
	type metricSample struct {
		name string
		xs   []float64
	}
	samples := []metricSample{
		{metricTemperature, temps},
		{metricPrecipitation, precips},
		{metricWindSpeed, winds},
	}

	flaggedIdx := make(map[int]bool)
	var infos []OutlierInfo
	for _, s := range samples {
		for i, z := range detectOutliers(s.xs, zThreshold) {
			flaggedIdx[i] = true
			infos = append(infos, OutlierInfo{
				Model:  models[i],
				Metric: s.name,
				Value:  s.xs[i],
				ZScore: z,
				Time:   slotTime,
			})
		}
	}

	consensus := ModelConsensus{
		Temperature:   metricStatistics(temps),
		Precipitation: metricStatistics(precips),
		Wind:          metricStatistics(winds),
	}
	for i, m := range models {
		if flaggedIdx[i] {
			consensus.OutlierModels = append(consensus.OutlierModels, m)
		} else {
			consensus.ModelsInAgreement = append(consensus.ModelsInAgreement, m)
		}
	}
	if len(models) > 0 {
		consensus.AgreementScore = float64(len(consensus.ModelsInAgreement)) / float64(len(models))
	}
	return consensus, infos
}

// slotConfidence blends the slot's temperature spread, precipitation
// ensemble agreement, and wind range into the per-slot confidence score.
// The precipitation sub-score is 1.0 when the ensemble leans strongly
// either way (≥80% or ≤20% of models predicting measurable precipitation)
// and 0.5 otherwise.
func slotConfidence(tempStdDev, precipEnsemblePct, windRange float64, p Params) wx.ConfidenceResult {
	tempScore := stats.ConfidenceFromSpread(tempStdDev, p.TempSpreadHigh, p.TempSpreadLow)

	precipScore := 0.5
	if precipEnsemblePct >= 80 || precipEnsemblePct <= 20 {
		precipScore = 1.0
	}

	windScore := stats.ConfidenceFromSpread(windRange, p.WindSpreadHigh, p.WindSpreadLow)

	factors := []wx.ConfidenceFactor{
		{
			Name:         "temperature_spread",
			Weight:       0.4,
			Score:        tempScore,
			Contribution: 0.4 * tempScore,
			Detail:       fmt.Sprintf("temperature standard deviation across models is %.1f°C", tempStdDev),
		},
		{
			Name:         "precipitation_agreement",
			Weight:       0.3,
			Score:        precipScore,
			Contribution: 0.3 * precipScore,
			Detail:       fmt.Sprintf("%.0f%% of models predict measurable precipitation", precipEnsemblePct),
		},
		{
			Name:         "wind_spread",
			Weight:       0.3,
			Score:        windScore,
			Contribution: 0.3 * windScore,
			Detail:       fmt.Sprintf("wind speed range across models is %.1f m/s", windRange),
		},
	}

	score := 0.0
	for _, f := range factors {
		score += f.Contribution
	}
	level := wx.ConfidenceLevelForScore(score)

	return wx.ConfidenceResult{
		Level:       level,
		Score:       score,
		Factors:     factors,
		Explanation: fmt.Sprintf("%s confidence in this slot based on cross-model spread and precipitation agreement", level),
	}
}
