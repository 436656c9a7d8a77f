// Package confidence scores how much trust a consensus forecast deserves,
// combining model spread, model agreement, and forecast lead time into a
// weighted, explainable result.
package confidence

import (
	"fmt"

	"github.com/forecastfusion/forecastfusion/internal/aggregate"
	"github.com/forecastfusion/forecastfusion/internal/stats"
	"github.com/forecastfusion/forecastfusion/internal/wx"
)

// Metric selects which consensus metric a confidence request is about.
type Metric string

const (
	MetricTemperature   Metric = "temperature"
	MetricPrecipitation Metric = "precipitation"
	MetricWind          Metric = "wind"
	MetricHumidity      Metric = "humidity"
	MetricOverall       Metric = "overall"
)

// Factor weights. Each Calculate variant distributes exactly these three
// across its factors, so the weights of any single result sum to 1.0.
const (
	spreadWeight    = 0.5
	agreementWeight = 0.3
	horizonWeight   = 0.2
)

// TODO: carry humidity statistics through ModelConsensus so the humidity
// spread stops using this fixed placeholder.
const humidityStdDevStub = 5.0

// Calculator scores aggregated forecasts. It shares the engine's spread
// thresholds so both layers map spread to score the same way.
type Calculator struct {
	params aggregate.Params
}

// NewCalculator creates a calculator with the given fusion parameters.
func NewCalculator(params aggregate.Params) *Calculator {
	return &Calculator{params: params}
}

// Calculate scores the whole-forecast confidence for one metric at the
// given lead time in days.
//
// The spread factor reads the first hourly slot's statistics regardless of
// which slot a caller ultimately cares about; CalculateHourly and
// CalculateDaily score a specific slot instead.
func (c *Calculator) Calculate(f *aggregate.Forecast, metric Metric, daysAhead int) wx.ConfidenceResult {
	spreadScore, spreadDetail := c.spreadFactor(f, metric)

	agreeCount, totalCount := forecastAgreement(f)
	agreementScore := agreementFromCounts(agreeCount, totalCount)

	factors := []wx.ConfidenceFactor{
		factor("spread", spreadWeight, spreadScore, spreadDetail),
		factor("agreement", agreementWeight, agreementScore,
			fmt.Sprintf("%d of %d models in agreement", agreeCount, totalCount)),
		horizonFactor(horizonWeight, daysAhead),
	}

	return assemble(factors, metricNoun(metric), agreeCount, totalCount)
}

// CalculateHourly scores one aggregated hourly slot from its own consensus
// statistics, splitting the spread weight 50/30/20 across temperature,
// precipitation, and wind.
func (c *Calculator) CalculateHourly(slot aggregate.HourlyForecast, daysAhead int) wx.ConfidenceResult {
	return c.slotResult(slot.Consensus, daysAhead)
}

// CalculateDaily is the daily analogue of CalculateHourly.
func (c *Calculator) CalculateDaily(slot aggregate.DailyForecast, daysAhead int) wx.ConfidenceResult {
	return c.slotResult(slot.Consensus, daysAhead)
}

func (c *Calculator) slotResult(consensus aggregate.ModelConsensus, daysAhead int) wx.ConfidenceResult {
	p := c.params

	tempScore := stats.ConfidenceFromSpread(consensus.Temperature.StdDev, p.TempSpreadHigh, p.TempSpreadLow)
	precipScore := stats.ConfidenceFromSpread(consensus.Precipitation.StdDev, p.PrecipSpreadHigh, p.PrecipSpreadLow)
	windScore := stats.ConfidenceFromSpread(consensus.Wind.StdDev, p.WindSpreadHigh, p.WindSpreadLow)

	agreeCount := len(consensus.ModelsInAgreement)
	totalCount := agreeCount + len(consensus.OutlierModels)
	agreementScore := agreementFromCounts(agreeCount, totalCount)

	factors := []wx.ConfidenceFactor{
		factor("temperature_spread", spreadWeight*0.5, tempScore,
			fmt.Sprintf("temperature standard deviation is %.1f°C", consensus.Temperature.StdDev)),
		factor("precipitation_spread", spreadWeight*0.3, precipScore,
			fmt.Sprintf("precipitation standard deviation is %.1f mm", consensus.Precipitation.StdDev)),
		factor("wind_spread", spreadWeight*0.2, windScore,
			fmt.Sprintf("wind speed standard deviation is %.1f m/s", consensus.Wind.StdDev)),
		factor("agreement", agreementWeight, agreementScore,
			fmt.Sprintf("%d of %d models in agreement", agreeCount, totalCount)),
		horizonFactor(horizonWeight, daysAhead),
	}

	return assemble(factors, "slot", agreeCount, totalCount)
}

// spreadFactor scores the spread component for Calculate. Non-overall
// metrics read the first hourly slot; overall averages every slot's own
// confidence score.
func (c *Calculator) spreadFactor(f *aggregate.Forecast, metric Metric) (float64, string) {
	p := c.params

	if metric == MetricOverall {
		var scores []float64
		for _, h := range f.Hourly {
			scores = append(scores, h.Confidence.Score)
		}
		for _, d := range f.Daily {
			scores = append(scores, d.Confidence.Score)
		}
		if len(scores) == 0 {
			return 0.5, "no aggregated time slots"
		}
		return stats.Mean(scores), fmt.Sprintf("mean slot confidence across %d slots", len(scores))
	}

	if len(f.Hourly) == 0 {
		return 0.5, "no hourly consensus data"
	}
	consensus := f.Hourly[0].Consensus

	switch metric {
	case MetricTemperature:
		sd := consensus.Temperature.StdDev
		return stats.ConfidenceFromSpread(sd, p.TempSpreadHigh, p.TempSpreadLow),
			fmt.Sprintf("temperature standard deviation is %.1f°C", sd)
	case MetricPrecipitation:
		sd := consensus.Precipitation.StdDev
		return stats.ConfidenceFromSpread(sd, p.PrecipSpreadHigh, p.PrecipSpreadLow),
			fmt.Sprintf("precipitation standard deviation is %.1f mm", sd)
	case MetricWind:
		sd := consensus.Wind.StdDev
		return stats.ConfidenceFromSpread(sd, p.WindSpreadHigh, p.WindSpreadLow),
			fmt.Sprintf("wind speed standard deviation is %.1f m/s", sd)
	case MetricHumidity:
		return stats.ConfidenceFromSpread(humidityStdDevStub, p.HumiditySpreadHigh, p.HumiditySpreadLow),
			fmt.Sprintf("humidity standard deviation is %.1f%% (placeholder)", float64(humidityStdDevStub))
	}
	return 0.5, fmt.Sprintf("unknown metric %q", metric)
}

// forecastAgreement reads the model agreement of the first hourly slot,
// falling back to the first daily slot, against the full model count.
func forecastAgreement(f *aggregate.Forecast) (agree, total int) {
	total = len(f.Models)
	switch {
	case len(f.Hourly) > 0:
		agree = len(f.Hourly[0].Consensus.ModelsInAgreement)
	case len(f.Daily) > 0:
		agree = len(f.Daily[0].Consensus.ModelsInAgreement)
	default:
		agree = total
	}
	return agree, total
}

// agreementFromCounts maps an agreement fraction onto [0.3, 1.0]. A zero
// model count resolves to the 0.5 fallback rather than dividing by zero.
func agreementFromCounts(agree, total int) float64 {
	if total == 0 {
		return 0.5
	}
	return 0.3 + 0.7*float64(agree)/float64(total)
}

// horizonFactor decays confidence 5% per day of lead time, capped at ten
// days and floored at 0.5.
func horizonFactor(weight float64, daysAhead int) wx.ConfidenceFactor {
	days := daysAhead
	if days > 10 {
		days = 10
	}
	score := 1.0 - float64(days)*0.05
	if score < 0.5 {
		score = 0.5
	}
	return factor("time_horizon", weight, score,
		fmt.Sprintf("forecast is %d day(s) ahead", daysAhead))
}

func factor(name string, weight, score float64, detail string) wx.ConfidenceFactor {
	return wx.ConfidenceFactor{
		Name:         name,
		Weight:       weight,
		Score:        score,
		Contribution: weight * score,
		Detail:       detail,
	}
}

func assemble(factors []wx.ConfidenceFactor, subject string, agree, total int) wx.ConfidenceResult {
	score := 0.0
	for _, f := range factors {
		score += f.Contribution
	}
	level := wx.ConfidenceLevelForScore(score)

	return wx.ConfidenceResult{
		Level:   level,
		Score:   score,
		Factors: factors,
		Explanation: fmt.Sprintf("%s confidence in the %s consensus with %d of %d models in agreement",
			level, subject, agree, total),
	}
}

// metricNoun returns the metric name used in explanations; the overall
// metric reads as "forecast".
func metricNoun(m Metric) string {
	if m == MetricOverall {
		return "forecast"
	}
	return string(m)
}
