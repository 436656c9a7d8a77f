package aggregate

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forecastfusion/forecastfusion/internal/align"
	"github.com/forecastfusion/forecastfusion/internal/stats"
	"github.com/forecastfusion/forecastfusion/internal/units"
	"github.com/forecastfusion/forecastfusion/internal/wx"
)

// ErrEmptyInput is returned when Aggregate is called without any model
// forecasts. It is the engine's only failure mode; every other input,
// however degenerate, produces a best-effort result.
var ErrEmptyInput = errors.New("cannot aggregate empty forecast list")

// Engine fuses model forecasts. It holds no state between calls: Aggregate
// is pure over its input, so independent calls may run concurrently.
type Engine struct {
	params    Params
	weighting WeightingStrategy
	logger    *zap.SugaredLogger
}

// NewEngine creates an engine. A nil weighting falls back to uniform
// weights and a nil logger disables diagnostics.
func NewEngine(params Params, weighting WeightingStrategy, logger *zap.SugaredLogger) *Engine {
	if weighting == nil {
		weighting = UniformWeighting{}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Engine{
		params:    params,
		weighting: weighting,
		logger:    logger,
	}
}

// Aggregate fuses the given model forecasts into one consensus forecast.
// Input order is preserved in Models and ModelForecasts.
func (e *Engine) Aggregate(forecasts []wx.ModelForecast) (*Forecast, error) {
	if len(forecasts) == 0 {
		return nil, ErrEmptyInput
	}

	models := make([]wx.Provider, 0, len(forecasts))
	for _, fc := range forecasts {
		models = append(models, fc.Model)
	}

	f := &Forecast{
		ID:             uuid.New(),
		Coordinates:    forecasts[0].Coordinates,
		GeneratedAt:    wx.NewTimestamp(time.Now().UTC()),
		Models:         models,
		ModelForecasts: forecasts,
		ModelWeights:   e.weighting.Weights(models),
	}

	hourlySlots := align.GroupHourly(forecasts)
	for _, slot := range align.SortedSlots(hourlySlots) {
		fused, outliers := e.fuseHourlySlot(slot, hourlySlots[slot])
		f.Hourly = append(f.Hourly, fused)
		f.outliers = append(f.outliers, outliers...)
	}

	dailySlots := align.GroupDaily(forecasts)
	for _, slot := range align.SortedSlots(dailySlots) {
		fused, outliers := e.fuseDailySlot(slot, dailySlots[slot])
		f.Daily = append(f.Daily, fused)
		f.outliers = append(f.outliers, outliers...)
	}

	for _, o := range f.outliers {
		e.logger.Debugw("model flagged as outlier",
			"model", o.Model, "metric", o.Metric, "value", o.Value,
			"zScore", o.ZScore, "time", o.Time)
	}

	f.OverallConfidence = e.overallConfidence(f)
	f.ValidFrom, f.ValidTo = validRange(f, forecasts)

	e.logger.Debugf("aggregated %d models into %d hourly and %d daily slots",
		len(forecasts), len(f.Hourly), len(f.Daily))
	return f, nil
}

// fuseHourlySlot applies the per-metric fusion strategies to one slot's
// contributing entries.
func (e *Engine) fuseHourlySlot(slot time.Time, entries []align.HourlyEntry) (HourlyForecast, []OutlierInfo) {
	n := len(entries)
	models := make([]wx.Provider, n)
	temps := make([]float64, n)
	feels := make([]float64, n)
	hums := make([]float64, n)
	press := make([]float64, n)
	windSpeeds := make([]float64, n)
	windDirs := make([]float64, n)
	windGusts := make([]float64, n)
	precips := make([]float64, n)
	clouds := make([]float64, n)
	vis := make([]float64, n)
	uvs := make([]float64, n)
	codes := make([]float64, n)

	for i, entry := range entries {
		m := entry.Metrics
		models[i] = entry.Model
		temps[i] = m.Temperature.Value()
		feels[i] = m.FeelsLike.Value()
		hums[i] = m.Humidity.Value()
		press[i] = m.Pressure.Value()
		windSpeeds[i] = m.WindSpeed.Value()
		windDirs[i] = m.WindDirection.Deg()
		windGusts[i] = m.WindGust.Value()
		precips[i] = m.Precipitation.Value()
		clouds[i] = m.CloudCover.Value()
		vis[i] = m.Visibility.Value()
		uvs[i] = m.UVIndex.Value()
		codes[i] = float64(m.WeatherCode)
	}

	p := e.params
	precipPct := stats.EnsembleProbability(precips, p.MeasurablePrecipMM, stats.Greater)

	fused := wx.HourlyMetrics{
		Time:        wx.NewTimestamp(slot),
		Temperature: units.Celsius(stats.TrimmedMean(temps, p.TrimFraction)),
		FeelsLike:   units.Celsius(stats.TrimmedMean(feels, p.TrimFraction)),
		Humidity:    units.Percent(stats.Mean(hums)),
		Pressure:    units.HectoPascals(stats.Mean(press)),
		WindSpeed:   units.MetersPerSecond(stats.Median(windSpeeds)),
		// Arithmetic mean of raw degrees; bearings straddling north are
		// not wrap-corrected (350° and 10° average to 180°)
		WindDirection:     units.DirectionFromDeg(math.Round(stats.Mean(windDirs))),
		WindGust:          units.MetersPerSecond(stats.Median(windGusts)),
		Precipitation:     units.Millimeters(stats.Mean(precips)),
		PrecipProbability: units.Percent(precipPct),
		CloudCover:        units.Percent(stats.Mean(clouds)),
		Visibility:        units.Kilometers(stats.Mean(vis)),
		UVIndex:           units.UVIndex(math.Round(stats.Median(uvs))),
		WeatherCode:       wx.WeatherCode(math.Round(stats.Median(codes))),
	}

	consensus, outliers := slotConsensus(models, temps, precips, windSpeeds, p.OutlierZThreshold, slot)

	return HourlyForecast{
		Metrics:            fused,
		Confidence:         slotConfidence(consensus.Temperature.StdDev, precipPct, consensus.Wind.Range, p),
		Consensus:          consensus,
		TemperatureRange:   Range{Min: consensus.Temperature.Min, Max: consensus.Temperature.Max},
		PrecipitationRange: Range{Min: consensus.Precipitation.Min, Max: consensus.Precipitation.Max},
		WindSpeedRange:     Range{Min: consensus.Wind.Min, Max: consensus.Wind.Max},
	}, outliers
}

// fuseDailySlot is the daily analogue of fuseHourlySlot. Consensus and
// outlier detection run on the daily maximum temperature distribution.
func (e *Engine) fuseDailySlot(slot time.Time, entries []align.DailyEntry) (DailyForecast, []OutlierInfo) {
	n := len(entries)
	models := make([]wx.Provider, n)
	tempMins := make([]float64, n)
	tempMaxs := make([]float64, n)
	precips := make([]float64, n)
	windMaxs := make([]float64, n)
	hums := make([]float64, n)
	clouds := make([]float64, n)
	uvMaxs := make([]float64, n)
	codes := make([]float64, n)

	for i, entry := range entries {
		m := entry.Metrics
		models[i] = entry.Model
		tempMins[i] = m.TemperatureMin.Value()
		tempMaxs[i] = m.TemperatureMax.Value()
		precips[i] = m.Precipitation.Value()
		windMaxs[i] = m.WindSpeedMax.Value()
		hums[i] = m.Humidity.Value()
		clouds[i] = m.CloudCover.Value()
		uvMaxs[i] = m.UVIndexMax.Value()
		codes[i] = float64(m.WeatherCode)
	}

	p := e.params
	precipPct := stats.EnsembleProbability(precips, p.MeasurablePrecipMM, stats.Greater)

	fused := wx.DailyMetrics{
		Date:              wx.NewTimestamp(slot),
		TemperatureMin:    units.Celsius(stats.TrimmedMean(tempMins, p.TrimFraction)),
		TemperatureMax:    units.Celsius(stats.TrimmedMean(tempMaxs, p.TrimFraction)),
		Precipitation:     units.Millimeters(stats.Mean(precips)),
		PrecipProbability: units.Percent(precipPct),
		WindSpeedMax:      units.MetersPerSecond(stats.Median(windMaxs)),
		Humidity:          units.Percent(stats.Mean(hums)),
		CloudCover:        units.Percent(stats.Mean(clouds)),
		UVIndexMax:        units.UVIndex(math.Round(stats.Median(uvMaxs))),
		WeatherCode:       wx.WeatherCode(math.Round(stats.Median(codes))),
	}

	consensus, outliers := slotConsensus(models, tempMaxs, precips, windMaxs, p.OutlierZThreshold, slot)

	minStats := metricStatistics(tempMins)

	return DailyForecast{
		Metrics:             fused,
		Confidence:          slotConfidence(consensus.Temperature.StdDev, precipPct, consensus.Wind.Range, p),
		Consensus:           consensus,
		TemperatureMaxRange: Range{Min: consensus.Temperature.Min, Max: consensus.Temperature.Max},
		TemperatureMinRange: Range{Min: minStats.Min, Max: minStats.Max},
		PrecipitationRange:  Range{Min: consensus.Precipitation.Min, Max: consensus.Precipitation.Max},
	}, outliers
}

// overallConfidence averages every slot's confidence score. With no slots
// at all the forecast gets a fixed 0.5 medium result.
func (e *Engine) overallConfidence(f *Forecast) wx.ConfidenceResult {
	var scores []float64
	for _, h := range f.Hourly {
		scores = append(scores, h.Confidence.Score)
	}
	for _, d := range f.Daily {
		scores = append(scores, d.Confidence.Score)
	}

	score := 0.5
	detail := "no aggregated time slots"
	if len(scores) > 0 {
		score = stats.Mean(scores)
		detail = fmt.Sprintf("mean confidence across %d time slots", len(scores))
	}

	level := wx.ConfidenceLevelForScore(score)
	return wx.ConfidenceResult{
		Level: level,
		Score: score,
		Factors: []wx.ConfidenceFactor{
			{
				Name:         "slot_confidence",
				Weight:       1.0,
				Score:        score,
				Contribution: score,
				Detail:       detail,
			},
		},
		Explanation: fmt.Sprintf("%s overall confidence in the consensus forecast", level),
	}
}

// validRange derives the forecast's valid window: hourly timestamp bounds,
// else daily date bounds, else the first input's own window.
func validRange(f *Forecast, inputs []wx.ModelForecast) (wx.Timestamp, wx.Timestamp) {
	if len(f.Hourly) > 0 {
		return f.Hourly[0].Metrics.Time, f.Hourly[len(f.Hourly)-1].Metrics.Time
	}
	if len(f.Daily) > 0 {
		return f.Daily[0].Metrics.Date, f.Daily[len(f.Daily)-1].Metrics.Date
	}
	return inputs[0].ValidFrom, inputs[0].ValidTo
}
