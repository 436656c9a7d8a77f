package narrative

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/forecastfusion/forecastfusion/internal/aggregate"
	"github.com/forecastfusion/forecastfusion/internal/stats"
	"github.com/forecastfusion/forecastfusion/internal/wx"
)

// modelDayValues holds one model's raw daily values, pulled from the
// verbatim input forecasts rather than the consensus.
type modelDayValues struct {
	model   wx.Provider
	tempMax float64
	precip  float64
}

// perModelDailyValues indexes the raw inputs by calendar day.
func perModelDailyValues(f *aggregate.Forecast) map[time.Time][]modelDayValues {
	byDay := make(map[time.Time][]modelDayValues)
	for _, mf := range f.ModelForecasts {
		for _, d := range mf.Daily {
			t := d.Date.UTC()
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			byDay[day] = append(byDay[day], modelDayValues{
				model:   mf.Model,
				tempMax: d.TemperatureMax.Value(),
				precip:  d.Precipitation.Value(),
			})
		}
	}
	return byDay
}

func sortedDays(byDay map[time.Time][]modelDayValues) []time.Time {
	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// temperatureExtremes returns the indices of the coldest and warmest
// models in a day's values.
func temperatureExtremes(values []modelDayValues) (lo, hi int) {
	for i, v := range values {
		if v.tempMax < values[lo].tempMax {
			lo = i
		}
		if v.tempMax > values[hi].tempMax {
			hi = i
		}
	}
	return lo, hi
}

// modelNotes emits one note per (model, metric) for models that diverge
// from the pack on some day. Divergence is a per-day z-score of at least
// the outlier threshold against that day's own cross-model mean and
// standard deviation, computed here from the raw inputs rather than reusing
// the engine's consensus flags. The first divergent day wins per metric.
func (g *Generator) modelNotes(f *aggregate.Forecast, now time.Time) []string {
	byDay := perModelDailyValues(f)
	days := sortedDays(byDay)

	var notes []string
	for _, model := range f.Models {
		tempNote := ""
		precipNote := ""

		for _, day := range days {
			values := byDay[day]
			idx := -1
			temps := make([]float64, len(values))
			precips := make([]float64, len(values))
			for i, v := range values {
				temps[i] = v.tempMax
				precips[i] = v.precip
				if v.model == model {
					idx = i
				}
			}
			if idx < 0 {
				continue
			}

			if tempNote == "" && divergent(temps, idx, g.params.OutlierZThreshold) {
				mean := stats.Mean(temps)
				direction := "cooler"
				if temps[idx] > mean {
					direction = "warmer"
				}
				tempNote = fmt.Sprintf("%s runs %s than the other models %s (%.1f°C vs %.1f°C mean)",
					model.DisplayName(), direction, dayLabel(day, now), temps[idx], mean)
			}
			if precipNote == "" && divergent(precips, idx, g.params.OutlierZThreshold) {
				mean := stats.Mean(precips)
				direction := "drier"
				if precips[idx] > mean {
					direction = "wetter"
				}
				precipNote = fmt.Sprintf("%s is %s than the other models %s (%.1f mm vs %.1f mm mean)",
					model.DisplayName(), direction, dayLabel(day, now), precips[idx], mean)
			}
			if tempNote != "" && precipNote != "" {
				break
			}
		}

		if tempNote != "" {
			notes = append(notes, tempNote)
		}
		if precipNote != "" {
			notes = append(notes, precipNote)
		}
	}
	return notes
}

// divergent reports whether the value at idx deviates from the sample's
// own mean by at least zThreshold population standard deviations.
func divergent(xs []float64, idx int, zThreshold float64) bool {
	sd := stats.StdDev(xs)
	if sd == 0 {
		return false
	}
	z := math.Abs((xs[idx] - stats.Mean(xs)) / sd)
	return z >= zThreshold
}
