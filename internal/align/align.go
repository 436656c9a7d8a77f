// Package align groups per-model forecast entries into shared time slots.
//
// Grouping is a union across models: a slot exists if any model reports
// it, and its membership is whichever models happen to cover that slot.
// Models with disjoint time coverage therefore still aggregate, just with
// fewer contributors per slot.
package align

import (
	"sort"
	"time"

	"github.com/forecastfusion/forecastfusion/internal/wx"
)

// HourlyEntry pairs a model with one of its hourly readings.
type HourlyEntry struct {
	Model   wx.Provider
	Metrics wx.HourlyMetrics
}

// DailyEntry pairs a model with one of its daily readings.
type DailyEntry struct {
	Model   wx.Provider
	Metrics wx.DailyMetrics
}

// GroupHourly buckets every hourly entry of every model by its exact
// timestamp, normalized to UTC.
func GroupHourly(forecasts []wx.ModelForecast) map[time.Time][]HourlyEntry {
	slots := make(map[time.Time][]HourlyEntry)
	for _, fc := range forecasts {
		for _, h := range fc.Hourly {
			key := h.Time.UTC().Round(0)
			slots[key] = append(slots[key], HourlyEntry{Model: fc.Model, Metrics: h})
		}
	}
	return slots
}

// GroupDaily buckets every daily entry of every model by calendar date
// (UTC midnight).
func GroupDaily(forecasts []wx.ModelForecast) map[time.Time][]DailyEntry {
	slots := make(map[time.Time][]DailyEntry)
	for _, fc := range forecasts {
		for _, d := range fc.Daily {
			t := d.Date.UTC()
			key := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			slots[key] = append(slots[key], DailyEntry{Model: fc.Model, Metrics: d})
		}
	}
	return slots
}

// SortedSlots returns the slot keys of a grouping in ascending order.
func SortedSlots[E any](slots map[time.Time][]E) []time.Time {
	keys := make([]time.Time, 0, len(slots))
	for t := range slots {
		keys = append(keys, t)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}
