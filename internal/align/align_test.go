package align

import (
	"testing"
	"time"

	"github.com/forecastfusion/forecastfusion/internal/wx"
)

func hourlyAt(t time.Time) wx.HourlyMetrics {
	return wx.HourlyMetrics{Time: wx.NewTimestamp(t)}
}

func dailyAt(t time.Time) wx.DailyMetrics {
	return wx.DailyMetrics{Date: wx.NewTimestamp(t)}
}

func TestGroupHourlyUnionSemantics(t *testing.T) {
	base := time.Date(2026, time.March, 10, 6, 0, 0, 0, time.UTC)

	// Two models share one slot; each also has a slot the other lacks
	forecasts := []wx.ModelForecast{
		{
			Model:  wx.ProviderGFS,
			Hourly: []wx.HourlyMetrics{hourlyAt(base), hourlyAt(base.Add(time.Hour))},
		},
		{
			Model:  wx.ProviderECMWF,
			Hourly: []wx.HourlyMetrics{hourlyAt(base), hourlyAt(base.Add(2 * time.Hour))},
		},
	}

	slots := GroupHourly(forecasts)
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	if got := len(slots[base]); got != 2 {
		t.Errorf("shared slot: expected 2 entries, got %d", got)
	}
	if got := len(slots[base.Add(time.Hour)]); got != 1 {
		t.Errorf("gfs-only slot: expected 1 entry, got %d", got)
	}
	if slots[base.Add(2*time.Hour)][0].Model != wx.ProviderECMWF {
		t.Errorf("ecmwf-only slot attributed to wrong model")
	}
}

func TestGroupHourlyNormalizesZones(t *testing.T) {
	utc := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	offset := utc.In(time.FixedZone("UTC+2", 2*3600))

	forecasts := []wx.ModelForecast{
		{Model: wx.ProviderGFS, Hourly: []wx.HourlyMetrics{hourlyAt(utc)}},
		{Model: wx.ProviderICON, Hourly: []wx.HourlyMetrics{hourlyAt(offset)}},
	}

	slots := GroupHourly(forecasts)
	if len(slots) != 1 {
		t.Fatalf("same instant in different zones should share a slot, got %d slots", len(slots))
	}
	if got := len(slots[utc]); got != 2 {
		t.Errorf("expected 2 entries in shared slot, got %d", got)
	}
}

func TestGroupDailyBucketsByCalendarDate(t *testing.T) {
	morning := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	forecasts := []wx.ModelForecast{
		{Model: wx.ProviderGFS, Daily: []wx.DailyMetrics{dailyAt(morning), dailyAt(morning.AddDate(0, 0, 1))}},
		{Model: wx.ProviderECMWF, Daily: []wx.DailyMetrics{dailyAt(morning)}},
	}

	slots := GroupDaily(forecasts)
	if len(slots) != 2 {
		t.Fatalf("expected 2 date slots, got %d", len(slots))
	}
	if got := len(slots[morning]); got != 2 {
		t.Errorf("expected both models on day one, got %d", got)
	}
}

func TestSortedSlotsAscending(t *testing.T) {
	base := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	slots := map[time.Time][]HourlyEntry{
		base.Add(5 * time.Hour): nil,
		base:                    nil,
		base.Add(2 * time.Hour): nil,
	}

	keys := SortedSlots(slots)
	for i := 1; i < len(keys); i++ {
		if !keys[i-1].Before(keys[i]) {
			t.Fatalf("slots not ascending: %v", keys)
		}
	}
}
