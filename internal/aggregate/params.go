package aggregate

import "fmt"

// Params defines the tunable thresholds for fusion, outlier detection, and
// spread-to-confidence mapping. The spread thresholds are shared with the
// confidence calculator: spread at or below High maps to a 1.0 score,
// spread at or above Low maps to the 0.3 floor.
type Params struct {
	// TrimFraction is the fraction trimmed from each end of the sorted
	// cross-model sample when fusing temperatures (e.g. 0.1)
	TrimFraction float64 `yaml:"trim_fraction"`

	// OutlierZThreshold is the |z| above which a model is flagged as an
	// outlier at a slot (e.g. 2.0)
	OutlierZThreshold float64 `yaml:"outlier_z_threshold"`

	// MeasurablePrecipMM is the amount above which a model counts as
	// predicting measurable precipitation (e.g. 0.1)
	MeasurablePrecipMM float64 `yaml:"measurable_precip_mm"`

	// Spread thresholds in °C, mm, m/s, and %RH respectively
	TempSpreadHigh     float64 `yaml:"temp_spread_high"`
	TempSpreadLow      float64 `yaml:"temp_spread_low"`
	PrecipSpreadHigh   float64 `yaml:"precip_spread_high"`
	PrecipSpreadLow    float64 `yaml:"precip_spread_low"`
	WindSpreadHigh     float64 `yaml:"wind_spread_high"`
	WindSpreadLow      float64 `yaml:"wind_spread_low"`
	HumiditySpreadHigh float64 `yaml:"humidity_spread_high"`
	HumiditySpreadLow  float64 `yaml:"humidity_spread_low"`
}

// DefaultParams returns the standard fusion parameters.
func DefaultParams() Params {
	return Params{
		TrimFraction:       0.1,
		OutlierZThreshold:  2.0,
		MeasurablePrecipMM: 0.1,
		TempSpreadHigh:     1.5,
		TempSpreadLow:      4.0,
		PrecipSpreadHigh:   2.0,
		PrecipSpreadLow:    10.0,
		WindSpreadHigh:     2.78, // 10 km/h
		WindSpreadLow:      6.94, // 25 km/h
		HumiditySpreadHigh: 10.0,
		HumiditySpreadLow:  30.0,
	}
}

// Validate checks that the parameters are internally consistent.
func (p Params) Validate() error {
	if p.TrimFraction < 0 || p.TrimFraction >= 0.5 {
		return fmt.Errorf("trim fraction %.2f outside [0, 0.5)", p.TrimFraction)
	}
	if p.OutlierZThreshold <= 0 {
		return fmt.Errorf("outlier z threshold %.2f must be positive", p.OutlierZThreshold)
	}
	if p.MeasurablePrecipMM < 0 {
		return fmt.Errorf("measurable precipitation threshold %.2f must be non-negative", p.MeasurablePrecipMM)
	}
	pairs := []struct {
		name      string
		high, low float64
	}{
		{"temperature", p.TempSpreadHigh, p.TempSpreadLow},
		{"precipitation", p.PrecipSpreadHigh, p.PrecipSpreadLow},
		{"wind", p.WindSpreadHigh, p.WindSpreadLow},
		{"humidity", p.HumiditySpreadHigh, p.HumiditySpreadLow},
	}
	for _, pair := range pairs {
		if pair.high <= 0 || pair.low <= pair.high {
			return fmt.Errorf("%s spread thresholds (%.2f, %.2f) must satisfy 0 < high < low",
				pair.name, pair.high, pair.low)
		}
	}
	return nil
}
