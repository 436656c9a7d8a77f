package confidence

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/forecastfusion/forecastfusion/internal/aggregate"
	"github.com/forecastfusion/forecastfusion/internal/units"
	"github.com/forecastfusion/forecastfusion/internal/wx"
)

const epsilon = 1e-9

var slotTime = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func aggregated(t *testing.T, temps []float64) *aggregate.Forecast {
	t.Helper()

	models := wx.AllProviders()
	forecasts := make([]wx.ModelForecast, len(temps))
	for i, temp := range temps {
		forecasts[i] = wx.ModelForecast{
			Model: models[i],
			Hourly: []wx.HourlyMetrics{{
				Time:        wx.NewTimestamp(slotTime),
				Temperature: units.Celsius(temp),
				FeelsLike:   units.Celsius(temp),
			}},
		}
	}

	f, err := aggregate.NewEngine(aggregate.DefaultParams(), nil, nil).Aggregate(forecasts)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	return f
}

func TestCalculateTightAgreementIsHigh(t *testing.T) {
	f := aggregated(t, []float64{14.8, 14.9, 15.0, 15.1, 15.2})

	result := NewCalculator(aggregate.DefaultParams()).Calculate(f, MetricTemperature, 0)
	if result.Level != wx.ConfidenceHigh {
		t.Errorf("expected high level, got %s", result.Level)
	}
	if result.Score < 0.8 {
		t.Errorf("expected score >= 0.8, got %.4f", result.Score)
	}
}

func TestCalculateFactorWeightsSumToOne(t *testing.T) {
	f := aggregated(t, []float64{10, 12, 14, 16})
	calc := NewCalculator(aggregate.DefaultParams())

	for _, metric := range []Metric{MetricTemperature, MetricPrecipitation, MetricWind, MetricHumidity, MetricOverall} {
		result := calc.Calculate(f, metric, 2)

		weightSum := 0.0
		scoreSum := 0.0
		for _, factor := range result.Factors {
			if math.Abs(factor.Contribution-factor.Weight*factor.Score) > epsilon {
				t.Errorf("%s/%s: contribution is not weight*score", metric, factor.Name)
			}
			weightSum += factor.Weight
			scoreSum += factor.Contribution
		}
		if math.Abs(weightSum-1.0) > epsilon {
			t.Errorf("%s: factor weights sum to %.4f", metric, weightSum)
		}
		if math.Abs(scoreSum-result.Score) > epsilon {
			t.Errorf("%s: score %.4f does not equal contribution sum %.4f", metric, result.Score, scoreSum)
		}
	}
}

func TestCalculateTimeHorizonDecay(t *testing.T) {
	f := aggregated(t, []float64{14.8, 14.9, 15.0, 15.1, 15.2})
	calc := NewCalculator(aggregate.DefaultParams())

	prev := math.Inf(1)
	for days := 0; days <= 12; days++ {
		result := calc.Calculate(f, MetricTemperature, days)
		if result.Score > prev+epsilon {
			t.Errorf("score increased from %.4f to %.4f at %d days ahead", prev, result.Score, days)
		}
		prev = result.Score
	}

	// Decay caps at ten days
	at10 := calc.Calculate(f, MetricTemperature, 10)
	for _, days := range []int{11, 15, 100} {
		beyond := calc.Calculate(f, MetricTemperature, days)
		if math.Abs(beyond.Score-at10.Score) > epsilon {
			t.Errorf("expected identical score at %d and 10 days, got %.4f vs %.4f",
				days, beyond.Score, at10.Score)
		}
	}
}

func TestCalculateHumidityUsesPlaceholderSpread(t *testing.T) {
	f := aggregated(t, []float64{10, 20, 30, 40})

	result := NewCalculator(aggregate.DefaultParams()).Calculate(f, MetricHumidity, 0)

	var spread *wx.ConfidenceFactor
	for i := range result.Factors {
		if result.Factors[i].Name == "spread" {
			spread = &result.Factors[i]
		}
	}
	if spread == nil {
		t.Fatal("missing spread factor")
	}
	// The placeholder stdDev of 5 sits below the 10% high threshold, so
	// humidity spread always scores 1.0 today
	if math.Abs(spread.Score-1.0) > epsilon {
		t.Errorf("expected placeholder spread score 1.0, got %.4f", spread.Score)
	}
	if !strings.Contains(spread.Detail, "placeholder") {
		t.Errorf("expected the placeholder to be called out, got %q", spread.Detail)
	}
}

func TestCalculateOverallExplanation(t *testing.T) {
	f := aggregated(t, []float64{14.8, 14.9, 15.0, 15.1, 15.2})

	result := NewCalculator(aggregate.DefaultParams()).Calculate(f, MetricOverall, 0)
	if !strings.Contains(result.Explanation, "forecast") {
		t.Errorf("overall explanation should name the forecast, got %q", result.Explanation)
	}
	if !strings.Contains(result.Explanation, "5 of 5 models") {
		t.Errorf("explanation should name the agreement fraction, got %q", result.Explanation)
	}
}

func TestCalculateWithNoSlots(t *testing.T) {
	from := wx.NewTimestamp(slotTime)
	to := wx.NewTimestamp(slotTime.Add(24 * time.Hour))
	f, err := aggregate.NewEngine(aggregate.DefaultParams(), nil, nil).Aggregate([]wx.ModelForecast{
		{Model: wx.ProviderGFS, ValidFrom: from, ValidTo: to},
	})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	result := NewCalculator(aggregate.DefaultParams()).Calculate(f, MetricTemperature, 0)
	if result.Level == "" || math.IsNaN(result.Score) {
		t.Errorf("degenerate input should still produce a result, got %+v", result)
	}
}

func TestCalculateHourlySlot(t *testing.T) {
	f := aggregated(t, []float64{14.8, 14.9, 15.0, 15.1, 15.2})
	calc := NewCalculator(aggregate.DefaultParams())

	result := calc.CalculateHourly(f.Hourly[0], 0)
	if result.Level != wx.ConfidenceHigh {
		t.Errorf("tight slot should be high, got %s", result.Level)
	}

	weightSum := 0.0
	names := make(map[string]bool)
	for _, factor := range result.Factors {
		weightSum += factor.Weight
		names[factor.Name] = true
	}
	if math.Abs(weightSum-1.0) > epsilon {
		t.Errorf("slot factor weights sum to %.4f", weightSum)
	}
	// The spread weight is split across the three metrics
	for _, name := range []string{"temperature_spread", "precipitation_spread", "wind_spread", "agreement", "time_horizon"} {
		if !names[name] {
			t.Errorf("missing factor %s", name)
		}
	}
}

func TestCalculateDailySlot(t *testing.T) {
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	models := wx.AllProviders()

	var forecasts []wx.ModelForecast
	for i, tm := range []float64{20, 21, 22, 23} {
		forecasts = append(forecasts, wx.ModelForecast{
			Model: models[i],
			Daily: []wx.DailyMetrics{{
				Date:           wx.NewTimestamp(day),
				TemperatureMax: units.Celsius(tm),
			}},
		})
	}
	f, err := aggregate.NewEngine(aggregate.DefaultParams(), nil, nil).Aggregate(forecasts)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	calc := NewCalculator(aggregate.DefaultParams())
	near := calc.CalculateDaily(f.Daily[0], 0)
	far := calc.CalculateDaily(f.Daily[0], 7)
	if far.Score >= near.Score {
		t.Errorf("lead time should lower the score: %.4f at 7 days vs %.4f today", far.Score, near.Score)
	}
}
