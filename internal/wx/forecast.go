package wx

import "github.com/forecastfusion/forecastfusion/internal/units"

// Coordinates is a WGS84 location.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HourlyMetrics is the fixed bundle of measurements a model reports for one
// instant. Every measurement carries its unit in the type.
type HourlyMetrics struct {
	Time              Timestamp             `json:"time"`
	Temperature       units.Celsius         `json:"temperature"`
	FeelsLike         units.Celsius         `json:"feelsLike"`
	Humidity          units.Percent         `json:"humidity"`
	Pressure          units.HectoPascals    `json:"pressure"`
	WindSpeed         units.MetersPerSecond `json:"windSpeed"`
	WindDirection     units.Direction       `json:"windDirection"`
	WindGust          units.MetersPerSecond `json:"windGust"`
	Precipitation     units.Millimeters     `json:"precipitation"`
	PrecipProbability units.Percent         `json:"precipProbability"`
	CloudCover        units.Percent         `json:"cloudCover"`
	Visibility        units.Kilometers      `json:"visibility"`
	UVIndex           units.UVIndex         `json:"uvIndex"`
	WeatherCode       WeatherCode           `json:"weatherCode"`
}

// DailyMetrics is the daily equivalent of HourlyMetrics.
type DailyMetrics struct {
	Date              Timestamp             `json:"date"`
	TemperatureMin    units.Celsius         `json:"temperatureMin"`
	TemperatureMax    units.Celsius         `json:"temperatureMax"`
	Precipitation     units.Millimeters     `json:"precipitation"`
	PrecipProbability units.Percent         `json:"precipProbability"`
	WindSpeedMax      units.MetersPerSecond `json:"windSpeedMax"`
	Humidity          units.Percent         `json:"humidity"`
	CloudCover        units.Percent         `json:"cloudCover"`
	UVIndexMax        units.UVIndex         `json:"uvIndexMax"`
	WeatherCode       WeatherCode           `json:"weatherCode"`
}

// ModelForecast is one model's complete forecast for a location. It is
// owned by the caller and never mutated by the engine; the aggregation
// output echoes it verbatim for drill-down.
type ModelForecast struct {
	Model       Provider       `json:"model"`
	Coordinates Coordinates    `json:"coordinates"`
	GeneratedAt Timestamp      `json:"generatedAt"`
	ValidFrom   Timestamp      `json:"validFrom"`
	ValidTo     Timestamp      `json:"validTo"`
	Hourly      []HourlyMetrics `json:"hourly"`
	Daily       []DailyMetrics  `json:"daily"`
}
