package wx

// WeatherCode is a WMO 4677 present-weather code as reported by forecast
// models (0 = clear sky through 99 = thunderstorm with heavy hail).
type WeatherCode int

// Description returns a short human-readable condition name for the code.
func (c WeatherCode) Description() string {
	switch {
	case c == 0:
		return "clear skies"
	case c >= 1 && c <= 2:
		return "partly cloudy skies"
	case c == 3:
		return "overcast skies"
	case c >= 45 && c <= 48:
		return "fog"
	case c >= 51 && c <= 57:
		return "drizzle"
	case c >= 61 && c <= 67:
		return "rain"
	case c >= 71 && c <= 77:
		return "snow"
	case c >= 80 && c <= 82:
		return "rain showers"
	case c >= 85 && c <= 86:
		return "snow showers"
	case c >= 95:
		return "thunderstorms"
	}
	return "mixed conditions"
}

// IsWet reports whether the code describes precipitation of any kind.
// Codes below 51 are dry (clear, cloud, fog); drizzle and above are wet.
func (c WeatherCode) IsWet() bool {
	return c >= 51
}
