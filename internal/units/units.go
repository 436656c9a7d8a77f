// Package units defines unit-tagged scalar types for weather measurements.
//
// Each measurement is a distinct newtype over float64 so that values in
// different units cannot be mixed by accident. Numeric code unwraps to the
// raw float64 with Value (or Deg for Direction) and re-wraps on output.
package units

import (
	"encoding/json"
	"math"

	"github.com/soniakeys/unit"
)

// Celsius is a temperature in degrees Celsius.
type Celsius float64

// Value returns the raw temperature in °C.
func (c Celsius) Value() float64 { return float64(c) }

// Percent is a dimensionless percentage in the range 0-100.
type Percent float64

// Value returns the raw percentage.
func (p Percent) Value() float64 { return float64(p) }

// HectoPascals is an atmospheric pressure in hPa.
type HectoPascals float64

// Value returns the raw pressure in hPa.
func (h HectoPascals) Value() float64 { return float64(h) }

// MetersPerSecond is a speed in m/s.
type MetersPerSecond float64

// Value returns the raw speed in m/s.
func (m MetersPerSecond) Value() float64 { return float64(m) }

// Millimeters is a precipitation amount in mm.
type Millimeters float64

// Value returns the raw amount in mm.
func (m Millimeters) Value() float64 { return float64(m) }

// Kilometers is a distance in km, used for visibility.
type Kilometers float64

// Value returns the raw distance in km.
func (k Kilometers) Value() float64 { return float64(k) }

// UVIndex is a WHO UV index value.
type UVIndex float64

// Value returns the raw index.
func (u UVIndex) Value() float64 { return float64(u) }

// Direction is a compass bearing. It is stored as a unit.Angle (radians)
// but constructed from and serialized as meteorological degrees, where 0°
// is north and values increase clockwise.
type Direction unit.Angle

// DirectionFromDeg builds a Direction from a bearing in degrees.
func DirectionFromDeg(d float64) Direction {
	return Direction(unit.AngleFromDeg(d))
}

// Deg returns the bearing in degrees.
func (d Direction) Deg() float64 { return unit.Angle(d).Deg() }

// Angle returns the underlying unit.Angle.
func (d Direction) Angle() unit.Angle { return unit.Angle(d) }

var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Compass returns the 16-point compass name for the bearing.
func (d Direction) Compass() string {
	deg := unit.PMod(d.Deg(), 360)
	idx := int(math.Round(deg/22.5)) % 16
	return compassPoints[idx]
}

// MarshalJSON serializes the bearing as degrees.
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Deg())
}

// UnmarshalJSON parses a bearing given in degrees.
func (d *Direction) UnmarshalJSON(b []byte) error {
	var deg float64
	if err := json.Unmarshal(b, &deg); err != nil {
		return err
	}
	*d = DirectionFromDeg(deg)
	return nil
}
