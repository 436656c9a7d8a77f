// Package wx defines the shared weather data model: the fixed set of
// numerical prediction models, WMO weather codes, and the per-model
// forecast structures consumed by the aggregation engine.
package wx

// Provider identifies one of the numerical weather prediction models that
// can contribute a forecast. The set is fixed; adding a provider requires
// updating every switch that branches on this type.
type Provider string

const (
	ProviderGFS         Provider = "gfs"
	ProviderECMWF       Provider = "ecmwf"
	ProviderICON        Provider = "icon"
	ProviderUKMO        Provider = "ukmo"
	ProviderGEM         Provider = "gem"
	ProviderJMA         Provider = "jma"
	ProviderMeteoFrance Provider = "meteofrance"
)

// AllProviders returns the full provider set in canonical order.
func AllProviders() []Provider {
	return []Provider{
		ProviderGFS,
		ProviderECMWF,
		ProviderICON,
		ProviderUKMO,
		ProviderGEM,
		ProviderJMA,
		ProviderMeteoFrance,
	}
}

// Valid reports whether p is one of the known providers.
func (p Provider) Valid() bool {
	switch p {
	case ProviderGFS, ProviderECMWF, ProviderICON, ProviderUKMO,
		ProviderGEM, ProviderJMA, ProviderMeteoFrance:
		return true
	}
	return false
}

// DisplayName returns the human-readable model name used in narratives.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderGFS:
		return "GFS"
	case ProviderECMWF:
		return "ECMWF"
	case ProviderICON:
		return "ICON"
	case ProviderUKMO:
		return "UKMO"
	case ProviderGEM:
		return "GEM"
	case ProviderJMA:
		return "JMA"
	case ProviderMeteoFrance:
		return "Météo-France"
	}
	return string(p)
}
