package pricing

import "encoding/json"

// PricingMode selects where the price per gram comes from.
type PricingMode string

const (
	// PricingDerive derives price per gram from spool price and weight.
	PricingDerive PricingMode = "derive"
	// PricingFixed uses a user-supplied price per gram.
	PricingFixed PricingMode = "fixed"
)

// Normalize maps unknown tags to the default mode so switches over the mode
// stay exhaustive.
func (m PricingMode) Normalize() PricingMode {
	if m == PricingFixed {
		return PricingFixed
	}
	return PricingDerive
}

// UnmarshalJSON accepts any string and normalizes it; it never fails.
func (m *PricingMode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*m = PricingDerive
		return nil
	}
	*m = PricingMode(s).Normalize()
	return nil
}

// ElectricityMode selects one of three mutually exclusive electricity formulas.
type ElectricityMode string

const (
	// ElectricityWattage bills (watts × hours / 1000) × kWh price.
	ElectricityWattage ElectricityMode = "wattage"
	// ElectricityKilowatt bills (average kW × hours) × kWh price, where the
	// average power comes from the printer preset catalog or a custom value.
	ElectricityKilowatt ElectricityMode = "kw"
	// ElectricityRatePerHour bills a flat currency amount per print hour.
	// The kWh price is not used in this mode.
	ElectricityRatePerHour ElectricityMode = "php_per_hour"
)

// Normalize maps unknown tags to the default wattage mode.
func (m ElectricityMode) Normalize() ElectricityMode {
	switch m {
	case ElectricityKilowatt, ElectricityRatePerHour:
		return m
	default:
		return ElectricityWattage
	}
}

// UnmarshalJSON accepts any string and normalizes it; it never fails.
func (m *ElectricityMode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*m = ElectricityWattage
		return nil
	}
	*m = ElectricityMode(s).Normalize()
	return nil
}
