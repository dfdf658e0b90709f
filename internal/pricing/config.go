package pricing

// Config is the complete set of user-editable pricing inputs at a point in
// time. JSON field names match the persisted state record, so a stored
// document round-trips unchanged.
type Config struct {
	PricingMode PricingMode `json:"pricingMode"`

	SpoolPrice   Number `json:"spoolPrice"`
	SpoolWeight  Number `json:"spoolWeight"`
	FixedPerGram Number `json:"fixedPerGram"`

	PartWeight Number `json:"partWeight"`

	PrintTimeHours   Number `json:"printTimeHours"`
	PrintTimeMinutes Number `json:"printTimeMinutes"`
	PrintTimeSeconds Number `json:"printTimeSeconds"`

	ElectricityMode ElectricityMode `json:"electricityMode"`

	Wattage  Number `json:"wattage"`
	KwPreset string `json:"kwPreset"`
	KwCustom Number `json:"kwCustom"`
	KwhPrice Number `json:"kwhPrice"`

	ElectricityPerHour Number `json:"electricityPhpPerHour"`

	LaborCost Number `json:"laborCost"`

	Packaging   Number `json:"packaging"`
	Paint       Number `json:"paint"`
	Adhesives   Number `json:"adhesives"`
	Shipping    Number `json:"shipping"`
	ModelingFee Number `json:"modelingFee"`

	FailureMarginPct Number `json:"failureMarginPct"`
	MarkupPct        Number `json:"markupPct"`
}

// DefaultConfig returns the first-run configuration.
func DefaultConfig() Config {
	return Config{
		PricingMode:  PricingDerive,
		SpoolPrice:   800,
		SpoolWeight:  1000,
		FixedPerGram: 2,

		PartWeight: 0,

		PrintTimeHours:   6,
		PrintTimeMinutes: 0,
		PrintTimeSeconds: 0,

		ElectricityMode: ElectricityWattage,

		Wattage:  120,
		KwPreset: Presets[0].Key,
		KwCustom: 0,
		KwhPrice: 12,

		ElectricityPerHour: 5,

		FailureMarginPct: 10,
		MarkupPct:        20,
	}
}
