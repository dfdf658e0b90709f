// Package pricing implements the deterministic cost computation for
// 3D-printing sale prices: material, electricity, labor, and overhead inputs
// in, a full price breakdown out.
package pricing

// Breakdown contains every intermediate and final value of the pricing
// calculation. All stages are exported because the API and the CSV export
// need them individually.
type Breakdown struct {
	PricePerGram    float64 `json:"pricePerGram"`
	MaterialCost    float64 `json:"materialCost"`
	PrintHours      float64 `json:"printHours"`
	AvgKilowatts    float64 `json:"avgKilowatts"`
	ElectricityCost float64 `json:"electricityCost"`

	ProductionCost    float64 `json:"productionCost"`
	NonProductionCost float64 `json:"nonProductionCost"`
	OtherCosts        float64 `json:"otherCosts"`
	Subtotal          float64 `json:"subtotal"`

	FailureMarginAmount float64 `json:"failureMarginAmount"`
	MarkupAmount        float64 `json:"markupAmount"`
	WithFailure         float64 `json:"withFailure"`
	FinalPrice          float64 `json:"finalPrice"`
}

// Compute derives the full price breakdown from a configuration. It is pure
// and total: no I/O, no error path, and equal inputs always produce identical
// output. Invalid inputs have already degraded to 0 during normalization.
func Compute(cfg Config) Breakdown {
	ppg := pricePerGram(cfg)

	weight := cfg.PartWeight.Value()
	if weight < 0 {
		weight = 0
	}
	material := weight * ppg

	hours := cfg.PrintTimeHours.Value() +
		cfg.PrintTimeMinutes.Value()/60 +
		cfg.PrintTimeSeconds.Value()/3600

	avgKw := AveragePower(cfg)

	var electricity float64
	switch cfg.ElectricityMode.Normalize() {
	case ElectricityKilowatt:
		electricity = avgKw * hours * cfg.KwhPrice.Value()
	case ElectricityRatePerHour:
		electricity = cfg.ElectricityPerHour.Value() * hours
	case ElectricityWattage:
		electricity = (cfg.Wattage.Value() * hours / 1000) * cfg.KwhPrice.Value()
	}

	// The failure margin covers misprints, so it applies to production cost
	// only. Modeling fee and shipping are non-production and stay out of it;
	// markup applies to the full subtotal.
	production := material + electricity + cfg.LaborCost.Value() +
		cfg.Packaging.Value() + cfg.Paint.Value() + cfg.Adhesives.Value()
	nonProduction := cfg.ModelingFee.Value() + cfg.Shipping.Value()
	subtotal := production + nonProduction

	failureMargin := production * (cfg.FailureMarginPct.Value() / 100)
	markup := subtotal * (cfg.MarkupPct.Value() / 100)

	return Breakdown{
		PricePerGram:    ppg,
		MaterialCost:    material,
		PrintHours:      hours,
		AvgKilowatts:    avgKw,
		ElectricityCost: electricity,

		ProductionCost:    production,
		NonProductionCost: nonProduction,
		OtherCosts: cfg.Packaging.Value() + cfg.Paint.Value() +
			cfg.Adhesives.Value() + cfg.Shipping.Value() + cfg.ModelingFee.Value(),
		Subtotal: subtotal,

		FailureMarginAmount: failureMargin,
		MarkupAmount:        markup,
		WithFailure:         subtotal + failureMargin,
		FinalPrice:          subtotal + failureMargin + markup,
	}
}

// pricePerGram resolves the material price per gram for the active pricing
// mode. A zero spool weight yields 0, never a division by zero.
func pricePerGram(cfg Config) float64 {
	if cfg.PricingMode.Normalize() == PricingFixed {
		return cfg.FixedPerGram.Value()
	}
	if cfg.SpoolWeight.Value() <= 0 {
		return 0
	}
	return cfg.SpoolPrice.Value() / cfg.SpoolWeight.Value()
}
