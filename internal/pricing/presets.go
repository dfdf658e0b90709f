package pricing

// PresetCustom is the catalog entry for a free custom kW value.
const PresetCustom = "other"

// Preset is one printer power profile. Kilowatts is the measured average
// power draw; it is 0 for the custom entry, whose value comes from the
// configuration instead.
type Preset struct {
	Key       string  `json:"key"`
	Label     string  `json:"label"`
	Kilowatts float64 `json:"kw"`
}

// Presets is the fixed catalog of printer power profiles, based on power
// meter readings. The last entry is the custom variant.
var Presets = []Preset{
	{Key: "creality_hi", Label: "Creality Hi PLA — 0.129 kW", Kilowatts: 0.129},
	{Key: "creality_k2pro", Label: "Creality K2 Pro PLA — 0.183 kW", Kilowatts: 0.183},
	{Key: "bambu_a1mini", Label: "Bambu Lab A1 Mini PLA — ~0.77 kW", Kilowatts: 0.77},
	{Key: "bambu_a1", Label: "Bambu Lab A1 PLA — ~0.93 kW", Kilowatts: 0.93},
	{Key: "bambu_p1s", Label: "Bambu Lab P1S PLA — 0.10 kW", Kilowatts: 0.1},
	{Key: "bambu_h2s", Label: "Bambu Lab H2S PLA — 0.175 kW", Kilowatts: 0.175},
	{Key: "bambu_h2c", Label: "Bambu Lab H2C PLA — 0.128 kW", Kilowatts: 0.128},
	{Key: PresetCustom, Label: "Other (Custom kW)", Kilowatts: 0},
}

// LookupPreset returns the catalog entry for key, falling back to the first
// entry for unknown keys.
func LookupPreset(key string) Preset {
	for _, p := range Presets {
		if p.Key == key {
			return p
		}
	}
	return Presets[0]
}

// AveragePower resolves the effective average power (kW) for the
// configuration: the selected preset's rating, or the custom value when the
// custom entry is selected.
func AveragePower(cfg Config) float64 {
	p := LookupPreset(cfg.KwPreset)
	if p.Key == PresetCustom {
		return cfg.KwCustom.Value()
	}
	return p.Kilowatts
}
