package pricing

import (
	"encoding/json"
	"testing"
)

func TestToNumber(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"12.5", 12.5},
		{" 7 ", 7},
		{"-3.25", -3.25},
		{"1e3", 1000},
		{"abc", 0},
		{"12,5", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"-Inf", 0},
	}

	for _, c := range cases {
		if got := ToNumber(c.raw); got != c.want {
			t.Fatalf("ToNumber(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestNumber_UnmarshalTolerant(t *testing.T) {
	var v struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
		D Number `json:"d"`
		E Number `json:"e"`
	}

	raw := `{"a": 12.5, "b": "3.75", "c": "", "d": null, "e": "garbage"}`
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if v.A != 12.5 || v.B != 3.75 || v.C != 0 || v.D != 0 || v.E != 0 {
		t.Fatalf("unexpected values: %+v", v)
	}
}

func TestConfig_UnmarshalNormalizesModes(t *testing.T) {
	var cfg Config
	raw := `{"pricingMode": "whatever", "electricityMode": 42, "partWeight": ""}`
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if cfg.PricingMode != PricingDerive {
		t.Fatalf("pricingMode = %q, want derive", cfg.PricingMode)
	}
	if cfg.ElectricityMode != ElectricityWattage {
		t.Fatalf("electricityMode = %q, want wattage", cfg.ElectricityMode)
	}
	if cfg.PartWeight != 0 {
		t.Fatalf("partWeight = %v, want 0", cfg.PartWeight)
	}
}
