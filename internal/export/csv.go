// Package export serializes snapshots to CSV documents. Rows are re-derived
// through the pricing engine rather than read from any cached numbers, so an
// exported file always matches what a live computation would produce.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/makerlab/printcost/internal/pricing"
	"github.com/makerlab/printcost/internal/snapshot"
)

// BOM is the UTF-8 byte-order marker every document starts with. Spreadsheet
// tools misdetect the encoding without it.
const BOM = "\ufeff"

// Columns is the fixed, versioned column order of an exported row.
var Columns = []string{
	"Name",
	"Saved At",
	"Pricing Mode",
	"Spool Price",
	"Spool Weight (g)",
	"Fixed Price/g",
	"Filament Consumed (g)",
	"Print Time (hrs)",
	"Electricity Mode",
	"Wattage (W)",
	"Average Power (kW)",
	"kWh Price",
	"Electricity ₱/hr",
	"Labor Cost",
	"Packaging",
	"Paint",
	"Adhesives",
	"Shipping",
	"3D Modeling Fee",
	"Failure Margin %",
	"Markup %",
	"Price/gram",
	"Material Cost",
	"Electricity Cost",
	"Other Costs (pkg+paint+adh+ship+3D)",
	"Production Cost",
	"Non-Production Cost",
	"Subtotal",
	"With Failure (Subtotal + Failure)",
	"Final Price",
}

// savedAtLayout approximates a locale timestamp, matching how saves are
// shown on screen.
const savedAtLayout = "1/2/2006, 3:04:05 PM"

// Escape wraps a field in double quotes, doubling every internal quote.
// Every field is escaped, numbers included, so an embedded comma can never
// break column alignment.
func Escape(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// Row serializes one snapshot to a CSV row. The breakdown is recomputed from
// the snapshot's configuration. Columns that do not apply to the active
// electricity mode are emitted as empty strings, distinguishing "not
// applicable" from "computed as zero".
func Row(snap snapshot.Snapshot) string {
	cfg := snap.Config
	b := pricing.Compute(cfg)

	wattage := ""
	ratePerHour := ""
	switch cfg.ElectricityMode.Normalize() {
	case pricing.ElectricityWattage:
		wattage = num(cfg.Wattage.Value())
	case pricing.ElectricityRatePerHour:
		ratePerHour = num(cfg.ElectricityPerHour.Value())
	case pricing.ElectricityKilowatt:
	}

	cells := []string{
		snap.Name,
		snap.SavedAt.Format(savedAtLayout),
		string(cfg.PricingMode.Normalize()),
		num(cfg.SpoolPrice.Value()),
		num(cfg.SpoolWeight.Value()),
		num(cfg.FixedPerGram.Value()),
		num(cfg.PartWeight.Value()),
		num(b.PrintHours),
		string(cfg.ElectricityMode.Normalize()),
		wattage,
		num(b.AvgKilowatts),
		num(cfg.KwhPrice.Value()),
		ratePerHour,
		num(cfg.LaborCost.Value()),
		num(cfg.Packaging.Value()),
		num(cfg.Paint.Value()),
		num(cfg.Adhesives.Value()),
		num(cfg.Shipping.Value()),
		num(cfg.ModelingFee.Value()),
		num(cfg.FailureMarginPct.Value()),
		num(cfg.MarkupPct.Value()),
		num(b.PricePerGram),
		num(b.MaterialCost),
		num(b.ElectricityCost),
		num(b.OtherCosts),
		num(b.ProductionCost),
		num(b.NonProductionCost),
		num(b.Subtotal),
		num(b.WithFailure),
		num(b.FinalPrice),
	}

	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = Escape(c)
	}
	return strings.Join(escaped, ",")
}

// Document builds a complete CSV file: BOM, header row, then one row per
// snapshot, newline-joined. The whole string is assembled before any write
// happens, so a failed download can never leave a partial file behind.
func Document(snaps snapshot.List) string {
	lines := make([]string, 0, len(snaps)+1)
	lines = append(lines, strings.Join(Columns, ","))
	for _, snap := range snaps {
		lines = append(lines, Row(snap))
	}
	return BOM + strings.Join(lines, "\n")
}

// Filename turns a snapshot name into a download filename, appending .csv
// only when it is not already there.
func Filename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "save"
	}
	if strings.HasSuffix(name, ".csv") {
		return name
	}
	return name + ".csv"
}

// BulkFilename is the ISO-date-stamped name used when exporting every save.
func BulkFilename(now time.Time) string {
	return "PrintCost_Saves_" + now.Format("2006-01-02") + ".csv"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
