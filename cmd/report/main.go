// Command report runs the demand-charge model once and prints the monthly
// cost table, optionally writing XLSX/PDF exports.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/Gabriel-Lim/ite-west-capacity-charges/internal/export"
	"github.com/Gabriel-Lim/ite-west-capacity-charges/internal/scenario"
	"github.com/Gabriel-Lim/ite-west-capacity-charges/internal/session"
)

// nopCallback discards session events; the CLI reads snapshots directly.
type nopCallback struct{}

func (nopCallback) OnSnapshot(session.Snapshot) {}
func (nopCallback) OnOptimum(session.Optimum)   {}

func main() {
	configPath := flag.String("config", "", "path to scenario YAML (built-in reference scenario when empty)")
	batteryKW := flag.Float64("battery", -1, "battery capacity in kW (scenario default when negative)")
	contractedKW := flag.Float64("capacity", -1, "contracted capacity in kW (scenario default when negative)")
	optimize := flag.Bool("optimize", false, "search for the cost-minimizing contracted capacity")
	xlsxPath := flag.String("xlsx", "", "write the report as XLSX to this path")
	pdfPath := flag.String("pdf", "", "write the report as PDF to this path")
	flag.Parse()

	sc := scenario.Default()
	if *configPath != "" {
		loaded, err := scenario.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load scenario: %v", err)
		}
		sc = loaded
	}

	engine := session.New(sc, nopCallback{})
	if *batteryKW >= 0 {
		engine.SetBatteryCapacity(*batteryKW)
	}
	if *contractedKW >= 0 {
		engine.SetContractedCapacity(*contractedKW)
	}
	if *optimize {
		opt := engine.Optimize()
		fmt.Printf("Optimal contracted capacity: %.0f kW\n", opt.CapacityKW)
		fmt.Println(opt.Explanation)
		fmt.Println()
	}

	snap := engine.Snapshot()
	printTable(snap)

	if *xlsxPath != "" {
		writeExport(*xlsxPath, func() ([]byte, error) { return export.BuildReportXLSX(sc, snap) })
	}
	if *pdfPath != "" {
		writeExport(*pdfPath, func() ([]byte, error) { return export.BuildReportPDF(sc, snap) })
	}
}

func printTable(snap session.Snapshot) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Month\tPeak kW\tEffective kW\tExceedance kW\tCharge\tBaseline\tSavings\t")
	for i := range snap.Labels {
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.0f\t%.2f\t%.2f\t%.2f\t\n",
			snap.Labels[i], snap.MaxDemandKW[i], snap.EffectiveDemandKW[i],
			snap.ExceedanceKW[i], snap.MonthlyCharge[i], snap.BaselineCharge[i],
			snap.MonthlySavings[i])
	}
	w.Flush()

	fmt.Printf("\nBattery %.0f kW, contracted %.0f kW\n",
		snap.State.BatteryCapacityKW, snap.State.ContractedCapacityKW)
	fmt.Printf("Total charge: %.2f (baseline %.2f)\n", snap.TotalCharge, snap.BaselineTotal)
	if snap.NetSavings >= 0 {
		fmt.Printf("Net savings: %.2f\n", snap.NetSavings)
	} else {
		fmt.Printf("Additional cost: %.2f\n", -snap.NetSavings)
	}
	fmt.Println(snap.Rationale)
}

func writeExport(path string, build func() ([]byte, error)) {
	data, err := build()
	if err != nil {
		log.Fatalf("Building %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatalf("Writing %s: %v", path, err)
	}
	log.Printf("Wrote %s", path)
}
