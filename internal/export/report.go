package export

import (
	"bytes"
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/Gabriel-Lim/ite-west-capacity-charges/internal/scenario"
	"github.com/Gabriel-Lim/ite-west-capacity-charges/internal/session"
)

var monthlyHeader = []string{
	"Month", "Peak (kW)", "Effective (kW)", "Exceedance (kW)",
	"Charge", "Baseline Charge", "Savings",
}

// BuildReportXLSX renders the derived cost report as an XLSX workbook with a
// summary sheet and a per-month sheet.
func BuildReportXLSX(sc *scenario.Scenario, snap session.Snapshot) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	monthlySheet := "monthly"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(monthlySheet)

	_ = f.SetCellValue(summarySheet, "A1", "Demand Charge Report")
	_ = f.SetCellValue(summarySheet, "A3", "Battery Capacity (kW)")
	_ = f.SetCellValue(summarySheet, "B3", snap.State.BatteryCapacityKW)
	_ = f.SetCellValue(summarySheet, "A4", "Contracted Capacity (kW)")
	_ = f.SetCellValue(summarySheet, "B4", snap.State.ContractedCapacityKW)
	_ = f.SetCellValue(summarySheet, "A5", "Contracted Rate ($/kW/month)")
	_ = f.SetCellValue(summarySheet, "B5", sc.Rates.ContractedPerKWMonth)
	_ = f.SetCellValue(summarySheet, "A6", "Exceedance Rate ($/kW/month)")
	_ = f.SetCellValue(summarySheet, "B6", sc.Rates.ExceedancePerKWMonth)
	_ = f.SetCellValue(summarySheet, "A7", "Total Charge")
	_ = f.SetCellValue(summarySheet, "B7", snap.TotalCharge)
	_ = f.SetCellValue(summarySheet, "A8", fmt.Sprintf("Baseline Total (%.0f kW, no battery)", sc.BaselineContractedKW))
	_ = f.SetCellValue(summarySheet, "B8", snap.BaselineTotal)
	_ = f.SetCellValue(summarySheet, "A9", savingsLabel(snap.NetSavings))
	_ = f.SetCellValue(summarySheet, "B9", math.Abs(snap.NetSavings))
	_ = f.SetCellValue(summarySheet, "A11", "Rationale")
	_ = f.SetCellValue(summarySheet, "B11", snap.Rationale)

	for col, name := range monthlyHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(monthlySheet, cell, name)
	}
	for i := range snap.Labels {
		row := i + 2
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("A%d", row), snap.Labels[i])
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("B%d", row), snap.MaxDemandKW[i])
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("C%d", row), snap.EffectiveDemandKW[i])
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("D%d", row), snap.ExceedanceKW[i])
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("E%d", row), snap.MonthlyCharge[i])
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("F%d", row), snap.BaselineCharge[i])
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("G%d", row), snap.MonthlySavings[i])
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildReportPDF renders the same report as a one-page PDF.
func BuildReportPDF(sc *scenario.Scenario, snap session.Snapshot) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Demand Charge Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Battery capacity: %.0f kW", snap.State.BatteryCapacityKW))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Contracted capacity: %.0f kW", snap.State.ContractedCapacityKW))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Tariff: %.2f contracted, %.2f exceedance ($/kW/month)",
		sc.Rates.ContractedPerKWMonth, sc.Rates.ExceedancePerKWMonth))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total charge: %.2f", snap.TotalCharge))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Baseline total (%.0f kW, no battery): %.2f",
		sc.BaselineContractedKW, snap.BaselineTotal))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("%s: %.2f", savingsLabel(snap.NetSavings), math.Abs(snap.NetSavings)))
	pdf.Ln(5)
	pdf.MultiCell(0, 6, snap.Rationale, "", "L", false)
	pdf.Ln(4)

	widths := []float64{22, 25, 27, 28, 28, 30, 28}
	pdf.SetFont("Arial", "B", 9)
	for i, name := range monthlyHeader {
		pdf.CellFormat(widths[i], 6, name, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for i := range snap.Labels {
		pdf.CellFormat(widths[0], 6, snap.Labels[i], "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, fmt.Sprintf("%.0f", snap.MaxDemandKW[i]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, fmt.Sprintf("%.0f", snap.EffectiveDemandKW[i]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.0f", snap.ExceedanceKW[i]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprintf("%.2f", snap.MonthlyCharge[i]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, fmt.Sprintf("%.2f", snap.BaselineCharge[i]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 6, fmt.Sprintf("%.2f", snap.MonthlySavings[i]), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func savingsLabel(net float64) string {
	if net >= 0 {
		return "Net Savings"
	}
	return "Additional Cost"
}
