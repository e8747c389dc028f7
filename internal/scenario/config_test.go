package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scenario.yaml", `
months:
  - {label: Jan, max_demand_kw: 2000}
  - {label: Feb, max_demand_kw: 2500}
tariff:
  contracted_rate_per_kw_month: 12.5
  exceedance_rate_per_kw_month: 30
defaults:
  battery_capacity_kw: 200
  contracted_capacity_kw: 2200
baseline_contracted_kw: 2400
chart_axis_max_kw: 3000
contracted_bounds: {min_kw: 500, max_kw: 3000, step_kw: 10}
`)

	sc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{2000, 2500}, sc.PeaksKW())
	assert.Equal(t, 12.5, sc.Rates.ContractedPerKWMonth)
	assert.Equal(t, 30.0, sc.Rates.ExceedancePerKWMonth)
	assert.Equal(t, 200.0, sc.DefaultBatteryKW)
	assert.Equal(t, 2200.0, sc.DefaultContractedKW)
	assert.Equal(t, 2400.0, sc.BaselineContractedKW)
	assert.Equal(t, 3000.0, sc.ChartAxisMaxKW)
	// Untouched sections keep reference values.
	assert.Equal(t, Bounds{MinKW: 0, MaxKW: 1000, StepKW: 10}, sc.BatteryBounds)
}

func TestLoad_EmptyFileKeepsReferenceScenario(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scenario.yaml", "")

	sc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), sc)
}

func TestLoad_PeaksFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "peaks.csv", "label,max_demand_kw\nMay,3114\nJun,2736\n")
	path := writeFile(t, dir, "scenario.yaml", "peaks_file: peaks.csv\n")

	sc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{3114, 2736}, sc.PeaksKW())
	assert.Equal(t, []string{"May", "Jun"}, sc.Labels())
}

func TestLoad_InvalidScenario(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scenario.yaml", `
tariff:
  contracted_rate_per_kw_month: 30
  exceedance_rate_per_kw_month: 12
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tariff invalid")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParsePeaksCSV(t *testing.T) {
	months, err := ParsePeaksCSV(strings.NewReader("label,max_demand_kw\nMay,3114\nJun,2736.5\n"))
	require.NoError(t, err)
	assert.Equal(t, []MonthlyPeak{
		{Label: "May", MaxDemandKW: 3114},
		{Label: "Jun", MaxDemandKW: 2736.5},
	}, months)
}

func TestParsePeaksCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad header", "month,kw\nMay,3114\n"},
		{"empty", ""},
		{"no records", "label,max_demand_kw\n"},
		{"bad value", "label,max_demand_kw\nMay,lots\n"},
		{"negative value", "label,max_demand_kw\nMay,-10\n"},
		{"empty label", "label,max_demand_kw\n ,3114\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePeaksCSV(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}
