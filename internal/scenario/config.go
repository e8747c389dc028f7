package scenario

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Gabriel-Lim/ite-west-capacity-charges/internal/tariff"
)

// fileConfig is the on-disk configuration shape (YAML). Every field is
// optional; omitted fields keep the reference scenario's values.
type fileConfig struct {
	Months []MonthlyPeak `yaml:"months"`

	// PeaksFile optionally loads the monthly peaks from a CSV export.
	// Explicit months override the file when both are provided.
	PeaksFile string `yaml:"peaks_file"`

	Tariff struct {
		ContractedRatePerKWMonth float64 `yaml:"contracted_rate_per_kw_month"`
		ExceedanceRatePerKWMonth float64 `yaml:"exceedance_rate_per_kw_month"`
	} `yaml:"tariff"`

	BatteryBounds    *Bounds `yaml:"battery_bounds"`
	ContractedBounds *Bounds `yaml:"contracted_bounds"`

	Defaults struct {
		BatteryCapacityKW    float64 `yaml:"battery_capacity_kw"`
		ContractedCapacityKW float64 `yaml:"contracted_capacity_kw"`
	} `yaml:"defaults"`

	BaselineContractedKW float64 `yaml:"baseline_contracted_kw"`
	ChartAxisMaxKW       float64 `yaml:"chart_axis_max_kw"`
}

// Load reads a YAML scenario file, overlays it on the reference scenario and
// validates the result.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c fileConfig
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	s := Default()

	if c.PeaksFile != "" {
		peaksPath := c.PeaksFile
		if !filepath.IsAbs(peaksPath) {
			peaksPath = filepath.Join(filepath.Dir(path), peaksPath)
		}
		months, err := loadPeaksFile(peaksPath)
		if err != nil {
			return nil, err
		}
		s.Months = months
	}
	if len(c.Months) > 0 {
		s.Months = c.Months
	}

	if c.Tariff.ContractedRatePerKWMonth != 0 || c.Tariff.ExceedanceRatePerKWMonth != 0 {
		s.Rates = tariff.Rates{
			ContractedPerKWMonth: c.Tariff.ContractedRatePerKWMonth,
			ExceedancePerKWMonth: c.Tariff.ExceedanceRatePerKWMonth,
		}
	}
	if c.BatteryBounds != nil {
		s.BatteryBounds = *c.BatteryBounds
	}
	if c.ContractedBounds != nil {
		s.ContractedBounds = *c.ContractedBounds
	}
	if c.Defaults.BatteryCapacityKW != 0 {
		s.DefaultBatteryKW = c.Defaults.BatteryCapacityKW
	}
	if c.Defaults.ContractedCapacityKW != 0 {
		s.DefaultContractedKW = c.Defaults.ContractedCapacityKW
	}
	if c.BaselineContractedKW != 0 {
		s.BaselineContractedKW = c.BaselineContractedKW
	}
	if c.ChartAxisMaxKW != 0 {
		s.ChartAxisMaxKW = c.ChartAxisMaxKW
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario config invalid: %w", err)
	}
	return s, nil
}

func loadPeaksFile(path string) ([]MonthlyPeak, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	months, err := ParsePeaksCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return months, nil
}
