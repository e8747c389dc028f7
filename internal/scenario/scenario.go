package scenario

import (
	"errors"
	"fmt"
	"math"

	"github.com/Gabriel-Lim/ite-west-capacity-charges/internal/tariff"
)

// MonthlyPeak is one billing period's maximum demand reading.
type MonthlyPeak struct {
	Label       string  `yaml:"label"`
	MaxDemandKW float64 `yaml:"max_demand_kw"`
}

// Bounds constrains a capacity setting to [MinKW, MaxKW] in StepKW multiples.
type Bounds struct {
	MinKW  float64 `yaml:"min_kw"`
	MaxKW  float64 `yaml:"max_kw"`
	StepKW float64 `yaml:"step_kw"`
}

func (b Bounds) Clamp(v float64) float64 {
	if v < b.MinKW {
		return b.MinKW
	}
	if v > b.MaxKW {
		return b.MaxKW
	}
	return v
}

// Snap rounds v to the nearest StepKW multiple and clamps it into the bounds.
// Every mutator (manual edit, drag, optimizer) goes through Snap so all paths
// quantize identically.
func (b Bounds) Snap(v float64) float64 {
	if b.StepKW > 0 {
		v = math.Round(v/b.StepKW) * b.StepKW
	}
	return b.Clamp(v)
}

func (b Bounds) validate(name string) error {
	if b.StepKW <= 0 {
		return fmt.Errorf("%s: step_kw must be > 0", name)
	}
	if b.MinKW > b.MaxKW {
		return fmt.Errorf("%s: min_kw must be <= max_kw", name)
	}
	return nil
}

// Scenario bundles every input the model needs: the historical peak series,
// tariff rates, capacity bounds, session defaults and the fixed baseline.
type Scenario struct {
	Months []MonthlyPeak
	Rates  tariff.Rates

	BatteryBounds    Bounds
	ContractedBounds Bounds

	DefaultBatteryKW    float64
	DefaultContractedKW float64

	// BaselineContractedKW is the no-battery comparison capacity used for
	// savings; fixed for the session, not user-editable.
	BaselineContractedKW float64

	// ChartAxisMaxKW is the top of the chart value axis the drag gesture maps
	// against (axis spans [0, ChartAxisMaxKW]).
	ChartAxisMaxKW float64
}

// Default returns the reference deployment: eight May-December peaks under the
// 16.37/24.56 $/kW/month tariff.
func Default() *Scenario {
	return &Scenario{
		Months: []MonthlyPeak{
			{Label: "May", MaxDemandKW: 3114},
			{Label: "Jun", MaxDemandKW: 2736},
			{Label: "Jul", MaxDemandKW: 1467},
			{Label: "Aug", MaxDemandKW: 3894},
			{Label: "Sep", MaxDemandKW: 3085},
			{Label: "Oct", MaxDemandKW: 3077},
			{Label: "Nov", MaxDemandKW: 3113},
			{Label: "Dec", MaxDemandKW: 3098},
		},
		Rates: tariff.Rates{
			ContractedPerKWMonth: 16.37,
			ExceedancePerKWMonth: 24.56,
		},
		BatteryBounds:        Bounds{MinKW: 0, MaxKW: 1000, StepKW: 10},
		ContractedBounds:     Bounds{MinKW: 1000, MaxKW: 4000, StepKW: 10},
		DefaultBatteryKW:     400,
		DefaultContractedKW:  3100,
		BaselineContractedKW: 3100,
		ChartAxisMaxKW:       4000,
	}
}

func (s *Scenario) Validate() error {
	if s == nil {
		return errors.New("scenario is nil")
	}
	if len(s.Months) == 0 {
		return errors.New("scenario has no months")
	}
	for i, m := range s.Months {
		if m.Label == "" {
			return fmt.Errorf("month %d: label is required", i)
		}
		if m.MaxDemandKW < 0 {
			return fmt.Errorf("month %q: max_demand_kw must be >= 0", m.Label)
		}
	}
	if err := s.Rates.Validate(); err != nil {
		return fmt.Errorf("tariff invalid: %w", err)
	}
	if err := s.BatteryBounds.validate("battery_bounds"); err != nil {
		return err
	}
	if err := s.ContractedBounds.validate("contracted_bounds"); err != nil {
		return err
	}
	if s.DefaultBatteryKW != s.BatteryBounds.Snap(s.DefaultBatteryKW) {
		return errors.New("default battery capacity outside battery bounds")
	}
	if s.DefaultContractedKW != s.ContractedBounds.Snap(s.DefaultContractedKW) {
		return errors.New("default contracted capacity outside contracted bounds")
	}
	if s.BaselineContractedKW <= 0 {
		return errors.New("baseline contracted capacity must be > 0")
	}
	if s.ChartAxisMaxKW <= 0 {
		return errors.New("chart axis max must be > 0")
	}
	return nil
}

// PeaksKW returns the raw monthly maximum demands.
func (s *Scenario) PeaksKW() []float64 {
	out := make([]float64, len(s.Months))
	for i, m := range s.Months {
		out[i] = m.MaxDemandKW
	}
	return out
}

// Labels returns the month labels in billing order.
func (s *Scenario) Labels() []string {
	out := make([]string, len(s.Months))
	for i, m := range s.Months {
		out[i] = m.Label
	}
	return out
}

// SearchRange is the optimizer scan derived from the contracted bounds.
func (s *Scenario) SearchRange() tariff.SearchRange {
	return tariff.SearchRange{
		MinKW:  s.ContractedBounds.MinKW,
		MaxKW:  s.ContractedBounds.MaxKW,
		StepKW: s.ContractedBounds.StepKW,
	}
}
