package session

import (
	"fmt"

	"github.com/Gabriel-Lim/ite-west-capacity-charges/internal/scenario"
	"github.com/Gabriel-Lim/ite-west-capacity-charges/internal/tariff"
)

// State is the user-adjustable model state for one session.
type State struct {
	BatteryCapacityKW    float64 `json:"battery_capacity_kw"`
	ContractedCapacityKW float64 `json:"contracted_capacity_kw"`
}

// RationaleKind classifies why the current state saves or costs money
// relative to the baseline.
type RationaleKind string

const (
	RationalePeakShaving     RationaleKind = "peak_shaving"
	RationaleOverContracted  RationaleKind = "over_contracted"
	RationaleUnderContracted RationaleKind = "under_contracted"
)

// Snapshot is one full derivation pass over a single State value. Every field
// is computed from the same state, so consumers never observe a partial update.
type Snapshot struct {
	State State `json:"state"`

	Labels            []string  `json:"labels"`
	MaxDemandKW       []float64 `json:"max_demand_kw"`
	EffectiveDemandKW []float64 `json:"effective_demand_kw"`
	ExceedanceKW      []float64 `json:"exceedance_kw"`

	MonthlyCharge []float64 `json:"monthly_charge"`
	TotalCharge   float64   `json:"total_charge"`

	BaselineCharge []float64 `json:"baseline_charge"`
	BaselineTotal  float64   `json:"baseline_total"`

	// MonthlySavings and NetSavings are signed; a month may show a cost
	// increase while the total shows net savings, and vice versa.
	MonthlySavings []float64 `json:"monthly_savings"`
	NetSavings     float64   `json:"net_savings"`

	RationaleKind RationaleKind `json:"rationale_kind"`
	Rationale     string        `json:"rationale"`
}

// Derive recomputes every displayed figure from the scenario and one state
// snapshot. Pure; cheap enough to rerun fully on every mutation.
func Derive(sc *scenario.Scenario, st State) Snapshot {
	peaks := sc.PeaksKW()
	effective := tariff.EffectiveSeries(peaks, st.BatteryCapacityKW)

	n := len(peaks)
	snap := Snapshot{
		State:             st,
		Labels:            sc.Labels(),
		MaxDemandKW:       peaks,
		EffectiveDemandKW: effective,
		ExceedanceKW:      make([]float64, n),
		MonthlyCharge:     make([]float64, n),
		BaselineCharge:    make([]float64, n),
		MonthlySavings:    make([]float64, n),
	}

	for i := range peaks {
		snap.ExceedanceKW[i] = tariff.Exceedance(effective[i], st.ContractedCapacityKW)
		snap.MonthlyCharge[i] = sc.Rates.MonthlyCharge(effective[i], st.ContractedCapacityKW)
		// Baseline: no battery, fixed baseline capacity, raw peaks.
		snap.BaselineCharge[i] = sc.Rates.MonthlyCharge(peaks[i], sc.BaselineContractedKW)
		snap.MonthlySavings[i] = snap.BaselineCharge[i] - snap.MonthlyCharge[i]

		snap.TotalCharge += snap.MonthlyCharge[i]
		snap.BaselineTotal += snap.BaselineCharge[i]
		snap.NetSavings += snap.MonthlySavings[i]
	}

	snap.RationaleKind, snap.Rationale = classify(snap)
	return snap
}

// classify picks the explanation for the current savings figure. Branch order
// matters: non-negative savings always credit the battery; otherwise capacity
// above every effective peak means idle fixed-charge overpayment, and any
// other loss is attributed to exceedance penalties.
func classify(snap Snapshot) (RationaleKind, string) {
	if snap.NetSavings >= 0 {
		return RationalePeakShaving, fmt.Sprintf(
			"Battery peak shaving of %.0f kW lowers the billed peaks enough to save %.2f over the period.",
			snap.State.BatteryCapacityKW, snap.NetSavings)
	}
	if snap.State.ContractedCapacityKW > maxOf(snap.EffectiveDemandKW) {
		return RationaleOverContracted, fmt.Sprintf(
			"Contracted capacity of %.0f kW sits above every billed peak, so the fixed charge pays for headroom that is never used (%.2f over baseline).",
			snap.State.ContractedCapacityKW, -snap.NetSavings)
	}
	return RationaleUnderContracted, fmt.Sprintf(
		"Contracted capacity of %.0f kW is exceeded by the billed peaks, and the exceedance rate makes the shortfall cost %.2f over baseline.",
		snap.State.ContractedCapacityKW, -snap.NetSavings)
}

// Optimum is the optimizer's answer plus its user-facing explanation.
type Optimum struct {
	CapacityKW  float64 `json:"capacity_kw"`
	Explanation string  `json:"explanation"`
}

func maxOf(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
