package tariff

import "errors"

// Rates holds the two-tier demand-charge tariff.
// Units:
// - ContractedPerKWMonth: $/kW/month, billed on the full contracted capacity
// - ExceedancePerKWMonth: $/kW/month, billed on demand above contracted capacity
type Rates struct {
	ContractedPerKWMonth float64
	ExceedancePerKWMonth float64
}

func (r Rates) Validate() error {
	if r.ContractedPerKWMonth <= 0 {
		return errors.New("ContractedPerKWMonth must be > 0")
	}
	if r.ExceedancePerKWMonth <= 0 {
		return errors.New("ExceedancePerKWMonth must be > 0")
	}
	if r.ExceedancePerKWMonth <= r.ContractedPerKWMonth {
		return errors.New("ExceedancePerKWMonth must be > ContractedPerKWMonth")
	}
	return nil
}

// EffectiveDemand is the billed peak after battery peak shaving, floored at zero.
// The battery is modeled as a flat capacity offset, not a time-resolved dispatch.
func EffectiveDemand(maxDemandKW, batteryKW float64) float64 {
	e := maxDemandKW - batteryKW
	if e < 0 {
		return 0
	}
	return e
}

// EffectiveSeries applies EffectiveDemand to every monthly peak.
func EffectiveSeries(peaksKW []float64, batteryKW float64) []float64 {
	out := make([]float64, len(peaksKW))
	for i, d := range peaksKW {
		out[i] = EffectiveDemand(d, batteryKW)
	}
	return out
}

// Exceedance is the demand above contracted capacity for one month.
func Exceedance(effectiveKW, contractedKW float64) float64 {
	x := effectiveKW - contractedKW
	if x < 0 {
		return 0
	}
	return x
}

// MonthlyCharge is the demand charge for one month:
// the full contracted capacity at the contracted rate, plus any exceedance
// at the (higher) exceedance rate.
func (r Rates) MonthlyCharge(effectiveKW, contractedKW float64) float64 {
	return contractedKW*r.ContractedPerKWMonth + Exceedance(effectiveKW, contractedKW)*r.ExceedancePerKWMonth
}

// TotalCharge sums MonthlyCharge over a series of effective demands.
func (r Rates) TotalCharge(effectiveKW []float64, contractedKW float64) float64 {
	total := 0.0
	for _, e := range effectiveKW {
		total += r.MonthlyCharge(e, contractedKW)
	}
	return total
}
