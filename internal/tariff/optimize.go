package tariff

// SearchRange bounds the contracted-capacity scan.
type SearchRange struct {
	MinKW  float64
	MaxKW  float64
	StepKW float64
}

// OptimalCapacity scans the range at StepKW granularity and returns the
// contracted capacity minimizing TotalCharge over the battery-adjusted peaks.
//
// TotalCharge is convex in capacity (a sum of piecewise-linear convex monthly
// charges), so the exhaustive scan finds the global minimum. Ties go to the
// lowest capacity: a candidate only replaces the current best when its cost is
// strictly lower, keeping the smallest fixed commitment among equal costs.
func (r Rates) OptimalCapacity(peaksKW []float64, batteryKW float64, rng SearchRange) float64 {
	effective := EffectiveSeries(peaksKW, batteryKW)

	best := rng.MinKW
	bestCost := r.TotalCharge(effective, rng.MinKW)
	for c := rng.MinKW + rng.StepKW; c <= rng.MaxKW; c += rng.StepKW {
		cost := r.TotalCharge(effective, c)
		if cost < bestCost {
			best = c
			bestCost = cost
		}
	}
	return best
}
