package tariff

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var referencePeaks = []float64{3114, 2736, 1467, 3894, 3085, 3077, 3113, 3098}

var referenceRange = SearchRange{MinKW: 1000, MaxKW: 4000, StepKW: 10}

func TestOptimalCapacity_ReferenceScenario(t *testing.T) {
	got := referenceRates.OptimalCapacity(referencePeaks, 400, referenceRange)
	assert.Equal(t, 2680.0, got)
}

func TestOptimalCapacity_MatchesFullScan(t *testing.T) {
	// The scan result must be a global minimum over the whole quantized range.
	effective := EffectiveSeries(referencePeaks, 400)
	best := referenceRates.OptimalCapacity(referencePeaks, 400, referenceRange)
	bestCost := referenceRates.TotalCharge(effective, best)
	for c := referenceRange.MinKW; c <= referenceRange.MaxKW; c += referenceRange.StepKW {
		assert.LessOrEqual(t, bestCost, referenceRates.TotalCharge(effective, c))
	}
}

func TestOptimalCapacity_Unimodal(t *testing.T) {
	// Total charge over the quantized range has no strict local minimum other
	// than the global one: costs are non-increasing up to the optimum and
	// non-decreasing after it.
	effective := EffectiveSeries(referencePeaks, 400)
	best := referenceRates.OptimalCapacity(referencePeaks, 400, referenceRange)
	prev := math.Inf(1)
	for c := referenceRange.MinKW; c <= best; c += referenceRange.StepKW {
		cost := referenceRates.TotalCharge(effective, c)
		assert.LessOrEqual(t, cost, prev)
		prev = cost
	}
	for c := best + referenceRange.StepKW; c <= referenceRange.MaxKW; c += referenceRange.StepKW {
		cost := referenceRates.TotalCharge(effective, c)
		assert.GreaterOrEqual(t, cost, prev)
		prev = cost
	}
}

func TestOptimalCapacity_Deterministic(t *testing.T) {
	a := referenceRates.OptimalCapacity(referencePeaks, 400, referenceRange)
	b := referenceRates.OptimalCapacity(referencePeaks, 400, referenceRange)
	assert.Equal(t, a, b)
}

func TestOptimalCapacity_TieBreaksLow(t *testing.T) {
	// Two periods, rates 10/20: below 5000 kW one period always exceeds, the
	// other never does, so the fixed saving of lowering capacity exactly
	// cancels the added penalty and every candidate costs the same. The first
	// (lowest) capacity must win.
	rates := Rates{ContractedPerKWMonth: 10, ExceedancePerKWMonth: 20}
	got := rates.OptimalCapacity([]float64{500, 5000}, 0, referenceRange)
	assert.Equal(t, 1000.0, got)
}

func TestOptimalCapacity_QuantizedToStep(t *testing.T) {
	for _, battery := range []float64{0, 130, 400, 770, 1000} {
		got := referenceRates.OptimalCapacity(referencePeaks, battery, referenceRange)
		assert.Equal(t, 0.0, math.Mod(got, referenceRange.StepKW))
		assert.GreaterOrEqual(t, got, referenceRange.MinKW)
		assert.LessOrEqual(t, got, referenceRange.MaxKW)
	}
}

func TestOptimalCapacity_SingleCandidate(t *testing.T) {
	got := referenceRates.OptimalCapacity(referencePeaks, 400, SearchRange{MinKW: 3000, MaxKW: 3000, StepKW: 10})
	assert.Equal(t, 3000.0, got)
}
