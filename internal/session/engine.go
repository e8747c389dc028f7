package session

import (
	"fmt"
	"sync"

	"github.com/Gabriel-Lim/ite-west-capacity-charges/internal/scenario"
)

// Callback receives session events. Callbacks run while the engine lock is
// held so snapshots are delivered in mutation order; implementations must not
// call back into the engine.
type Callback interface {
	OnSnapshot(snap Snapshot)
	OnOptimum(opt Optimum)
}

// Engine owns the mutable session state. Every mutation runs one full
// derivation pass under the lock and emits the resulting snapshot, so
// consumers always observe figures derived from a single state value.
type Engine struct {
	mu       sync.Mutex
	sc       *scenario.Scenario
	state    State
	drag     dragController
	callback Callback
}

func New(sc *scenario.Scenario, callback Callback) *Engine {
	return &Engine{
		sc: sc,
		state: State{
			BatteryCapacityKW:    sc.DefaultBatteryKW,
			ContractedCapacityKW: sc.DefaultContractedKW,
		},
		drag: dragController{
			axisMaxKW: sc.ChartAxisMaxKW,
			bounds:    sc.ContractedBounds,
		},
		callback: callback,
	}
}

// Scenario returns the immutable inputs the engine was built with.
func (e *Engine) Scenario() *scenario.Scenario {
	return e.sc
}

// State returns the current model state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Snapshot derives the current figures without mutating anything.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Derive(e.sc, e.state)
}

// SetBatteryCapacity applies a manual battery-capacity edit. The value is
// snapped to the battery bounds, the same way every other mutator quantizes.
func (e *Engine) SetBatteryCapacity(kw float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.BatteryCapacityKW = e.sc.BatteryBounds.Snap(kw)
	e.callback.OnSnapshot(Derive(e.sc, e.state))
}

// SetContractedCapacity applies a manual contracted-capacity edit.
func (e *Engine) SetContractedCapacity(kw float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.ContractedCapacityKW = e.sc.ContractedBounds.Snap(kw)
	e.callback.OnSnapshot(Derive(e.sc, e.state))
}

// Pointer consumes one pointer event. While a drag is live, every move
// replaces the contracted capacity immediately; there is no commit-on-release.
// Re-dispatching the same position is a no-op.
func (e *Engine) Pointer(ev PointerEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	kw, ok := e.drag.handle(ev)
	if !ok || kw == e.state.ContractedCapacityKW {
		return
	}
	e.state.ContractedCapacityKW = kw
	e.callback.OnSnapshot(Derive(e.sc, e.state))
}

// Dragging reports whether a drag gesture is live.
func (e *Engine) Dragging() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.drag.dragging
}

// Hovering reports whether the pointer is over the plot area.
func (e *Engine) Hovering() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.drag.hovering
}

// Optimize scans the contracted-capacity range for the cheapest setting under
// the current battery capacity, adopts it and emits the optimum followed by
// the re-derived snapshot.
func (e *Engine) Optimize() Optimum {
	e.mu.Lock()
	defer e.mu.Unlock()
	best := e.sc.Rates.OptimalCapacity(e.sc.PeaksKW(), e.state.BatteryCapacityKW, e.sc.SearchRange())
	e.state.ContractedCapacityKW = e.sc.ContractedBounds.Snap(best)
	opt := Optimum{
		CapacityKW: e.state.ContractedCapacityKW,
		Explanation: fmt.Sprintf(
			"At %.2f per contracted kW and %.2f per exceedance kW, a contracted capacity of %.0f kW minimizes the total demand charge over the period.",
			e.sc.Rates.ContractedPerKWMonth, e.sc.Rates.ExceedancePerKWMonth, e.state.ContractedCapacityKW),
	}
	e.callback.OnOptimum(opt)
	e.callback.OnSnapshot(Derive(e.sc, e.state))
	return opt
}
