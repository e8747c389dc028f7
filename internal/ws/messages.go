package ws

import (
	"encoding/json"

	"github.com/Gabriel-Lim/ite-west-capacity-charges/internal/scenario"
	"github.com/Gabriel-Lim/ite-west-capacity-charges/internal/session"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants
const (
	// Client -> Server
	TypeSetContracted = "capacity:set"
	TypeSetBattery    = "battery:set"
	TypeOptimize      = "capacity:optimize"
	TypePointerEvent  = "pointer:event"

	// Server -> Client
	TypeScenarioLoaded = "scenario:loaded"
	TypeReportUpdate   = "report:update"
	TypeOptimizeResult = "optimize:result"
)

// Client -> Server payloads

type SetContractedPayload struct {
	ContractedCapacityKW float64 `json:"contracted_capacity_kw"`
}

type SetBatteryPayload struct {
	BatteryCapacityKW float64 `json:"battery_capacity_kw"`
}

// PointerEventPayload mirrors session.PointerEvent on the wire.
type PointerEventPayload struct {
	Kind   string  `json:"kind"`
	Y      float64 `json:"y"`
	Height float64 `json:"height"`
}

// Server -> Client payloads

type MonthInfo struct {
	Label       string  `json:"label"`
	MaxDemandKW float64 `json:"max_demand_kw"`
}

type BoundsInfo struct {
	MinKW  float64 `json:"min_kw"`
	MaxKW  float64 `json:"max_kw"`
	StepKW float64 `json:"step_kw"`
}

// ScenarioLoadedPayload gives a new client everything static: the historical
// series, tariff rates, capacity bounds and the chart axis span.
type ScenarioLoadedPayload struct {
	Months                   []MonthInfo `json:"months"`
	ContractedRatePerKWMonth float64     `json:"contracted_rate_per_kw_month"`
	ExceedanceRatePerKWMonth float64     `json:"exceedance_rate_per_kw_month"`
	BatteryBounds            BoundsInfo  `json:"battery_bounds"`
	ContractedBounds         BoundsInfo  `json:"contracted_bounds"`
	BaselineContractedKW     float64     `json:"baseline_contracted_kw"`
	ChartAxisMaxKW           float64     `json:"chart_axis_max_kw"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

func ScenarioLoadedFrom(sc *scenario.Scenario) ScenarioLoadedPayload {
	months := make([]MonthInfo, len(sc.Months))
	for i, m := range sc.Months {
		months[i] = MonthInfo{Label: m.Label, MaxDemandKW: m.MaxDemandKW}
	}
	return ScenarioLoadedPayload{
		Months:                   months,
		ContractedRatePerKWMonth: sc.Rates.ContractedPerKWMonth,
		ExceedanceRatePerKWMonth: sc.Rates.ExceedancePerKWMonth,
		BatteryBounds:            boundsInfo(sc.BatteryBounds),
		ContractedBounds:         boundsInfo(sc.ContractedBounds),
		BaselineContractedKW:     sc.BaselineContractedKW,
		ChartAxisMaxKW:           sc.ChartAxisMaxKW,
	}
}

func boundsInfo(b scenario.Bounds) BoundsInfo {
	return BoundsInfo{MinKW: b.MinKW, MaxKW: b.MaxKW, StepKW: b.StepKW}
}

// PointerEventFrom converts a wire payload into a session event. Unknown
// kinds come back false and are dropped by the handler.
func PointerEventFrom(p PointerEventPayload) (session.PointerEvent, bool) {
	switch session.PointerKind(p.Kind) {
	case session.PointerDown, session.PointerMove, session.PointerUp, session.PointerLeave:
		return session.PointerEvent{
			Kind:   session.PointerKind(p.Kind),
			Y:      p.Y,
			Height: p.Height,
		}, true
	default:
		return session.PointerEvent{}, false
	}
}
