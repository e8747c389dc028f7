package session

import "github.com/Gabriel-Lim/ite-west-capacity-charges/internal/scenario"

// PointerKind identifies a pointer event over the chart plot area.
type PointerKind string

const (
	PointerDown  PointerKind = "down"
	PointerMove  PointerKind = "move"
	PointerUp    PointerKind = "up"
	PointerLeave PointerKind = "leave"
)

// PointerEvent is one event from the pointer stream, with Y relative to the
// top of the plot area and Height the plot area's current pixel height.
type PointerEvent struct {
	Kind   PointerKind `json:"kind"`
	Y      float64     `json:"y"`
	Height float64     `json:"height"`
}

// dragController maps the pointer stream onto contracted-capacity values.
// Two states: Idle and Dragging. Down enters Dragging; every move while
// Dragging emits a capacity; up or leave returns to Idle, so a pointer that
// exits the element quickly cannot leave a stuck drag.
type dragController struct {
	dragging bool
	hovering bool

	axisMaxKW float64
	bounds    scenario.Bounds
}

// handle consumes one event and reports the capacity to apply, if any.
func (d *dragController) handle(ev PointerEvent) (kw float64, ok bool) {
	switch ev.Kind {
	case PointerDown:
		d.dragging = true
		d.hovering = true
	case PointerMove:
		d.hovering = true
		if d.dragging {
			return d.mapY(ev.Y, ev.Height)
		}
	case PointerUp:
		d.dragging = false
	case PointerLeave:
		d.dragging = false
		d.hovering = false
	}
	return 0, false
}

// mapY converts a vertical offset into a capacity. The value axis spans
// [0, axisMaxKW] with the top of the plot at the maximum, so the ratio is
// inverted. A degenerate plot height yields no value; the caller holds the
// last applied capacity.
func (d *dragController) mapY(y, height float64) (float64, bool) {
	if height <= 0 {
		return 0, false
	}
	if y < 0 {
		y = 0
	}
	if y > height {
		y = height
	}
	v := (1 - y/height) * d.axisMaxKW
	return d.bounds.Snap(v), true
}
