package session

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gabriel-Lim/ite-west-capacity-charges/internal/scenario"
)

func newTestDrag() dragController {
	return dragController{
		axisMaxKW: 4000,
		bounds:    scenario.Bounds{MinKW: 1000, MaxKW: 4000, StepKW: 10},
	}
}

func TestDrag_DownMoveEmits(t *testing.T) {
	d := newTestDrag()

	_, ok := d.handle(PointerEvent{Kind: PointerDown, Y: 100, Height: 400})
	assert.False(t, ok) // down only arms the drag
	assert.True(t, d.dragging)

	kw, ok := d.handle(PointerEvent{Kind: PointerMove, Y: 100, Height: 400})
	require.True(t, ok)
	// (1 - 100/400) * 4000 = 3000
	assert.Equal(t, 3000.0, kw)
}

func TestDrag_MoveWithoutDownIsHoverOnly(t *testing.T) {
	d := newTestDrag()

	_, ok := d.handle(PointerEvent{Kind: PointerMove, Y: 100, Height: 400})
	assert.False(t, ok)
	assert.False(t, d.dragging)
	assert.True(t, d.hovering)
}

func TestDrag_UpEndsDrag(t *testing.T) {
	d := newTestDrag()
	d.handle(PointerEvent{Kind: PointerDown, Y: 0, Height: 400})

	_, ok := d.handle(PointerEvent{Kind: PointerUp, Y: 50, Height: 400})
	assert.False(t, ok)
	assert.False(t, d.dragging)

	_, ok = d.handle(PointerEvent{Kind: PointerMove, Y: 50, Height: 400})
	assert.False(t, ok)
}

func TestDrag_LeaveEndsDragAndHover(t *testing.T) {
	// A pointer exiting the element quickly must not leave a stuck drag.
	d := newTestDrag()
	d.handle(PointerEvent{Kind: PointerDown, Y: 0, Height: 400})
	d.handle(PointerEvent{Kind: PointerMove, Y: 10, Height: 400})

	_, ok := d.handle(PointerEvent{Kind: PointerLeave, Y: -30, Height: 400})
	assert.False(t, ok)
	assert.False(t, d.dragging)
	assert.False(t, d.hovering)
}

func TestDrag_ClampsAboveAndBelowPlot(t *testing.T) {
	d := newTestDrag()
	d.handle(PointerEvent{Kind: PointerDown, Y: 200, Height: 400})

	kw, ok := d.handle(PointerEvent{Kind: PointerMove, Y: -50, Height: 400})
	require.True(t, ok)
	assert.Equal(t, 4000.0, kw) // above the plot maps to the axis top

	kw, ok = d.handle(PointerEvent{Kind: PointerMove, Y: 450, Height: 400})
	require.True(t, ok)
	assert.Equal(t, 1000.0, kw) // below the plot clamps to the lower bound
}

func TestDrag_QuantizesToStep(t *testing.T) {
	d := newTestDrag()
	d.handle(PointerEvent{Kind: PointerDown, Y: 0, Height: 997})

	for y := 0.0; y <= 997; y += 13 {
		kw, ok := d.handle(PointerEvent{Kind: PointerMove, Y: y, Height: 997})
		require.True(t, ok)
		assert.Equal(t, 0.0, math.Mod(kw, 10))
		assert.GreaterOrEqual(t, kw, 1000.0)
		assert.LessOrEqual(t, kw, 4000.0)
		assert.False(t, math.IsNaN(kw))
	}
}

func TestDrag_ZeroHeightHolds(t *testing.T) {
	// A degenerate plot must not produce NaN or Infinity; the last applied
	// capacity simply holds and the drag stays live.
	d := newTestDrag()
	d.handle(PointerEvent{Kind: PointerDown, Y: 0, Height: 400})

	_, ok := d.handle(PointerEvent{Kind: PointerMove, Y: 100, Height: 0})
	assert.False(t, ok)
	assert.True(t, d.dragging)

	// A later move with a sane height resumes emitting.
	kw, ok := d.handle(PointerEvent{Kind: PointerMove, Y: 0, Height: 400})
	require.True(t, ok)
	assert.Equal(t, 4000.0, kw)
}

func TestDrag_Idempotent(t *testing.T) {
	d := newTestDrag()
	d.handle(PointerEvent{Kind: PointerDown, Y: 0, Height: 400})

	a, ok := d.handle(PointerEvent{Kind: PointerMove, Y: 123, Height: 400})
	require.True(t, ok)
	b, ok := d.handle(PointerEvent{Kind: PointerMove, Y: 123, Height: 400})
	require.True(t, ok)
	assert.Equal(t, a, b)
}
