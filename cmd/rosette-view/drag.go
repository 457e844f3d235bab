package main

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/rosette/session"
)

// dragTracker turns mouse press, move and release callbacks into pointer
// moves with per-event deltas. One pixel of motion is one degree of
// rotation.
type dragTracker struct {
	down       bool
	lastX      float64
	lastY      float64
	hasLastPos bool
}

func (d *dragTracker) press(button gpucontext.MouseButton, x, y float64) {
	if button != gpucontext.MouseButtonLeft {
		return
	}
	d.down = true
	d.lastX, d.lastY, d.hasLastPos = x, y, true
}

func (d *dragTracker) release(button gpucontext.MouseButton, _, _ float64) {
	if button == gpucontext.MouseButtonLeft {
		d.down = false
	}
}

// move records the new position and reports the motion since the last
// event. ok is false when there is nothing to forward.
func (d *dragTracker) move(x, y float64) (m session.PointerMove, ok bool) {
	defer func() { d.lastX, d.lastY, d.hasLastPos = x, y, true }()
	if !d.hasLastPos {
		return m, false
	}
	m = session.PointerMove{DX: x - d.lastX, DY: y - d.lastY}
	if d.down {
		m.Buttons = 1
	}
	if m.Buttons == 0 || (m.DX == 0 && m.DY == 0) {
		return m, false
	}
	return m, true
}
