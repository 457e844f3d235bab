// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package studio

import (
	"fmt"
	"strings"

	"github.com/gogpu/rosette/render"
	"github.com/gogpu/rosette/session"
)

// ViewMode names the active view. The zero value means no view.
type ViewMode string

// View modes.
const (
	ViewNone ViewMode = ""
	View2D   ViewMode = "2DView"
	View3D   ViewMode = "3DView"
)

// Variant returns the session variant for the mode.
func (m ViewMode) Variant() (session.Variant, bool) {
	switch m {
	case View2D:
		return session.Flat, true
	case View3D:
		return session.Solid, true
	}
	return 0, false
}

// ParseViewMode accepts "2d", "3d", "2DView", "3DView" and "" (none).
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "off":
		return ViewNone, nil
	case "2d", "2dview":
		return View2D, nil
	case "3d", "3dview":
		return View3D, nil
	}
	return ViewNone, fmt.Errorf("studio: unknown view mode %q", s)
}

// Layout describes the host window around the display port: a parameter
// panel on the left and a top bar.
type Layout struct {
	HostWidth  int
	HostHeight int
	PanelWidth int
	BarHeight  int
}

// Surface returns the display port size, each dimension at least 1.
func (l Layout) Surface() render.Size {
	return render.Size{
		Width:  l.HostWidth - l.PanelWidth,
		Height: l.HostHeight - l.BarHeight,
	}.Clamp()
}

// StatsPatch is a partial stats update. Nil fields keep their value.
type StatsPatch struct {
	Triangles *int
	Lines     *int
	Points    *int
}

// PatchFromStats wraps every counter of st.
func PatchFromStats(st session.Stats) StatsPatch {
	t, l, p := st.Triangles, st.Lines, st.Points
	return StatsPatch{Triangles: &t, Lines: &l, Points: &p}
}

// Merge returns sp with the non-nil fields of o applied.
func (sp StatsPatch) Merge(o StatsPatch) StatsPatch {
	if o.Triangles != nil {
		sp.Triangles = o.Triangles
	}
	if o.Lines != nil {
		sp.Lines = o.Lines
	}
	if o.Points != nil {
		sp.Points = o.Points
	}
	return sp
}

// Format renders the present, non-zero counters as display lines.
func (sp StatsPatch) Format() []string {
	fields := []struct {
		label string
		v     *int
	}{
		{"Total Triangles", sp.Triangles},
		{"Total Lines", sp.Lines},
		{"Total Points", sp.Points},
	}
	var out []string
	for _, f := range fields {
		if f.v != nil && *f.v != 0 {
			out = append(out, fmt.Sprintf("%s: %d", f.label, *f.v))
		}
	}
	return out
}
