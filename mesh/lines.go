// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mesh

import (
	"github.com/gogpu/rosette/geom"
)

// Topology tells how consecutive points of a Lines value form segments.
type Topology uint8

const (
	// LineStrip connects every point to the next one.
	LineStrip Topology = iota

	// LineSegments pairs points: (0,1), (2,3), ...
	LineSegments
)

// String returns the topology name.
func (t Topology) String() string {
	switch t {
	case LineStrip:
		return "LineStrip"
	case LineSegments:
		return "LineSegments"
	default:
		return "Unknown"
	}
}

// Lines is line geometry in model space.
type Lines struct {
	Points   []geom.Point
	Topology Topology
}

// Polyline returns a line strip through points. The slice is copied.
func Polyline(points []geom.Point) *Lines {
	pts := make([]geom.Point, len(points))
	copy(pts, points)
	return &Lines{Points: pts, Topology: LineStrip}
}

// Segments returns the number of drawn line segments.
func (l *Lines) Segments() int {
	if l == nil {
		return 0
	}
	switch l.Topology {
	case LineSegments:
		return len(l.Points) / 2
	default:
		if len(l.Points) < 2 {
			return 0
		}
		return len(l.Points) - 1
	}
}

// Each calls fn for every segment in drawing order.
func (l *Lines) Each(fn func(a, b geom.Point)) {
	if l == nil {
		return
	}
	switch l.Topology {
	case LineSegments:
		for i := 0; i+1 < len(l.Points); i += 2 {
			fn(l.Points[i], l.Points[i+1])
		}
	default:
		for i := 1; i < len(l.Points); i++ {
			fn(l.Points[i-1], l.Points[i])
		}
	}
}
