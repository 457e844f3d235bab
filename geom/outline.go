// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"github.com/gogpu/rosette"
)

// MinOutlinePoints is the smallest point count a leaf outline may have,
// counting the repeated closing point.
const MinOutlinePoints = 3

// Outline is a closed leaf polyline: the first and last points coincide.
type Outline struct {
	points []Point
}

// BuildOutline closes the sampled arcs into a leaf outline.
// It returns a *rosette.GeometryError wrapping rosette.ErrTooFewPoints
// when fewer than MinOutlinePoints remain.
func BuildOutline(arcs Arcs) (*Outline, error) {
	return NewOutline(arcs.Closed())
}

// NewOutline wraps an already sampled point sequence, appending the first
// point when the sequence is not closed yet.
func NewOutline(pts []Point) (*Outline, error) {
	if len(pts) > 0 && pts[0] != pts[len(pts)-1] {
		pts = append(pts[:len(pts):len(pts)], pts[0])
	}
	if len(pts) < MinOutlinePoints {
		return nil, &rosette.GeometryError{Stage: "outline", Points: len(pts), Err: rosette.ErrTooFewPoints}
	}
	return &Outline{points: pts}, nil
}

// LeafOutline validates p, samples it and closes the result.
func LeafOutline(p rosette.ShapeParameters) (*Outline, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	arcs, err := Sample(ParamsFrom(p))
	if err != nil {
		return nil, err
	}
	return BuildOutline(arcs)
}

// Points returns the closed point sequence. Callers must not modify it.
func (o *Outline) Points() []Point {
	return o.points
}

// Len returns the number of points including the closing one.
func (o *Outline) Len() int {
	return len(o.points)
}

// Ring returns the points without the repeated closing point.
func (o *Outline) Ring() []Point {
	return o.points[:len(o.points)-1]
}

// Closed reports whether the first and last points coincide.
func (o *Outline) Closed() bool {
	return len(o.points) > 0 && o.points[0] == o.points[len(o.points)-1]
}

// Bounds returns the componentwise minimum and maximum of the outline.
func (o *Outline) Bounds() (lo, hi Point) {
	lo, hi = o.points[0], o.points[0]
	for _, p := range o.points[1:] {
		lo.X, hi.X = min(lo.X, p.X), max(hi.X, p.X)
		lo.Y, hi.Y = min(lo.Y, p.Y), max(hi.Y, p.Y)
		lo.Z, hi.Z = min(lo.Z, p.Z), max(hi.Z, p.Z)
	}
	return lo, hi
}
