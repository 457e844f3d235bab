// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package radial places N copies of a leaf evenly around the origin.
package radial

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/rosette"
	"github.com/gogpu/rosette/geom"
)

// Instance is the placement of one leaf.
type Instance struct {
	Index    int
	AngleDeg float64

	// Direction is the unit vector (cos θ, sin θ, 0).
	Direction geom.Point

	// Offset is Direction scaled by the replication distance.
	Offset geom.Point
}

// Angle returns the instance angle in radians.
func (in Instance) Angle() float64 {
	return in.AngleDeg * math.Pi / 180
}

// Matrix returns the 2D placement Translate(Offset) · Rotate(θ) · Scale(s).
func (in Instance) Matrix(scale float64) gg.Matrix {
	return gg.Translate(in.Offset.X, in.Offset.Y).
		Multiply(gg.Rotate(in.Angle())).
		Multiply(gg.Scale(scale, scale))
}

// Apply maps an outline point into world space with the same placement
// as Matrix. Z is scaled by zScale and left unrotated.
func (in Instance) Apply(p geom.Point, scale, zScale float64) geom.Point {
	q := in.Matrix(scale).TransformPoint(p.XY())
	return geom.Point{X: q.X, Y: q.Y, Z: p.Z * zScale}
}

// Replicate returns n instances at angles i·360°/n, each pushed distance
// units outward along its direction. Instances are ordered by index.
func Replicate(n int, distance float64) ([]Instance, error) {
	if n < 1 {
		return nil, &rosette.ParameterDomainError{Field: "leaves", Value: n, Reason: "must be >= 1"}
	}
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return nil, &rosette.ParameterDomainError{Field: "distance", Value: distance, Reason: "must be finite"}
	}

	step := 360 / float64(n)
	out := make([]Instance, n)
	for i := range out {
		deg := float64(i) * step
		s, c := math.Sincos(deg * math.Pi / 180)
		dir := geom.Point{X: c, Y: s}
		out[i] = Instance{
			Index:     i,
			AngleDeg:  deg,
			Direction: dir,
			Offset:    dir.Mul(distance),
		}
	}
	return out, nil
}

// ForParameters replicates with n = LeafCount and distance = Scaler·Radius.
func ForParameters(p rosette.ShapeParameters) ([]Instance, error) {
	return Replicate(p.LeafCount, Distance(p))
}

// Distance returns how far from the origin each leaf is placed.
func Distance(p rosette.ShapeParameters) float64 {
	return p.Scaler * p.Radius
}
