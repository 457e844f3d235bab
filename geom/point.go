// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"math"

	"github.com/gogpu/gg"
)

// Point is a curve point in model space. Outlines keep Z at 0.
type Point struct {
	X, Y, Z float64
}

// Pt returns a point in the XY plane.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point {
	return Point{p.X * s, p.Y * s, p.Z * s}
}

// Length returns the Euclidean length of p.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Near reports whether p and q are within eps on every axis.
func (p Point) Near(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps && math.Abs(p.Z-q.Z) <= eps
}

// XY drops Z and returns the gg point used for 2D drawing.
func (p Point) XY() gg.Point {
	return gg.Pt(p.X, p.Y)
}
