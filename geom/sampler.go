// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"math"

	"github.com/gogpu/rosette"
)

// TruncateLeft clips upper-arc samples with x below it. The lower arc is
// clipped one step further left, which flattens one side of the leaf.
const TruncateLeft = -0.5

// MaxSamples bounds the number of samples per arc.
const MaxSamples = 1 << 20

// sampleEps keeps the exact end of the domain despite rounding in k*step.
const sampleEps = 1e-9

// SampleParams holds the inputs of the curve sampler.
type SampleParams struct {
	A    float64 // ellipse width factor
	B    float64 // ellipse height factor
	R    float64 // radius
	Step float64 // distance between sampled x positions
}

// ParamsFrom extracts the sampler inputs from a parameter snapshot.
func ParamsFrom(p rosette.ShapeParameters) SampleParams {
	return SampleParams{A: p.EllipseWidth, B: p.EllipseHeight, R: p.Radius, Step: p.Step()}
}

// MaxX returns the domain bound sqrt(r²·a).
func (sp SampleParams) MaxX() float64 {
	return math.Sqrt(sp.R * sp.R * sp.A)
}

// Y returns the non-negative half-ellipse height at x:
//
//	y = sqrt(r²·b - x²·b/a)
//
// A radicand that rounds below zero near ±MaxX is clamped to 0.
func (sp SampleParams) Y(x float64) float64 {
	rad := sp.R*sp.R*sp.B - x*x*sp.B/sp.A
	if rad <= 0 {
		return 0
	}
	return math.Sqrt(rad)
}

func (sp SampleParams) validate() error {
	check := []struct {
		field string
		v     float64
	}{
		{"ellipse_width", sp.A},
		{"ellipse_height", sp.B},
		{"radius", sp.R},
		{"step", sp.Step},
	}
	for _, c := range check {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) || c.v <= 0 {
			return &rosette.ParameterDomainError{Field: c.field, Value: c.v, Reason: "must be a finite number > 0"}
		}
	}
	if 2*sp.MaxX()/sp.Step >= MaxSamples {
		return &rosette.ParameterDomainError{Field: "step", Value: sp.Step, Reason: "too small for the sampling domain"}
	}
	return nil
}

// Arcs holds the two sampled halves of a leaf.
type Arcs struct {
	// Upper runs from -MaxX to +MaxX with y >= 0.
	Upper []Point
	// Lower runs from +MaxX back to -MaxX with y <= 0.
	Lower []Point
}

// Len returns the number of samples in both arcs.
func (a Arcs) Len() int {
	return len(a.Upper) + len(a.Lower)
}

// Closed concatenates upper then lower and repeats the first point.
func (a Arcs) Closed() []Point {
	n := a.Len()
	if n == 0 {
		return nil
	}
	pts := make([]Point, 0, n+1)
	pts = append(pts, a.Upper...)
	pts = append(pts, a.Lower...)
	return append(pts, pts[0])
}

// Sample walks x across [-MaxX, MaxX] at sp.Step and returns both arcs.
//
// Sample positions are computed as start ± k·step rather than by repeated
// addition so long walks do not drift.
func Sample(sp SampleParams) (Arcs, error) {
	if err := sp.validate(); err != nil {
		return Arcs{}, err
	}

	maxX := sp.MaxX()
	last := int(math.Floor(2*maxX/sp.Step + sampleEps))

	var arcs Arcs
	arcs.Upper = make([]Point, 0, last+1)
	for k := 0; k <= last; k++ {
		x := math.Min(-maxX+float64(k)*sp.Step, maxX)
		if x < TruncateLeft {
			continue
		}
		arcs.Upper = append(arcs.Upper, Pt(x, sp.Y(x)))
	}

	lowerBound := TruncateLeft - sp.Step
	arcs.Lower = make([]Point, 0, last+1)
	for k := 0; k <= last; k++ {
		x := math.Max(maxX-float64(k)*sp.Step, -maxX)
		if x < lowerBound {
			break
		}
		arcs.Lower = append(arcs.Lower, Pt(x, -sp.Y(x)))
	}

	rosette.Logger().Debug("geom: sampled arcs",
		"maxX", maxX, "step", sp.Step, "upper", len(arcs.Upper), "lower", len(arcs.Lower))
	return arcs, nil
}
