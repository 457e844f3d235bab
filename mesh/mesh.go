// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package mesh turns leaf outlines into drawable geometry: line strips,
// flat triangulated polygons and extruded solids.
package mesh

import (
	"errors"
	"math"

	"github.com/gogpu/rosette"
	"github.com/gogpu/rosette/geom"
)

// ErrDegenerate is returned when a ring has fewer than 3 distinct points or
// no area.
var ErrDegenerate = errors.New("mesh: degenerate polygon")

// Mesh is an indexed triangle mesh. Indices hold 3 entries per triangle.
type Mesh struct {
	Vertices []geom.Point
	Indices  []int
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty reports whether the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Indices) == 0
}

// Triangle returns the corners of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c geom.Point) {
	return m.Vertices[m.Indices[3*i]], m.Vertices[m.Indices[3*i+1]], m.Vertices[m.Indices[3*i+2]]
}

// Wireframe returns the triangle edges as a segment list, three segments
// per triangle. Shared edges are drawn twice.
func (m *Mesh) Wireframe() *Lines {
	tris := m.TriangleCount()
	pts := make([]geom.Point, 0, 6*tris)
	for i := 0; i < tris; i++ {
		a, b, c := m.Triangle(i)
		pts = append(pts, a, b, b, c, c, a)
	}
	return &Lines{Points: pts, Topology: LineSegments}
}

// Fill triangulates the outline into a flat polygon at z = 0.
func Fill(o *geom.Outline) (*Mesh, error) {
	ring := cleanRing(o.Ring())
	idx, err := Triangulate(ring)
	if err != nil {
		return nil, &rosette.GeometryError{Stage: "fill", Points: len(ring), Err: err}
	}
	verts := make([]geom.Point, len(ring))
	for i, p := range ring {
		verts[i] = geom.Point{X: p.X, Y: p.Y}
	}
	return &Mesh{Vertices: verts, Indices: idx}, nil
}

// ExtrudeOptions controls Extrude.
type ExtrudeOptions struct {
	// Steps is the number of wall layers along z.
	Steps int
	// Depth is the distance between the back cap (z = 0) and the front cap.
	Depth float64
}

// Extrude builds a solid from the outline: a back cap at z = 0, a front cap
// at z = Depth and side walls split into Steps layers. A ring of n points
// yields 2(n-2) + 2·Steps·n triangles.
func Extrude(o *geom.Outline, opts ExtrudeOptions) (*Mesh, error) {
	if opts.Steps < 1 {
		return nil, &rosette.ParameterDomainError{Field: "extrude.steps", Value: opts.Steps, Reason: "must be >= 1"}
	}
	if opts.Depth < 0 || math.IsNaN(opts.Depth) {
		return nil, &rosette.ParameterDomainError{Field: "extrude.depth", Value: opts.Depth, Reason: "must be >= 0"}
	}

	ring := cleanRing(o.Ring())
	capIdx, err := Triangulate(ring)
	if err != nil {
		return nil, &rosette.GeometryError{Stage: "extrude", Points: len(ring), Err: err}
	}

	n := len(ring)
	m := &Mesh{
		Vertices: make([]geom.Point, 0, n*(opts.Steps+1)),
		Indices:  make([]int, 0, 3*(2*(n-2)+2*opts.Steps*n)),
	}
	for k := 0; k <= opts.Steps; k++ {
		z := opts.Depth * float64(k) / float64(opts.Steps)
		for _, p := range ring {
			m.Vertices = append(m.Vertices, geom.Point{X: p.X, Y: p.Y, Z: z})
		}
	}

	// Back cap faces -z, so flip its winding.
	for t := 0; t < len(capIdx); t += 3 {
		m.Indices = append(m.Indices, capIdx[t], capIdx[t+2], capIdx[t+1])
	}
	front := opts.Steps * n
	for _, i := range capIdx {
		m.Indices = append(m.Indices, front+i)
	}

	for k := 0; k < opts.Steps; k++ {
		lo, hi := k*n, (k+1)*n
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			m.Indices = append(m.Indices,
				lo+i, lo+j, hi+j,
				lo+i, hi+j, hi+i,
			)
		}
	}
	return m, nil
}

// cleanRing drops consecutive duplicates so vertex and triangle counts
// agree with Triangulate.
func cleanRing(ring []geom.Point) []geom.Point {
	idx := distinct(ring)
	out := make([]geom.Point, len(idx))
	for i, j := range idx {
		out[i] = ring[j]
	}
	return out
}
