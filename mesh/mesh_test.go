// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/rosette"
	"github.com/gogpu/rosette/geom"
)

func polygonArea(ring []geom.Point) float64 {
	return math.Abs(signedArea(ring, distinct(ring)))
}

func trianglesArea(ring []geom.Point, idx []int) float64 {
	var sum float64
	for t := 0; t < len(idx); t += 3 {
		sum += math.Abs(cross(ring[idx[t]], ring[idx[t+1]], ring[idx[t+2]])) / 2
	}
	return sum
}

func TestTriangulate(t *testing.T) {
	tests := []struct {
		name      string
		ring      []geom.Point
		triangles int
	}{
		{"triangle", []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(0, 1)}, 1},
		{"square ccw", []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1)}, 2},
		{"square cw", []geom.Point{geom.Pt(0, 0), geom.Pt(0, 1), geom.Pt(1, 1), geom.Pt(1, 0)}, 2},
		{"concave L", []geom.Point{
			geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(2, 1),
			geom.Pt(1, 1), geom.Pt(1, 2), geom.Pt(0, 2),
		}, 4},
		{"duplicates", []geom.Point{
			geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1), geom.Pt(0, 0),
		}, 2},
		{"collinear run", []geom.Point{
			geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0), geom.Pt(2, 2), geom.Pt(0, 2),
		}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := Triangulate(tt.ring)
			if err != nil {
				t.Fatalf("Triangulate() error = %v", err)
			}
			if got := len(idx) / 3; got != tt.triangles {
				t.Errorf("Triangulate() triangles = %d, want %d", got, tt.triangles)
			}
			if got, want := trianglesArea(tt.ring, idx), polygonArea(tt.ring); math.Abs(got-want) > 1e-9 {
				t.Errorf("triangle area = %v, want %v", got, want)
			}
			for i := 0; i < len(idx); i += 3 {
				if c := cross(tt.ring[idx[i]], tt.ring[idx[i+1]], tt.ring[idx[i+2]]); c < 0 {
					t.Errorf("triangle %d wound clockwise", i/3)
				}
			}
		})
	}
}

func TestTriangulateDegenerate(t *testing.T) {
	tests := []struct {
		name string
		ring []geom.Point
	}{
		{"empty", nil},
		{"two points", []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1)}},
		{"all equal", []geom.Point{geom.Pt(1, 1), geom.Pt(1, 1), geom.Pt(1, 1)}},
		{"collinear", []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Triangulate(tt.ring); !errors.Is(err, ErrDegenerate) {
				t.Errorf("Triangulate() error = %v, want ErrDegenerate", err)
			}
		})
	}
}

func TestPolyline(t *testing.T) {
	src := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 0)}
	l := Polyline(src)
	if got := l.Segments(); got != 3 {
		t.Errorf("Segments() = %d, want 3", got)
	}
	src[0] = geom.Pt(9, 9)
	if l.Points[0] != geom.Pt(0, 0) {
		t.Error("Polyline() did not copy its input")
	}

	var n int
	l.Each(func(a, b geom.Point) { n++ })
	if n != 3 {
		t.Errorf("Each() visited %d segments, want 3", n)
	}
	if got := (*Lines)(nil).Segments(); got != 0 {
		t.Errorf("nil Segments() = %d, want 0", got)
	}
}

func leaf(t *testing.T) *geom.Outline {
	t.Helper()
	o, err := geom.LeafOutline(rosette.DefaultParameters())
	if err != nil {
		t.Fatalf("LeafOutline() error = %v", err)
	}
	return o
}

func TestFillLeaf(t *testing.T) {
	o := leaf(t)
	m, err := Fill(o)
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	n := len(cleanRing(o.Ring()))
	if got := m.TriangleCount(); got != n-2 {
		t.Errorf("TriangleCount() = %d, want %d", got, n-2)
	}
	if got, want := trianglesArea(m.Vertices, m.Indices), polygonArea(o.Ring()); math.Abs(got-want) > 1e-9 {
		t.Errorf("fill area = %v, want %v", got, want)
	}

	w := m.Wireframe()
	if got := w.Segments(); got != 3*m.TriangleCount() {
		t.Errorf("Wireframe().Segments() = %d, want %d", got, 3*m.TriangleCount())
	}
}

func TestExtrudeCounts(t *testing.T) {
	o := leaf(t)
	n := len(cleanRing(o.Ring()))
	for _, steps := range []int{1, 2, 5} {
		m, err := Extrude(o, ExtrudeOptions{Steps: steps, Depth: 16})
		if err != nil {
			t.Fatalf("Extrude(steps=%d) error = %v", steps, err)
		}
		if got, want := m.TriangleCount(), 2*(n-2)+2*steps*n; got != want {
			t.Errorf("Extrude(steps=%d).TriangleCount() = %d, want %d", steps, got, want)
		}
		if got, want := m.VertexCount(), n*(steps+1); got != want {
			t.Errorf("Extrude(steps=%d).VertexCount() = %d, want %d", steps, got, want)
		}
		for _, i := range m.Indices {
			if i < 0 || i >= m.VertexCount() {
				t.Fatalf("index %d out of range", i)
			}
		}
	}
}

func TestExtrudeDepth(t *testing.T) {
	m, err := Extrude(leaf(t), ExtrudeOptions{Steps: 2, Depth: 16})
	if err != nil {
		t.Fatalf("Extrude() error = %v", err)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range m.Vertices {
		lo, hi = math.Min(lo, v.Z), math.Max(hi, v.Z)
	}
	if lo != 0 || hi != 16 {
		t.Errorf("z range = [%v, %v], want [0, 16]", lo, hi)
	}
}

func TestExtrudeRejects(t *testing.T) {
	o := leaf(t)
	for _, opts := range []ExtrudeOptions{{Steps: 0, Depth: 1}, {Steps: 1, Depth: -1}} {
		_, err := Extrude(o, opts)
		var de *rosette.ParameterDomainError
		if !errors.As(err, &de) {
			t.Errorf("Extrude(%+v) error = %v, want *ParameterDomainError", opts, err)
		}
	}
}
