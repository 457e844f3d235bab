// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mesh

import (
	"github.com/gogpu/rosette/geom"
)

// Triangulate splits a simple polygon ring into triangles by ear clipping.
//
// The ring must not repeat its first point at the end. Consecutive
// duplicate points are skipped, so n distinct points always yield n-2
// triangles. Indices refer to positions in ring and every triangle is
// wound counter-clockwise in the XY plane.
//
// Fewer than 3 distinct points or a zero-area ring returns ErrDegenerate.
func Triangulate(ring []geom.Point) ([]int, error) {
	idx := distinct(ring)
	if len(idx) < 3 {
		return nil, ErrDegenerate
	}

	area := signedArea(ring, idx)
	if area == 0 {
		return nil, ErrDegenerate
	}
	if area < 0 {
		for i, j := 0, len(idx)-1; i < j; i, j = i+1, j-1 {
			idx[i], idx[j] = idx[j], idx[i]
		}
	}

	tris := make([]int, 0, 3*(len(idx)-2))
	for len(idx) > 3 {
		n := len(idx)
		ear := -1
		for i := 0; i < n; i++ {
			if isEar(ring, idx, i) {
				ear = i
				break
			}
		}
		if ear < 0 {
			// Rounding left no strict ear; clip the first vertex so the
			// loop still makes progress.
			ear = 0
		}
		a, b, c := idx[(ear+n-1)%n], idx[ear], idx[(ear+1)%n]
		tris = append(tris, a, b, c)
		idx = append(idx[:ear], idx[ear+1:]...)
	}
	return append(tris, idx[0], idx[1], idx[2]), nil
}

// distinct returns the indices of ring with consecutive duplicates removed,
// including a trailing point equal to the first one.
func distinct(ring []geom.Point) []int {
	idx := make([]int, 0, len(ring))
	for i, p := range ring {
		if len(idx) > 0 && ring[idx[len(idx)-1]] == p {
			continue
		}
		idx = append(idx, i)
	}
	for len(idx) > 1 && ring[idx[len(idx)-1]] == ring[idx[0]] {
		idx = idx[:len(idx)-1]
	}
	return idx
}

// signedArea is positive for counter-clockwise rings.
func signedArea(ring []geom.Point, idx []int) float64 {
	var sum float64
	for i, j := range idx {
		p, q := ring[j], ring[idx[(i+1)%len(idx)]]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func cross(o, a, b geom.Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func isEar(ring []geom.Point, idx []int, i int) bool {
	n := len(idx)
	ia, ib, ic := idx[(i+n-1)%n], idx[i], idx[(i+1)%n]
	a, b, c := ring[ia], ring[ib], ring[ic]
	if cross(a, b, c) <= 0 {
		return false
	}
	for _, j := range idx {
		if j == ia || j == ib || j == ic {
			continue
		}
		p := ring[j]
		if p == a || p == b || p == c {
			continue
		}
		if cross(a, b, p) >= 0 && cross(b, c, p) >= 0 && cross(c, a, p) >= 0 {
			return false
		}
	}
	return true
}
