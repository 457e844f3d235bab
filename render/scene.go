// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"

	"github.com/gogpu/rosette/mesh"
)

// DefaultLineWidth is the stroke width, in pixels, of line geometry.
const DefaultLineWidth = 1.5

// Material describes how a node is painted.
type Material struct {
	Color gg.RGBA

	// Wireframe draws the triangle edges of a mesh instead of filling it.
	Wireframe bool

	// LineWidth overrides DefaultLineWidth when > 0.
	LineWidth float64
}

func (m Material) lineWidth() float64 {
	if m.LineWidth > 0 {
		return m.LineWidth
	}
	return DefaultLineWidth
}

// Node is one drawable object: a transform plus either line or mesh
// geometry. If both are set, the mesh wins.
type Node struct {
	Name string

	Position  mgl64.Vec3
	RotationZ float64 // radians
	Scale     mgl64.Vec3

	Lines *mesh.Lines
	Mesh  *mesh.Mesh

	Material Material
}

// Transform returns the local transform Translate · RotateZ · Scale.
// A zero Scale is treated as (1, 1, 1).
func (n *Node) Transform() mgl64.Mat4 {
	s := n.Scale
	if s == (mgl64.Vec3{}) {
		s = mgl64.Vec3{1, 1, 1}
	}
	return mgl64.Translate3D(n.Position[0], n.Position[1], n.Position[2]).
		Mul4(mgl64.HomogRotate3DZ(n.RotationZ)).
		Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}

// Group owns an ordered list of nodes and an orientation applied on top of
// every child transform.
type Group struct {
	Orientation mgl64.Mat4
	children    []*Node
}

// NewGroup returns an empty group with identity orientation.
func NewGroup() *Group {
	return &Group{Orientation: mgl64.Ident4()}
}

// Add appends nodes to the group.
func (g *Group) Add(nodes ...*Node) {
	g.children = append(g.children, nodes...)
}

// Children returns the nodes in draw order. Callers must not modify it.
func (g *Group) Children() []*Node {
	return g.children
}

// Len returns the number of nodes.
func (g *Group) Len() int {
	return len(g.children)
}

// Clear detaches all nodes and returns how many were removed.
func (g *Group) Clear() int {
	n := len(g.children)
	clear(g.children)
	g.children = g.children[:0]
	return n
}

// RotateLocalX rotates the group about its own X axis by deg degrees.
func (g *Group) RotateLocalX(deg float64) {
	g.Orientation = g.Orientation.Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(deg)))
}

// RotateLocalZ rotates the group about its own Z axis by deg degrees.
func (g *Group) RotateLocalZ(deg float64) {
	g.Orientation = g.Orientation.Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(deg)))
}

// ResetOrientation restores the identity orientation.
func (g *Group) ResetOrientation() {
	g.Orientation = mgl64.Ident4()
}

// Scene is the retained drawing tree of one session.
type Scene struct {
	Background gg.RGBA
	Root       *Group
}

// NewScene returns a scene with a white background and an empty root.
func NewScene() *Scene {
	return &Scene{Background: gg.White, Root: NewGroup()}
}

// IsEmpty reports whether the scene has nothing to draw besides the
// background.
func (s *Scene) IsEmpty() bool {
	return s == nil || s.Root == nil || s.Root.Len() == 0
}
