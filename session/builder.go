// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package session

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/rosette"
	"github.com/gogpu/rosette/geom"
	"github.com/gogpu/rosette/mesh"
	"github.com/gogpu/rosette/radial"
	"github.com/gogpu/rosette/render"
)

// Build is the output of one geometry rebuild.
type Build struct {
	Params    rosette.ShapeParameters
	Outline   *geom.Outline
	Instances []radial.Instance
	Nodes     []*render.Node
}

// Bounds returns the XY extent of all placed leaves in world units.
func (b *Build) Bounds() (lo, hi geom.Point) {
	lo = geom.Pt(math.Inf(1), math.Inf(1))
	hi = geom.Pt(math.Inf(-1), math.Inf(-1))
	for _, in := range b.Instances {
		for _, p := range b.Outline.Points() {
			q := in.Apply(p, b.Params.Scaler, 1)
			lo.X, lo.Y = min(lo.X, q.X), min(lo.Y, q.Y)
			hi.X, hi.Y = max(hi.X, q.X), max(hi.Y, q.Y)
		}
	}
	return lo, hi
}

// Builder turns parameters into scene nodes for one view variant.
type Builder struct {
	variant Variant
}

// NewBuilder returns a builder for v.
func NewBuilder(v Variant) *Builder {
	return &Builder{variant: v}
}

// Variant returns the view variant the builder targets.
func (b *Builder) Variant() Variant {
	return b.variant
}

// Build samples the leaf, replicates it and wraps the geometry in nodes.
//
//   - Stroked: one line strip per leaf, wireframe off.
//   - Filled, Flat: triangulated polygon, wireframe as requested.
//   - Filled, Solid: extruded solid, wireframe as requested.
//
// Every branch yields one node per instance with the same placement. The
// leaf geometry is shared by all nodes.
func (b *Builder) Build(p rosette.ShapeParameters) (*Build, error) {
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	outline, err := geom.LeafOutline(p)
	if err != nil {
		return nil, err
	}
	instances, err := radial.ForParameters(p)
	if err != nil {
		return nil, err
	}

	mat := render.Material{Color: p.Stroke.ToRGBA(), Wireframe: p.Wireframe}
	var (
		lines *mesh.Lines
		solid *mesh.Mesh
	)
	switch {
	case p.Mode == rosette.Stroked:
		lines = mesh.Polyline(outline.Points())
		mat.Wireframe = false
	case b.variant == Solid:
		solid, err = mesh.Extrude(outline, mesh.ExtrudeOptions{Steps: p.Extrude.Steps, Depth: p.Extrude.Depth})
	default:
		solid, err = mesh.Fill(outline)
	}
	if err != nil {
		return nil, err
	}

	nodes := make([]*render.Node, len(instances))
	for i, in := range instances {
		nodes[i] = &render.Node{
			Name:      fmt.Sprintf("leaf-%d", in.Index),
			Position:  mgl64.Vec3{in.Offset.X, in.Offset.Y, in.Offset.Z},
			RotationZ: in.Angle(),
			Scale:     mgl64.Vec3{p.Scaler, p.Scaler, 1},
			Lines:     lines,
			Mesh:      solid,
			Material:  mat,
		}
	}

	rosette.Logger().Debug("session: built leaves",
		"variant", b.variant, "mode", p.Mode, "points", outline.Len(), "leaves", len(nodes))
	return &Build{Params: p, Outline: outline, Instances: instances, Nodes: nodes}, nil
}
