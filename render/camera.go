// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Default camera parameters.
const (
	DefaultFovY     = 45   // degrees
	DefaultNear     = 1
	DefaultFar      = 1000
	DefaultDistance = 500 // camera z
)

// Camera is a perspective camera looking at Target from Eye.
type Camera struct {
	FovY   float64 // vertical field of view, degrees
	Aspect float64
	Near   float64
	Far    float64

	Eye    mgl64.Vec3
	Target mgl64.Vec3
	Up     mgl64.Vec3

	size Size
}

// NewCamera returns the default camera for a surface: 45° field of view,
// aspect Width/Height, near plane 1, placed at (0, 0, 500) looking at the
// origin.
func NewCamera(size Size) *Camera {
	size = size.Clamp()
	return &Camera{
		FovY:   DefaultFovY,
		Aspect: size.Aspect(),
		Near:   DefaultNear,
		Far:    DefaultFar,
		Eye:    mgl64.Vec3{0, 0, DefaultDistance},
		Up:     mgl64.Vec3{0, 1, 0},
		size:   size,
	}
}

// Size returns the viewport size the camera projects onto.
func (c *Camera) Size() Size {
	return c.size
}

// SetSize updates the viewport and the aspect ratio.
func (c *Camera) SetSize(size Size) {
	c.size = size.Clamp()
	c.Aspect = c.size.Aspect()
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye, c.Target, c.Up)
}

// Projector maps model-space points of one object to pixels.
type Projector struct {
	modelView  mgl64.Mat4
	projection mgl64.Mat4
	w, h       int
}

// Projector returns a projector for an object with the given model matrix.
func (c *Camera) Projector(model mgl64.Mat4) Projector {
	return Projector{
		modelView:  c.View().Mul4(model),
		projection: c.Projection(),
		w:          c.size.Width,
		h:          c.size.Height,
	}
}

// Project returns the pixel position of p (y down) and its view-space
// depth. ok is false for points behind the near plane.
func (pr Projector) Project(p mgl64.Vec3) (x, y, depth float64, ok bool) {
	eye := pr.modelView.Mul4x1(p.Vec4(1))
	if -eye.Z() < 1e-9 {
		return 0, 0, 0, false
	}
	win := mgl64.Project(p, pr.modelView, pr.projection, 0, 0, pr.w, pr.h)
	return win.X(), float64(pr.h) - win.Y(), -eye.Z(), true
}

// ViewPoint returns p in camera space.
func (pr Projector) ViewPoint(p mgl64.Vec3) mgl64.Vec3 {
	return pr.modelView.Mul4x1(p.Vec4(1)).Vec3()
}
