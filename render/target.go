// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
)

// Size is a surface size in pixels.
type Size struct {
	Width, Height int
}

// Aspect returns Width/Height, or 1 for an empty size.
func (s Size) Aspect() float64 {
	if s.Width <= 0 || s.Height <= 0 {
		return 1
	}
	return float64(s.Width) / float64(s.Height)
}

// Clamp returns s with each dimension at least 1.
func (s Size) Clamp() Size {
	return Size{Width: max(s.Width, 1), Height: max(s.Height, 1)}
}

// RenderTarget defines where rendering output goes.
//
//   - PixmapTarget: an owned, CPU-backed gg.Context
//   - ContextTarget: a gg.Context owned by someone else, e.g. a window canvas
type RenderTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// Context returns the gg drawing context, or nil once the target is
	// closed.
	Context() *gg.Context
}

// PixmapTarget is an owned offscreen target backed by a gg.Context.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 600)
//	defer target.Close()
//	renderer.Render(target, scene, camera)
//	target.SavePNG("out.png")
type PixmapTarget struct {
	dc *gg.Context
}

// NewPixmapTarget creates an offscreen target. Sizes below 1 are raised to 1.
func NewPixmapTarget(width, height int) *PixmapTarget {
	s := Size{Width: width, Height: height}.Clamp()
	return &PixmapTarget{dc: gg.NewContext(s.Width, s.Height)}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	if t.dc == nil {
		return 0
	}
	return t.dc.Width()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	if t.dc == nil {
		return 0
	}
	return t.dc.Height()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Context returns the drawing context.
func (t *PixmapTarget) Context() *gg.Context {
	return t.dc
}

// Image returns the rendered image, or nil after Close.
func (t *PixmapTarget) Image() image.Image {
	if t.dc == nil {
		return nil
	}
	return t.dc.Image()
}

// Pixel returns the color at (x, y) as non-premultiplied RGBA.
func (t *PixmapTarget) Pixel(x, y int) color.NRGBA {
	img := t.Image()
	if img == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

// SavePNG writes the target to a PNG file.
func (t *PixmapTarget) SavePNG(path string) error {
	if t.dc == nil {
		return ErrTargetClosed
	}
	return t.dc.SavePNG(path)
}

// EncodePNG writes the target as PNG to w.
func (t *PixmapTarget) EncodePNG(w io.Writer) error {
	if t.dc == nil {
		return ErrTargetClosed
	}
	return t.dc.EncodePNG(w)
}

// Resize changes the target size. The contents are not preserved.
func (t *PixmapTarget) Resize(width, height int) error {
	if t.dc == nil {
		return ErrTargetClosed
	}
	s := Size{Width: width, Height: height}.Clamp()
	return t.dc.Resize(s.Width, s.Height)
}

// Close releases the drawing context. It is safe to call more than once.
func (t *PixmapTarget) Close() error {
	if t.dc == nil {
		return nil
	}
	err := t.dc.Close()
	t.dc = nil
	return err
}

// Ensure PixmapTarget implements RenderTarget.
var _ RenderTarget = (*PixmapTarget)(nil)

// ContextTarget draws into a gg.Context owned by the caller.
// Closing it only forgets the context.
type ContextTarget struct {
	dc *gg.Context
}

// NewContextTarget wraps dc.
func NewContextTarget(dc *gg.Context) *ContextTarget {
	return &ContextTarget{dc: dc}
}

// Width returns the context width in pixels.
func (t *ContextTarget) Width() int {
	if t.dc == nil {
		return 0
	}
	return t.dc.Width()
}

// Height returns the context height in pixels.
func (t *ContextTarget) Height() int {
	if t.dc == nil {
		return 0
	}
	return t.dc.Height()
}

// Format returns the pixel format (RGBA8).
func (t *ContextTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Context returns the wrapped context.
func (t *ContextTarget) Context() *gg.Context {
	return t.dc
}

// Close drops the reference to the wrapped context without closing it.
func (t *ContextTarget) Close() error {
	t.dc = nil
	return nil
}

// Ensure ContextTarget implements RenderTarget.
var _ RenderTarget = (*ContextTarget)(nil)
