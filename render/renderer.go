// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

// Renderer draws a scene into a render target.
//
// Renderers keep no scene state between Render calls, so one renderer can
// serve several targets. They are NOT thread-safe.
//
// Example:
//
//	renderer := render.NewSoftwareRenderer()
//	target := render.NewPixmapTarget(800, 600)
//	if err := renderer.Render(target, scene, render.NewCamera(size)); err != nil {
//	    log.Printf("render failed: %v", err)
//	}
type Renderer interface {
	// Render clears the target to the scene background and draws every
	// node of the scene as seen by camera.
	Render(target RenderTarget, scene *Scene, camera *Camera) error

	// Flush ensures all pending rendering operations are complete.
	Flush() error
}

// DrawStats are the primitive counters of the last rendered frame.
type DrawStats struct {
	// Triangles counts filled triangles submitted.
	Triangles int

	// Lines counts line segments submitted: P-1 for a strip of P points
	// and 3 per triangle for wireframe meshes.
	Lines int

	// Calls counts drawn nodes.
	Calls int
}

// StatsSource is implemented by renderers that count what they draw.
type StatsSource interface {
	// DrawStats returns the counters of the most recent Render call.
	DrawStats() DrawStats
}
