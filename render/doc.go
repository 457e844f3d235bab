// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render is the drawing backend of rosette.
//
// It keeps a small retained scene graph, projects it through a perspective
// camera and rasterizes it with gg.
//
// # Core Types
//
//   - Scene: background color plus a root Group of leaf Nodes
//   - Camera: perspective projection and view transform (mathgl)
//   - RenderTarget: where pixels go (PixmapTarget, ContextTarget)
//   - Renderer: draws a Scene into a RenderTarget
//   - Host: named slots a target is attached to while a session is live
//
// # Renderer Implementations
//
//   - SoftwareRenderer: CPU rasterization through gg.Context
//
// SoftwareRenderer also implements StatsSource. After each Render it holds
// the number of triangles and line segments submitted during that frame.
//
// # Usage
//
//	target := render.NewPixmapTarget(800, 600)
//	defer target.Close()
//
//	scene := render.NewScene()
//	scene.Background = gg.Hex("#ffeeee")
//	scene.Root.Add(&render.Node{Lines: lines, Scale: mgl64.Vec3{30, 30, 1}})
//
//	cam := render.NewCamera(render.Size{Width: 800, Height: 600})
//	r := render.NewSoftwareRenderer()
//	if err := r.Render(target, scene, cam); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(r.DrawStats())
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. Callers serialize
// access to a Scene, its Renderer and its target.
package render
