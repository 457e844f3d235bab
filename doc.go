// Package rosette generates radially symmetric leaf patterns and renders
// them through a small retained scene.
//
// # Overview
//
// A pattern is described by [ShapeParameters]: the radius and the two
// ellipse factors shape a single leaf, LeafCount copies of it are placed
// around the origin, and the construction mode decides whether each leaf
// is a stroked outline or a filled (in 3D, extruded) solid.
//
// The pipeline is split across sub-packages:
//
//   - geom: samples the clipped half-ellipse arcs and closes them into a
//     leaf outline
//   - radial: places N copies of the leaf at 360/N degree intervals
//   - mesh: turns an outline into a polyline, a triangulated polygon or an
//     extruded solid
//   - render: scene graph, perspective camera, gg-backed software renderer
//     and its primitive counters
//   - session: the create / update / clear / draw / destroy lifecycle and
//     deferred statistics delivery
//   - store: named-scope persistence of the parameter snapshot
//   - studio: view-mode toggling, partial parameter updates, layout
//
// # Quick Start
//
//	host := render.NewHost(session.DisplayPortID)
//	s, err := session.New(host, render.Size{Width: 800, Height: 600}, session.Config{
//	    Variant: session.Flat,
//	    OnStats: func(st session.Stats) { fmt.Println(st) },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Destroy()
//
//	if err := s.Update(rosette.DefaultParameters()); err != nil {
//	    log.Fatal(err)
//	}
//	_ = s.Draw(context.Background())
//
// # Coordinate System
//
// Geometry is built in a right-handed model space with the leaf ring in the
// XY plane and the camera on the +Z axis looking at the origin. Angles in
// ShapeParameters-facing APIs are degrees; internal transforms use radians.
package rosette
