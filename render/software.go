// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"

	"github.com/gogpu/rosette/geom"
	"github.com/gogpu/rosette/mesh"
)

// SoftwareRenderer projects the scene on the CPU and rasterizes it with
// gg.Context.
//
// Lines are stroked as one path per node. Meshes are depth sorted per
// triangle (painter's algorithm) and flat shaded by how much each triangle
// faces the camera, so a flat 2D polygon keeps its exact material color.
//
// Example:
//
//	renderer := render.NewSoftwareRenderer()
//	target := render.NewPixmapTarget(800, 600)
//	renderer.Render(target, scene, render.NewCamera(render.Size{Width: 800, Height: 600}))
//	fmt.Println(renderer.DrawStats().Triangles)
type SoftwareRenderer struct {
	stats DrawStats

	// tris is reused between frames for depth sorting.
	tris []projectedTriangle
}

type projectedTriangle struct {
	x, y  [3]float64
	depth float64
	shade float64
}

// NewSoftwareRenderer creates a CPU renderer.
func NewSoftwareRenderer() *SoftwareRenderer {
	return &SoftwareRenderer{}
}

// Render draws the scene to the target.
//
// A nil camera is replaced by NewCamera for the target size. A nil scene
// clears the target to white.
func (r *SoftwareRenderer) Render(target RenderTarget, scene *Scene, camera *Camera) error {
	r.stats = DrawStats{}
	if target == nil {
		return ErrNilTarget
	}
	dc := target.Context()
	if dc == nil {
		return ErrTargetClosed
	}

	size := Size{Width: target.Width(), Height: target.Height()}
	var cam Camera
	if camera == nil {
		cam = *NewCamera(size)
	} else {
		cam = *camera
		cam.size = size.Clamp()
	}

	dc.Push()
	defer dc.Pop()
	dc.Identity()

	bg := gg.White
	if scene != nil {
		bg = scene.Background
	}
	dc.ClearWithColor(bg)

	if scene.IsEmpty() {
		return nil
	}

	for _, n := range scene.Root.Children() {
		if n == nil {
			continue
		}
		pr := cam.Projector(scene.Root.Orientation.Mul4(n.Transform()))
		var err error
		switch {
		case n.Mesh != nil && n.Material.Wireframe:
			wire := n.Mesh.Wireframe()
			err = r.strokeLines(dc, pr, wire, n.Material)
			r.stats.Lines += wire.Segments()
		case n.Mesh != nil:
			err = r.fillMesh(dc, pr, n.Mesh, n.Material)
			r.stats.Triangles += n.Mesh.TriangleCount()
		case n.Lines != nil:
			err = r.strokeLines(dc, pr, n.Lines, n.Material)
			r.stats.Lines += n.Lines.Segments()
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("render: node %q: %w", n.Name, err)
		}
		r.stats.Calls++
	}
	return nil
}

// Flush is a no-op; software rendering is synchronous.
func (r *SoftwareRenderer) Flush() error {
	return nil
}

// DrawStats returns the counters of the last Render call.
func (r *SoftwareRenderer) DrawStats() DrawStats {
	return r.stats
}

func (r *SoftwareRenderer) strokeLines(dc *gg.Context, pr Projector, l *mesh.Lines, m Material) error {
	dc.ClearPath()
	drawn := 0
	penDown := false
	last := mgl64.Vec2{}
	l.Each(func(a, b geom.Point) {
		ax, ay, _, okA := pr.Project(vec3(a))
		bx, by, _, okB := pr.Project(vec3(b))
		if !okA || !okB {
			penDown = false
			return
		}
		if !penDown || l.Topology == mesh.LineSegments || last != (mgl64.Vec2{ax, ay}) {
			dc.MoveTo(ax, ay)
		}
		dc.LineTo(bx, by)
		last = mgl64.Vec2{bx, by}
		penDown = true
		drawn++
	})
	if drawn == 0 {
		return nil
	}
	dc.SetRGBA(m.Color.R, m.Color.G, m.Color.B, m.Color.A)
	dc.SetLineWidth(m.lineWidth())
	dc.SetLineJoin(gg.LineJoinRound)
	return dc.Stroke()
}

func (r *SoftwareRenderer) fillMesh(dc *gg.Context, pr Projector, m *mesh.Mesh, mat Material) error {
	r.tris = r.tris[:0]
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		var t projectedTriangle
		ok := true
		for k, p := range [3]geom.Point{a, b, c} {
			x, y, d, visible := pr.Project(vec3(p))
			if !visible {
				ok = false
				break
			}
			t.x[k], t.y[k] = x, y
			t.depth += d / 3
		}
		if !ok {
			continue
		}
		va, vb, vc := pr.ViewPoint(vec3(a)), pr.ViewPoint(vec3(b)), pr.ViewPoint(vec3(c))
		normal := vb.Sub(va).Cross(vc.Sub(va))
		l := normal.Len()
		if l == 0 {
			continue
		}
		t.shade = 0.45 + 0.55*math.Abs(normal.Z()/l)
		r.tris = append(r.tris, t)
	}
	if len(r.tris) == 0 {
		return nil
	}

	// Far triangles first.
	sort.SliceStable(r.tris, func(i, j int) bool { return r.tris[i].depth > r.tris[j].depth })

	// Consecutive triangles with the same shade are filled as one path so
	// flat polygons show no seams.
	dc.ClearPath()
	shade := r.tris[0].shade
	for _, t := range r.tris {
		if t.shade != shade {
			if err := fillShaded(dc, mat.Color, shade); err != nil {
				return err
			}
			shade = t.shade
		}
		// Same screen winding for every triangle, or overlapping
		// opposite faces would cancel under the non-zero rule.
		i1, i2 := 1, 2
		if (t.x[1]-t.x[0])*(t.y[2]-t.y[0])-(t.y[1]-t.y[0])*(t.x[2]-t.x[0]) < 0 {
			i1, i2 = 2, 1
		}
		dc.MoveTo(t.x[0], t.y[0])
		dc.LineTo(t.x[i1], t.y[i1])
		dc.LineTo(t.x[i2], t.y[i2])
		dc.ClosePath()
	}
	return fillShaded(dc, mat.Color, shade)
}

func fillShaded(dc *gg.Context, c gg.RGBA, shade float64) error {
	dc.SetRGBA(c.R*shade, c.G*shade, c.B*shade, c.A)
	dc.SetFillRule(gg.FillRuleNonZero)
	return dc.Fill()
}

func vec3(p geom.Point) mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}
