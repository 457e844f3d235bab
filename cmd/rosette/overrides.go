package main

import (
	"flag"

	"github.com/gogpu/rosette"
)

// overrides holds the per-parameter flags. Only flags given on the
// command line end up in the patch.
type overrides struct {
	radius        float64
	ellipseWidth  float64
	ellipseHeight float64
	leaves        int
	scaler        float64
	smoothing     float64
	background    string
	stroke        string
	mode          string
	wireframe     bool
	extrudeSteps  int
	extrudeDepth  float64
}

func registerOverrides(fs *flag.FlagSet) *overrides {
	d := rosette.DefaultParameters()
	o := &overrides{}
	fs.Float64Var(&o.radius, "radius", d.Radius, "leaf radius")
	fs.Float64Var(&o.ellipseWidth, "ellipse-width", d.EllipseWidth, "ellipse width factor")
	fs.Float64Var(&o.ellipseHeight, "ellipse-height", d.EllipseHeight, "ellipse height factor")
	fs.IntVar(&o.leaves, "leaves", d.LeafCount, "number of leaves")
	fs.Float64Var(&o.scaler, "scaler", d.Scaler, "leaf size scaler")
	fs.Float64Var(&o.smoothing, "smoothing", d.Smoothing, "smoothing index in [0, 1)")
	fs.StringVar(&o.background, "background", d.Background.String(), "background color")
	fs.StringVar(&o.stroke, "stroke", d.Stroke.String(), "leaf color")
	fs.StringVar(&o.mode, "mode", d.Mode.String(), "construction mode: lines or polygons")
	fs.BoolVar(&o.wireframe, "wireframe", d.Wireframe, "draw filled leaves as wireframe")
	fs.IntVar(&o.extrudeSteps, "extrude-steps", d.Extrude.Steps, "extrusion layers in the 3d view")
	fs.Float64Var(&o.extrudeDepth, "extrude-depth", d.Extrude.Depth, "extrusion depth in the 3d view")
	return o
}

// patch converts the flags that were set into a rosette.Patch.
func (o *overrides) patch(fs *flag.FlagSet) (rosette.Patch, error) {
	var (
		pt  rosette.Patch
		err error
	)
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "radius":
			pt.Radius = rosette.Ptr(o.radius)
		case "ellipse-width":
			pt.EllipseWidth = rosette.Ptr(o.ellipseWidth)
		case "ellipse-height":
			pt.EllipseHeight = rosette.Ptr(o.ellipseHeight)
		case "leaves":
			pt.LeafCount = rosette.Ptr(o.leaves)
		case "scaler":
			pt.Scaler = rosette.Ptr(o.scaler)
		case "smoothing":
			pt.Smoothing = rosette.Ptr(o.smoothing)
		case "background":
			var c rosette.Color
			if c, err = rosette.ParseColor(o.background); err == nil {
				pt.Background = &c
			}
		case "stroke":
			var c rosette.Color
			if c, err = rosette.ParseColor(o.stroke); err == nil {
				pt.Stroke = &c
			}
		case "mode":
			var m rosette.ConstructionMode
			if m, err = rosette.ParseConstructionMode(o.mode); err == nil {
				pt.Mode = &m
			}
		case "wireframe":
			pt.Wireframe = rosette.Ptr(o.wireframe)
		case "extrude-steps":
			pt.ExtrudeSteps = rosette.Ptr(o.extrudeSteps)
		case "extrude-depth":
			pt.ExtrudeDepth = rosette.Ptr(o.extrudeDepth)
		}
	})
	return pt, err
}
