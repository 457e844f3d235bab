package rosette

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultParametersValid(t *testing.T) {
	p := DefaultParameters()
	if err := p.Validate(); err != nil {
		t.Fatalf("DefaultParameters().Validate() = %v, want nil", err)
	}
	if got := p.MaxX(); got != 1 {
		t.Errorf("MaxX() = %v, want 1", got)
	}
	if got := p.Step(); math.Abs(got-0.03) > 1e-12 {
		t.Errorf("Step() = %v, want 0.03", got)
	}
}

func TestValidateRejectsOutOfDomain(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*ShapeParameters)
		field string
	}{
		{"zero radius", func(p *ShapeParameters) { p.Radius = 0 }, "radius"},
		{"negative width", func(p *ShapeParameters) { p.EllipseWidth = -1 }, "ellipse_width"},
		{"zero height", func(p *ShapeParameters) { p.EllipseHeight = 0 }, "ellipse_height"},
		{"NaN scaler", func(p *ShapeParameters) { p.Scaler = math.NaN() }, "scaler"},
		{"no leaves", func(p *ShapeParameters) { p.LeafCount = 0 }, "leaves"},
		{"smoothing one", func(p *ShapeParameters) { p.Smoothing = 1 }, "smoothing"},
		{"negative smoothing", func(p *ShapeParameters) { p.Smoothing = -0.1 }, "smoothing"},
		{"unknown mode", func(p *ShapeParameters) { p.Mode = 7 }, "mode"},
		{"zero steps", func(p *ShapeParameters) { p.Extrude.Steps = 0 }, "extrude.steps"},
		{"negative depth", func(p *ShapeParameters) { p.Extrude.Depth = -2 }, "extrude.depth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParameters()
			tt.mut(&p)
			err := p.Validate()
			var de *ParameterDomainError
			if !errors.As(err, &de) {
				t.Fatalf("Validate() = %v, want *ParameterDomainError", err)
			}
			if de.Field != tt.field {
				t.Errorf("Field = %q, want %q", de.Field, tt.field)
			}
		})
	}
}

func TestNormalizeClearsWireframeWhenStroked(t *testing.T) {
	p := DefaultParameters()
	p.Wireframe = true
	if p.Normalize().Wireframe {
		t.Error("Normalize() kept wireframe in Stroked mode")
	}
	p.Mode = Filled
	if !p.Normalize().Wireframe {
		t.Error("Normalize() cleared wireframe in Filled mode")
	}
}

func TestApplyPatch(t *testing.T) {
	p := DefaultParameters()
	got := p.Apply(Patch{
		LeafCount:    Ptr(6),
		Smoothing:    Ptr(0.5),
		Stroke:       Ptr(Color(0x00FF00)),
		Mode:         Ptr(Filled),
		Wireframe:    Ptr(true),
		ExtrudeDepth: Ptr(4.0),
	})
	if got.LeafCount != 6 || got.Smoothing != 0.5 || got.Stroke != 0x00FF00 {
		t.Errorf("Apply() = %+v, patch fields not merged", got)
	}
	if got.Mode != Filled || !got.Wireframe || got.Extrude.Depth != 4 {
		t.Errorf("Apply() = %+v, mode/wireframe/depth not merged", got)
	}
	if got.Radius != p.Radius || got.Background != p.Background || got.Extrude.Steps != p.Extrude.Steps {
		t.Errorf("Apply() changed fields absent from the patch: %+v", got)
	}

	back := got.Apply(Patch{Mode: Ptr(Stroked)})
	if back.Wireframe {
		t.Error("switching to Stroked should clear wireframe")
	}
}

func TestPatchIsEmpty(t *testing.T) {
	if !(Patch{}).IsEmpty() {
		t.Error("zero Patch should be empty")
	}
	if (Patch{Radius: Ptr(2.0)}).IsEmpty() {
		t.Error("Patch with Radius should not be empty")
	}
}

func TestConstructionModeText(t *testing.T) {
	tests := []struct {
		in   string
		want ConstructionMode
	}{
		{"lines", Stroked},
		{"Stroked", Stroked},
		{"polygons", Filled},
		{" filled ", Filled},
	}
	for _, tt := range tests {
		var m ConstructionMode
		if err := m.UnmarshalText([]byte(tt.in)); err != nil {
			t.Errorf("UnmarshalText(%q) error = %v", tt.in, err)
			continue
		}
		if m != tt.want {
			t.Errorf("UnmarshalText(%q) = %v, want %v", tt.in, m, tt.want)
		}
	}

	var m ConstructionMode
	if err := m.UnmarshalText([]byte("triangles")); err == nil {
		t.Error("UnmarshalText(triangles) should fail")
	}
	if b, _ := Filled.MarshalText(); string(b) != "polygons" {
		t.Errorf("Filled.MarshalText() = %q, want polygons", b)
	}
}
