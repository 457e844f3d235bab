package rosette

import (
	"fmt"
	"math"
	"strings"
)

// ConstructionMode selects whether leaves are stroked outlines or filled
// (and, in the 3D view, extruded) solids.
type ConstructionMode uint8

const (
	// Stroked draws each leaf as a closed polyline.
	Stroked ConstructionMode = iota

	// Filled draws each leaf as a triangulated polygon or extruded solid.
	Filled
)

// String returns the persisted name of the mode.
func (m ConstructionMode) String() string {
	switch m {
	case Stroked:
		return "lines"
	case Filled:
		return "polygons"
	default:
		return fmt.Sprintf("ConstructionMode(%d)", uint8(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m ConstructionMode) MarshalText() ([]byte, error) {
	if m > Filled {
		return nil, &ParameterDomainError{Field: "mode", Value: uint8(m), Reason: "unknown construction mode"}
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ConstructionMode) UnmarshalText(text []byte) error {
	v, err := ParseConstructionMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseConstructionMode accepts "lines"/"stroked" and "polygons"/"filled".
func ParseConstructionMode(s string) (ConstructionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lines", "stroked", "stroke":
		return Stroked, nil
	case "polygons", "filled", "fill":
		return Filled, nil
	}
	return 0, &ParameterDomainError{Field: "mode", Value: s, Reason: `want "lines" or "polygons"`}
}

// ExtrudeSettings controls the third dimension of filled leaves in the 3D view.
type ExtrudeSettings struct {
	Steps int     `toml:"steps" yaml:"steps"`
	Depth float64 `toml:"depth" yaml:"depth"`
}

// ShapeParameters is the full, immutable parameter snapshot for one render
// cycle.
type ShapeParameters struct {
	Radius        float64          `toml:"radius" yaml:"radius"`
	EllipseWidth  float64          `toml:"ellipse_width" yaml:"ellipse_width"`
	EllipseHeight float64          `toml:"ellipse_height" yaml:"ellipse_height"`
	LeafCount     int              `toml:"leaves" yaml:"leaves"`
	Scaler        float64          `toml:"scaler" yaml:"scaler"`
	Smoothing     float64          `toml:"smoothing" yaml:"smoothing"`
	Background    Color            `toml:"background" yaml:"background"`
	Stroke        Color            `toml:"stroke" yaml:"stroke"`
	Mode          ConstructionMode `toml:"mode" yaml:"mode"`
	Wireframe     bool             `toml:"wireframe" yaml:"wireframe"`
	Extrude       ExtrudeSettings  `toml:"extrude" yaml:"extrude"`
}

// DefaultParameters returns the parameters a fresh session starts with.
func DefaultParameters() ShapeParameters {
	return ShapeParameters{
		Radius:        1,
		EllipseWidth:  1.0,
		EllipseHeight: 0.2,
		LeafCount:     4,
		Scaler:        30,
		Smoothing:     0.97,
		Background:    0xFFEEEE,
		Stroke:        0xFF0000,
		Mode:          Stroked,
		Extrude:       ExtrudeSettings{Steps: 2, Depth: 16},
	}
}

// Step returns the sampling step 1 - Smoothing.
func (p ShapeParameters) Step() float64 {
	return 1 - p.Smoothing
}

// MaxX returns the sampling domain bound sqrt(r²·a).
func (p ShapeParameters) MaxX() float64 {
	return math.Sqrt(p.Radius * p.Radius * p.EllipseWidth)
}

// Normalize returns a copy with wireframe cleared in Stroked mode.
func (p ShapeParameters) Normalize() ShapeParameters {
	if p.Mode == Stroked {
		p.Wireframe = false
	}
	return p
}

// Validate reports the first parameter outside its domain.
// A nil result guarantees that sampling terminates and yields no NaN.
func (p ShapeParameters) Validate() error {
	positive := []struct {
		field string
		v     float64
	}{
		{"radius", p.Radius},
		{"ellipse_width", p.EllipseWidth},
		{"ellipse_height", p.EllipseHeight},
		{"scaler", p.Scaler},
	}
	for _, f := range positive {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v <= 0 {
			return &ParameterDomainError{Field: f.field, Value: f.v, Reason: "must be a finite number > 0"}
		}
	}
	if p.LeafCount < 1 {
		return &ParameterDomainError{Field: "leaves", Value: p.LeafCount, Reason: "must be >= 1"}
	}
	if math.IsNaN(p.Smoothing) || p.Smoothing < 0 || p.Smoothing >= 1 {
		return &ParameterDomainError{Field: "smoothing", Value: p.Smoothing, Reason: "must be in [0, 1)"}
	}
	if p.Mode > Filled {
		return &ParameterDomainError{Field: "mode", Value: uint8(p.Mode), Reason: "unknown construction mode"}
	}
	if p.Extrude.Steps < 1 {
		return &ParameterDomainError{Field: "extrude.steps", Value: p.Extrude.Steps, Reason: "must be >= 1"}
	}
	if math.IsNaN(p.Extrude.Depth) || p.Extrude.Depth < 0 {
		return &ParameterDomainError{Field: "extrude.depth", Value: p.Extrude.Depth, Reason: "must be >= 0"}
	}
	return nil
}

// Patch is a partial parameter update. Nil fields are left unchanged.
type Patch struct {
	Radius        *float64
	EllipseWidth  *float64
	EllipseHeight *float64
	LeafCount     *int
	Scaler        *float64
	Smoothing     *float64
	Background    *Color
	Stroke        *Color
	Mode          *ConstructionMode
	Wireframe     *bool
	ExtrudeSteps  *int
	ExtrudeDepth  *float64
}

// IsEmpty reports whether the patch changes nothing.
func (pt Patch) IsEmpty() bool {
	return pt == Patch{}
}

// Apply returns p with every non-nil field of pt merged in.
// Switching to Stroked also turns wireframe off.
func (p ShapeParameters) Apply(pt Patch) ShapeParameters {
	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setF(&p.Radius, pt.Radius)
	setF(&p.EllipseWidth, pt.EllipseWidth)
	setF(&p.EllipseHeight, pt.EllipseHeight)
	setF(&p.Scaler, pt.Scaler)
	setF(&p.Smoothing, pt.Smoothing)
	setF(&p.Extrude.Depth, pt.ExtrudeDepth)
	if pt.LeafCount != nil {
		p.LeafCount = *pt.LeafCount
	}
	if pt.ExtrudeSteps != nil {
		p.Extrude.Steps = *pt.ExtrudeSteps
	}
	if pt.Background != nil {
		p.Background = *pt.Background
	}
	if pt.Stroke != nil {
		p.Stroke = *pt.Stroke
	}
	if pt.Wireframe != nil {
		p.Wireframe = *pt.Wireframe
	}
	if pt.Mode != nil {
		p.Mode = *pt.Mode
		if p.Mode == Stroked {
			p.Wireframe = false
		}
	}
	return p
}

// Ptr returns a pointer to v. It keeps Patch literals short.
func Ptr[T any](v T) *T { return &v }
