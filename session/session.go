// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package session owns the render lifecycle of one rosette view.
//
// A Session goes Uninitialized → Active → Destroyed. While active it
// rebuilds the leaf scene on Update, draws it on Draw and reports primitive
// counts after each draw through a Reporter.
package session

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/rosette"
	"github.com/gogpu/rosette/geom"
	"github.com/gogpu/rosette/render"
)

// DisplayPortID is the host slot a session attaches its target to.
const DisplayPortID = "displayPort"

// Variant selects the 2D or 3D flavor of a session.
type Variant uint8

const (
	// Flat draws stroked or filled leaves in the z = 0 plane.
	Flat Variant = iota

	// Solid extrudes filled leaves and accepts drag rotation.
	Solid
)

// String returns "2d" or "3d".
func (v Variant) String() string {
	switch v {
	case Flat:
		return "2d"
	case Solid:
		return "3d"
	default:
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
}

// State is the lifecycle state of a session.
type State uint8

// Lifecycle states.
const (
	StateUninitialized State = iota
	StateActive
	StateDestroyed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Host is where a session attaches its render target.
// *render.Host implements it.
type Host interface {
	Attach(id string, t render.RenderTarget) error
	Detach(id string, t render.RenderTarget) error
}

// PointerMove is one pointer motion event.
type PointerMove struct {
	DX, DY  float64
	Buttons int // bitmask, 1 = primary button
}

// Config configures a session.
type Config struct {
	Variant Variant

	// StatsDelay defers stats delivery after each draw. Zero delivers
	// synchronously from Draw.
	StatsDelay time.Duration

	// OnStats receives the stats of the most recent draw.
	OnStats func(Stats)

	// Scheduler runs deferred deliveries. Nil means TimeScheduler.
	Scheduler Scheduler

	// Initial, when set, runs one Update right after creation.
	Initial *rosette.ShapeParameters
}

// DefaultConfig returns a config with the default stats delay.
func DefaultConfig(v Variant) Config {
	return Config{Variant: v, StatsDelay: DefaultStatsDelay}
}

// Option customizes a session.
type Option func(*Session)

// WithTarget draws into t instead of an owned offscreen target.
// Destroy still detaches and closes it if it implements io.Closer.
func WithTarget(t render.RenderTarget) Option {
	return func(s *Session) {
		s.target = t
	}
}

// WithRenderer replaces the default SoftwareRenderer.
func WithRenderer(r render.Renderer) Option {
	return func(s *Session) {
		s.renderer = r
	}
}

// Session renders radial leaf patterns into a host slot.
//
// Session is safe for concurrent use. Stats callbacks run without any
// session lock held, possibly on a timer goroutine.
type Session struct {
	mu       sync.Mutex
	updateMu sync.Mutex

	state    State
	variant  Variant
	host     Host
	target   render.RenderTarget
	scene    *render.Scene
	camera   *render.Camera
	renderer render.Renderer
	builder  *Builder
	reporter *Reporter

	params    rosette.ShapeParameters
	hasParams bool
	points    []geom.Point
	updating  bool

	// buildHook, when set, runs on the Update goroutine right before the
	// geometry is built.
	buildHook func()
}

// New creates an active session: scene, camera, target sized to surface,
// and the target attached to the host's DisplayPortID slot.
func New(host Host, surface render.Size, cfg Config, opts ...Option) (*Session, error) {
	surface = surface.Clamp()
	s := &Session{
		variant: cfg.Variant,
		host:    host,
		scene:   render.NewScene(),
		camera:  render.NewCamera(surface),
		builder: NewBuilder(cfg.Variant),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.target == nil {
		s.target = render.NewPixmapTarget(surface.Width, surface.Height)
	}
	if s.renderer == nil {
		s.renderer = render.NewSoftwareRenderer()
	}
	s.reporter = NewReporter(cfg.StatsDelay, cfg.Scheduler, cfg.OnStats)

	if host != nil {
		if err := host.Attach(DisplayPortID, s.target); err != nil {
			closeTarget(s.target)
			return nil, fmt.Errorf("session: attach target: %w", err)
		}
	}
	s.state = StateActive
	rosette.Logger().Info("session: created",
		"variant", cfg.Variant, "width", surface.Width, "height", surface.Height)

	if cfg.Initial != nil {
		if err := s.Update(*cfg.Initial); err != nil {
			_ = s.Destroy()
			return nil, err
		}
	}
	return s, nil
}

func (s *Session) checkActive(op string) error {
	switch s.state {
	case StateActive:
		return nil
	case StateDestroyed:
		return &rosette.SessionStateError{Op: op, State: s.state.String(), Err: rosette.ErrSessionDestroyed}
	default:
		return &rosette.SessionStateError{Op: op, State: s.state.String(), Err: rosette.ErrSessionInactive}
	}
}

// Update replaces the scene content with leaves built from p. The previous
// leaves and point buffer are removed first, so repeated updates never
// accumulate. Invalid parameters leave the scene untouched.
func (s *Session) Update(p rosette.ShapeParameters) error {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	s.mu.Lock()
	if err := s.checkActive("update"); err != nil {
		s.mu.Unlock()
		return err
	}
	s.updating = true
	s.mu.Unlock()

	if s.buildHook != nil {
		s.buildHook()
	}
	b, err := s.builder.Build(p)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.updating = false
	if err != nil {
		return err
	}
	if err := s.checkActive("update"); err != nil {
		return err
	}

	s.clearLocked()
	s.scene.Root.Add(b.Nodes...)
	s.scene.Background = b.Params.Background.ToRGBA()
	s.points = b.Outline.Points()
	s.params = b.Params
	s.hasParams = true
	return nil
}

// Clear removes all leaves and the point buffer.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkActive("clear"); err != nil {
		return err
	}
	s.clearLocked()
	return nil
}

func (s *Session) clearLocked() {
	if n := s.scene.Root.Clear(); n > 0 {
		rosette.Logger().Debug("session: cleared leaves", "count", n)
	}
	s.points = nil
}

// Draw renders the scene into the target and reports the stats.
func (s *Session) Draw(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	if err := s.checkActive("draw"); err != nil {
		s.mu.Unlock()
		return err
	}
	st, err := s.drawLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.reporter.Report(st)
	return nil
}

func (s *Session) drawLocked() (Stats, error) {
	if err := s.renderer.Render(s.target, s.scene, s.camera); err != nil {
		return Stats{}, fmt.Errorf("session: draw: %w", err)
	}
	var st Stats
	if src, ok := s.renderer.(render.StatsSource); ok {
		ds := src.DrawStats()
		st.Triangles, st.Lines = ds.Triangles, ds.Lines
	}
	if len(s.points) > 0 {
		st.Points = len(s.points) * s.params.LeafCount
	}
	return st, nil
}

// Drag rotates the 3D group for a primary-button move and redraws. It is
// ignored for Flat sessions, other buttons, and while an Update is in
// flight.
func (s *Session) Drag(m PointerMove) error {
	s.mu.Lock()
	if err := s.checkActive("drag"); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.variant != Solid || s.updating || m.Buttons != 1 {
		s.mu.Unlock()
		return nil
	}
	s.scene.Root.RotateLocalZ(m.DY)
	s.scene.Root.RotateLocalX(m.DX)
	st, err := s.drawLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.reporter.Report(st)
	return nil
}

// Resize changes the surface size. An owned target is reallocated.
func (s *Session) Resize(surface render.Size) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkActive("resize"); err != nil {
		return err
	}
	surface = surface.Clamp()
	s.camera.SetSize(surface)
	if pt, ok := s.target.(*render.PixmapTarget); ok {
		return pt.Resize(surface.Width, surface.Height)
	}
	return nil
}

// Destroy cancels pending stats, detaches the target from the host and
// releases it. The session cannot be used afterwards.
func (s *Session) Destroy() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkActive("destroy"); err != nil {
		return err
	}

	s.reporter.Close()
	if s.host != nil {
		if err := s.host.Detach(DisplayPortID, s.target); err != nil {
			rosette.Logger().Warn("session: detach target", "err", err)
		}
	}
	closeTarget(s.target)
	s.clearLocked()
	s.state = StateDestroyed
	rosette.Logger().Info("session: destroyed", "variant", s.variant)
	return nil
}

func closeTarget(t render.RenderTarget) {
	if c, ok := t.(io.Closer); ok {
		if err := c.Close(); err != nil {
			rosette.Logger().Warn("session: release target", "err", err)
		}
	}
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Variant returns the session variant.
func (s *Session) Variant() Variant {
	return s.variant
}

// Params returns the parameters of the last successful Update.
func (s *Session) Params() (rosette.ShapeParameters, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params, s.hasParams
}

// Points returns a copy of the current point buffer.
func (s *Session) Points() []geom.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]geom.Point(nil), s.points...)
}

// LeafCount returns the number of leaf nodes in the scene.
func (s *Session) LeafCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scene == nil {
		return 0
	}
	return s.scene.Root.Len()
}

// Leaves returns the placement of every leaf node.
func (s *Session) Leaves() []LeafPlacement {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scene == nil {
		return nil
	}
	out := make([]LeafPlacement, 0, s.scene.Root.Len())
	for _, n := range s.scene.Root.Children() {
		out = append(out, LeafPlacement{
			Name:      n.Name,
			AngleDeg:  n.RotationZ * 180 / math.Pi,
			X:         n.Position[0],
			Y:         n.Position[1],
			Filled:    n.Mesh != nil,
			Wireframe: n.Material.Wireframe,
		})
	}
	return out
}

// Orientation returns the accumulated drag rotation of the leaf group.
func (s *Session) Orientation() mgl64.Mat4 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scene == nil {
		return mgl64.Ident4()
	}
	return s.scene.Root.Orientation
}

// LeafPlacement summarizes one leaf node.
type LeafPlacement struct {
	Name      string
	AngleDeg  float64
	X, Y      float64
	Filled    bool
	Wireframe bool
}

// Target returns the render target. Its pixels are only valid while the
// session is active.
func (s *Session) Target() render.RenderTarget {
	return s.target
}

// Reporter returns the stats reporter.
func (s *Session) Reporter() *Reporter {
	return s.reporter
}
