// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package studio is the view controller around a rosette session.
//
// A Studio holds the current parameters, persists them on every change,
// and owns at most one session at a time. Toggling a view mode creates,
// switches or closes that session; each parameter change rebuilds and
// redraws it in full.
//
// Example:
//
//	host := render.NewHost(session.DisplayPortID)
//	st, _ := studio.New(host, studio.Config{
//	    Layout: studio.Layout{HostWidth: 1280, HostHeight: 800, PanelWidth: 300, BarHeight: 64},
//	    Store:  store.NewMemory("tab"),
//	})
//	defer st.Close()
//	st.Toggle(ctx, studio.View2D)
//	st.Mutate(ctx, rosette.Patch{LeafCount: rosette.Ptr(6)})
package studio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/rosette"
	"github.com/gogpu/rosette/render"
	"github.com/gogpu/rosette/session"
	"github.com/gogpu/rosette/store"
)

// ErrNoView is returned by operations that need an open view.
var ErrNoView = errors.New("studio: no view open")

// Config configures a Studio.
type Config struct {
	Layout Layout

	// Store persists parameters under store.ParamsKey. Nil means an
	// in-memory store scoped "default".
	Store store.Store

	// StatsDelay and Scheduler are handed to each session.
	StatsDelay time.Duration
	Scheduler  session.Scheduler

	// OnStats receives the merged stats after every delivery.
	OnStats func(StatsPatch)

	// Target, when set, supplies the render target of each new session.
	Target func(render.Size) render.RenderTarget
}

// Studio owns the current parameters and the active view.
//
// Studio is safe for concurrent use. OnStats runs without any studio
// lock held.
type Studio struct {
	mu     sync.Mutex
	cfg    Config
	host   session.Host
	store  store.Store
	layout Layout
	mode   ViewMode
	sess   *session.Session
	params rosette.ShapeParameters

	statsMu sync.Mutex
	stats   StatsPatch
	viewGen uint64 // bumped whenever a view opens or closes
	held    bool   // mu is held by a mutating call
	notify  bool   // stats arrived while held
}

// New returns a studio with no view open. Parameters are loaded from the
// store, falling back to the defaults.
func New(host session.Host, cfg Config) (*Studio, error) {
	st := cfg.Store
	if st == nil {
		st = store.NewMemory("default")
	}
	p, err := store.LoadOrDefault(st, store.ParamsKey)
	if err != nil {
		return nil, fmt.Errorf("studio: load parameters: %w", err)
	}
	return &Studio{
		cfg:    cfg,
		host:   host,
		store:  st,
		layout: cfg.Layout,
		params: p,
	}, nil
}

// Toggle selects mode. Selecting the open mode closes the view; selecting
// another mode replaces the open session with a new one.
func (s *Studio) Toggle(ctx context.Context, mode ViewMode) error {
	s.lock()
	defer s.unlock()

	if mode == ViewNone || mode == s.mode {
		return s.closeLocked()
	}
	variant, ok := mode.Variant()
	if !ok {
		return fmt.Errorf("studio: unknown view mode %q", mode)
	}
	if err := s.closeLocked(); err != nil {
		return err
	}

	s.statsMu.Lock()
	s.viewGen++
	gen := s.viewGen
	s.statsMu.Unlock()

	cfg := session.Config{
		Variant:    variant,
		StatsDelay: s.cfg.StatsDelay,
		Scheduler:  s.cfg.Scheduler,
		OnStats:    func(st session.Stats) { s.receiveStats(gen, st) },
	}
	surface := s.layout.Surface()
	var opts []session.Option
	if s.cfg.Target != nil {
		opts = append(opts, session.WithTarget(s.cfg.Target(surface)))
	}
	sess, err := session.New(s.host, surface, cfg, opts...)
	if err != nil {
		return err
	}
	s.sess = sess
	s.mode = mode
	rosette.Logger().Info("studio: view opened", "mode", string(mode))
	return s.renderLocked(ctx)
}

// Mutate merges pt into the current parameters, persists them and
// re-renders the open view. A result that is invalid or cannot be built in
// either view is rejected and nothing changes.
func (s *Studio) Mutate(ctx context.Context, pt rosette.Patch) error {
	s.lock()
	defer s.unlock()
	return s.commitLocked(ctx, s.params.Apply(pt))
}

// Replace sets all parameters at once, as when a parameter file changes.
func (s *Studio) Replace(ctx context.Context, p rosette.ShapeParameters) error {
	s.lock()
	defer s.unlock()
	return s.commitLocked(ctx, p)
}

func (s *Studio) commitLocked(ctx context.Context, p rosette.ShapeParameters) error {
	p = p.Normalize()
	for _, v := range []session.Variant{session.Flat, session.Solid} {
		if _, err := session.NewBuilder(v).Build(p); err != nil {
			return err
		}
	}
	if err := s.store.Save(store.ParamsKey, p); err != nil {
		return err
	}
	s.params = p
	if s.sess == nil {
		return nil
	}
	return s.renderLocked(ctx)
}

// renderLocked rebuilds the open view from s.params. Update replaces the
// previous leaves only once the new ones are built.
func (s *Studio) renderLocked(ctx context.Context) error {
	if err := s.sess.Update(s.params); err != nil {
		return err
	}
	return s.sess.Draw(ctx)
}

// Redraw draws the open view again without rebuilding it.
func (s *Studio) Redraw(ctx context.Context) error {
	s.lock()
	defer s.unlock()
	if s.sess == nil {
		return ErrNoView
	}
	return s.sess.Draw(ctx)
}

// Drag forwards a pointer move to the open view.
func (s *Studio) Drag(m session.PointerMove) error {
	s.lock()
	defer s.unlock()
	if s.sess == nil {
		return ErrNoView
	}
	return s.sess.Drag(m)
}

// Resize applies a new host layout and redraws the open view.
func (s *Studio) Resize(ctx context.Context, l Layout) error {
	s.lock()
	defer s.unlock()
	s.layout = l
	if s.sess == nil {
		return nil
	}
	if err := s.sess.Resize(l.Surface()); err != nil {
		return err
	}
	return s.sess.Draw(ctx)
}

func (s *Studio) closeLocked() error {
	if s.sess == nil {
		return nil
	}
	err := s.sess.Destroy()
	rosette.Logger().Info("studio: view closed", "mode", string(s.mode))
	s.sess = nil
	s.mode = ViewNone

	s.statsMu.Lock()
	s.viewGen++
	s.stats = StatsPatch{}
	s.notify = false
	s.statsMu.Unlock()
	return err
}

// Close closes the open view, if any.
func (s *Studio) Close() error {
	s.lock()
	defer s.unlock()
	return s.closeLocked()
}

// lock takes mu for a call that may draw. Stats delivered synchronously
// while it is held are passed to OnStats by unlock.
func (s *Studio) lock() {
	s.mu.Lock()
	s.statsMu.Lock()
	s.held = true
	s.statsMu.Unlock()
}

func (s *Studio) unlock() {
	s.statsMu.Lock()
	s.held = false
	notify, merged := s.notify, s.stats
	s.notify = false
	s.statsMu.Unlock()
	s.mu.Unlock()

	if notify && s.cfg.OnStats != nil {
		s.cfg.OnStats(merged)
	}
}

// receiveStats merges stats from the session opened as view gen. Stats of
// an earlier view are dropped.
func (s *Studio) receiveStats(gen uint64, st session.Stats) {
	s.statsMu.Lock()
	if gen != s.viewGen {
		s.statsMu.Unlock()
		rosette.Logger().Debug("studio: stats of a closed view dropped", "gen", gen)
		return
	}
	s.stats = s.stats.Merge(PatchFromStats(st))
	merged := s.stats
	if s.held {
		s.notify = true
		s.statsMu.Unlock()
		return
	}
	s.statsMu.Unlock()

	if s.cfg.OnStats != nil {
		s.cfg.OnStats(merged)
	}
}

// Mode returns the open view mode.
func (s *Studio) Mode() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Params returns the current parameters.
func (s *Studio) Params() rosette.ShapeParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Layout returns the current host layout.
func (s *Studio) Layout() Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout
}

// Session returns the open session, or nil.
func (s *Studio) Session() *session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess
}

// Stats returns the merged stats of the open view.
func (s *Studio) Stats() StatsPatch {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.stats
}

// StatsLines returns the stats as display lines, e.g. "Total Lines: 404".
func (s *Studio) StatsLines() []string {
	return s.Stats().Format()
}
