// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package studio

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/rosette"
	"github.com/gogpu/rosette/render"
	"github.com/gogpu/rosette/session"
	"github.com/gogpu/rosette/store"
)

var testLayout = Layout{HostWidth: 340, HostHeight: 260, PanelWidth: 100, BarHeight: 60}

func newStudio(t *testing.T, cfg Config) (*Studio, *render.Host) {
	t.Helper()
	host := render.NewHost(session.DisplayPortID)
	if cfg.Layout == (Layout{}) {
		cfg.Layout = testLayout
	}
	st, err := New(host, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st, host
}

func TestLayoutSurface(t *testing.T) {
	tests := []struct {
		name string
		l    Layout
		want render.Size
	}{
		{"normal", testLayout, render.Size{Width: 240, Height: 200}},
		{"no chrome", Layout{HostWidth: 64, HostHeight: 48}, render.Size{Width: 64, Height: 48}},
		{"panel wider than host", Layout{HostWidth: 100, HostHeight: 100, PanelWidth: 300, BarHeight: 10}, render.Size{Width: 1, Height: 90}},
		{"empty", Layout{}, render.Size{Width: 1, Height: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.l.Surface())
		})
	}
}

func TestParseViewMode(t *testing.T) {
	tests := []struct {
		in   string
		want ViewMode
	}{
		{"2d", View2D},
		{"2DView", View2D},
		{"3D", View3D},
		{"3dview", View3D},
		{"", ViewNone},
		{"none", ViewNone},
	}
	for _, tt := range tests {
		got, err := ParseViewMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	_, err := ParseViewMode("4d")
	assert.Error(t, err)
}

func TestStatsPatchMergeAndFormat(t *testing.T) {
	var sp StatsPatch
	assert.Empty(t, sp.Format())

	sp = sp.Merge(StatsPatch{Lines: rosette.Ptr(404)})
	sp = sp.Merge(StatsPatch{Points: rosette.Ptr(408)})
	assert.Equal(t, []string{"Total Lines: 404", "Total Points: 408"}, sp.Format())

	// Zero counters are hidden, absent fields keep their value.
	sp = sp.Merge(StatsPatch{Triangles: rosette.Ptr(0), Lines: rosette.Ptr(10)})
	assert.Equal(t, []string{"Total Lines: 10", "Total Points: 408"}, sp.Format())

	sp = sp.Merge(StatsPatch{Triangles: rosette.Ptr(96)})
	assert.Equal(t, []string{"Total Triangles: 96", "Total Lines: 10", "Total Points: 408"}, sp.Format())
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	st, host := newStudio(t, Config{})
	assert.Equal(t, ViewNone, st.Mode())
	assert.Nil(t, st.Session())

	// Activate.
	require.NoError(t, st.Toggle(ctx, View2D))
	assert.Equal(t, View2D, st.Mode())
	first := st.Session()
	require.NotNil(t, first)
	assert.Equal(t, session.Flat, first.Variant())
	assert.Equal(t, 4, first.LeafCount())
	target, ok := host.Lookup(session.DisplayPortID)
	require.True(t, ok)
	assert.Equal(t, 240, target.Width())
	assert.Equal(t, 200, target.Height())

	// Switch destroys the old session.
	require.NoError(t, st.Toggle(ctx, View3D))
	assert.Equal(t, View3D, st.Mode())
	assert.Equal(t, session.StateDestroyed, first.State())
	second := st.Session()
	require.NotNil(t, second)
	assert.Equal(t, session.Solid, second.Variant())

	// Selecting the open mode deselects.
	require.NoError(t, st.Toggle(ctx, View3D))
	assert.Equal(t, ViewNone, st.Mode())
	assert.Nil(t, st.Session())
	assert.Equal(t, session.StateDestroyed, second.State())
	_, ok = host.Lookup(session.DisplayPortID)
	assert.False(t, ok, "display port released")
	assert.Empty(t, st.StatsLines())
}

func TestToggleUnknownMode(t *testing.T) {
	st, _ := newStudio(t, Config{})
	assert.Error(t, st.Toggle(context.Background(), ViewMode("4DView")))
	assert.Equal(t, ViewNone, st.Mode())
}

func TestStatsFlowToStudio(t *testing.T) {
	var got []StatsPatch
	st, _ := newStudio(t, Config{OnStats: func(sp StatsPatch) { got = append(got, sp) }})

	require.NoError(t, st.Toggle(context.Background(), View2D))
	require.NotEmpty(t, got)

	pts := len(st.Session().Points())
	lines := st.StatsLines()
	assert.Equal(t, []string{
		"Total Lines: " + strconv.Itoa((pts-1)*4),
		"Total Points: " + strconv.Itoa(pts*4),
	}, lines)
}

func TestOnStatsMayCallBack(t *testing.T) {
	var (
		st    *Studio
		modes []ViewMode
	)
	st, _ = newStudio(t, Config{OnStats: func(StatsPatch) { modes = append(modes, st.Mode()) }})

	done := make(chan error, 1)
	go func() { done <- st.Toggle(context.Background(), View2D) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Toggle blocked on an OnStats callback reading the studio")
	}
	require.NotEmpty(t, modes)
	assert.Equal(t, View2D, modes[len(modes)-1])
}

func TestStatsOfClosedViewDropped(t *testing.T) {
	var calls int
	st, _ := newStudio(t, Config{OnStats: func(StatsPatch) { calls++ }})
	require.NoError(t, st.Toggle(context.Background(), View2D))

	st.statsMu.Lock()
	stale := st.viewGen
	st.statsMu.Unlock()
	require.NoError(t, st.Close())
	calls = 0

	st.receiveStats(stale, session.Stats{Lines: 12, Points: 40})
	assert.Equal(t, StatsPatch{}, st.Stats())
	assert.Empty(t, st.StatsLines())
	assert.Zero(t, calls)
}

func TestMutatePersistsAndRerenders(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory("tab")
	st, _ := newStudio(t, Config{Store: mem})
	require.NoError(t, st.Toggle(ctx, View2D))

	require.NoError(t, st.Mutate(ctx, rosette.Patch{
		LeafCount: rosette.Ptr(6),
		Mode:      rosette.Ptr(rosette.Filled),
	}))
	assert.Equal(t, 6, st.Session().LeafCount())
	for _, leaf := range st.Session().Leaves() {
		assert.True(t, leaf.Filled, leaf.Name)
	}

	saved, err := mem.Load(store.ParamsKey)
	require.NoError(t, err)
	assert.Equal(t, 6, saved.LeafCount)
	assert.Equal(t, rosette.Filled, saved.Mode)
	assert.Equal(t, st.Params(), saved)

	stats := st.Stats()
	require.NotNil(t, stats.Triangles)
	assert.Positive(t, *stats.Triangles)
}

func TestMutateStrokedClearsWireframe(t *testing.T) {
	ctx := context.Background()
	st, _ := newStudio(t, Config{})
	require.NoError(t, st.Mutate(ctx, rosette.Patch{Mode: rosette.Ptr(rosette.Filled), Wireframe: rosette.Ptr(true)}))
	assert.True(t, st.Params().Wireframe)

	require.NoError(t, st.Mutate(ctx, rosette.Patch{Mode: rosette.Ptr(rosette.Stroked)}))
	assert.False(t, st.Params().Wireframe)
}

func TestMutateRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory("tab")
	st, _ := newStudio(t, Config{Store: mem})
	require.NoError(t, st.Toggle(ctx, View2D))
	before := st.Params()

	var pde *rosette.ParameterDomainError
	require.ErrorAs(t, st.Mutate(ctx, rosette.Patch{LeafCount: rosette.Ptr(0)}), &pde)
	assert.Equal(t, "leaves", pde.Field)
	assert.Equal(t, before, st.Params())
	assert.Equal(t, 4, st.Session().LeafCount())

	_, err := mem.Load(store.ParamsKey)
	assert.ErrorIs(t, err, store.ErrNotFound, "nothing persisted")
}

func TestMutateRejectsUnbuildable(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory("tab")
	st, host := newStudio(t, Config{Store: mem})
	require.NoError(t, st.Toggle(ctx, View2D))
	before := st.Params()

	var ge *rosette.GeometryError
	err := st.Mutate(ctx, rosette.Patch{
		Radius:    rosette.Ptr(0.1),
		Smoothing: rosette.Ptr(0.0),
		Mode:      rosette.Ptr(rosette.Filled),
	})
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, before, st.Params())
	assert.Equal(t, 4, st.Session().LeafCount(), "previous leaves kept")

	_, err = mem.Load(store.ParamsKey)
	assert.ErrorIs(t, err, store.ErrNotFound, "nothing persisted")

	fresh, err := New(host, Config{Layout: testLayout, Store: mem})
	require.NoError(t, err)
	require.NoError(t, st.Close())
	require.NoError(t, fresh.Toggle(ctx, View2D))
	assert.Equal(t, 4, fresh.Session().LeafCount())
	require.NoError(t, fresh.Close())
}

func TestMutateWithoutView(t *testing.T) {
	st, _ := newStudio(t, Config{})
	require.NoError(t, st.Mutate(context.Background(), rosette.Patch{Scaler: rosette.Ptr(12.0)}))
	assert.Equal(t, 12.0, st.Params().Scaler)
}

func TestNewLoadsStoredParameters(t *testing.T) {
	mem := store.NewMemory("tab")
	p := rosette.DefaultParameters()
	p.LeafCount = 9
	require.NoError(t, mem.Save(store.ParamsKey, p))

	st, _ := newStudio(t, Config{Store: mem})
	assert.Equal(t, 9, st.Params().LeafCount)

	require.NoError(t, st.Toggle(context.Background(), View3D))
	assert.Equal(t, 9, st.Session().LeafCount())
}

func TestReplace(t *testing.T) {
	ctx := context.Background()
	st, _ := newStudio(t, Config{})
	require.NoError(t, st.Toggle(ctx, View2D))

	p := rosette.DefaultParameters()
	p.LeafCount = 3
	require.NoError(t, st.Replace(ctx, p))
	assert.Equal(t, 3, st.Session().LeafCount())

	p.Smoothing = 1
	assert.Error(t, st.Replace(ctx, p))
	assert.Equal(t, 0.97, st.Params().Smoothing)
}

func TestDragAndResize(t *testing.T) {
	ctx := context.Background()
	st, host := newStudio(t, Config{})
	assert.ErrorIs(t, st.Drag(session.PointerMove{DX: 1, Buttons: 1}), ErrNoView)
	assert.ErrorIs(t, st.Redraw(ctx), ErrNoView)

	require.NoError(t, st.Toggle(ctx, View3D))
	require.NoError(t, st.Drag(session.PointerMove{DX: 30, Buttons: 1}))
	assert.False(t, st.Session().Orientation().ApproxEqual(mgl64.Ident4()))

	l := Layout{HostWidth: 500, HostHeight: 400, PanelWidth: 200, BarHeight: 100}
	require.NoError(t, st.Resize(ctx, l))
	assert.Equal(t, l, st.Layout())
	target, ok := host.Lookup(session.DisplayPortID)
	require.True(t, ok)
	assert.Equal(t, 300, target.Width())
	assert.Equal(t, 300, target.Height())
	require.NoError(t, st.Redraw(ctx))
}

func TestCustomTarget(t *testing.T) {
	var made []render.Size
	st, host := newStudio(t, Config{Target: func(sz render.Size) render.RenderTarget {
		made = append(made, sz)
		return render.NewPixmapTarget(sz.Width, sz.Height)
	}})
	require.NoError(t, st.Toggle(context.Background(), View2D))
	assert.Equal(t, []render.Size{{Width: 240, Height: 200}}, made)

	target, ok := host.Lookup(session.DisplayPortID)
	require.True(t, ok)
	assert.Same(t, st.Session().Target(), target)
}
