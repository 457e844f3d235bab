// Command rosette-view shows a radial leaf pattern in a window.
//
// Architecture:
//
//	studio.Studio → session.Session → render.ContextTarget → ggcanvas.Canvas → gogpu window
//
// Space switches between the 2D and 3D views. Dragging with the primary
// mouse button rotates the 3D view; -spin turns it on its own. With -config
// the parameter file is watched and every save re-renders the pattern.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gg"
	_ "github.com/gogpu/gg/gpu" // Register GPU accelerator
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/rosette"
	"github.com/gogpu/rosette/render"
	"github.com/gogpu/rosette/session"
	"github.com/gogpu/rosette/store"
	"github.com/gogpu/rosette/studio"
)

// spinStep is the per-frame rotation of the 3D view with -spin, in degrees.
var spinStep = session.PointerMove{DX: 0.6, DY: 0.4, Buttons: 1}

func main() {
	var (
		width   = flag.Int("width", 1100, "window width")
		height  = flag.Int("height", 760, "window height")
		view    = flag.String("view", "2d", "initial view: 2d or 3d")
		config  = flag.String("config", "", "parameter file to load and watch (.toml, .yaml)")
		state   = flag.String("state", "", "directory for persisted parameters (default: in memory)")
		spin    = flag.Bool("spin", false, "rotate the 3D view continuously")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	rosette.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	mode, err := studio.ParseViewMode(*view)
	if err != nil || mode == studio.ViewNone {
		log.Fatalf("rosette-view: -view must be 2d or 3d")
	}

	var st store.Store = store.NewMemory("view")
	if *state != "" {
		if st, err = store.NewFile(*state, "view", store.TOML); err != nil {
			log.Fatalf("rosette-view: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle("rosette").
		WithSize(*width, *height).
		WithContinuousRender(false))

	v := &viewer{app: app, mode: mode, spin: *spin}
	if *config != "" {
		changes, err := store.Watch(ctx, *config)
		if err != nil {
			log.Fatalf("rosette-view: %v", err)
		}
		v.changes = forwardChanges(changes, app.RequestRedraw)
	}
	v.studio, err = studio.New(render.NewHost(session.DisplayPortID), studio.Config{
		Layout: studio.Layout{HostWidth: *width, HostHeight: *height},
		Store:  st,
		Target: func(render.Size) render.RenderTarget {
			return render.NewContextTarget(v.canvas.Context())
		},
	})
	if err != nil {
		log.Fatalf("rosette-view: %v", err)
	}
	if *config != "" {
		p, err := store.ReadFile(*config)
		if err != nil {
			log.Fatalf("rosette-view: %v", err)
		}
		if err := v.studio.Replace(ctx, p); err != nil {
			log.Fatalf("rosette-view: %v", err)
		}
	}

	app.OnDraw(func(dc *gogpu.Context) {
		v.frame(ctx, dc)
	})

	events := app.EventSource()
	events.OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if key != gpucontext.KeySpace {
			return
		}
		v.switchView(ctx)
	})
	events.OnMousePress(v.drag.press)
	events.OnMouseRelease(v.drag.release)
	events.OnMouseMove(func(x, y float64) {
		m, ok := v.drag.move(x, y)
		if !ok || v.canvas == nil {
			return
		}
		if err := v.studio.Drag(m); err != nil {
			log.Printf("rotate: %v", err)
			return
		}
		app.RequestRedraw()
	})

	app.OnClose(func() {
		v.stopSpin()
		if err := v.studio.Close(); err != nil {
			log.Printf("close: %v", err)
		}
		gg.CloseAccelerator()
	})

	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}

// viewer ties the studio to the window. All methods run on the gogpu
// callback goroutine.
type viewer struct {
	app     *gogpu.App
	studio  *studio.Studio
	canvas  *ggcanvas.Canvas
	mode    studio.ViewMode
	changes <-chan store.Change
	anim    *gogpu.AnimationToken
	drag    dragTracker
	spin    bool
}

// forwardChanges relays reloads from the watcher goroutine and wakes the
// window so the draw callback picks them up.
func forwardChanges(in <-chan store.Change, wake func()) <-chan store.Change {
	out := make(chan store.Change, 4)
	go func() {
		defer close(out)
		for c := range in {
			out <- c
			wake()
		}
	}()
	return out
}

func (v *viewer) frame(ctx context.Context, dc *gogpu.Context) {
	w, h := dc.Width(), dc.Height()
	if w <= 0 || h <= 0 {
		return
	}

	if v.canvas == nil {
		provider := v.app.GPUContextProvider()
		if provider == nil {
			return
		}
		var err error
		v.canvas, err = ggcanvas.New(provider, w, h)
		if err != nil {
			log.Fatalf("rosette-view: create canvas: %v", err)
		}
		if err := v.studio.Resize(ctx, studio.Layout{HostWidth: w, HostHeight: h}); err != nil {
			log.Printf("resize: %v", err)
		}
		v.open(ctx, v.mode)
	}

	if cw, ch := v.canvas.Size(); cw != w || ch != h {
		if err := v.canvas.Resize(w, h); err != nil {
			log.Printf("canvas resize: %v", err)
		}
		if err := v.studio.Resize(ctx, studio.Layout{HostWidth: w, HostHeight: h}); err != nil {
			log.Printf("resize: %v", err)
		}
	}

	v.applyChanges(ctx)

	if v.spin && v.studio.Mode() == studio.View3D {
		if err := v.studio.Drag(spinStep); err != nil {
			log.Printf("rotate: %v", err)
		}
	} else if err := v.studio.Redraw(ctx); err != nil {
		log.Printf("draw: %v", err)
	}
	v.drawStats()

	v.canvas.MarkDirty()
	if err := v.canvas.RenderTo(dc.AsTextureDrawer()); err != nil {
		log.Printf("render: %v", err)
	}

	if !v.spin || v.studio.Mode() != studio.View3D {
		v.stopSpin()
	}
}

// applyChanges takes pending parameter file reloads without blocking.
func (v *viewer) applyChanges(ctx context.Context) {
	for {
		select {
		case c, ok := <-v.changes:
			if !ok {
				v.changes = nil
				return
			}
			if c.Err != nil {
				log.Printf("reload: %v", c.Err)
				continue
			}
			if err := v.studio.Replace(ctx, c.Params); err != nil {
				log.Printf("reload: %v", err)
			}
		default:
			return
		}
	}
}

func (v *viewer) drawStats() {
	sess := v.studio.Session()
	if sess == nil {
		return
	}
	lines := append([]string{"[Space] " + string(v.studio.Mode())}, v.studio.StatsLines()...)
	if err := render.DrawOverlay(sess.Target(), lines, gg.Black); err != nil {
		log.Printf("overlay: %v", err)
	}
}

func (v *viewer) open(ctx context.Context, mode studio.ViewMode) {
	if err := v.studio.Toggle(ctx, mode); err != nil {
		log.Printf("open %s: %v", mode, err)
		return
	}
	v.mode = mode
	if v.spin && mode == studio.View3D && v.anim == nil {
		v.anim = v.app.StartAnimation()
	}
	v.app.RequestRedraw()
}

func (v *viewer) switchView(ctx context.Context) {
	if v.canvas == nil {
		return
	}
	next := studio.View3D
	if v.mode == studio.View3D {
		next = studio.View2D
	}
	v.open(ctx, next)
}

func (v *viewer) stopSpin() {
	if v.anim != nil {
		v.anim.Stop()
		v.anim = nil
	}
}
