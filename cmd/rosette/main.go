// Command rosette renders a radial leaf pattern to a PNG file.
//
// Parameters come from the persisted state, an optional TOML or YAML file
// and per-parameter flags, in that order. With -watch the file is
// re-read and the image re-rendered on every change.
//
// Usage:
//
//	rosette -view 2d -leaves 6 -mode polygons -output leaf.png
//	rosette -config leaf.toml -view 3d -watch
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/rosette"
	"github.com/gogpu/rosette/render"
	"github.com/gogpu/rosette/session"
	"github.com/gogpu/rosette/store"
	"github.com/gogpu/rosette/studio"
)

type options struct {
	config  string
	view    string
	width   int
	height  int
	panel   int
	bar     int
	output  string
	watch   bool
	state   string
	scope   string
	format  string
	overlay bool
	verbose bool
}

func main() {
	var opts options
	flag.StringVar(&opts.config, "config", "", "parameter file (.toml, .yaml or .yml)")
	flag.StringVar(&opts.view, "view", "2d", "view mode: 2d or 3d")
	flag.IntVar(&opts.width, "width", 1100, "host width in pixels")
	flag.IntVar(&opts.height, "height", 760, "host height in pixels")
	flag.IntVar(&opts.panel, "panel", 300, "parameter panel width subtracted from the host width")
	flag.IntVar(&opts.bar, "bar", 64, "top bar height subtracted from the host height")
	flag.StringVar(&opts.output, "output", "rosette.png", "output PNG file")
	flag.BoolVar(&opts.watch, "watch", false, "re-render when the -config file changes")
	flag.StringVar(&opts.state, "state", "", "directory for persisted parameters (default: in memory)")
	flag.StringVar(&opts.scope, "scope", "cli", "state scope under -state")
	flag.StringVar(&opts.format, "format", "toml", "state file format: toml or yaml")
	flag.BoolVar(&opts.overlay, "overlay", false, "draw the stats onto the image")
	flag.BoolVar(&opts.verbose, "v", false, "debug logging")
	overrides := registerOverrides(flag.CommandLine)
	flag.Parse()

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	rosette.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	patch, err := overrides.patch(flag.CommandLine)
	if err != nil {
		log.Fatalf("rosette: %v", err)
	}
	if err := run(ctx, opts, patch); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("rosette: %v", err)
	}
}

func run(ctx context.Context, opts options, patch rosette.Patch) error {
	mode, err := studio.ParseViewMode(opts.view)
	if err != nil {
		return err
	}
	if mode == studio.ViewNone {
		return fmt.Errorf("-view must be 2d or 3d")
	}
	if opts.watch && opts.config == "" {
		return fmt.Errorf("-watch needs -config")
	}

	st, err := openStore(opts)
	if err != nil {
		return err
	}

	out := newPrinter(os.Stdout)
	host := render.NewHost(session.DisplayPortID)
	s, err := studio.New(host, studio.Config{
		Layout: studio.Layout{
			HostWidth:  opts.width,
			HostHeight: opts.height,
			PanelWidth: opts.panel,
			BarHeight:  opts.bar,
		},
		Store: st,
	})
	if err != nil {
		return err
	}
	defer s.Close()

	if opts.config != "" {
		p, err := store.ReadFile(opts.config)
		if err != nil {
			return err
		}
		if err := s.Replace(ctx, p); err != nil {
			return err
		}
	}
	if !patch.IsEmpty() {
		if err := s.Mutate(ctx, patch); err != nil {
			return err
		}
	}
	if err := s.Toggle(ctx, mode); err != nil {
		return err
	}
	if err := writeImage(s, opts); err != nil {
		return err
	}
	out.rendered(opts.output, s)

	if !opts.watch {
		return nil
	}
	return watch(ctx, s, opts, patch, out)
}

func openStore(opts options) (store.Store, error) {
	if opts.state == "" {
		return store.NewMemory(opts.scope), nil
	}
	var codec store.Codec
	switch opts.format {
	case "toml":
		codec = store.TOML
	case "yaml", "yml":
		codec = store.YAML
	default:
		return nil, fmt.Errorf("unknown -format %q", opts.format)
	}
	return store.NewFile(opts.state, opts.scope, codec)
}

// watch re-renders on every parameter file change until ctx is done.
// Flag overrides stay applied on top of the file.
func watch(ctx context.Context, s *studio.Studio, opts options, patch rosette.Patch, out *printer) error {
	changes, err := store.Watch(ctx, opts.config)
	if err != nil {
		return err
	}
	out.watching(opts.config)
	for c := range changes {
		if c.Err != nil {
			out.failed(c.Err)
			continue
		}
		if err := s.Replace(ctx, c.Params.Apply(patch)); err != nil {
			out.failed(err)
			continue
		}
		if err := writeImage(s, opts); err != nil {
			return err
		}
		out.rendered(opts.output, s)
	}
	return ctx.Err()
}

func writeImage(s *studio.Studio, opts options) error {
	sess := s.Session()
	if sess == nil {
		return studio.ErrNoView
	}
	target, ok := sess.Target().(*render.PixmapTarget)
	if !ok {
		return fmt.Errorf("unexpected render target %T", sess.Target())
	}
	if opts.overlay {
		if err := render.DrawOverlay(target, s.StatsLines(), s.Params().Stroke.ToRGBA()); err != nil {
			return err
		}
	}
	return target.SavePNG(opts.output)
}
