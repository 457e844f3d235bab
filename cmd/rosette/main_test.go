package main

import (
	"context"
	"flag"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/rosette"
	"github.com/gogpu/rosette/store"
)

func TestOverridesOnlySetFlags(t *testing.T) {
	fs := flag.NewFlagSet("rosette", flag.ContinueOnError)
	o := registerOverrides(fs)
	require.NoError(t, fs.Parse([]string{"-leaves", "6", "-mode", "filled", "-stroke", "#00ff00"}))

	pt, err := o.patch(fs)
	require.NoError(t, err)
	assert.Equal(t, rosette.Patch{
		LeafCount: rosette.Ptr(6),
		Mode:      rosette.Ptr(rosette.Filled),
		Stroke:    rosette.Ptr(rosette.Color(0x00ff00)),
	}, pt)
}

func TestOverridesNoneSet(t *testing.T) {
	fs := flag.NewFlagSet("rosette", flag.ContinueOnError)
	o := registerOverrides(fs)
	require.NoError(t, fs.Parse(nil))
	pt, err := o.patch(fs)
	require.NoError(t, err)
	assert.True(t, pt.IsEmpty())
}

func TestOverridesBadValue(t *testing.T) {
	fs := flag.NewFlagSet("rosette", flag.ContinueOnError)
	o := registerOverrides(fs)
	require.NoError(t, fs.Parse([]string{"-background", "teal"}))
	_, err := o.patch(fs)
	assert.Error(t, err)
}

func testOptions(t *testing.T) options {
	dir := t.TempDir()
	return options{
		view:   "2d",
		width:  200,
		height: 160,
		panel:  40,
		bar:    20,
		output: filepath.Join(dir, "out.png"),
		scope:  "cli",
		format: "toml",
	}
}

func TestRunWritesPNG(t *testing.T) {
	opts := testOptions(t)
	opts.overlay = true
	require.NoError(t, run(context.Background(), opts, rosette.Patch{LeafCount: rosette.Ptr(5)}))

	f, err := os.Open(opts.output)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 160, img.Bounds().Dx())
	assert.Equal(t, 140, img.Bounds().Dy())
}

func TestRunPersistsState(t *testing.T) {
	opts := testOptions(t)
	opts.state = t.TempDir()
	opts.format = "yaml"

	cfg := filepath.Join(t.TempDir(), "leaf.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("leaves = 3\nmode = \"polygons\"\n"), 0o644))
	opts.config = cfg

	require.NoError(t, run(context.Background(), opts, rosette.Patch{Scaler: rosette.Ptr(20.0)}))

	fst, err := store.NewFile(opts.state, opts.scope, store.YAML)
	require.NoError(t, err)
	p, err := fst.Load(store.ParamsKey)
	require.NoError(t, err)
	assert.Equal(t, 3, p.LeafCount)
	assert.Equal(t, rosette.Filled, p.Mode)
	assert.Equal(t, 20.0, p.Scaler)
}

func TestRunRejects(t *testing.T) {
	tests := []struct {
		name string
		edit func(*options)
	}{
		{"no view", func(o *options) { o.view = "none" }},
		{"bad view", func(o *options) { o.view = "4d" }},
		{"watch without config", func(o *options) { o.watch = true }},
		{"bad format", func(o *options) { o.state = t.TempDir(); o.format = "json" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(t)
			tt.edit(&opts)
			assert.Error(t, run(context.Background(), opts, rosette.Patch{}))
		})
	}
}
