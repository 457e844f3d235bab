// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/rosette"
)

// ReadFile decodes a parameter file, picking the codec from its extension.
func ReadFile(path string) (rosette.ShapeParameters, error) {
	c, err := CodecFor(path)
	if err != nil {
		return rosette.ShapeParameters{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return rosette.ShapeParameters{}, fmt.Errorf("store: read %s: %w", path, err)
	}
	return Decode(c, data)
}

// Change is the result of reloading a watched parameter file.
type Change struct {
	Params rosette.ShapeParameters
	Err    error
}

// Watch reloads path each time it is written or created and sends the
// result. The directory is watched rather than the file so editors that
// replace the file are followed. Renames away from path, a missing file and
// an empty file send nothing; they are the intermediate states of a save.
// The channel is closed once ctx is done.
func Watch(ctx context.Context, path string) (<-chan Change, error) {
	c, err := CodecFor(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("store: watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("store: watch %s: %w", path, err)
	}

	out := make(chan Change, 1)
	go func() {
		defer close(out)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				change, ok := reload(c, abs)
				if !ok {
					rosette.Logger().Debug("store: parameter file not ready", "path", abs, "op", event.Op.String())
					continue
				}
				rosette.Logger().Debug("store: parameter file changed", "path", abs, "op", event.Op.String(), "err", change.Err)
				select {
				case out <- change:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				rosette.Logger().Warn("store: watch error", "path", abs, "err", err)
			}
		}
	}()
	return out, nil
}

// reload reads path for Watch. ok is false while the file is missing or
// holds only whitespace.
func reload(c Codec, path string) (change Change, ok bool) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return change, false
	case err != nil:
		return Change{Err: fmt.Errorf("store: read %s: %w", path, err)}, true
	case len(bytes.TrimSpace(data)) == 0:
		return change, false
	}
	p, err := Decode(c, data)
	return Change{Params: p, Err: err}, true
}
