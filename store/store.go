// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package store persists shape parameter snapshots between runs.
//
// A Store is bound to a scope, the way browser session storage is bound to
// a tab. Memory keeps snapshots for the life of the process; File writes
// one file per key under <dir>/<scope>/.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogpu/rosette"
)

// ParamsKey is the key the current parameters are saved under.
const ParamsKey = "graphicsParam"

// Sentinel errors for the store package.
var (
	// ErrNotFound is returned by Load for a key that was never saved.
	ErrNotFound = errors.New("store: not found")

	// ErrUnknownFormat is returned for file extensions without a codec.
	ErrUnknownFormat = errors.New("store: unknown file format")

	// ErrInvalidKey is returned for empty keys or keys containing a path
	// separator.
	ErrInvalidKey = errors.New("store: invalid key")
)

// Store loads and saves parameter snapshots by key.
type Store interface {
	Load(key string) (rosette.ShapeParameters, error)
	Save(key string, p rosette.ShapeParameters) error
	Delete(key string) error
	Scope() string
}

// LoadOrDefault returns the saved parameters for key, or the defaults when
// nothing was saved yet.
func LoadOrDefault(s Store, key string) (rosette.ShapeParameters, error) {
	p, err := s.Load(key)
	if errors.Is(err, ErrNotFound) {
		return rosette.DefaultParameters(), nil
	}
	return p, err
}

func checkKey(key string) error {
	if key == "" || key == "." || key == ".." || filepath.Base(key) != key {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Memory is an in-process store. It is safe for concurrent use.
type Memory struct {
	scope string
	mu    sync.RWMutex
	data  map[string]rosette.ShapeParameters
}

// NewMemory returns an empty in-memory store for scope.
func NewMemory(scope string) *Memory {
	return &Memory{scope: scope, data: make(map[string]rosette.ShapeParameters)}
}

// Scope returns the store scope.
func (m *Memory) Scope() string { return m.scope }

// Load returns the snapshot saved under key.
func (m *Memory) Load(key string) (rosette.ShapeParameters, error) {
	if err := checkKey(key); err != nil {
		return rosette.ShapeParameters{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.data[key]
	if !ok {
		return rosette.ShapeParameters{}, fmt.Errorf("%w: %s/%s", ErrNotFound, m.scope, key)
	}
	return p, nil
}

// Save stores p under key after validating it.
func (m *Memory) Save(key string, p rosette.ShapeParameters) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = p
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (m *Memory) Delete(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// File stores snapshots as <dir>/<scope>/<key>.<ext>.
type File struct {
	dir   string
	scope string
	codec Codec
}

// NewFile returns a file store. A nil codec means TOML. The directory is
// created on first Save.
func NewFile(dir, scope string, codec Codec) (*File, error) {
	if codec == nil {
		codec = TOML
	}
	if err := checkKey(scope); err != nil {
		return nil, fmt.Errorf("store: scope: %w", err)
	}
	return &File{dir: dir, scope: scope, codec: codec}, nil
}

// Scope returns the store scope.
func (f *File) Scope() string { return f.scope }

// Path returns the file a key is stored in.
func (f *File) Path(key string) string {
	return filepath.Join(f.dir, f.scope, key+"."+f.codec.Ext())
}

// Load reads and validates the snapshot saved under key.
func (f *File) Load(key string) (rosette.ShapeParameters, error) {
	if err := checkKey(key); err != nil {
		return rosette.ShapeParameters{}, err
	}
	data, err := os.ReadFile(f.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return rosette.ShapeParameters{}, fmt.Errorf("%w: %s/%s", ErrNotFound, f.scope, key)
	}
	if err != nil {
		return rosette.ShapeParameters{}, fmt.Errorf("store: load %s: %w", key, err)
	}
	return Decode(f.codec, data)
}

// Save writes p under key, replacing the file atomically.
func (f *File) Save(key string, p rosette.ShapeParameters) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := Encode(f.codec, p)
	if err != nil {
		return err
	}

	path := f.Path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("store: save %s: %w", key, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+key+"-*")
	if err != nil {
		return fmt.Errorf("store: save %s: %w", key, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store: save %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: save %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: save %s: %w", key, err)
	}
	rosette.Logger().Debug("store: saved", "path", path)
	return nil
}

// Delete removes the file for key. Deleting a missing key is not an error.
func (f *File) Delete(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	err := os.Remove(f.Path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: delete %s: %w", key, err)
	}
	return nil
}

// Ensure both stores implement Store.
var (
	_ Store = (*Memory)(nil)
	_ Store = (*File)(nil)
)
