// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/rosette"
)

// Codec encodes parameter snapshots.
type Codec interface {
	// Name returns a short codec name ("toml", "yaml").
	Name() string
	// Ext returns the file extension without the dot.
	Ext() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Built-in codecs.
var (
	TOML Codec = tomlCodec{}
	YAML Codec = yamlCodec{}
)

type tomlCodec struct{}

func (tomlCodec) Name() string { return "toml" }
func (tomlCodec) Ext() string  { return "toml" }

func (tomlCodec) Marshal(v any) ([]byte, error) {
	return toml.Marshal(v)
}

func (tomlCodec) Unmarshal(data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }
func (yamlCodec) Ext() string  { return "yaml" }

func (yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (yamlCodec) Unmarshal(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// CodecFor picks a codec from a file extension: .toml, .yaml or .yml.
func CodecFor(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Decode reads a full or partial parameter snapshot. Missing fields keep
// their defaults; the result is normalized and validated.
func Decode(c Codec, data []byte) (rosette.ShapeParameters, error) {
	p := rosette.DefaultParameters()
	if err := c.Unmarshal(data, &p); err != nil {
		return rosette.ShapeParameters{}, fmt.Errorf("store: decode %s: %w", c.Name(), err)
	}
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return rosette.ShapeParameters{}, err
	}
	return p, nil
}

// Encode writes a parameter snapshot.
func Encode(c Codec, p rosette.ShapeParameters) ([]byte, error) {
	data, err := c.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("store: encode %s: %w", c.Name(), err)
	}
	return data, nil
}
