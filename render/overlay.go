// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// OverlayFontSize is the text size of DrawOverlay, in pixels.
const OverlayFontSize = 14

var overlayFont struct {
	once   sync.Once
	source *text.FontSource
	err    error
}

func overlaySource() (*text.FontSource, error) {
	overlayFont.once.Do(func() {
		overlayFont.source, overlayFont.err = text.NewFontSource(goregular.TTF)
	})
	return overlayFont.source, overlayFont.err
}

// DrawOverlay writes lines in the top-left corner of the target, one per
// row, in Go Regular.
func DrawOverlay(target RenderTarget, lines []string, color gg.RGBA) error {
	if target == nil {
		return ErrNilTarget
	}
	dc := target.Context()
	if dc == nil {
		return ErrTargetClosed
	}
	if len(lines) == 0 {
		return nil
	}
	source, err := overlaySource()
	if err != nil {
		return fmt.Errorf("render: overlay font: %w", err)
	}

	dc.Push()
	defer dc.Pop()
	dc.Identity()
	dc.SetFont(source.Face(OverlayFontSize))
	dc.SetRGBA(color.R, color.G, color.B, color.A)

	const margin, lineHeight = 8.0, OverlayFontSize * 1.4
	for i, line := range lines {
		dc.DrawString(line, margin, margin+lineHeight*float64(i+1))
	}
	return nil
}
