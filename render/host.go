// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"sync"
)

// Host is a set of named slots a render target can be attached to, the way
// a page offers an element for a canvas.
//
// Host is safe for concurrent use.
type Host struct {
	mu    sync.Mutex
	slots map[string]RenderTarget
}

// NewHost returns a host offering the given slot ids.
func NewHost(ids ...string) *Host {
	h := &Host{slots: make(map[string]RenderTarget, len(ids))}
	for _, id := range ids {
		h.slots[id] = nil
	}
	return h
}

// Attach binds t to slot id. Attaching the target already held is a no-op.
func (h *Host) Attach(id string, t RenderTarget) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	cur, ok := h.slots[id]
	switch {
	case !ok:
		return fmt.Errorf("%w: %q", ErrUnknownSlot, id)
	case cur == t:
		return nil
	case cur != nil:
		return fmt.Errorf("%w: %q", ErrSlotOccupied, id)
	}
	h.slots[id] = t
	return nil
}

// Detach unbinds t from slot id.
func (h *Host) Detach(id string, t RenderTarget) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	cur, ok := h.slots[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSlot, id)
	}
	if cur == nil || cur != t {
		return fmt.Errorf("%w: %q", ErrNotAttached, id)
	}
	h.slots[id] = nil
	return nil
}

// Lookup returns the target attached to slot id.
func (h *Host) Lookup(id string) (RenderTarget, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t := h.slots[id]
	return t, t != nil
}
