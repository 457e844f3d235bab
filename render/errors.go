// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "errors"

// Sentinel errors for the render package.
var (
	// ErrNilTarget is returned when Render is called without a target.
	ErrNilTarget = errors.New("render: nil target")

	// ErrTargetClosed is returned when drawing into a released target.
	ErrTargetClosed = errors.New("render: target closed")

	// ErrUnknownSlot is returned when a host has no slot with the given id.
	ErrUnknownSlot = errors.New("render: unknown host slot")

	// ErrSlotOccupied is returned when attaching to a slot that already
	// holds a different target.
	ErrSlotOccupied = errors.New("render: host slot occupied")

	// ErrNotAttached is returned when detaching a target that is not the
	// one held by the slot.
	ErrNotAttached = errors.New("render: target not attached")
)
