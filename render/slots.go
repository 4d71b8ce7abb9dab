// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"cogentcore.org/xr/base/errors"
)

// ErrSlotRange is returned for a texture slot beyond the capacity
// of a [TextureSlots] table.
var ErrSlotRange = errors.New("render: texture slot out of range")

// TextureSlots is the table of texture units bound for a draw.
type TextureSlots struct {
	bound []TextureHandle
	used  int
}

// NewTextureSlots returns a table with the given number of slots.
func NewTextureSlots(size int) *TextureSlots {
	return &TextureSlots{bound: make([]TextureHandle, max(size, 0))}
}

// Len returns the number of slots.
func (ts *TextureSlots) Len() int {
	return len(ts.bound)
}

// Bind binds the texture to the slot.
func (ts *TextureSlots) Bind(slot int, th TextureHandle) error {
	if slot < 0 || slot >= len(ts.bound) {
		return errors.Errorf("%w: slot %d of %d", ErrSlotRange, slot, len(ts.bound))
	}
	ts.bound[slot] = th
	ts.used = max(ts.used, slot+1)
	return nil
}

// Get returns the texture bound to the slot, nil for an empty slot.
func (ts *TextureSlots) Get(slot int) (TextureHandle, error) {
	if slot < 0 || slot >= len(ts.bound) {
		return nil, errors.Errorf("%w: slot %d of %d", ErrSlotRange, slot, len(ts.bound))
	}
	return ts.bound[slot], nil
}

// Bound returns the slots up to the highest bound one.
func (ts *TextureSlots) Bound() []TextureHandle {
	return ts.bound[:ts.used]
}

// Reset unbinds all slots.
func (ts *TextureSlots) Reset() {
	clear(ts.bound[:ts.used])
	ts.used = 0
}
