// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "sync"

// Coordinator holds the most recently requested surface size until the
// renderer is ready to apply it. At most one size is pending; later requests
// overwrite earlier ones.
//
// Coordinator is safe for concurrent use. A size noted while a frame is in
// flight is picked up by the next TakeIfDirty.
type Coordinator struct {
	mu      sync.Mutex
	pending Size
	dirty   bool
}

// NewCoordinator returns a coordinator whose recorded size is initial.
func NewCoordinator(initial Size) *Coordinator {
	return &Coordinator{pending: initial}
}

// NoteResize records size as pending. Empty sizes and sizes equal to the
// one already recorded are dropped. It reports whether size was recorded.
func (c *Coordinator) NoteResize(size Size) bool {
	if size.Empty() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if size == c.pending {
		return false
	}
	c.pending = size
	c.dirty = true
	return true
}

// TakeIfDirty returns the pending size and clears the dirty flag. ok is
// false when nothing was recorded since the last call.
func (c *Coordinator) TakeIfDirty() (size Size, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return Size{}, false
	}
	c.dirty = false
	return c.pending, true
}

// reset makes size the recorded size and drops any pending one.
func (c *Coordinator) reset(size Size) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = size
	c.dirty = false
}

// Dirty reports whether a size is pending.
func (c *Coordinator) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}
