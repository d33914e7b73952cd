// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"sync"
	"testing"
)

func TestCoordinatorNoteResize(t *testing.T) {
	c := NewCoordinator(Size{800, 600})

	if c.NoteResize(Size{800, 600}) {
		t.Error("initial size should not be recorded again")
	}
	if c.Dirty() {
		t.Error("coordinator dirty without a change")
	}
	if !c.NoteResize(Size{100, 100}) {
		t.Error("new size should be recorded")
	}
	if c.NoteResize(Size{100, 100}) {
		t.Error("repeated size should be dropped")
	}
	if !c.NoteResize(Size{200, 150}) {
		t.Error("new size should overwrite the pending one")
	}

	size, ok := c.TakeIfDirty()
	if !ok || size != (Size{200, 150}) {
		t.Errorf("TakeIfDirty() = %v, %v; want 200x150, true", size, ok)
	}
	if _, ok := c.TakeIfDirty(); ok {
		t.Error("second TakeIfDirty should report clean")
	}
}

func TestCoordinatorReset(t *testing.T) {
	c := NewCoordinator(Size{800, 600})
	c.NoteResize(Size{1024, 768})

	c.reset(Size{640, 480})
	if c.Dirty() {
		t.Error("reset should drop the pending size")
	}
	if c.NoteResize(Size{640, 480}) {
		t.Error("reset size should be the recorded size")
	}
	if !c.NoteResize(Size{800, 600}) {
		t.Error("previous size should be recorded after reset")
	}
}

func TestCoordinatorIgnoresEmpty(t *testing.T) {
	tests := []Size{{0, 0}, {0, 600}, {800, 0}}
	for _, size := range tests {
		c := NewCoordinator(Size{800, 600})
		if c.NoteResize(size) {
			t.Errorf("NoteResize(%v) recorded an empty size", size)
		}
		if _, ok := c.TakeIfDirty(); ok {
			t.Errorf("NoteResize(%v) marked the coordinator dirty", size)
		}
	}
}

func TestCoordinatorConcurrent(t *testing.T) {
	c := NewCoordinator(Size{1, 1})
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := range 100 {
				c.NoteResize(Size{uint32(i + 2), uint32(j + 2)})
				c.TakeIfDirty()
			}
		}(i)
	}
	wg.Wait()
}

func TestSizeClamp(t *testing.T) {
	tests := []struct {
		in, want Size
	}{
		{Size{0, 0}, Size{1, 1}},
		{Size{0, 600}, Size{1, 600}},
		{Size{800, 0}, Size{800, 1}},
		{Size{800, 600}, Size{800, 600}},
	}
	for _, tt := range tests {
		if got := tt.in.Clamp(); got != tt.want {
			t.Errorf("%v.Clamp() = %v, want %v", tt.in, got, tt.want)
		}
	}
	if s := (Size{800, 600}).String(); s != "800x600" {
		t.Errorf("String() = %q", s)
	}
}
