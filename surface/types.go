// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "fmt"

// Size is a surface size in physical pixels.
type Size struct {
	Width  uint32
	Height uint32
}

// Empty reports whether either dimension is zero. Minimized windows report
// empty sizes.
func (s Size) Empty() bool {
	return s.Width == 0 || s.Height == 0
}

// Clamp returns s with each dimension raised to at least 1.
func (s Size) Clamp() Size {
	return Size{Width: max(s.Width, 1), Height: max(s.Height, 1)}
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}
