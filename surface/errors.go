// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "errors"

var (
	// ErrLost is returned by Render when the surface was lost. The next
	// Render reconfigures the surface before acquiring.
	ErrLost = errors.New("surface: lost")

	// ErrUnsupported is returned when the surface reports no usable format
	// or alpha mode on the device's adapter.
	ErrUnsupported = errors.New("surface: not supported by adapter")

	// ErrNilResources is returned by New when no resources are given.
	ErrNilResources = errors.New("surface: nil resources")
)

// TransientError reports a frame that was skipped. Rendering can continue
// with the next frame.
type TransientError struct {
	// Op is the frame step that failed: configure, acquire, encode, submit
	// or present.
	Op    string
	Cause error
}

func (e *TransientError) Error() string {
	return "surface: " + e.Op + ": " + e.Cause.Error()
}

func (e *TransientError) Unwrap() error { return e.Cause }
