// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface keeps a window surface configured and presents one cleared
// frame per Render call.
//
// A Context owns the surface configuration together with the device and
// queue it renders with. Resize notifications do not touch the surface
// directly: they are recorded by a Coordinator and applied at the start of
// the next Render, right before a frame is acquired. This keeps
// reconfiguration off the presentation path and coalesces bursts of resize
// events into one Configure call.
//
// # Frame errors
//
// Render reports two classes of recoverable error:
//
//   - ErrLost: the surface was lost. The next Render reconfigures it at the
//     current size before acquiring.
//   - *TransientError: the frame was skipped (timeout, outdated surface,
//     submission failure). Outdated surfaces are also reconfigured.
//
// Neither is fatal; the caller logs it and keeps rendering.
//
// # Usage
//
//	h, err := backend.Create(window)
//	if err != nil {
//	    return err
//	}
//	ctx, err := surface.New(h, surface.Size{Width: 800, Height: 600})
//	if err != nil {
//	    return err
//	}
//	ctx.NoteResize(surface.Size{Width: 1024, Height: 768})
//	err = ctx.Render() // reconfigures to 1024x768, then clears and presents
package surface
