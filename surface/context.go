// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/clearloop"
	"github.com/gogpu/clearloop/backend"
	"github.com/gogpu/gputypes"
)

func logger() *slog.Logger { return clearloop.ComponentLogger("surface") }

// DefaultClearColor is the color every frame is cleared to.
var DefaultClearColor = gputypes.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0}

// DefaultMaxFrameLatency is the number of frames allowed in flight.
const DefaultMaxFrameLatency = 2

// Resources are the graphics objects a Context renders with.
// *backend.Handle implements Resources.
type Resources interface {
	Surface() backend.Surface
	Device() backend.Device
	Queue() backend.Queue
}

// Option configures a Context.
type Option func(*options)

type options struct {
	presentMode     backend.PresentMode
	clearColor      gputypes.Color
	maxFrameLatency uint32
}

func defaultOptions() options {
	return options{
		presentMode:     backend.PresentModeFifo,
		clearColor:      DefaultClearColor,
		maxFrameLatency: DefaultMaxFrameLatency,
	}
}

// WithPresentMode requests a present mode. Modes the surface does not
// support fall back to FIFO.
func WithPresentMode(m backend.PresentMode) Option {
	return func(o *options) { o.presentMode = m }
}

// WithClearColor overrides DefaultClearColor.
func WithClearColor(c gputypes.Color) Option {
	return func(o *options) { o.clearColor = c }
}

// WithMaxFrameLatency sets the number of frames allowed in flight.
func WithMaxFrameLatency(n uint32) Option {
	return func(o *options) { o.maxFrameLatency = n }
}

// Context owns a configured surface and renders cleared frames to it.
//
// Context is not safe for concurrent use, except for NoteResize which may be
// called from any goroutine.
type Context struct {
	res     Resources
	surface backend.Surface
	device  backend.Device
	queue   backend.Queue
	opts    options

	config backend.SurfaceConfig
	coord  *Coordinator

	// needsReconfigure is set by a lost, outdated or suboptimal frame and by
	// an applied resize; target is the size to reconfigure to, or zero for
	// the current size.
	needsReconfigure bool
	target           Size

	frames uint64
}

// New creates a Context for the resources and configures the surface at size
// (each dimension clamped to at least 1).
func New(res Resources, size Size, opts ...Option) (*Context, error) {
	if res == nil {
		return nil, ErrNilResources
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Context{
		res:     res,
		surface: res.Surface(),
		device:  res.Device(),
		queue:   res.Queue(),
		opts:    o,
	}
	if err := c.configure(size); err != nil {
		return nil, err
	}
	c.coord = NewCoordinator(c.Size())
	return c, nil
}

// Configure rebuilds the surface configuration for size from the current
// surface capabilities and applies it. Width and height change together.
// The applied size becomes the recorded window size and drops any pending
// resize.
func (c *Context) Configure(size Size) error {
	if err := c.configure(size); err != nil {
		return err
	}
	c.coord.reset(c.Size())
	return nil
}

func (c *Context) configure(size Size) error {
	caps := c.surface.Capabilities()
	if !caps.Supported() {
		return ErrUnsupported
	}
	cfg := c.buildConfig(caps, size.Clamp())
	if err := c.surface.Configure(cfg); err != nil {
		return fmt.Errorf("surface: configure %dx%d: %w", cfg.Width, cfg.Height, err)
	}
	c.config = cfg
	c.needsReconfigure = false
	c.target = Size{}
	logger().Debug("surface configured",
		"width", cfg.Width, "height", cfg.Height,
		"format", cfg.Format, "present", cfg.PresentMode)
	return nil
}

func (c *Context) buildConfig(caps backend.Capabilities, size Size) backend.SurfaceConfig {
	present := backend.PresentModeFifo
	if want := c.opts.presentMode; want != backend.PresentModeFifo {
		if caps.SupportsPresentMode(want) {
			present = want
		} else {
			logger().Warn("present mode not supported, using fifo", "requested", want)
		}
	}
	return backend.SurfaceConfig{
		Format:          caps.Formats[0],
		Width:           size.Width,
		Height:          size.Height,
		PresentMode:     present,
		AlphaMode:       caps.AlphaModes[0],
		Usage:           gputypes.TextureUsageRenderAttachment,
		MaxFrameLatency: c.opts.maxFrameLatency,
	}
}

// NoteResize records a new window size. It is applied by the next Render.
// It reports whether the size was recorded; empty and repeated sizes are
// dropped.
func (c *Context) NoteResize(size Size) bool {
	return c.coord.NoteResize(size)
}

// Render applies any pending resize, then acquires a frame, clears it and
// presents it.
//
// It returns ErrLost (wrapped) when the surface was lost and a
// *TransientError when the frame was skipped for another reason. A failed
// frame is never retried within the same call.
func (c *Context) Render() error {
	if err := c.applyPending(); err != nil {
		return err
	}

	frame, err := c.surface.Acquire()
	if err != nil {
		return c.frameError("acquire", err)
	}
	if frame.Suboptimal() {
		c.needsReconfigure = true
	}

	cmd, err := c.encodeClear(frame.View())
	if err != nil {
		c.surface.Discard(frame)
		return c.frameError("encode", err)
	}
	if err := c.queue.Submit(cmd); err != nil {
		c.surface.Discard(frame)
		return c.frameError("submit", err)
	}
	if err := c.surface.Present(frame); err != nil {
		return c.frameError("present", err)
	}
	c.frames++
	return nil
}

// applyPending reconfigures the surface if a resize is pending or the last
// frame asked for it. A failed reconfigure is retried on the next Render.
func (c *Context) applyPending() error {
	// The latest window size always replaces the target, even when it
	// matches the configured size and an earlier target failed to apply.
	if size, ok := c.coord.TakeIfDirty(); ok {
		c.target = size
		c.needsReconfigure = c.needsReconfigure || size != c.Size()
	}
	if !c.needsReconfigure {
		c.target = Size{}
		return nil
	}
	target := c.target
	if target.Empty() {
		target = c.Size()
	}
	if err := c.configure(target); err != nil {
		return c.frameError("configure", err)
	}
	return nil
}

func (c *Context) encodeClear(view backend.TextureView) (backend.CommandBuffer, error) {
	enc, err := c.device.CreateCommandEncoder("clearloop_frame")
	if err != nil {
		return nil, err
	}
	pass := enc.BeginRenderPass(&backend.RenderPassDescriptor{
		Label: "clearloop_clear",
		ColorAttachments: []backend.ColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: c.opts.clearColor,
		}},
	})
	pass.End()
	return enc.Finish()
}

// frameError classifies err and marks the surface for reconfiguration when
// the failure calls for it.
func (c *Context) frameError(op string, err error) error {
	switch {
	case errors.Is(err, backend.ErrSurfaceLost):
		c.needsReconfigure = true
		return fmt.Errorf("%w: %s: %w", ErrLost, op, err)
	case errors.Is(err, backend.ErrSurfaceOutdated):
		c.needsReconfigure = true
	}
	return &TransientError{Op: op, Cause: err}
}

// Config returns the configuration currently applied to the surface.
func (c *Context) Config() backend.SurfaceConfig { return c.config }

// Size returns the configured surface size.
func (c *Context) Size() Size {
	return Size{Width: c.config.Width, Height: c.config.Height}
}

// Frames returns the number of frames presented.
func (c *Context) Frames() uint64 { return c.frames }
