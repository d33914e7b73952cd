package driver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/gogpu/clearloop"
	"github.com/gogpu/clearloop/backend"
	"github.com/gogpu/clearloop/surface"
)

func logger() *slog.Logger { return clearloop.ComponentLogger("driver") }

// ErrWindowCreate is returned by Resumed when the host cannot create the
// window.
var ErrWindowCreate = errors.New("driver: window creation failed")

// Factory builds the rendering context for a freshly created window. The
// returned closer releases the graphics resources behind the context.
type Factory func(w Window) (*surface.Context, io.Closer, error)

// Options configures a Driver.
type Options struct {
	// Factory builds the rendering context. Nil means DefaultFactory with
	// BackendOptions and SurfaceOptions.
	Factory Factory

	// Redraw selects continuous or on-demand redraw.
	Redraw RedrawMode

	BackendOptions []backend.Option
	SurfaceOptions []surface.Option
}

// DefaultFactory opens the graphics backend for the window with
// backend.Create and configures a surface.Context at the window's
// framebuffer size.
func DefaultFactory(bopts []backend.Option, sopts []surface.Option) Factory {
	return func(w Window) (*surface.Context, io.Closer, error) {
		h, err := backend.Create(w, bopts...)
		if err != nil {
			return nil, nil, err
		}
		ctx, err := surface.New(h, windowSize(w), sopts...)
		if err != nil {
			h.Close()
			return nil, nil, err
		}
		return ctx, closerFunc(h.Close), nil
	}
}

type closerFunc func()

func (f closerFunc) Close() error {
	f()
	return nil
}

func windowSize(w Window) surface.Size {
	width, height := w.FramebufferSize()
	return surface.Size{Width: uint32(max(width, 0)), Height: uint32(max(height, 0))}
}

// Driver owns the rendering context and reacts to host events. Resumed and
// WindowEvent must be called from the host's event loop goroutine.
type Driver struct {
	opts Options

	// mu guards the Uninitialized -> Running construction step and state.
	mu     sync.Mutex
	state  State
	window Window
	ctx    *surface.Context
	closer io.Closer

	closeOnce sync.Once
}

// New returns an Uninitialized driver.
func New(opts Options) *Driver {
	if opts.Factory == nil {
		opts.Factory = DefaultFactory(opts.BackendOptions, opts.SurfaceOptions)
	}
	return &Driver{opts: opts}
}

// Resumed creates the window and the rendering context on the first call.
// Later calls are no-ops. On failure the host is told to exit, the driver
// becomes Terminated and the error is returned.
func (d *Driver) Resumed(host Host) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != Uninitialized {
		return nil
	}

	w, err := host.CreateWindow()
	if err != nil {
		d.state = Terminated
		host.Exit()
		return fmt.Errorf("%w: %w", ErrWindowCreate, err)
	}
	ctx, closer, err := d.opts.Factory(w)
	if err != nil {
		d.state = Terminated
		host.Exit()
		return err
	}

	d.window = w
	d.ctx = ctx
	d.closer = closer
	d.state = Running
	logger().Info("surface ready", "size", ctx.Size(), "redraw", d.opts.Redraw)

	w.RequestRedraw()
	return nil
}

// WindowEvent handles one window event.
func (d *Driver) WindowEvent(host Host, ev Event) {
	if d.State() != Running {
		return
	}
	switch e := ev.(type) {
	case CloseRequested:
		d.mu.Lock()
		d.state = Terminated
		d.mu.Unlock()
		logger().Info("close requested", "frames", d.ctx.Frames())
		host.Exit()
	case Resized:
		if e.Width <= 0 || e.Height <= 0 {
			return
		}
		size := surface.Size{Width: uint32(e.Width), Height: uint32(e.Height)}
		if d.ctx.NoteResize(size) {
			logger().Debug("resize noted", "size", size)
			if d.opts.Redraw == RedrawOnDemand {
				d.window.RequestRedraw()
			}
		}
	case RedrawRequested:
		d.redraw()
	}
}

func (d *Driver) redraw() {
	d.window.PrePresentNotify()
	err := d.ctx.Render()
	switch {
	case err == nil:
	case errors.Is(err, surface.ErrLost):
		logger().Warn("surface lost", "error", err)
	default:
		logger().Warn("frame skipped", "error", err)
	}
	if d.opts.Redraw == RedrawContinuous || err != nil {
		d.window.RequestRedraw()
	}
}

// State returns the current lifecycle state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Context returns the rendering context, or nil before Running.
func (d *Driver) Context() *surface.Context {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ctx
}

// Close releases the graphics resources. It is safe to call more than once
// and before Resumed.
func (d *Driver) Close() error {
	var err error
	d.closeOnce.Do(func() {
		d.mu.Lock()
		closer := d.closer
		d.state = Terminated
		d.mu.Unlock()
		if closer != nil {
			err = closer.Close()
		}
	})
	return err
}
