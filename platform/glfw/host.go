// Package glfw hosts the driver in a GLFW window.
//
// GLFW must be used from the main OS thread. The package locks the main
// goroutine to it in init; NewHost, Run and Close must be called from the
// main goroutine.
package glfw

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/clearloop"
	"github.com/gogpu/clearloop/driver"
)

func init() {
	// GLFW event handling must run on the main thread.
	runtime.LockOSThread()
}

func logger() *slog.Logger { return clearloop.ComponentLogger("glfw") }

// ErrInit is returned by NewHost when GLFW cannot be initialized.
var ErrInit = errors.New("glfw: init failed")

// ErrUnsupportedPlatform is returned by NativeHandles on platforms without a
// surface handle mapping.
var ErrUnsupportedPlatform = errors.New("glfw: native handles not supported on this platform")

// Config describes the window.
type Config struct {
	Title  string
	Width  int
	Height int
}

// Host runs the GLFW event loop and forwards window events to a driver.
type Host struct {
	cfg    Config
	window *Window

	queue  []driver.Event
	redraw bool
	exit   bool
}

var _ driver.Host = (*Host)(nil)

// NewHost initializes GLFW. The window is created when the driver asks for
// it.
func NewHost(cfg Config) (*Host, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}
	return &Host{cfg: cfg}, nil
}

// CreateWindow creates the GLFW window without a client API; the surface is
// created on its native handles.
func (h *Host) CreateWindow() (driver.Window, error) {
	if h.window != nil {
		return h.window, nil
	}
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	w, err := glfw.CreateWindow(h.cfg.Width, h.cfg.Height, h.cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	h.window = &Window{host: h, w: w}
	h.registerCallbacks(w)

	fbw, fbh := w.GetFramebufferSize()
	logger().Info("window created", "title", h.cfg.Title, "width", fbw, "height", fbh)
	return h.window, nil
}

func (h *Host) registerCallbacks(w *glfw.Window) {
	w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		h.queue = append(h.queue, driver.Resized{Width: width, Height: height})
	})
	w.SetCloseCallback(func(w *glfw.Window) {
		// The driver decides; keep the window open until it exits.
		w.SetShouldClose(false)
		h.queue = append(h.queue, driver.CloseRequested{})
	})
	w.SetRefreshCallback(func(*glfw.Window) {
		h.redraw = true
	})
	w.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		h.queue = append(h.queue, driver.Other{Name: fmt.Sprintf("focus=%t", focused)})
	})
	w.SetIconifyCallback(func(_ *glfw.Window, iconified bool) {
		h.queue = append(h.queue, driver.Other{Name: fmt.Sprintf("iconify=%t", iconified)})
	})
}

// Exit stops Run after the current event.
func (h *Host) Exit() {
	h.exit = true
	glfw.PostEmptyEvent()
}

// Run resumes d, then dispatches events until d asks to exit. While a redraw
// is pending the loop polls; otherwise it blocks waiting for events.
func (h *Host) Run(d *driver.Driver) error {
	if err := d.Resumed(h); err != nil {
		return err
	}
	for !h.exit {
		if h.redraw {
			glfw.PollEvents()
		} else {
			glfw.WaitEvents()
		}
		h.dispatch(d)
	}
	return nil
}

func (h *Host) dispatch(d *driver.Driver) {
	events := h.queue
	h.queue = nil
	for _, ev := range events {
		d.WindowEvent(h, ev)
		if h.exit {
			return
		}
	}
	if h.redraw {
		h.redraw = false
		d.WindowEvent(h, driver.RedrawRequested{})
	}
}

// Close destroys the window and terminates GLFW.
func (h *Host) Close() {
	if h.window != nil {
		h.window.w.Destroy()
		h.window = nil
	}
	glfw.Terminate()
}

// Window is the GLFW window handed to the driver.
type Window struct {
	host *Host
	w    *glfw.Window
}

var _ driver.Window = (*Window)(nil)

// NativeHandles returns the platform display and window handles.
func (w *Window) NativeHandles() (display, window uintptr, err error) {
	return nativeHandles(w.w)
}

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (width, height int) {
	return w.w.GetFramebufferSize()
}

// PrePresentNotify is a no-op: GLFW has no pre-present hook.
func (w *Window) PrePresentNotify() {}

// RequestRedraw schedules a RedrawRequested event on the next loop turn.
func (w *Window) RequestRedraw() {
	w.host.redraw = true
}
