package driver

import "github.com/gogpu/clearloop/backend"

// Event is a window event delivered by the host.
type Event interface {
	isEvent()
}

// CloseRequested is sent when the user asks to close the window.
type CloseRequested struct{}

// Resized is sent when the window's framebuffer size changes. Width and
// Height are physical pixels.
type Resized struct {
	Width, Height int
}

// RedrawRequested is sent when the window should render a frame.
type RedrawRequested struct{}

// Other is any event the driver does not act on.
type Other struct {
	Name string
}

func (CloseRequested) isEvent()  {}
func (Resized) isEvent()         {}
func (RedrawRequested) isEvent() {}
func (Other) isEvent()           {}

// Window is the host window the surface is bound to.
type Window interface {
	backend.WindowHandle

	// FramebufferSize returns the drawable size in physical pixels.
	FramebufferSize() (width, height int)

	// PrePresentNotify is called right before a frame is rendered.
	PrePresentNotify()

	// RequestRedraw schedules a RedrawRequested event.
	RequestRedraw()
}

// Host is the windowing layer that drives the event loop.
type Host interface {
	// CreateWindow creates the single window the driver renders to.
	CreateWindow() (Window, error)

	// Exit stops the event loop after the current event.
	Exit()
}
