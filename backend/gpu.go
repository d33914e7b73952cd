package backend

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// WindowHandle is the native window a surface is created for. The windowing
// layer owns the window; the backend only reads its handles.
type WindowHandle interface {
	// NativeHandles returns the platform display (or module instance) handle
	// and the window handle, as expected by the HAL surface constructor.
	NativeHandles() (display, window uintptr, err error)
}

// PresentMode controls how acquired frames are queued for display.
type PresentMode uint8

const (
	// PresentModeFifo waits for vertical blank. Always supported.
	PresentModeFifo PresentMode = iota

	// PresentModeFifoRelaxed is Fifo that may tear when a frame is late.
	PresentModeFifoRelaxed

	// PresentModeImmediate presents without waiting and may tear.
	PresentModeImmediate

	// PresentModeMailbox replaces the queued frame, no tearing.
	PresentModeMailbox
)

var presentModeNames = [...]string{"fifo", "fifo-relaxed", "immediate", "mailbox"}

// String returns the lower-case name of the present mode.
func (m PresentMode) String() string {
	if int(m) < len(presentModeNames) {
		return presentModeNames[m]
	}
	return fmt.Sprintf("PresentMode(%d)", m)
}

// ParsePresentMode maps a name produced by String back to a PresentMode.
func ParsePresentMode(s string) (PresentMode, error) {
	for i, name := range presentModeNames {
		if name == s {
			return PresentMode(i), nil
		}
	}
	return 0, fmt.Errorf("backend: unknown present mode %q", s)
}

// AlphaMode controls how the compositor treats the surface alpha channel.
type AlphaMode uint8

const (
	AlphaModeOpaque AlphaMode = iota
	AlphaModePremultiplied
	AlphaModeUnpremultiplied
	AlphaModeInherit
)

// Capabilities lists what a surface supports on the selected adapter.
// Entries are in the adapter's order of preference.
type Capabilities struct {
	Formats      []gputypes.TextureFormat
	PresentModes []PresentMode
	AlphaModes   []AlphaMode
}

// Supported reports whether the capability lists are usable for
// configuration.
func (c Capabilities) Supported() bool {
	return len(c.Formats) > 0 && len(c.AlphaModes) > 0
}

// SupportsPresentMode reports whether m is in the present mode list.
func (c Capabilities) SupportsPresentMode(m PresentMode) bool {
	for _, pm := range c.PresentModes {
		if pm == m {
			return true
		}
	}
	return false
}

// SurfaceConfig is the complete configuration applied to a surface in one
// Configure call.
type SurfaceConfig struct {
	Format      gputypes.TextureFormat
	Width       uint32
	Height      uint32
	PresentMode PresentMode
	AlphaMode   AlphaMode
	Usage       gputypes.TextureUsage

	// MaxFrameLatency is the number of frames allowed in flight.
	MaxFrameLatency uint32
}

// Surface is a presentable target bound to a native window.
type Surface interface {
	// Capabilities queries the surface capabilities on the opened adapter.
	Capabilities() Capabilities

	// Configure applies cfg, replacing any previous configuration.
	Configure(cfg SurfaceConfig) error

	// Acquire returns the next frame to render into. It fails with
	// ErrSurfaceLost, ErrSurfaceOutdated or ErrSurfaceTimeout (possibly
	// wrapped) on recoverable conditions.
	Acquire() (Frame, error)

	// Present queues f for display. f must not be used afterwards.
	Present(f Frame) error

	// Discard releases f without presenting it.
	Discard(f Frame)
}

// Frame is one acquired surface texture.
type Frame interface {
	// View returns the render attachment view of the frame.
	View() TextureView

	// Suboptimal reports that the frame can be presented but the surface
	// should be reconfigured.
	Suboptimal() bool
}

// TextureView is an opaque render attachment.
type TextureView interface{}

// CommandBuffer is an opaque finished command list.
type CommandBuffer interface{}

// Device allocates command encoders.
type Device interface {
	CreateCommandEncoder(label string) (CommandEncoder, error)
}

// CommandEncoder records passes into a command buffer.
type CommandEncoder interface {
	BeginRenderPass(desc *RenderPassDescriptor) RenderPass
	Finish() (CommandBuffer, error)
}

// RenderPass is an open render pass. The pass must be ended before the
// encoder is finished.
type RenderPass interface {
	End()
}

// Queue submits finished command buffers for execution.
type Queue interface {
	Submit(buffers ...CommandBuffer) error
}

// RenderPassDescriptor describes the attachments of a render pass.
type RenderPassDescriptor struct {
	Label            string
	ColorAttachments []ColorAttachment
}

// ColorAttachment is one color target of a render pass.
type ColorAttachment struct {
	View       TextureView
	LoadOp     gputypes.LoadOp
	StoreOp    gputypes.StoreOp
	ClearValue gputypes.Color
}
