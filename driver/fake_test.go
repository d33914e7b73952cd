package driver

import (
	"errors"
	"io"

	"github.com/gogpu/clearloop/backend"
	"github.com/gogpu/clearloop/surface"
	"github.com/gogpu/gputypes"
)

type fakeHost struct {
	window    *fakeWindow
	createErr error
	created   int
	exits     int
}

func (h *fakeHost) CreateWindow() (Window, error) {
	h.created++
	if h.createErr != nil {
		return nil, h.createErr
	}
	if h.window == nil {
		h.window = &fakeWindow{width: 800, height: 600}
	}
	return h.window, nil
}

func (h *fakeHost) Exit() { h.exits++ }

type fakeWindow struct {
	width, height int
	prePresent    int
	redraws       int
	// native makes NativeHandles return placeholder handles the noop
	// backend accepts.
	native bool
}

func (w *fakeWindow) NativeHandles() (uintptr, uintptr, error) {
	if w.native {
		return 1, 2, nil
	}
	return 0, 0, errors.New("fake window has no native handles")
}
func (w *fakeWindow) FramebufferSize() (int, int) { return w.width, w.height }
func (w *fakeWindow) PrePresentNotify()           { w.prePresent++ }
func (w *fakeWindow) RequestRedraw()              { w.redraws++ }

// gpu is a minimal in-memory implementation of surface.Resources.
type gpu struct {
	configs    []backend.SurfaceConfig
	presented  int
	acquireErr error
	closed     int
}

func (g *gpu) Surface() backend.Surface { return g }
func (g *gpu) Device() backend.Device   { return g }
func (g *gpu) Queue() backend.Queue     { return g }

func (g *gpu) Capabilities() backend.Capabilities {
	return backend.Capabilities{
		Formats:      []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm},
		PresentModes: []backend.PresentMode{backend.PresentModeFifo},
		AlphaModes:   []backend.AlphaMode{backend.AlphaModeOpaque},
	}
}

func (g *gpu) Configure(cfg backend.SurfaceConfig) error {
	g.configs = append(g.configs, cfg)
	return nil
}

func (g *gpu) Acquire() (backend.Frame, error) {
	if g.acquireErr != nil {
		err := g.acquireErr
		g.acquireErr = nil
		return nil, err
	}
	return frame{}, nil
}

func (g *gpu) Present(backend.Frame) error {
	g.presented++
	return nil
}

func (g *gpu) Discard(backend.Frame) {}

func (g *gpu) CreateCommandEncoder(string) (backend.CommandEncoder, error) { return encoder{}, nil }
func (g *gpu) Submit(...backend.CommandBuffer) error                         { return nil }

func (g *gpu) Close() error {
	g.closed++
	return nil
}

func (g *gpu) lastSize() surface.Size {
	cfg := g.configs[len(g.configs)-1]
	return surface.Size{Width: cfg.Width, Height: cfg.Height}
}

type frame struct{}

func (frame) View() backend.TextureView { return nil }
func (frame) Suboptimal() bool          { return false }

type encoder struct{}

func (encoder) BeginRenderPass(*backend.RenderPassDescriptor) backend.RenderPass { return pass{} }
func (encoder) Finish() (backend.CommandBuffer, error)                          { return nil, nil }

type pass struct{}

func (pass) End() {}

// fakeFactory returns a Factory that builds contexts on g and counts calls.
func fakeFactory(g *gpu, calls *int) Factory {
	return func(w Window) (*surface.Context, io.Closer, error) {
		*calls++
		ctx, err := surface.New(g, windowSize(w))
		if err != nil {
			return nil, nil, err
		}
		return ctx, g, nil
	}
}
