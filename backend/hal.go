package backend

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

const (
	// submitTimeout bounds the wait for each submission to complete.
	submitTimeout = 5 * time.Second
	pollInterval  = 100 * time.Microsecond
)

// halSurface implements Surface over a HAL surface. It needs the adapter for
// capability queries and the queue for presentation.
type halSurface struct {
	surface hal.Surface
	adapter hal.Adapter
	device  hal.Device
	queue   hal.Queue

	configured bool
}

var _ Surface = (*halSurface)(nil)

func (s *halSurface) Capabilities() Capabilities {
	return capabilitiesFromHAL(s.adapter.SurfaceCapabilities(s.surface))
}

func (s *halSurface) Configure(cfg SurfaceConfig) error {
	err := s.surface.Configure(s.device, &hal.SurfaceConfiguration{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Format:      cfg.Format,
		Usage:       cfg.Usage,
		PresentMode: presentModeToHAL(cfg.PresentMode),
		AlphaMode:   alphaModeToHAL(cfg.AlphaMode),
	})
	if err != nil {
		return mapSurfaceError(err)
	}
	s.configured = true
	return nil
}

func (s *halSurface) Acquire() (Frame, error) {
	if !s.configured {
		return nil, ErrSurfaceNotConfigured
	}
	acquired, err := s.surface.AcquireTexture(nil)
	if err != nil {
		return nil, mapSurfaceError(err)
	}
	view, err := s.device.CreateTextureView(acquired.Texture, &hal.TextureViewDescriptor{
		Label: "clearloop_frame_view",
	})
	if err != nil {
		s.surface.DiscardTexture(acquired.Texture)
		return nil, fmt.Errorf("create frame view: %w", err)
	}
	return &halFrame{
		texture:    acquired.Texture,
		view:       view,
		suboptimal: acquired.Suboptimal,
	}, nil
}

func (s *halSurface) Present(f Frame) error {
	hf, ok := f.(*halFrame)
	if !ok || hf == nil {
		return fmt.Errorf("backend: present of foreign frame %T", f)
	}
	s.device.DestroyTextureView(hf.view)
	if err := s.queue.Present(s.surface, hf.texture, nil); err != nil {
		s.surface.DiscardTexture(hf.texture)
		return mapSurfaceError(err)
	}
	return nil
}

func (s *halSurface) Discard(f Frame) {
	hf, ok := f.(*halFrame)
	if !ok || hf == nil {
		return
	}
	s.device.DestroyTextureView(hf.view)
	s.surface.DiscardTexture(hf.texture)
}

// halFrame is an acquired HAL surface texture plus its render view.
type halFrame struct {
	texture    hal.SurfaceTexture
	view       hal.TextureView
	suboptimal bool
}

func (f *halFrame) View() TextureView { return f.view }
func (f *halFrame) Suboptimal() bool  { return f.suboptimal }

// halDevice implements Device.
type halDevice struct {
	device hal.Device
}

var _ Device = (*halDevice)(nil)

func (d *halDevice) CreateCommandEncoder(label string) (CommandEncoder, error) {
	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}
	return &halEncoder{encoder: encoder}, nil
}

type halEncoder struct {
	encoder hal.CommandEncoder
}

func (e *halEncoder) BeginRenderPass(desc *RenderPassDescriptor) RenderPass {
	rp := &hal.RenderPassDescriptor{Label: desc.Label}
	for _, ca := range desc.ColorAttachments {
		view, _ := ca.View.(hal.TextureView)
		rp.ColorAttachments = append(rp.ColorAttachments, hal.RenderPassColorAttachment{
			View:       view,
			LoadOp:     ca.LoadOp,
			StoreOp:    ca.StoreOp,
			ClearValue: ca.ClearValue,
		})
	}
	return e.encoder.BeginRenderPass(rp)
}

func (e *halEncoder) Finish() (CommandBuffer, error) {
	cmdBuf, err := e.encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	return cmdBuf, nil
}

// halQueue implements Queue. Submit waits until the HAL reports the
// submission complete, so command buffers are freed before it returns.
type halQueue struct {
	device hal.Device
	queue  hal.Queue

	// submitted is the index of the last completed submission.
	submitted uint64
}

var _ Queue = (*halQueue)(nil)

func newHALQueue(device hal.Device, queue hal.Queue) *halQueue {
	return &halQueue{device: device, queue: queue}
}

func (q *halQueue) Submit(buffers ...CommandBuffer) error {
	cmds := make([]hal.CommandBuffer, 0, len(buffers))
	for _, b := range buffers {
		cb, ok := b.(hal.CommandBuffer)
		if !ok {
			return fmt.Errorf("backend: submit of foreign command buffer %T", b)
		}
		cmds = append(cmds, cb)
	}

	index, err := q.queue.Submit(cmds)
	if err != nil {
		q.free(cmds)
		return fmt.Errorf("submit: %w", err)
	}
	deadline := time.Now().Add(submitTimeout)
	for q.queue.PollCompleted() < index {
		if time.Now().After(deadline) {
			// The buffers may still be in use; they are leaked rather than freed.
			return fmt.Errorf("wait for GPU: %w", ErrSurfaceTimeout)
		}
		time.Sleep(pollInterval)
	}
	q.free(cmds)
	q.submitted = index
	return nil
}

func (q *halQueue) free(cmds []hal.CommandBuffer) {
	for _, cb := range cmds {
		q.device.FreeCommandBuffer(cb)
	}
}

// mapSurfaceError translates HAL surface errors into this package's
// sentinels, keeping the original in the chain.
func mapSurfaceError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, hal.ErrSurfaceLost):
		return fmt.Errorf("%w: %w", ErrSurfaceLost, err)
	case errors.Is(err, hal.ErrSurfaceOutdated):
		return fmt.Errorf("%w: %w", ErrSurfaceOutdated, err)
	case errors.Is(err, hal.ErrTimeout):
		return fmt.Errorf("%w: %w", ErrSurfaceTimeout, err)
	default:
		return err
	}
}

func capabilitiesFromHAL(caps *hal.SurfaceCapabilities) Capabilities {
	if caps == nil {
		return Capabilities{}
	}
	out := Capabilities{
		Formats: append([]gputypes.TextureFormat(nil), caps.Formats...),
	}
	for _, pm := range caps.PresentModes {
		if m, ok := presentModeFromHAL(pm); ok {
			out.PresentModes = append(out.PresentModes, m)
		}
	}
	for _, am := range caps.AlphaModes {
		if m, ok := alphaModeFromHAL(am); ok {
			out.AlphaModes = append(out.AlphaModes, m)
		}
	}
	return out
}

func presentModeToHAL(m PresentMode) hal.PresentMode {
	switch m {
	case PresentModeFifoRelaxed:
		return hal.PresentModeFifoRelaxed
	case PresentModeImmediate:
		return hal.PresentModeImmediate
	case PresentModeMailbox:
		return hal.PresentModeMailbox
	default:
		return hal.PresentModeFifo
	}
}

func presentModeFromHAL(m hal.PresentMode) (PresentMode, bool) {
	switch m {
	case hal.PresentModeFifo:
		return PresentModeFifo, true
	case hal.PresentModeFifoRelaxed:
		return PresentModeFifoRelaxed, true
	case hal.PresentModeImmediate:
		return PresentModeImmediate, true
	case hal.PresentModeMailbox:
		return PresentModeMailbox, true
	}
	return 0, false
}

func alphaModeToHAL(m AlphaMode) hal.CompositeAlphaMode {
	switch m {
	case AlphaModePremultiplied:
		return hal.CompositeAlphaModePremultiplied
	case AlphaModeUnpremultiplied:
		return hal.CompositeAlphaModeUnpremultiplied
	case AlphaModeInherit:
		return hal.CompositeAlphaModeInherit
	default:
		return hal.CompositeAlphaModeOpaque
	}
}

func alphaModeFromHAL(m hal.CompositeAlphaMode) (AlphaMode, bool) {
	switch m {
	case hal.CompositeAlphaModeOpaque:
		return AlphaModeOpaque, true
	case hal.CompositeAlphaModePremultiplied:
		return AlphaModePremultiplied, true
	case hal.CompositeAlphaModeUnpremultiplied:
		return AlphaModeUnpremultiplied, true
	case hal.CompositeAlphaModeInherit:
		return AlphaModeInherit, true
	}
	return 0, false
}
