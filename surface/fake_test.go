// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"github.com/gogpu/clearloop/backend"
	"github.com/gogpu/gputypes"
)

// fakeResources implements Resources with in-memory fakes that record every
// call in order.
type fakeResources struct {
	surface *fakeSurface
	device  *fakeDevice
	queue   *fakeQueue
	log     []string
}

func newFakeResources() *fakeResources {
	r := &fakeResources{}
	r.surface = &fakeSurface{
		res: r,
		caps: backend.Capabilities{
			Formats:      []gputypes.TextureFormat{gputypes.TextureFormatBGRA8UnormSrgb, gputypes.TextureFormatBGRA8Unorm},
			PresentModes: []backend.PresentMode{backend.PresentModeFifo, backend.PresentModeMailbox},
			AlphaModes:   []backend.AlphaMode{backend.AlphaModeOpaque, backend.AlphaModePremultiplied},
		},
	}
	r.device = &fakeDevice{res: r}
	r.queue = &fakeQueue{res: r}
	return r
}

func (r *fakeResources) Surface() backend.Surface { return r.surface }
func (r *fakeResources) Device() backend.Device   { return r.device }
func (r *fakeResources) Queue() backend.Queue     { return r.queue }

func (r *fakeResources) record(call string) { r.log = append(r.log, call) }

type fakeSurface struct {
	res  *fakeResources
	caps backend.Capabilities

	configs   []backend.SurfaceConfig
	presented int
	discarded int

	configureErr error
	// acquireErrs are returned by successive Acquire calls before frames
	// are handed out again.
	acquireErrs []error
	presentErr  error
	suboptimal  bool
	// onAcquire runs at the start of Acquire.
	onAcquire func()
}

func (s *fakeSurface) Capabilities() backend.Capabilities { return s.caps }

func (s *fakeSurface) Configure(cfg backend.SurfaceConfig) error {
	s.res.record("configure")
	if s.configureErr != nil {
		return s.configureErr
	}
	s.configs = append(s.configs, cfg)
	return nil
}

func (s *fakeSurface) Acquire() (backend.Frame, error) {
	s.res.record("acquire")
	if s.onAcquire != nil {
		s.onAcquire()
	}
	if len(s.acquireErrs) > 0 {
		err := s.acquireErrs[0]
		s.acquireErrs = s.acquireErrs[1:]
		return nil, err
	}
	cfg := s.configs[len(s.configs)-1]
	return &fakeFrame{width: cfg.Width, height: cfg.Height, suboptimal: s.suboptimal}, nil
}

func (s *fakeSurface) Present(backend.Frame) error {
	s.res.record("present")
	if s.presentErr != nil {
		return s.presentErr
	}
	s.presented++
	return nil
}

func (s *fakeSurface) Discard(backend.Frame) {
	s.res.record("discard")
	s.discarded++
}

func (s *fakeSurface) lastConfig() backend.SurfaceConfig {
	return s.configs[len(s.configs)-1]
}

type fakeFrame struct {
	width, height uint32
	suboptimal    bool
}

func (f *fakeFrame) View() backend.TextureView { return f }
func (f *fakeFrame) Suboptimal() bool          { return f.suboptimal }

type fakeDevice struct {
	res      *fakeResources
	encoders []*fakeEncoder
}

func (d *fakeDevice) CreateCommandEncoder(label string) (backend.CommandEncoder, error) {
	d.res.record("encode")
	enc := &fakeEncoder{label: label}
	d.encoders = append(d.encoders, enc)
	return enc, nil
}

type fakeEncoder struct {
	label    string
	passes   []backend.RenderPassDescriptor
	open     bool
	finished bool
	draws    int
}

func (e *fakeEncoder) BeginRenderPass(desc *backend.RenderPassDescriptor) backend.RenderPass {
	e.passes = append(e.passes, *desc)
	e.open = true
	return &fakePass{enc: e}
}

func (e *fakeEncoder) Finish() (backend.CommandBuffer, error) {
	e.finished = true
	return e, nil
}

type fakePass struct {
	enc *fakeEncoder
}

func (p *fakePass) End() { p.enc.open = false }

type fakeQueue struct {
	res       *fakeResources
	submitted []backend.CommandBuffer
	err       error
}

func (q *fakeQueue) Submit(buffers ...backend.CommandBuffer) error {
	q.res.record("submit")
	if q.err != nil {
		return q.err
	}
	q.submitted = append(q.submitted, buffers...)
	return nil
}
