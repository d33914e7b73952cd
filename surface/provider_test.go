// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

type halBacked struct {
	*fakeResources
}

func (halBacked) HalDevice() any  { return "hal-device" }
func (halBacked) HalQueue() any   { return "hal-queue" }
func (halBacked) HalAdapter() any { return "hal-adapter" }

func (halBacked) AdapterName() string             { return "Test Adapter" }
func (halBacked) DeviceType() gputypes.DeviceType { return gputypes.DeviceTypeIntegratedGPU }

func TestContextDeviceProvider(t *testing.T) {
	ctx, err := New(halBacked{newFakeResources()}, Size{800, 600})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var p gpucontext.DeviceProvider = ctx

	if p.SurfaceFormat() != gputypes.TextureFormatBGRA8UnormSrgb {
		t.Errorf("SurfaceFormat() = %v", p.SurfaceFormat())
	}
	if p.Queue() != "hal-queue" {
		t.Errorf("Queue() = %v", p.Queue())
	}
	if p.Adapter() != "hal-adapter" {
		t.Errorf("Adapter() = %v", p.Adapter())
	}
	if p.Device() != "hal-device" {
		t.Errorf("Device() = %v, want the HAL device", p.Device())
	}
	info := p.AdapterInfo()
	if info.Name != "Test Adapter" || info.Type != gpucontext.AdapterTypeIntegrated {
		t.Errorf("AdapterInfo() = %+v", info)
	}
}

func TestContextProviderWithoutHAL(t *testing.T) {
	ctx, _ := newTestContext(t, Size{800, 600})
	if ctx.Device() != nil || ctx.HalQueue() != nil || ctx.Adapter() != nil {
		t.Error("fake resources should not expose HAL objects")
	}
	if info := ctx.AdapterInfo(); info.Type != gpucontext.AdapterTypeUnknown {
		t.Errorf("AdapterInfo().Type = %v, want Unknown", info.Type)
	}
	if ctx.Queue() == nil {
		t.Error("Queue() should fall back to the backend queue")
	}
}
