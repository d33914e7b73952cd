// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Context exposes its device to other renderers through
// gpucontext.DeviceProvider.
var _ gpucontext.DeviceProvider = (*Context)(nil)

// Device returns the underlying hal.Device, or nil when the resources are
// not HAL backed. The backend handle owns it.
func (c *Context) Device() gpucontext.Device {
	return c.HalDevice()
}

// Queue returns the submission queue.
func (c *Context) Queue() gpucontext.Queue {
	if q := c.HalQueue(); q != nil {
		return q
	}
	return c.queue
}

// Adapter returns the adapter the device was opened on, or nil when the
// resources do not expose it.
func (c *Context) Adapter() gpucontext.Adapter {
	if a, ok := c.res.(interface{ HalAdapter() any }); ok {
		return a.HalAdapter()
	}
	return nil
}

// AdapterInfo reports the adapter name and type, or AdapterTypeUnknown when
// the resources do not describe their adapter.
func (c *Context) AdapterInfo() gpucontext.AdapterInfo {
	a, ok := c.res.(interface {
		AdapterName() string
		DeviceType() gputypes.DeviceType
	})
	if !ok {
		return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
	}
	return gpucontext.AdapterInfo{Name: a.AdapterName(), Type: adapterType(a.DeviceType())}
}

func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}

// SurfaceFormat returns the configured surface format.
func (c *Context) SurfaceFormat() gputypes.TextureFormat {
	return c.config.Format
}

// HalDevice returns the underlying hal.Device, or nil when the resources are
// not HAL backed.
func (c *Context) HalDevice() any {
	if h, ok := c.res.(interface{ HalDevice() any }); ok {
		return h.HalDevice()
	}
	return nil
}

// HalQueue returns the underlying hal.Queue, or nil when the resources are
// not HAL backed.
func (c *Context) HalQueue() any {
	if h, ok := c.res.(interface{ HalQueue() any }); ok {
		return h.HalQueue()
	}
	return nil
}
