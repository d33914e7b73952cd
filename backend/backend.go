package backend

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/clearloop"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

func logger() *slog.Logger { return clearloop.ComponentLogger("backend") }

// Option configures Create.
type Option func(*options)

type options struct {
	backend       string
	power         PowerPreference
	forceFallback bool
}

// WithBackend selects a registered backend by name. An empty name picks the
// highest priority backend available.
func WithBackend(name string) Option {
	return func(o *options) { o.backend = name }
}

// WithPowerPreference sets the adapter power preference.
func WithPowerPreference(p PowerPreference) Option {
	return func(o *options) { o.power = p }
}

// WithForceFallback restricts selection to software (CPU) adapters.
func WithForceFallback(force bool) Option {
	return func(o *options) { o.forceFallback = force }
}

// Handle owns the HAL instance, the selected adapter, the opened device and
// queue, and the surface bound to the window. It is created once per process.
type Handle struct {
	name        string
	adapterName string
	deviceType  gputypes.DeviceType

	instance hal.Instance
	adapter  hal.Adapter
	device   hal.Device
	queue    hal.Queue
	surface  hal.Surface

	halSurface *halSurface
	halDevice  *halDevice
	halQueue   *halQueue

	closeOnce sync.Once
}

// Create opens the graphics stack for window: instance, surface, a
// surface-compatible adapter, device and queue.
//
// All failures are startup errors wrapping ErrBackendNotAvailable,
// ErrInstanceCreate, ErrSurfaceCreate, ErrNoAdapter or ErrDeviceRequest.
func Create(window WindowHandle, opts ...Option) (*Handle, error) {
	if window == nil {
		return nil, ErrNilWindow
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	name, hb, err := resolve(o.backend)
	if err != nil {
		return nil, err
	}

	instance, err := hb.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInstanceCreate, err)
	}

	display, win, err := window.NativeHandles()
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("%w: %w", ErrSurfaceCreate, err)
	}
	surface, err := instance.CreateSurface(display, win)
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("%w: %w", ErrSurfaceCreate, err)
	}

	exposed := instance.EnumerateAdapters(surface)
	cands := make([]candidate, len(exposed))
	for i := range exposed {
		cands[i] = candidate{
			name:       exposed[i].Info.Name,
			deviceType: exposed[i].Info.DeviceType,
			caps:       capabilitiesFromHAL(exposed[i].Adapter.SurfaceCapabilities(surface)),
		}
		logger().Debug("adapter enumerated",
			"index", i, "name", cands[i].name, "type", cands[i].deviceType,
			"formats", len(cands[i].caps.Formats))
	}
	idx, err := selectAdapter(cands, o.power, o.forceFallback)
	if err != nil {
		surface.Destroy()
		instance.Destroy()
		return nil, err
	}
	selected := &exposed[idx]

	open, err := openDevice(selected.Adapter)
	if err != nil {
		surface.Destroy()
		instance.Destroy()
		return nil, err
	}
	h := &Handle{
		name:        name,
		adapterName: selected.Info.Name,
		deviceType:  selected.Info.DeviceType,
		instance:    instance,
		adapter:     selected.Adapter,
		device:      open.Device,
		queue:       open.Queue,
		surface:     surface,
		halSurface: &halSurface{
			surface: surface,
			adapter: selected.Adapter,
			device:  open.Device,
			queue:   open.Queue,
		},
		halDevice: &halDevice{device: open.Device},
		halQueue:  newHALQueue(open.Device, open.Queue),
	}
	logger().Info("adapter selected",
		"backend", name, "adapter", h.adapterName, "type", h.deviceType, "power", o.power)
	return h, nil
}

// openDevice opens a device and queue with no optional features and the
// default limits.
func openDevice(adapter hal.Adapter) (hal.OpenDevice, error) {
	open, err := adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return hal.OpenDevice{}, fmt.Errorf("%w: %w", ErrDeviceRequest, err)
	}
	return open, nil
}

// BackendName returns the registry name of the backend in use.
func (h *Handle) BackendName() string { return h.name }

// AdapterName returns the name the driver reports for the selected adapter.
func (h *Handle) AdapterName() string { return h.adapterName }

// DeviceType returns the selected adapter's device type.
func (h *Handle) DeviceType() gputypes.DeviceType { return h.deviceType }

// Surface returns the window surface.
func (h *Handle) Surface() Surface { return h.halSurface }

// Device returns the opened device.
func (h *Handle) Device() Device { return h.halDevice }

// Queue returns the submission queue.
func (h *Handle) Queue() Queue { return h.halQueue }

// HalDevice returns the underlying hal.Device for code that shares the
// device with this surface.
func (h *Handle) HalDevice() any { return h.device }

// HalQueue returns the underlying hal.Queue.
func (h *Handle) HalQueue() any { return h.queue }

// HalAdapter returns the underlying hal.Adapter.
func (h *Handle) HalAdapter() any { return h.adapter }

// Close releases all resources in reverse order of creation. It is safe to
// call more than once.
func (h *Handle) Close() {
	h.closeOnce.Do(func() {
		if h.device != nil {
			if err := h.device.WaitIdle(); err != nil {
				logger().Warn("wait idle before close", "error", err)
			}
		}
		if h.surface != nil {
			h.surface.Destroy()
		}
		if h.device != nil {
			h.device.Destroy()
		}
		if h.instance != nil {
			h.instance.Destroy()
		}
		logger().Info("backend closed", "backend", h.name)
	})
}
