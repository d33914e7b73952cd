// Package backend opens the graphics device a window surface is presented
// through.
//
// The package wraps gogpu/wgpu's HAL behind a handful of narrow interfaces
// (Surface, Device, Queue, CommandEncoder, RenderPass, Frame) so the surface
// and driver packages never touch HAL types directly and can be tested
// against fakes.
//
// # Backend Registration
//
// HAL backends are looked up through a small registry keyed by name. The
// Vulkan backend is registered and preferred by default; the noop backend is
// registered for tests and headless runs but only chosen when asked for by
// name:
//
//	names := backend.Available() // e.g. [noop vulkan]
//
// # Bring-up
//
// Create performs the whole one-time sequence: instance, surface for the
// native window, adapter compatible with that surface, device and queue.
//
//	h, err := backend.Create(window, backend.WithPowerPreference(backend.PowerDefault))
//	if err != nil {
//		log.Fatal(err) // no adapter or device: unrecoverable
//	}
//	defer h.Close()
//
// Errors from Create are startup errors and are not meant to be retried.
package backend
