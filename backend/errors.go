package backend

import "errors"

// Startup errors. All of them are fatal to the process.
var (
	// ErrBackendNotAvailable is returned when the requested HAL backend is not
	// registered or not compiled in.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrInstanceCreate is returned when the HAL instance cannot be created.
	ErrInstanceCreate = errors.New("backend: instance creation failed")

	// ErrSurfaceCreate is returned when no surface can be bound to the window.
	ErrSurfaceCreate = errors.New("backend: surface creation failed")

	// ErrNoAdapter is returned when no adapter supports the window surface.
	ErrNoAdapter = errors.New("backend: no compatible adapter")

	// ErrDeviceRequest is returned when the selected adapter refuses to open
	// a device.
	ErrDeviceRequest = errors.New("backend: device request failed")

	// ErrNilWindow is returned by Create when no window is given.
	ErrNilWindow = errors.New("backend: nil window")
)

// Surface errors, reported per frame. None of them are fatal.
var (
	// ErrSurfaceLost means the surface became invalid and must be
	// reconfigured before it can be used again.
	ErrSurfaceLost = errors.New("backend: surface lost")

	// ErrSurfaceOutdated means the surface no longer matches the window
	// (typically after a resize that has not been applied yet).
	ErrSurfaceOutdated = errors.New("backend: surface outdated")

	// ErrSurfaceTimeout means no frame became available in time.
	ErrSurfaceTimeout = errors.New("backend: surface acquire timeout")

	// ErrSurfaceNotConfigured is returned when a frame is requested from a
	// surface that has never been configured.
	ErrSurfaceNotConfigured = errors.New("backend: surface not configured")
)
