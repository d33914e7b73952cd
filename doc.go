// Package clearloop drives a single window surface through a continuous
// acquire, clear, present loop on top of gogpu/wgpu.
//
// # Overview
//
// The work is split across a few packages:
//   - backend: HAL backend registry, surface creation, adapter selection,
//     device and queue
//   - surface: the surface context (configure, render) and the resize
//     coordinator that debounces window size changes
//   - driver: the Uninitialized, Running, Terminated state machine fed by
//     window events
//   - platform/glfw: a GLFW host that owns the window and event loop
//   - config: defaults, environment and command-line flags
//
// This root package only carries process-wide logging: SetLogger, Logger,
// InitLogger and the per-component FilterHandler.
//
// # Quick Start
//
//	if err := clearloop.InitLogger(os.Stderr, clearloop.DefaultFilterSpec); err != nil {
//	    log.Fatal(err)
//	}
//	d := driver.New(driver.Options{})
//	host, err := glfw.NewHost(glfw.Config{Title: "clearloop", Width: 800, Height: 600})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := host.Run(d); err != nil {
//	    log.Fatal(err)
//	}
//
// Every frame clears the window to (0.1, 0.2, 0.3, 1.0). Nothing else is
// drawn.
package clearloop
