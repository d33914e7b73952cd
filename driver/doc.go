// Package driver turns host window events into surface operations.
//
// A Driver moves through three states:
//
//	Uninitialized --Resumed--> Running --CloseRequested--> Terminated
//
// The first Resumed creates the window and the rendering context; later
// calls are no-ops. While Running, resize events are recorded for the next
// frame and redraw events render one frame. Events outside Running are
// ignored.
//
// The host (see platform/glfw) owns the event loop and calls Resumed once
// it can create windows, then WindowEvent for every window event.
package driver
