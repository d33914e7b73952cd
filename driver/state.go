package driver

import (
	"fmt"
	"strings"
)

// State is the lifecycle state of a Driver.
type State uint8

const (
	// Uninitialized is the state before the first Resumed.
	Uninitialized State = iota

	// Running means the window and rendering context exist.
	Running

	// Terminated means the window was closed or startup failed.
	Terminated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// RedrawMode controls when the driver asks the host for the next frame.
type RedrawMode uint8

const (
	// RedrawContinuous requests a new frame after every frame. Presentation
	// paces the loop.
	RedrawContinuous RedrawMode = iota

	// RedrawOnDemand requests a frame only after a resize or a failed frame.
	RedrawOnDemand
)

func (m RedrawMode) String() string {
	if m == RedrawOnDemand {
		return "on-demand"
	}
	return "continuous"
}

// ParseRedrawMode parses "continuous" or "on-demand".
func ParseRedrawMode(s string) (RedrawMode, error) {
	switch strings.ToLower(s) {
	case "continuous":
		return RedrawContinuous, nil
	case "on-demand", "ondemand":
		return RedrawOnDemand, nil
	}
	return 0, fmt.Errorf("driver: unknown redraw mode %q", s)
}
