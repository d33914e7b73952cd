//go:build !linux && !windows

package glfw

import "github.com/go-gl/glfw/v3.3/glfw"

func nativeHandles(*glfw.Window) (display, window uintptr, err error) {
	return 0, 0, ErrUnsupportedPlatform
}
