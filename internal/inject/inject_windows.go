//go:build windows

package inject

import (
	"fmt"
	"unsafe"

	"swiftscroll/internal/engine"
	"swiftscroll/internal/winapi"
)

// Injector posts synthetic wheel messages to the captured target
// window. Posted messages never re-enter the low-level hook chain; the
// SendInput fallback for targetless notches carries the extra-info
// signature the hook rejects.
type Injector struct{}

// NewInjector creates a Windows wheel injector
func NewInjector() *Injector {
	return &Injector{}
}

// EmitWheel delivers a signed pixel delta to the target as one wheel
// message
func (i *Injector) EmitWheel(t engine.Target, axis engine.Axis, pixels int) error {
	units := Units(pixels)

	if t.Window == 0 {
		return i.sendInput(axis, units)
	}

	msg := uintptr(winapi.WM_MOUSEWHEEL)
	if axis == engine.AxisHorizontal {
		msg = winapi.WM_MOUSEHWHEEL
	}

	// High word carries the signed 16-bit delta
	wparam := uintptr(uint32(uint16(int16(units))) << 16)
	lparam := uintptr(uint32(uint16(t.X))) | uintptr(uint32(uint16(t.Y)))<<16

	ret, _, err := winapi.PostMessage.Call(t.Window, msg, wparam, lparam)
	if ret == 0 {
		return fmt.Errorf("%w: PostMessage to %#x: %v", ErrInjection, t.Window, err)
	}
	return nil
}

// sendInput injects through the system input queue when no target
// window was captured
func (i *Injector) sendInput(axis engine.Axis, units int) error {
	flags := uint32(winapi.MOUSEEVENTF_WHEEL)
	if axis == engine.AxisHorizontal {
		flags = winapi.MOUSEEVENTF_HWHEEL
	}

	in := winapi.INPUT{
		Type: winapi.INPUT_MOUSE,
		Mi: winapi.MOUSEINPUT{
			MouseData:   uint32(units),
			DwFlags:     flags,
			DwExtraInfo: winapi.SyntheticExtraInfo,
		},
	}

	ret, _, err := winapi.SendInput.Call(1, uintptr(unsafe.Pointer(&in)), unsafe.Sizeof(in))
	if ret != 1 {
		return fmt.Errorf("%w: SendInput: %v", ErrInjection, err)
	}
	return nil
}
