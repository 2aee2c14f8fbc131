//go:build windows

package hook

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"syscall"
	"time"
	"unsafe"

	"swiftscroll/internal/winapi"
)

// Hook owns the WH_MOUSE_LL registration and its message-pump thread
type Hook struct {
	// OnWheel and OnHWheel publish accepted notches. Assign before
	// Install; both run on the hook thread and must not block.
	OnWheel  func(*WheelEvent)
	OnHWheel func(*WheelEvent)

	mu        sync.Mutex
	installed bool
	threadID  uint32
	f         *filter
	callback  uintptr
}

// New creates an uninstalled hook
func New() *Hook {
	h := &Hook{
		f: newFilter(sampleShiftKey, lookupTrayHandles, rootWindowAt, time.Now),
	}
	h.callback = syscall.NewCallback(h.mouseProc)
	return h
}

// SetShiftHorizontal controls whether wheel+Shift routes to the
// horizontal axis
func (h *Hook) SetShiftHorizontal(enabled bool) {
	h.f.shiftHorizontal.Store(enabled)
}

// Install registers the low-level mouse hook on a dedicated locked
// thread running its own message loop. Idempotent.
func (h *Hook) Install() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.installed {
		return nil
	}

	h.f.reset()

	result := make(chan error, 1)
	go h.hookThread(result)
	if err := <-result; err != nil {
		return err
	}

	h.installed = true
	log.Printf("Hook: low-level mouse hook installed")
	return nil
}

// Uninstall revokes the hook by quitting its message loop. Idempotent.
func (h *Hook) Uninstall() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.installed {
		return nil
	}

	winapi.PostThreadMessage.Call(uintptr(h.threadID), winapi.WM_QUIT, 0, 0)
	h.installed = false
	log.Printf("Hook: low-level mouse hook removed")
	return nil
}

// hookThread registers the hook and pumps messages until WM_QUIT.
// Low-level hooks are delivered on the thread that installed them, so
// the OS thread stays locked for the hook's lifetime.
func (h *Hook) hookThread(result chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	tid, _, _ := winapi.GetCurrentThreadId.Call()
	hMod, _, _ := winapi.GetModuleHandle.Call(0)

	handle, _, err := winapi.SetWindowsHookEx.Call(
		winapi.WH_MOUSE_LL,
		h.callback,
		hMod,
		0,
	)
	if handle == 0 {
		result <- fmt.Errorf("%w: %v", ErrInstallFailed, err)
		return
	}

	h.threadID = uint32(tid)
	result <- nil

	var msg winapi.MSG
	for {
		ret, _, _ := winapi.GetMessage.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		if int32(ret) <= 0 {
			break
		}
		winapi.TranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
		winapi.DispatchMessage.Call(uintptr(unsafe.Pointer(&msg)))
	}

	winapi.UnhookWindowsHookEx.Call(handle)
}

// mouseProc is the WH_MOUSE_LL callback. It must stay well under a
// millisecond and must always forward up the chain rather than panic
// the OS message pump.
func (h *Hook) mouseProc(nCode int, wParam uintptr, lParam uintptr) (ret uintptr) {
	forward := func() uintptr {
		r, _, _ := winapi.CallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
		return r
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Hook: recovered callback panic: %v", r)
			ret = forward()
		}
	}()

	if nCode < 0 || lParam == 0 {
		return forward()
	}

	ms := (*winapi.MSLLHOOKSTRUCT)(unsafe.Pointer(lParam))
	act := h.f.classify(uint32(wParam), ms.Flags, ms.DwExtraInfo, ms.Pt.X, ms.Pt.Y)
	if act == actForward {
		return forward()
	}

	ev := &WheelEvent{
		Delta: winapi.WheelDeltaFromMouseData(ms.MouseData),
		X:     ms.Pt.X,
		Y:     ms.Pt.Y,
	}

	var publish func(*WheelEvent)
	if act == actHorizontal {
		publish = h.OnHWheel
	} else {
		publish = h.OnWheel
	}
	if publish != nil {
		publish(ev)
	}

	if ev.Handled {
		return 1
	}
	return forward()
}

// sampleShiftKey reads the live Shift state
func sampleShiftKey() bool {
	ret, _, _ := winapi.GetAsyncKeyState.Call(winapi.VK_SHIFT)
	return ret&0x8000 != 0
}

// lookupTrayHandles finds the primary and secondary shell tray windows
func lookupTrayHandles() []uintptr {
	handles := make([]uintptr, 0, 2)
	for _, class := range []string{winapi.ShellTrayClass, winapi.ShellSecondaryTrayClass} {
		p, err := syscall.UTF16PtrFromString(class)
		if err != nil {
			continue
		}
		hwnd, _, _ := winapi.FindWindow.Call(uintptr(unsafe.Pointer(p)), 0)
		if hwnd != 0 {
			handles = append(handles, hwnd)
		}
	}
	return handles
}

// rootWindowAt returns the top-level window under a screen point
func rootWindowAt(x, y int32) uintptr {
	// WindowFromPoint takes POINT by value, packed into one register
	pt := uintptr(uint32(x)) | uintptr(uint32(y))<<32
	hwnd, _, _ := winapi.WindowFromPoint.Call(pt)
	if hwnd == 0 {
		return 0
	}
	root, _, _ := winapi.GetAncestor.Call(hwnd, winapi.GA_ROOT)
	if root == 0 {
		return hwnd
	}
	return root
}
