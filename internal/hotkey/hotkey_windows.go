//go:build windows

package hotkey

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"swiftscroll/internal/winapi"
)

// Listener watches for the toggle chord on a low-level keyboard hook.
// It stays installed while smooth scrolling is disabled.
type Listener struct {
	onToggle func()

	mu       sync.Mutex
	running  bool
	threadID uint32
	callback uintptr

	ctrl bool
	alt  bool
}

// NewListener creates a listener invoking onToggle on Ctrl+Alt+S
func NewListener(onToggle func()) *Listener {
	l := &Listener{onToggle: onToggle}
	l.callback = syscall.NewCallback(l.keyboardProc)
	return l
}

// Start installs the keyboard hook on a dedicated locked thread.
// Idempotent.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return nil
	}

	result := make(chan error, 1)
	go l.hookThread(result)
	if err := <-result; err != nil {
		return err
	}

	l.running = true
	log.Printf("Hotkey: Ctrl+Alt+S toggle registered")
	return nil
}

// Stop removes the keyboard hook. Idempotent.
func (l *Listener) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return nil
	}

	winapi.PostThreadMessage.Call(uintptr(l.threadID), winapi.WM_QUIT, 0, 0)
	l.running = false
	return nil
}

func (l *Listener) hookThread(result chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	tid, _, _ := winapi.GetCurrentThreadId.Call()
	hMod, _, _ := winapi.GetModuleHandle.Call(0)

	handle, _, err := winapi.SetWindowsHookEx.Call(
		winapi.WH_KEYBOARD_LL,
		l.callback,
		hMod,
		0,
	)
	if handle == 0 {
		result <- fmt.Errorf("failed to set keyboard hook: %v", err)
		return
	}

	l.threadID = uint32(tid)
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

// keyboardProc tracks modifier state and fires the toggle. Keys are
// never swallowed; the chain always continues.
func (l *Listener) keyboardProc(nCode int, wParam uintptr, lParam uintptr) uintptr {
	if nCode >= 0 && lParam != 0 {
		kbd := (*winapi.KBDLLHOOKSTRUCT)(unsafe.Pointer(lParam))
		down := wParam == winapi.WM_KEYDOWN || wParam == winapi.WM_SYSKEYDOWN

		switch kbd.VkCode {
		case winapi.VK_CONTROL, 0xA2, 0xA3:
			l.ctrl = down
		case winapi.VK_MENU, 0xA4, 0xA5:
			l.alt = down
		case toggleVK:
			if down && l.ctrl && l.alt && l.onToggle != nil {
				// Off the hook thread; the toggle touches config and disk
				go l.onToggle()
			}
		}
	}

	ret, _, _ := winapi.CallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}
