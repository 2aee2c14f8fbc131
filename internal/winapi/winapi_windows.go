//go:build windows

package winapi

import (
	"syscall"
)

// DLLs - loaded lazily on first use
var (
	user32   = syscall.NewLazyDLL("user32.dll")
	kernel32 = syscall.NewLazyDLL("kernel32.dll")
)

// User32 procs
var (
	SetWindowsHookEx         = user32.NewProc("SetWindowsHookExW")
	UnhookWindowsHookEx      = user32.NewProc("UnhookWindowsHookEx")
	CallNextHookEx           = user32.NewProc("CallNextHookEx")
	GetMessage               = user32.NewProc("GetMessageW")
	TranslateMessage         = user32.NewProc("TranslateMessage")
	DispatchMessage          = user32.NewProc("DispatchMessageW")
	PostThreadMessage        = user32.NewProc("PostThreadMessageW")
	GetAsyncKeyState         = user32.NewProc("GetAsyncKeyState")
	FindWindow               = user32.NewProc("FindWindowW")
	WindowFromPoint          = user32.NewProc("WindowFromPoint")
	GetAncestor              = user32.NewProc("GetAncestor")
	GetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	PostMessage              = user32.NewProc("PostMessageW")
	SendInput                = user32.NewProc("SendInput")
	GetCursorPos             = user32.NewProc("GetCursorPos")
)

// Kernel32 procs
var (
	GetModuleHandle    = kernel32.NewProc("GetModuleHandleW")
	GetCurrentThreadId = kernel32.NewProc("GetCurrentThreadId")
)
