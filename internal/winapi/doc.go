// Package winapi provides centralized Windows API declarations.
// This avoids duplicate DLL loading across packages.
package winapi
