// Package hotkey provides the global Ctrl+Alt+S toggle so smooth
// scrolling can be re-enabled from the keyboard while the mouse hook is
// down.
package hotkey

// Toggle key: Ctrl+Alt+S
const toggleVK = 0x53
