// Package protocol defines the WebSocket messages of the settings
// surface.
package protocol

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// TypeSettings carries the full settings document after a change
	TypeSettings MessageType = "settings"

	// TypeStatus carries the enabled state. The server fills only
	// Enabled; ProfileKey is left empty.
	TypeStatus MessageType = "status"

	// TypeApply is sent by a client to replace the settings document
	TypeApply MessageType = "apply"

	// TypeToggle is sent by a client to flip the master switch
	TypeToggle MessageType = "toggle"
)

// Message is the generic container for all WebSocket messages
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// StatusPayload is the payload for TypeStatus
type StatusPayload struct {
	Enabled    bool   `json:"enabled"`
	ProfileKey string `json:"profile_key,omitempty"`
}
