package model

import "encoding/json"

// Wire event names. These are part of the client contract and must stay
// byte-for-byte identical to what the mobile app emits and listens for.
const (
	EventRegisterUser      = "register_user"
	EventSendMessage       = "send_message"
	EventMessage           = "message"
	EventNotification      = "notification"
	EventPresenceUpdate    = "presence:update"
	EventFriendRequestRead = "friend:request:read"
)

// Envelope frames every inbound event on the socket.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Frame is an outbound event ready for transmission.
type Frame struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// AuthError is the one frame that is not wrapped in an Envelope: it is
// written to a freshly upgraded socket whose credential failed verification,
// immediately before the server closes it.
type AuthError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewAuthError() AuthError {
	return AuthError{Type: "error", Message: "not authorized"}
}
