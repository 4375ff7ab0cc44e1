package model

import "encoding/json"

// ChatMessage is an inbound chat payload from a connected sender. Field names
// mirror the client's send_message payload; Item is carried opaquely so
// marketplace chats keep their item card intact.
type ChatMessage struct {
	FromUserID   UserID          `json:"fromUserId"`
	ToUserID     UserID          `json:"toUserId"`
	FromUserName string          `json:"fromUserName,omitempty"`
	ToUserName   string          `json:"touserName,omitempty"`
	Message      string          `json:"message"`
	Item         json.RawMessage `json:"item,omitempty"`
	Type         string          `json:"type,omitempty"`
}

// Pending returns the copy of the message that goes into the delivery buffer
// when the recipient is offline. The buffered copy is always tagged
// type "message", regardless of what the sender put there; live deliveries
// and the sender echo keep the original tag.
func (m *ChatMessage) Pending() *ChatMessage {
	p := *m
	p.Type = "message"
	return &p
}
