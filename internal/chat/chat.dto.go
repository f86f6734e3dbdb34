package chat

import "time"

type SendMessageRequest struct {
	// ReceiverID may be empty; the service resolves the caller's partner.
	ReceiverID  string `json:"receiverId"`
	Content     string `json:"content"`
	MessageType string `json:"messageType"`
}

// Frame types carried over the websocket channel.
const (
	FrameChat       = "CHAT"
	FrameJoin       = "JOIN"
	FrameTyping     = "TYPING"
	FrameStopTyping = "STOP_TYPING"
)

// Frame is the wire format of the websocket chat channel. CHAT frames are
// persisted as Messages; the rest are transient.
type Frame struct {
	Type        string    `json:"type"`
	ID          string    `json:"id,omitempty"`
	SenderID    string    `json:"senderId"`
	SenderName  string    `json:"senderName,omitempty"`
	ReceiverID  string    `json:"receiverId,omitempty"`
	Content     string    `json:"content,omitempty"`
	MessageType string    `json:"messageType,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
