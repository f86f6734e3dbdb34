package chat

import "time"

type MessageType string

const (
	TypeText  MessageType = "TEXT"
	TypeImage MessageType = "IMAGE"
	TypeEmoji MessageType = "EMOJI"
)

// ParseMessageType falls back to TEXT for unknown values.
func ParseMessageType(s string) MessageType {
	switch MessageType(s) {
	case TypeText, TypeImage, TypeEmoji:
		return MessageType(s)
	}
	return TypeText
}

type Message struct {
	ID          string      `json:"id" firestore:"-"`
	SenderID    string      `json:"senderId" firestore:"sender_id"`
	ReceiverID  string      `json:"receiverId" firestore:"receiver_id"`
	Content     string      `json:"content" firestore:"content"`
	MessageType MessageType `json:"messageType" firestore:"message_type"`
	IsRead      bool        `json:"isRead" firestore:"is_read"`
	ReadAt      *time.Time  `json:"readAt,omitempty" firestore:"read_at"`
	CreatedAt   time.Time   `json:"createdAt" firestore:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" firestore:"updated_at"`
}
